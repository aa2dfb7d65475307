package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/classflow/backend/core/attendance"
)

// snapshotRepository stores the latest raw portal snapshot per
// (student, subject). Each sync overwrites the previous snapshot; the
// engine normalizes on read, so records keep the portal's shape.
type snapshotRepository struct {
	db *sqlx.DB
}

var _ attendance.HistoryRepository = (*snapshotRepository)(nil) // interface compliance check

func NewSnapshotRepository(db *sqlx.DB) *snapshotRepository {
	return &snapshotRepository{db: db}
}

func (repo snapshotRepository) GetRecords(ctx context.Context, studentID, subject string) ([]attendance.RawRecord, error) {
	var raw []byte
	query := "SELECT records FROM attendance_snapshot WHERE student_id = $1 AND subject = $2"
	if err := repo.db.GetContext(ctx, &raw, query, studentID, subject); err != nil {
		if err == sql.ErrNoRows {
			return nil, attendance.ErrNoHistory
		}
		return nil, errors.Wrap(err, "loading attendance snapshot")
	}

	var records []attendance.RawRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, errors.Wrap(err, "decoding attendance snapshot")
	}
	return records, nil
}

func (repo snapshotRepository) SaveRecords(ctx context.Context, studentID, subject string, records []attendance.RawRecord) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return errors.Wrap(err, "encoding attendance snapshot")
	}
	query := `
		INSERT INTO attendance_snapshot (student_id, subject, records, synced_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (student_id, subject) DO UPDATE SET records = EXCLUDED.records, synced_at = now()`
	if _, err := repo.db.ExecContext(ctx, query, studentID, subject, raw); err != nil {
		return errors.Wrap(err, "saving attendance snapshot")
	}
	return nil
}

func (repo snapshotRepository) ListSubjects(ctx context.Context, studentID string) ([]string, error) {
	subjects := make([]string, 0)
	query := "SELECT subject FROM attendance_snapshot WHERE student_id = $1 ORDER BY subject"
	if err := repo.db.SelectContext(ctx, &subjects, query, studentID); err != nil {
		return nil, errors.Wrap(err, "listing synced subjects")
	}
	return subjects, nil
}
