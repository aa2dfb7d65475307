package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/classflow/backend/core/attendance"
	"github.com/classflow/backend/core/timetable"
)

// Timetable data is stored as one jsonb document per (student, key):
// the week template, the event list, the target and one override map per
// subject. The shapes are client-defined and already validated by the
// timetable service, so a document store beats one table per shape.
const (
	docKeyTemplate = "timetable"
	docKeyEvents   = "events"
	docKeyTarget   = "target"

	docKeyOverridesPrefix = "overrides:"
)

type docRepository struct {
	db *sqlx.DB
}

var _ timetable.Repository = (*docRepository)(nil) // interface compliance check

func NewDocRepository(db *sqlx.DB) *docRepository {
	return &docRepository{db: db}
}

func (repo docRepository) get(ctx context.Context, studentID, key string, out interface{}) error {
	var raw []byte
	query := "SELECT value FROM student_doc WHERE student_id = $1 AND key = $2"
	if err := repo.db.GetContext(ctx, &raw, query, studentID, key); err != nil {
		if err == sql.ErrNoRows {
			return timetable.ErrNotFound
		}
		return errors.Wrapf(err, "loading doc %s", key)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return errors.Wrapf(err, "decoding doc %s", key)
	}
	return nil
}

func (repo docRepository) save(ctx context.Context, studentID, key string, val interface{}) error {
	raw, err := json.Marshal(val)
	if err != nil {
		return errors.Wrapf(err, "encoding doc %s", key)
	}
	query := `
		INSERT INTO student_doc (student_id, key, value, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (student_id, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := repo.db.ExecContext(ctx, query, studentID, key, raw); err != nil {
		return errors.Wrapf(err, "saving doc %s", key)
	}
	return nil
}

func (repo docRepository) GetTemplate(ctx context.Context, studentID string) (attendance.WeekTemplate, error) {
	var tmpl attendance.WeekTemplate
	if err := repo.get(ctx, studentID, docKeyTemplate, &tmpl); err != nil {
		return nil, err
	}
	return tmpl, nil
}

func (repo docRepository) SaveTemplate(ctx context.Context, studentID string, tmpl attendance.WeekTemplate) error {
	return repo.save(ctx, studentID, docKeyTemplate, tmpl)
}

func (repo docRepository) GetOverrides(ctx context.Context, studentID, subject string) (attendance.OverrideMap, error) {
	var overrides attendance.OverrideMap
	if err := repo.get(ctx, studentID, docKeyOverridesPrefix+subject, &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

func (repo docRepository) SaveOverrides(ctx context.Context, studentID, subject string, overrides attendance.OverrideMap) error {
	return repo.save(ctx, studentID, docKeyOverridesPrefix+subject, overrides)
}

func (repo docRepository) GetEvents(ctx context.Context, studentID string) ([]attendance.EventBlock, error) {
	var events []attendance.EventBlock
	if err := repo.get(ctx, studentID, docKeyEvents, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (repo docRepository) SaveEvents(ctx context.Context, studentID string, events []attendance.EventBlock) error {
	return repo.save(ctx, studentID, docKeyEvents, events)
}

func (repo docRepository) GetTarget(ctx context.Context, studentID string) (float64, error) {
	var target float64
	if err := repo.get(ctx, studentID, docKeyTarget, &target); err != nil {
		return 0, err
	}
	return target, nil
}

func (repo docRepository) SaveTarget(ctx context.Context, studentID string, target float64) error {
	return repo.save(ctx, studentID, docKeyTarget, target)
}
