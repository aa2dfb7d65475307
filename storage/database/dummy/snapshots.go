package dummydb

import (
	"context"
	"sort"

	"github.com/classflow/backend/core/attendance"
)

type snapshotRepository struct {
	db *snapshotTable
}

var _ attendance.HistoryRepository = (*snapshotRepository)(nil) // interface compliance check

func NewSnapshotRepository(db *DB) attendance.HistoryRepository {
	return &snapshotRepository{db: db.snapshots}
}

func (repo *snapshotRepository) GetRecords(_ context.Context, studentID, subject string) ([]attendance.RawRecord, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if records, ok := repo.db.table[snapshotKey{studentID, subject}]; ok {
		return records, nil
	}
	return nil, attendance.ErrNoHistory
}

func (repo *snapshotRepository) SaveRecords(_ context.Context, studentID, subject string, records []attendance.RawRecord) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.table[snapshotKey{studentID, subject}] = records
	return nil
}

func (repo *snapshotRepository) ListSubjects(_ context.Context, studentID string) ([]string, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	subjects := make([]string, 0)
	for key := range repo.db.table {
		if key.studentID == studentID {
			subjects = append(subjects, key.subject)
		}
	}
	sort.Strings(subjects)
	return subjects, nil
}
