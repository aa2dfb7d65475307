package dummydb

import (
	"context"

	"github.com/classflow/backend/core/attendance"
	"github.com/classflow/backend/core/timetable"
)

type docRepository struct {
	db *docTable
}

var _ timetable.Repository = (*docRepository)(nil) // interface compliance check

func NewDocRepository(db *DB) timetable.Repository {
	return &docRepository{db: db.docs}
}

func (repo *docRepository) get(studentID, key string) (interface{}, bool) {
	repo.db.RLock()
	defer repo.db.RUnlock()
	val, ok := repo.db.table[docKey{studentID, key}]
	return val, ok
}

func (repo *docRepository) save(studentID, key string, val interface{}) {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.db.table[docKey{studentID, key}] = val
}

func (repo *docRepository) GetTemplate(_ context.Context, studentID string) (attendance.WeekTemplate, error) {
	if val, ok := repo.get(studentID, "timetable"); ok {
		return val.(attendance.WeekTemplate), nil
	}
	return nil, timetable.ErrNotFound
}

func (repo *docRepository) SaveTemplate(_ context.Context, studentID string, tmpl attendance.WeekTemplate) error {
	repo.save(studentID, "timetable", tmpl)
	return nil
}

func (repo *docRepository) GetOverrides(_ context.Context, studentID, subject string) (attendance.OverrideMap, error) {
	if val, ok := repo.get(studentID, "overrides:"+subject); ok {
		return val.(attendance.OverrideMap), nil
	}
	return nil, timetable.ErrNotFound
}

func (repo *docRepository) SaveOverrides(_ context.Context, studentID, subject string, overrides attendance.OverrideMap) error {
	repo.save(studentID, "overrides:"+subject, overrides)
	return nil
}

func (repo *docRepository) GetEvents(_ context.Context, studentID string) ([]attendance.EventBlock, error) {
	if val, ok := repo.get(studentID, "events"); ok {
		return val.([]attendance.EventBlock), nil
	}
	return nil, timetable.ErrNotFound
}

func (repo *docRepository) SaveEvents(_ context.Context, studentID string, events []attendance.EventBlock) error {
	repo.save(studentID, "events", events)
	return nil
}

func (repo *docRepository) GetTarget(_ context.Context, studentID string) (float64, error) {
	if val, ok := repo.get(studentID, "target"); ok {
		return val.(float64), nil
	}
	return 0, timetable.ErrNotFound
}

func (repo *docRepository) SaveTarget(_ context.Context, studentID string, target float64) error {
	repo.save(studentID, "target", target)
	return nil
}
