package dummydb

import (
	"sync"

	"github.com/classflow/backend/core/attendance"
	"github.com/classflow/backend/core/student"
)

type (
	DB struct {
		student   *studentTable
		docs      *docTable
		snapshots *snapshotTable
	}

	studentTable struct {
		sync.RWMutex
		table map[string]*student.Student
	}

	// docTable mimics student_doc: one raw JSON-ish value per (student, key).
	docTable struct {
		sync.RWMutex
		table map[docKey]interface{}
	}
	docKey struct{ studentID, key string }

	snapshotTable struct {
		sync.RWMutex
		table map[snapshotKey][]attendance.RawRecord
	}
	snapshotKey struct{ studentID, subject string }
)

func Open() (*DB, error) {
	db := &DB{
		student:   &studentTable{table: make(map[string]*student.Student)},
		docs:      &docTable{table: make(map[docKey]interface{})},
		snapshots: &snapshotTable{table: make(map[snapshotKey][]attendance.RawRecord)},
	}
	return db, nil
}
