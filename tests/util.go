package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/classflow/backend/core/student"
)

// CreateStudent persists a ready-made active student for tests.
func CreateStudent(t *testing.T, repo student.Repository, name, username, email, pwd string, isActive bool) student.Student {
	t.Helper()

	now := time.Now().UTC()
	std := student.Student{
		ID:        uuid.New().String(),
		Username:  username,
		Name:      name,
		Email:     email,
		IsActive:  isActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := std.SetPassword(pwd); err != nil {
		t.Fatalf("SetPassword(): %v", err)
	}

	std, err := repo.CreateStudent(context.Background(), std)
	if err != nil {
		t.Fatalf("CreateStudent(): %v", err)
	}
	return std
}
