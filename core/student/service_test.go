package student

import (
	"context"
	"testing"

	"github.com/classflow/backend/core"
)

type fakeRepo struct {
	students map[string]Student // keyed by ID
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{students: make(map[string]Student)}
}

func (r *fakeRepo) CheckUsernameUniqueness(_ context.Context, username, email string, excluded ...Student) error {
	isExcluded := func(std Student) bool {
		for _, ex := range excluded {
			if ex.ID == std.ID {
				return true
			}
		}
		return false
	}
	for _, std := range r.students {
		if isExcluded(std) {
			continue
		}
		if std.Username == username {
			return ErrUsernameExists
		}
		if std.Email == email {
			return ErrEmailExists
		}
	}
	return nil
}

func (r *fakeRepo) CreateStudent(_ context.Context, std Student) (Student, error) {
	r.students[std.ID] = std
	return std, nil
}

func (r *fakeRepo) GetStudentByID(_ context.Context, id string) (Student, error) {
	if std, ok := r.students[id]; ok {
		return std, nil
	}
	return Student{}, ErrNotFound
}

func (r *fakeRepo) GetStudentByUsername(_ context.Context, username string) (Student, error) {
	for _, std := range r.students {
		if std.Username == username {
			return std, nil
		}
	}
	return Student{}, ErrNotFound
}

func (r *fakeRepo) GetStudentByUsernameOrEmail(_ context.Context, username string) (Student, error) {
	for _, std := range r.students {
		if std.Username == username || std.Email == username {
			return std, nil
		}
	}
	return Student{}, ErrNotFound
}

func (r *fakeRepo) UpdateStudent(_ context.Context, std Student) (Student, error) {
	if _, ok := r.students[std.ID]; !ok {
		return Student{}, ErrNotFound
	}
	r.students[std.ID] = std
	return std, nil
}

func TestService_Create(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	std, err := svc.Create(ctx, NewStudent{
		Username: "21103001",
		Name:     "Test Student",
		Email:    "Student@Test.Test",
		Password: "LePassword123!",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if std.ID == "" {
		t.Error("Create() did not assign an ID")
	}
	if std.Email != "student@test.test" {
		t.Errorf("Create() email = %q, want lowercased", std.Email)
	}
	if !std.IsActive {
		t.Error("Create() student is not active")
	}
	if err := std.CheckPassword("LePassword123!"); err != nil {
		t.Errorf("CheckPassword() error = %v", err)
	}
	if err := std.CheckPassword("nope"); err == nil {
		t.Error("CheckPassword() accepted a wrong password")
	}
}

func TestService_Create_uniqueness(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	ns := NewStudent{
		Username: "21103001",
		Name:     "Test Student",
		Email:    "student@test.test",
		Password: "LePassword123!",
	}
	if _, err := svc.Create(ctx, ns); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	_, err := svc.Create(ctx, ns)
	if err == nil {
		t.Fatal("Create() error = nil, want uniqueness error")
	}
	vErr, ok := err.(*core.ValidationError)
	if !ok {
		t.Fatalf("Create() error type = %T, want *core.ValidationError", err)
	}
	if len(vErr.Fields) == 0 || vErr.Fields[0].Field != "username" {
		t.Errorf("Create() fields = %+v, want username error", vErr.Fields)
	}
}

func TestService_Deactivate(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	std, err := svc.Create(ctx, NewStudent{
		Username: "21103001",
		Name:     "Test Student",
		Email:    "student@test.test",
		Password: "LePassword123!",
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	std, err = svc.Deactivate(ctx, std)
	if err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if std.IsActive {
		t.Error("Deactivate() student is still active")
	}

	refreshed, err := svc.GetByID(ctx, std.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if refreshed.IsActive {
		t.Error("Deactivate() was not persisted")
	}
}

func TestService_lookupsAreCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeRepo())

	if _, err := svc.Create(ctx, NewStudent{
		Username: "21103001",
		Name:     "Test Student",
		Email:    "student@test.test",
		Password: "LePassword123!",
	}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if _, err := svc.GetByUsername(ctx, " 21103001 "); err != nil {
		t.Errorf("GetByUsername() error = %v", err)
	}
	if _, err := svc.GetByUsernameOrEmail(ctx, "Student@Test.Test"); err != nil {
		t.Errorf("GetByUsernameOrEmail() error = %v", err)
	}
}
