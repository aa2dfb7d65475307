package student

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/classflow/backend/core"
)

var (
	// errors
	ErrNotFound       = errors.New("student not found")
	ErrEmailExists    = errors.New("a student with this email already exists")
	ErrUsernameExists = errors.New("a student with this enrollment number already exists")
)

type (
	Repository interface {
		CheckUsernameUniqueness(ctx context.Context, username, email string, excluded ...Student) error
		CreateStudent(ctx context.Context, std Student) (Student, error)
		GetStudentByID(ctx context.Context, id string) (Student, error)
		GetStudentByUsername(ctx context.Context, username string) (Student, error)
		GetStudentByUsernameOrEmail(ctx context.Context, username string) (Student, error)
		UpdateStudent(ctx context.Context, std Student) (Student, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) checkUniqueness(ctx context.Context, uname, email string, excluded ...Student) error {
	if err := svc.repo.CheckUsernameUniqueness(ctx, uname, email, excluded...); err != nil {
		var field string
		switch err {
		case ErrUsernameExists:
			field = "username"
		case ErrEmailExists:
			field = "email"
		default:
			return err
		}
		return core.NewValidationError(err, core.FieldError{Field: field, Error: err.Error()})
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, ns NewStudent) (Student, error) {
	uname := core.CleanString(ns.Username, true /* lower */)
	email := core.CleanString(ns.Email, true /* lower */)
	if err := svc.checkUniqueness(ctx, uname, email); err != nil {
		return Student{}, err
	}

	now := time.Now().UTC()
	std := Student{
		ID:        uuid.New().String(),
		Username:  uname,
		Name:      core.CleanString(ns.Name),
		Email:     email,
		Batch:     core.CleanString(ns.Batch, true /* lower */),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := std.SetPassword(ns.Password); err != nil {
		return Student{}, err
	}
	return svc.repo.CreateStudent(ctx, std)
}

func (svc *Service) GetByID(ctx context.Context, id string) (Student, error) {
	return svc.repo.GetStudentByID(ctx, id)
}

func (svc *Service) GetByUsername(ctx context.Context, uname string) (Student, error) {
	return svc.repo.GetStudentByUsername(ctx, core.CleanString(uname, true /* lower */))
}

func (svc *Service) GetByUsernameOrEmail(ctx context.Context, uname string) (Student, error) {
	return svc.repo.GetStudentByUsernameOrEmail(ctx, core.CleanString(uname, true /* lower */))
}

func (svc *Service) SetLastLogin(ctx context.Context, std Student) (Student, error) {
	std.LastLogin = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, std)
}

// SetLastSync stamps a successful portal sync.
func (svc *Service) SetLastSync(ctx context.Context, std Student) (Student, error) {
	std.LastSync = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, std)
}

// Deactivate disables app access without deleting the account.
func (svc *Service) Deactivate(ctx context.Context, std Student) (Student, error) {
	std.IsActive = false
	std.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, std)
}

// SetPassword replaces the student's app password. Used by the admin CLI.
func (svc *Service) SetPassword(ctx context.Context, std Student, pwd string) (Student, error) {
	if err := std.SetPassword(pwd); err != nil {
		return Student{}, err
	}
	std.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateStudent(ctx, std)
}
