package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/classflow/backend/core/student"
)

type dbStudent struct {
	ID           string      `db:"id"`
	Username     string      `db:"username"`
	Name         string      `db:"name"`
	Email        string      `db:"email"`
	Batch        null.String `db:"batch"`
	IsActive     bool        `db:"is_active"`
	PasswordHash []byte      `db:"password_hash"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
	LastLogin    null.Time   `db:"last_login"`
	LastSync     null.Time   `db:"last_sync"`
}

func toRow(std student.Student) dbStudent {
	return dbStudent{
		ID:           std.ID,
		Username:     std.Username,
		Name:         std.Name,
		Email:        std.Email,
		Batch:        null.NewString(std.Batch, std.Batch != ""),
		IsActive:     std.IsActive,
		PasswordHash: std.PasswordHash,
		CreatedAt:    std.CreatedAt.UTC(),
		UpdatedAt:    std.UpdatedAt.UTC(),
		LastLogin:    null.NewTime(std.LastLogin.UTC(), !std.LastLogin.IsZero()),
		LastSync:     null.NewTime(std.LastSync.UTC(), !std.LastSync.IsZero()),
	}
}

func fromRow(row dbStudent) student.Student {
	return student.Student{
		ID:           row.ID,
		Username:     row.Username,
		Name:         row.Name,
		Email:        row.Email,
		Batch:        row.Batch.String,
		IsActive:     row.IsActive,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
		LastLogin:    row.LastLogin.Time,
		LastSync:     row.LastSync.Time,
	}
}

type studentRepository struct {
	db *sqlx.DB
}

var _ student.Repository = (*studentRepository)(nil) // interface compliance check

func NewStudentRepository(db *sqlx.DB) *studentRepository {
	return &studentRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to student.ErrNotFound
func (repo studentRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return student.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo studentRepository) CheckUsernameUniqueness(ctx context.Context, username, email string, excluded ...student.Student) error {
	query := `
		SELECT
			EXISTS(SELECT 1 FROM student WHERE username = ? AND id NOT IN (?)),
			EXISTS(SELECT 1 FROM student WHERE email = ? AND id NOT IN (?))`

	ids := make([]string, 0, len(excluded))
	for _, std := range excluded {
		ids = append(ids, std.ID)
	}
	if len(ids) == 0 {
		ids = append(ids, "") // keep the IN clause valid
	}

	query, args, err := sqlx.In(query, username, ids, email, ids)
	if err != nil {
		return errors.Wrap(err, "checking student uniqueness")
	}

	var unameExists, emailExists bool
	row := repo.db.QueryRowContext(ctx, repo.db.Rebind(query), args...)
	if err := row.Scan(&unameExists, &emailExists); err != nil {
		return errors.Wrap(err, "checking student uniqueness")
	}
	if unameExists {
		return student.ErrUsernameExists
	}
	if emailExists {
		return student.ErrEmailExists
	}
	return nil
}

func (repo studentRepository) CreateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	query := `
		INSERT INTO student (id, username, name, email, batch, is_active, password_hash, created_at, updated_at, last_login, last_sync)
		VALUES (:id, :username, :name, :email, :batch, :is_active, :password_hash, :created_at, :updated_at, :last_login, :last_sync)`

	if _, err := repo.db.NamedExecContext(ctx, query, toRow(std)); err != nil {
		return student.Student{}, errors.Wrap(err, "inserting student")
	}
	return std, nil
}

func (repo studentRepository) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	var row dbStudent
	if err := repo.db.GetContext(ctx, &row, "SELECT * FROM student WHERE id = $1", id); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student by ID")
	}
	return fromRow(row), nil
}

func (repo studentRepository) GetStudentByUsername(ctx context.Context, username string) (student.Student, error) {
	var row dbStudent
	if err := repo.db.GetContext(ctx, &row, "SELECT * FROM student WHERE username = $1", username); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student by username")
	}
	return fromRow(row), nil
}

func (repo studentRepository) GetStudentByUsernameOrEmail(ctx context.Context, username string) (student.Student, error) {
	var row dbStudent
	query := "SELECT * FROM student WHERE username = $1 OR email = $1"
	if err := repo.db.GetContext(ctx, &row, query, username); err != nil {
		return student.Student{}, repo.trapNoRowsErr(err, "finding student by username or email")
	}
	return fromRow(row), nil
}

func (repo studentRepository) UpdateStudent(ctx context.Context, std student.Student) (student.Student, error) {
	query := `
		UPDATE student
		SET username = :username, name = :name, email = :email, batch = :batch,
			is_active = :is_active, password_hash = :password_hash,
			updated_at = :updated_at, last_login = :last_login, last_sync = :last_sync
		WHERE id = :id`

	res, err := repo.db.NamedExecContext(ctx, query, toRow(std))
	if err != nil {
		return student.Student{}, errors.Wrap(err, "updating student")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return student.Student{}, student.ErrNotFound
	}
	return std, nil
}
