package main

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/classflow/backend/core"
	"github.com/classflow/backend/core/student"
)

// addStudent updates or creates a student.Student
func (cli *commandLine) addStudent(uname, email, name, batch, pwd string) error {
	ctx := context.Background()
	uname = core.CleanString(uname, true /* lower */)
	email = core.CleanString(email, true /* lower */)

	var exists bool
	std, err := cli.stdRepo.GetStudentByUsernameOrEmail(ctx, uname)
	if err == student.ErrNotFound {
		std, err = cli.stdRepo.GetStudentByUsernameOrEmail(ctx, email)
	}
	switch err {
	case nil:
		exists = true
	case student.ErrNotFound:
		std = student.Student{
			ID:        uuid.New().String(),
			Username:  uname,
			Email:     email,
			CreatedAt: time.Now().UTC(),
		}
	default:
		return err
	}

	if name != "" {
		std.Name = core.CleanString(name)
	}
	if batch != "" {
		std.Batch = core.CleanString(batch, true /* lower */)
	}
	std.IsActive = true
	if err := std.SetPassword(pwd); err != nil {
		return err
	}
	std.UpdatedAt = time.Now().UTC()

	if exists {
		_, err = cli.stdRepo.UpdateStudent(ctx, std)
	} else {
		_, err = cli.stdRepo.CreateStudent(ctx, std)
	}
	return err
}
