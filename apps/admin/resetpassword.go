package main

import (
	"context"
	"time"

	"github.com/classflow/backend/core"
)

func (cli *commandLine) resetPassword(uname, pwd string) error {
	ctx := context.Background()
	std, err := cli.stdRepo.GetStudentByUsernameOrEmail(ctx, core.CleanString(uname, true /* lower */))
	if err != nil {
		return err
	}
	if err := std.SetPassword(pwd); err != nil {
		return err
	}
	std.UpdatedAt = time.Now().UTC()
	_, err = cli.stdRepo.UpdateStudent(ctx, std)
	return err
}
