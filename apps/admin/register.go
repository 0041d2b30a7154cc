package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/eldad2003/pharmverse-edu-hub/core/user"
	"github.com/eldad2003/pharmverse-edu-hub/storage/database/kvrepos"
)

// register stores a new student credential, with the same checks as the web form.
func (cli *commandLine) register(uname, pwd, confirm, yearGroup string) error {
	ctx := context.Background()
	store, closeStore, err := cli.openStore(ctx)
	if err != nil {
		return errors.Wrap(err, "opening store")
	}
	defer func() { _ = closeStore() }()

	usrSvc := user.NewService(kvrepos.NewUserRepository(store), cli.validate, cli.conf.AdminPassword)
	cred, err := usrSvc.Register(ctx, user.NewStudent{
		Username:        uname,
		Password:        pwd,
		PasswordConfirm: confirm,
		YearGroup:       yearGroup,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "registered %s in %s\n", cred.Username, cred.YearGroup)
	return nil
}
