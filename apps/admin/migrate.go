package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/eldad2003/pharmverse-edu-hub/storage/database"
)

var (
	migrateFunc = database.Migrate // mockable

	errNotPostgres = errors.New("migrations only apply to the postgres store")
)

func (cli *commandLine) migrate(args []string) error {
	if cli.conf.Store.Engine != database.EnginePostgres {
		return errNotPostgres
	}
	db, err := cli.openDB(context.Background())
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	if db != nil {
		defer func() { _ = db.Close() }()
	}

	arguments := make([]string, 0)
	if len(args) > 1 {
		arguments = append(arguments, args[1:]...)
	}
	return migrateFunc(db, args[0], arguments...)
}
