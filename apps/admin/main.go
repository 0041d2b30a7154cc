package main

import (
	"context"
	"log"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"

	"github.com/eldad2003/pharmverse-edu-hub/core"
	"github.com/eldad2003/pharmverse-edu-hub/core/kvstore"
	"github.com/eldad2003/pharmverse-edu-hub/core/user"
	logsvc "github.com/eldad2003/pharmverse-edu-hub/services/logger"
	"github.com/eldad2003/pharmverse-edu-hub/storage/database"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(os.Stderr, conf)
	logger.Enable(false)

	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	// start CLI
	cli := commandLine{
		conf:     conf,
		out:      os.Stdout,
		validate: validate,
		openStore: func(ctx context.Context) (*kvstore.Appender, func() error, error) {
			kv, err := database.Open(ctx, conf)
			if err != nil {
				return nil, nil, err
			}
			return database.NewAppender(kv, conf, logger), kv.Close, nil
		},
		openDB: func(ctx context.Context) (*sqlx.DB, error) {
			return database.OpenPostgres(ctx, conf)
		},
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			log.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
