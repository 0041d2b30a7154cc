package database

import (
	"context"
	"embed"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/pressly/goose/v3"

	"github.com/eldad2003/pharmverse-edu-hub/core"
	"github.com/eldad2003/pharmverse-edu-hub/core/kvstore"
	boltdb "github.com/eldad2003/pharmverse-edu-hub/storage/database/bolt"
	inmemdb "github.com/eldad2003/pharmverse-edu-hub/storage/database/inmem"
	sqlxdb "github.com/eldad2003/pharmverse-edu-hub/storage/database/sqlx"
)

// Engines
const (
	EngineBolt     = "bolt"
	EngineMemory   = "memory"
	EnginePostgres = "postgres"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Open opens the configured key-value store. Postgres stores are migrated up before use.
func Open(ctx context.Context, conf *core.Config) (kvstore.KV, error) {
	switch conf.Store.Engine {
	case EngineMemory:
		return inmemdb.Open(), nil

	case EngineBolt:
		kv, err := boltdb.Open(conf.Store.Path)
		if err != nil {
			return nil, errors.Wrap(err, "opening bolt store")
		}
		return kv, nil

	case EnginePostgres:
		db, err := OpenPostgres(ctx, conf)
		if err != nil {
			return nil, err
		}
		if err = Migrate(db, "up"); err != nil {
			_ = db.Close()
			return nil, err
		}
		return sqlxdb.NewKV(db), nil

	default:
		return nil, errors.Errorf("unknown store engine %q", conf.Store.Engine)
	}
}

// OpenPostgres connects to the configured postgres database and waits for it to be ready.
func OpenPostgres(ctx context.Context, conf *core.Config) (*sqlx.DB, error) {
	db, err := sqlx.Open("postgres", conf.Store.DSN)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(ctx context.Context, db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		if err = db.PingContext(ctx); err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "DB ping cancelled")
		case <-time.After(time.Duration(attempts) * 100 * time.Millisecond):
		}
	}
	return errors.Wrap(err, "DB ping timeout")
}

// Migrate runs a goose command (up, down, status, ...) with the embedded migrations.
func Migrate(db *sqlx.DB, command string, args ...string) error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "setting migrations dialect")
	}
	if err := goose.Run(command, db.DB, "migrations", args...); err != nil {
		return errors.Wrapf(err, "migrating database (%s)", command)
	}
	return nil
}

// NewAppender wraps kv with the configured corruption policy. In lenient mode corrupt collections are logged.
func NewAppender(kv kvstore.KV, conf *core.Config, logger core.Logger) *kvstore.Appender {
	a := kvstore.NewAppender(kv, !conf.Store.StrictDecode)
	a.OnCorrupt = func(key string, err error) {
		logger.Warn("corrupt collection read as empty", map[string]interface{}{"key": key}, err)
	}
	return a
}
