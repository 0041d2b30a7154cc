package sqlxdb

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/eldad2003/pharmverse-edu-hub/core/kvstore"
)

const table = "kv_store"

// KV is a kvstore.KV kept in the kv_store table of a postgres database.
type KV struct {
	db *sqlx.DB
	sb squirrel.StatementBuilderType
}

var _ kvstore.KV = (*KV)(nil)

func NewKV(db *sqlx.DB) *KV {
	return &KV{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (kv *KV) Get(ctx context.Context, key string) (string, bool, error) {
	q, args, err := kv.sb.Select("value").
		From(table).
		Where(squirrel.Eq{"key": key}).
		Limit(1).
		ToSql()
	if err != nil {
		return "", false, errors.Wrap(err, "building get query")
	}

	var value string
	if err = kv.db.GetContext(ctx, &value, q, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "getting %q", key)
	}
	return value, true, nil
}

func (kv *KV) Set(ctx context.Context, key, value string) error {
	q, args, err := kv.sb.Insert(table).
		Columns("key", "value").
		Values(key, value).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()").
		ToSql()
	if err != nil {
		return errors.Wrap(err, "building set query")
	}

	if _, err = kv.db.ExecContext(ctx, q, args...); err != nil {
		return errors.Wrapf(err, "setting %q", key)
	}
	return nil
}

func (kv *KV) Close() error {
	return kv.db.Close()
}
