package boltdb

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"go.etcd.io/bbolt"

	"github.com/eldad2003/pharmverse-edu-hub/core/kvstore"
)

var bucket = []byte("pharmapp")

// KV is a kvstore.KV kept in a single bbolt bucket.
type KV struct {
	db *bbolt.DB
}

var _ kvstore.KV = (*KV)(nil)

// Open opens (or creates) the bolt file at path.
func Open(path string) (*KV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating data directory")
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, errors.Wrap(err, "opening bolt file")
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "creating bucket")
	}
	return &KV{db: db}, nil
}

func (kv *KV) Get(_ context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)
	err := kv.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucket).Get([]byte(key))
		if v != nil {
			value, found = string(v), true // copy: v is only valid inside the tx
		}
		return nil
	})
	return value, found, err
}

func (kv *KV) Set(_ context.Context, key, value string) error {
	return kv.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), []byte(value))
	})
}

func (kv *KV) Close() error {
	return kv.db.Close()
}
