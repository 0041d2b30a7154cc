package inmemdb

import (
	"context"
	"sync"

	"github.com/eldad2003/pharmverse-edu-hub/core/kvstore"
)

// KV is a volatile kvstore.KV, used in tests and when no durable engine is configured.
type KV struct {
	sync.RWMutex
	table map[string]string
}

var _ kvstore.KV = (*KV)(nil)

func Open() *KV {
	return &KV{table: make(map[string]string)}
}

func (kv *KV) Get(_ context.Context, key string) (string, bool, error) {
	kv.RLock()
	defer kv.RUnlock()
	v, ok := kv.table[key]
	return v, ok, nil
}

func (kv *KV) Set(_ context.Context, key, value string) error {
	kv.Lock()
	kv.table[key] = value
	kv.Unlock()
	return nil
}

func (kv *KV) Close() error {
	return nil
}
