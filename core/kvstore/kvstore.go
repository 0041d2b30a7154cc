// Package kvstore defines the string key-value store every portal collection lives in,
// and the JSON helpers used to keep collections as JSON arrays under a single key.
package kvstore

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/pkg/errors"
)

// Keys
const (
	UsersKey        = "pharmapp_users"
	timetablePrefix = "timetable_"
	filesPrefix     = "files_"
)

// ErrCorrupt is returned when a stored value cannot be decoded.
var ErrCorrupt = errors.New("stored data is corrupt")

// KV is a durable string key-value store. Implementations must be safe for concurrent use.
type KV interface {
	// Get returns the value stored under key; found is false when the key was never set.
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

func TimetableKey(yearGroup string) string { return timetablePrefix + yearGroup }
func FilesKey(yearGroup string) string     { return filesPrefix + yearGroup }

// LoadJSON decodes the value stored under key into a T.
// A missing key yields def. A value that fails to decode yields def and ErrCorrupt,
// callers decide whether to surface it.
func LoadJSON[T any](ctx context.Context, kv KV, key string, def T) (T, error) {
	raw, found, err := kv.Get(ctx, key)
	if err != nil {
		return def, errors.Wrapf(err, "reading %q", key)
	}
	if !found {
		return def, nil
	}
	var out T
	if err = json.Unmarshal([]byte(raw), &out); err != nil {
		return def, errors.Wrapf(ErrCorrupt, "decoding %q: %v", key, err)
	}
	return out, nil
}

// SaveJSON encodes value and stores it under key.
func SaveJSON[T any](ctx context.Context, kv KV, key string, value T) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "encoding %q", key)
	}
	if err = kv.Set(ctx, key, string(data)); err != nil {
		return errors.Wrapf(err, "writing %q", key)
	}
	return nil
}

// Appender serializes read-modify-write cycles on JSON array collections,
// so that concurrent appends within one process never lose each other's items.
type Appender struct {
	kv KV
	mu sync.Mutex

	// Lenient makes corrupt collections behave like empty ones instead of failing the append.
	Lenient bool
	// OnCorrupt is called with the key of every corrupt collection met in lenient mode.
	OnCorrupt func(key string, err error)
}

func NewAppender(kv KV, lenient bool) *Appender {
	return &Appender{kv: kv, Lenient: lenient}
}

// Load reads a JSON array collection, applying the corruption policy.
func Load[T any](ctx context.Context, a *Appender, key string) ([]T, error) {
	items, err := LoadJSON(ctx, a.kv, key, []T{})
	if err != nil {
		if a.Lenient && errors.Is(err, ErrCorrupt) {
			if a.OnCorrupt != nil {
				a.OnCorrupt(key, err)
			}
			return []T{}, nil
		}
		return nil, err
	}
	if items == nil { // stored "null"
		items = []T{}
	}
	return items, nil
}

// Append adds items at the end of the collection under key and returns the new collection length.
func Append[T any](ctx context.Context, a *Appender, key string, items ...T) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	existing, err := Load[T](ctx, a, key)
	if err != nil {
		return 0, err
	}
	existing = append(existing, items...)
	if err = SaveJSON(ctx, a.kv, key, existing); err != nil {
		return 0, err
	}
	return len(existing), nil
}
