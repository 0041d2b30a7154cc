package boltdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldad2003/pharmverse-edu-hub/core/kvstore"
)

func TestKV(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "pharmapp.db")

	kv, err := Open(path)
	require.NoError(t, err)

	_, found, err := kv.Get(ctx, kvstore.UsersKey)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Set(ctx, kvstore.UsersKey, `[]`))
	require.NoError(t, kv.Set(ctx, kvstore.UsersKey, `[{"username":"amina"}]`))
	require.NoError(t, kv.Set(ctx, kvstore.TimetableKey("Pharm D1"), `[]`))
	require.NoError(t, kv.Close())

	// values survive a reopen
	kv, err = Open(path)
	require.NoError(t, err)
	defer kv.Close()

	v, found, err := kv.Get(ctx, kvstore.UsersKey)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"username":"amina"}]`, v)

	v, found, err = kv.Get(ctx, kvstore.TimetableKey("Pharm D1"))
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[]`, v)
}

func TestKV_appender(t *testing.T) {
	ctx := context.Background()
	kv, err := Open(filepath.Join(t.TempDir(), "pharmapp.db"))
	require.NoError(t, err)
	defer kv.Close()

	a := kvstore.NewAppender(kv, false)
	for i := 1; i <= 3; i++ {
		n, err := kvstore.Append(ctx, a, kvstore.FilesKey("Pharm D2"), map[string]int{"n": i})
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	raw, _, err := kv.Get(ctx, kvstore.FilesKey("Pharm D2"))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"n":1},{"n":2},{"n":3}]`, raw)
}
