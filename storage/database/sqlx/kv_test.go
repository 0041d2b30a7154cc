package sqlxdb_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eldad2003/pharmverse-edu-hub/core/kvstore"
	"github.com/eldad2003/pharmverse-edu-hub/storage/database"
	"github.com/eldad2003/pharmverse-edu-hub/tests"
)

// Runs against a real postgres when TEST_STORE_DSN is set.
func TestKV(t *testing.T) {
	dsn := os.Getenv("TEST_STORE_DSN")
	if dsn == "" {
		t.Skip("TEST_STORE_DSN not set")
	}
	ctx := context.Background()
	conf := testutil.NewConfig()
	conf.Store.Engine = database.EnginePostgres
	conf.Store.DSN = dsn

	kv, err := database.Open(ctx, conf)
	require.NoError(t, err)
	defer kv.Close()

	key := kvstore.TimetableKey("Pharm D-test")
	require.NoError(t, kv.Set(ctx, key, `[]`))
	require.NoError(t, kv.Set(ctx, key, `[{"id":1}]`))

	v, found, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":1}]`, v)

	_, found, err = kv.Get(ctx, "never set")
	require.NoError(t, err)
	assert.False(t, found)
}
