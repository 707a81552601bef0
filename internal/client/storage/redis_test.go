package storage

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Requires a live Redis; set FLEETDESK_TEST_REDIS_ADDR to run.
func TestRedisStore_Contract(t *testing.T) {
	addr := os.Getenv("FLEETDESK_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("FLEETDESK_TEST_REDIS_ADDR not set")
	}
	ctx := context.Background()

	s, err := OpenRedis(ctx, Options{RedisAddr: addr, RedisPrefix: "fleetdesk-test:" + uuid.NewString()})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = s.Clear(ctx)
		_ = s.Close()
	})

	v, err := s.Get(ctx, "absent")
	require.NoError(t, err)
	assert.Nil(t, v)

	require.NoError(t, s.SetMany(ctx, map[string][]byte{"accessToken": []byte("t"), "user": []byte("{}")}))
	v, err = s.Get(ctx, "accessToken")
	require.NoError(t, err)
	assert.Equal(t, []byte("t"), v)

	require.NoError(t, s.Delete(ctx, "user"))
	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string][]byte{"accessToken": []byte("t")}, all)
}

func TestHashKey_DefaultPrefix(t *testing.T) {
	assert.Equal(t, "fleetdesk:session", hashKey(""))
	assert.Equal(t, "ops:session", hashKey("ops"))
}
