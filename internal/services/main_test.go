package services

import (
	"testing"

	"aicodegen-backend/internal/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := database.ConnectSQLite(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	database.RedisClient = nil
	t.Cleanup(func() {
		database.Close()
	})
}

func setupTestRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		database.RedisClient.Close()
		database.RedisClient = nil
	})
	return mr
}
