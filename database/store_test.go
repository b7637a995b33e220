package database

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"slotbook/config"
	availabilityRepo "slotbook/database/repository/availability"
	"slotbook/models"
	"slotbook/utils"
)

func withConfig(t *testing.T, cfg config.Config) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = cfg
	utils.SetLogger(zap.NewNop())
	t.Cleanup(func() {
		config.AppConfig = prev
		utils.CacheClient = nil
	})
}

func TestOpenStoreMemory(t *testing.T) {
	cfg := config.Config{StoreDriver: config.DriverMemory}
	withConfig(t, cfg)

	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &availabilityRepo.MemoryRepo{}, store.Repo)
	assert.Empty(t, store.Checks)
}

func TestOpenStoreSQLiteMigrates(t *testing.T) {
	cfg := config.Config{StoreDriver: config.DriverSQLite, SQLitePath: "file::memory:"}
	withConfig(t, cfg)

	ctx := context.Background()
	store, err := OpenStore(ctx, cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &availabilityRepo.GormRepo{}, store.Repo)
	require.Contains(t, store.Checks, config.DriverSQLite)
	assert.NoError(t, store.Checks[config.DriverSQLite](ctx))

	require.NoError(t, store.Repo.UpsertProvider(ctx, models.Provider{ID: "p1", Availability: models.DefaultAvailability("p1")}))
	got, err := store.Repo.GetConfig(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.SlotCount)
}

func TestOpenStoreWrapsWithCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := config.Config{StoreDriver: config.DriverMemory, RedisAddr: mr.Addr()}
	withConfig(t, cfg)

	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &availabilityRepo.CachedRepo{}, store.Repo)
	require.Contains(t, store.Checks, "redis")
	assert.NoError(t, store.Checks["redis"](context.Background()))
}

func TestOpenStoreCacheUnavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	cfg := config.Config{StoreDriver: config.DriverMemory, RedisAddr: addr}
	withConfig(t, cfg)

	store, err := OpenStore(context.Background(), cfg)
	require.NoError(t, err)
	defer store.Close()

	assert.IsType(t, &availabilityRepo.MemoryRepo{}, store.Repo)
	assert.NotContains(t, store.Checks, "redis")
}

func TestOpenSQLRejectsUnknownDriver(t *testing.T) {
	_, err := OpenSQL("oracle", "")
	assert.Error(t, err)
}
