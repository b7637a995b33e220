// File: database/repository/availability/cache.go
package availabilityRepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"slotbook/models"
	"slotbook/utils"
)

// CachedRepo caches GetConfig results in Redis. Booking reads always go to the
// wrapped repository; only the read-mostly availability config is cached.
type CachedRepo struct {
	AvailabilityRepository
	client *redis.Client
	ttl    time.Duration
}

func NewCachedRepo(inner AvailabilityRepository, client *redis.Client, ttl time.Duration) *CachedRepo {
	if ttl <= 0 {
		ttl = utils.DefaultConfigCacheTTL
	}
	return &CachedRepo{AvailabilityRepository: inner, client: client, ttl: ttl}
}

func configCacheKey(providerID string) string {
	return utils.AvailabilityCachePrefix + providerID
}

// GetConfig serves from Redis when possible. Redis failures are logged and the
// wrapped repository answers instead.
func (r *CachedRepo) GetConfig(ctx context.Context, providerID string) (*models.ProviderAvailability, error) {
	logger := utils.GetLogger()
	key := configCacheKey(providerID)

	raw, err := r.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cfg models.ProviderAvailability
		if jsonErr := json.Unmarshal(raw, &cfg); jsonErr == nil {
			return &cfg, nil
		}
		logger.Warn("Discarding corrupt availability cache entry", zap.String("providerId", providerID))
	case !errors.Is(err, redis.Nil):
		logger.Warn("Availability cache read failed", zap.String("providerId", providerID), zap.Error(err))
	}

	cfg, err := r.AvailabilityRepository.GetConfig(ctx, providerID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(cfg); err == nil {
		if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
			logger.Warn("Availability cache write failed", zap.String("providerId", providerID), zap.Error(err))
		}
	}
	return cfg, nil
}

func (r *CachedRepo) UpdateConfig(ctx context.Context, cfg models.ProviderAvailability) error {
	if err := r.AvailabilityRepository.UpdateConfig(ctx, cfg); err != nil {
		return err
	}
	r.invalidate(ctx, cfg.ProviderID)
	return nil
}

func (r *CachedRepo) UpsertProvider(ctx context.Context, p models.Provider) error {
	if err := r.AvailabilityRepository.UpsertProvider(ctx, p); err != nil {
		return err
	}
	r.invalidate(ctx, p.ID)
	return nil
}

func (r *CachedRepo) invalidate(ctx context.Context, providerID string) {
	if err := r.client.Del(ctx, configCacheKey(providerID)).Err(); err != nil {
		utils.GetLogger().Warn("Availability cache invalidation failed",
			zap.String("providerId", providerID), zap.Error(err))
	}
}
