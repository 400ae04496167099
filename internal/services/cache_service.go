package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fleetpulse/pkg/cache"
	"fleetpulse/pkg/logger"
)

// CacheService is the JSON cache used by repositories for hot lookups.
// Callers treat every error as a miss and fall back to the store.
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// RedisClient is the byte level store behind CacheService.
type RedisClient interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

type cacheService struct {
	redisClient RedisClient
	logger      *logger.Logger
	defaultTTL  time.Duration
}

func NewCacheService(redisClient RedisClient, logger *logger.Logger, defaultTTL time.Duration) CacheService {
	return &cacheService{
		redisClient: redisClient,
		logger:      logger,
		defaultTTL:  defaultTTL,
	}
}

func (s *cacheService) Get(ctx context.Context, key string, dest interface{}) error {
	data, err := s.redisClient.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.WithContext(ctx).WithError(err).WithField("cache_key", key).Warn("Cache read failed")
		}
		return fmt.Errorf("failed to get cache key %s: %w", key, err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	s.logger.WithContext(ctx).WithField("cache_key", key).Debug("Cache hit")
	return nil
}

func (s *cacheService) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if expiration == 0 {
		expiration = s.defaultTTL
	}

	if err := s.redisClient.Set(ctx, key, data, expiration); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithField("cache_key", key).Warn("Cache write failed")
		return fmt.Errorf("failed to set cache key %s: %w", key, err)
	}

	return nil
}

func (s *cacheService) Delete(ctx context.Context, keys ...string) error {
	if err := s.redisClient.Delete(ctx, keys...); err != nil {
		s.logger.WithContext(ctx).WithError(err).WithField("cache_keys", keys).Warn("Cache delete failed")
		return fmt.Errorf("failed to delete cache keys: %w", err)
	}
	return nil
}
