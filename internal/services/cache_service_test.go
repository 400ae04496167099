package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fleetpulse/pkg/cache"
	"fleetpulse/pkg/logger"
)

type memoryRedis struct {
	mu   sync.Mutex
	data map[string][]byte
	ttl  map[string]time.Duration
	fail error
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{data: map[string][]byte{}, ttl: map[string]time.Duration{}}
}

func (m *memoryRedis) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	v, ok := m.data[key]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryRedis) Set(_ context.Context, key string, value []byte, exp time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.data[key] = value
	m.ttl[key] = exp
	return nil
}

func (m *memoryRedis) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestCacheService_RoundTripAndDefaultTTL(t *testing.T) {
	store := newMemoryRedis()
	svc := NewCacheService(store, logger.NewNop(), time.Minute)
	ctx := context.Background()

	type entry struct {
		Name string `json:"name"`
	}
	require.NoError(t, svc.Set(ctx, "car:1", entry{Name: "CAR-1"}, 0))
	assert.Equal(t, time.Minute, store.ttl["car:1"])

	var got entry
	require.NoError(t, svc.Get(ctx, "car:1", &got))
	assert.Equal(t, "CAR-1", got.Name)

	require.NoError(t, svc.Delete(ctx, "car:1"))
	err := svc.Get(ctx, "car:1", &got)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestCacheService_PropagatesStoreFailures(t *testing.T) {
	store := newMemoryRedis()
	store.fail = errors.New("connection refused")
	svc := NewCacheService(store, logger.NewNop(), time.Minute)

	var dest map[string]string
	assert.Error(t, svc.Get(context.Background(), "car:x", &dest))
	assert.Error(t, svc.Set(context.Background(), "car:x", "v", 0))
	assert.Error(t, svc.Delete(context.Background(), "car:x"))
}
