package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristrettoStore "github.com/eko/gocache/store/ristretto/v4"
	"github.com/verifield/verifield/helpers"
	"go.uber.org/zap"
)

const (
	DefaultRistrettoMaxCost     = 100000
	DefaultRistrettoNumCounters = DefaultRistrettoMaxCost * 10
	DefaultRistrettoBufferItems = 64
	DefaultOutcomeExpiration    = 1 * time.Minute
)

// OutcomeCacheConfig tunes the in-memory store backing the validation
// outcome cache.
type OutcomeCacheConfig struct {

	// RistrettoMaxCost defines the maximum "cost" for the Ristretto cache.
	// With the default per-item cost of 1 this is effectively the maximum
	// number of memoized outcomes.
	RistrettoMaxCost int64

	// RistrettoNumCounters determines the number of counters for Ristretto's
	// admission/eviction policy. A common rule of thumb is 10 * MaxCost.
	RistrettoNumCounters int64

	// RistrettoBufferItems configures the number of items Ristretto buffers
	// for better concurrency. If 0, Ristretto's own default (64) is used.
	RistrettoBufferItems int64

	// OutcomeExpiration sets the TTL applied to memoized outcomes at the
	// gocache store adapter level. Outcomes for the same input can only go
	// stale when validators consult external state, so a short TTL bounds
	// that staleness.
	OutcomeExpiration time.Duration
}

// OutcomeCacheManager lazily initializes and hands out the gocache instance
// used to memoize validation outcomes. Initialization happens once; a failed
// initialization is sticky and reported on every GetCache call.
type OutcomeCacheManager struct {
	CacheConfig    OutcomeCacheConfig
	CacheInstance  cache.CacheInterface[[]byte]
	CacheInitOnce  sync.Once
	CacheInitError error
}

func (m *OutcomeCacheManager) GetCache() (cache.CacheInterface[[]byte], error) {
	m.CacheInitOnce.Do(func() {
		ristrettoClient, err := ristretto.NewCache(&ristretto.Config{
			NumCounters: helpers.DefaultInt64(m.CacheConfig.RistrettoNumCounters, DefaultRistrettoNumCounters),
			MaxCost:     helpers.DefaultInt64(m.CacheConfig.RistrettoMaxCost, DefaultRistrettoMaxCost),
			BufferItems: helpers.DefaultInt64(m.CacheConfig.RistrettoBufferItems, DefaultRistrettoBufferItems),
			Metrics:     false,
		})

		if err != nil {
			zap.L().Error("OutcomeCacheManager: Failed to create Ristretto cache client during initialization", zap.Error(err))
			m.CacheInitError = fmt.Errorf("ristretto client initialization failed: %w", err)
			return
		}

		ristrettoStoreAdapter := ristrettoStore.NewRistretto(
			ristrettoClient,
			store.WithExpiration(helpers.DefaultTimeDuration(
				m.CacheConfig.OutcomeExpiration,
				DefaultOutcomeExpiration,
			)),
		)

		m.CacheInstance = cache.New[[]byte](ristrettoStoreAdapter)
		zap.L().Info("OutcomeCacheManager: Ristretto cache instance initialized successfully.")
	})

	if m.CacheInitError != nil {
		return nil, m.CacheInitError
	}

	if m.CacheInstance == nil {
		zap.L().Error("OutcomeCacheManager: Cache instance is nil after initialization attempt without a stored error.")
		return nil, fmt.Errorf("internal error: cache not initialized despite no explicit init error")
	}

	return m.CacheInstance, nil
}

// BuildOutcomeCacheManager creates a manager from the given config; a nil
// config or zero-valued fields select the defaults.
func BuildOutcomeCacheManager(config *OutcomeCacheConfig) *OutcomeCacheManager {
	if config == nil {
		config = &OutcomeCacheConfig{}
	}

	normalized := OutcomeCacheConfig{
		RistrettoMaxCost:     helpers.DefaultInt64(config.RistrettoMaxCost, DefaultRistrettoMaxCost),
		RistrettoNumCounters: helpers.DefaultInt64(config.RistrettoNumCounters, DefaultRistrettoNumCounters),
		RistrettoBufferItems: helpers.DefaultInt64(config.RistrettoBufferItems, DefaultRistrettoBufferItems),
		OutcomeExpiration:    helpers.DefaultTimeDuration(config.OutcomeExpiration, DefaultOutcomeExpiration),
	}

	return &OutcomeCacheManager{
		CacheConfig: normalized,
	}
}
