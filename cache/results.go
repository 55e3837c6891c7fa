package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/verifield/verifield/errors"
	"github.com/verifield/verifield/validation"
	"go.uber.org/zap"
)

const (
	// OutcomeCacheKeyPrefix namespaces memoized validation outcomes.
	OutcomeCacheKeyPrefix = "verifield_outcome_"
)

// cachedOutcome is the serialized form of a memoized validation run: the
// field→message map of the failure set, empty on full success. The evaluated
// rule objects are not serializable, so a replayed failure carries field and
// message only.
type cachedOutcome map[string]string

func fetchOutcome(
	ctx context.Context,
	cacheInstance cache.CacheInterface[[]byte],
	key string,
) (cachedOutcome, bool, error) {
	val, err := cacheInstance.Get(ctx, key)
	if err != nil {
		// - cache miss is not an error
		return nil, false, nil
	}

	var outcome cachedOutcome
	if err := json.Unmarshal(val, &outcome); err != nil {
		return nil, false, fmt.Errorf("cache: failed to unmarshal outcome for key '%s': %w", key, err)
	}
	return outcome, true, nil
}

func storeOutcome(
	ctx context.Context,
	cacheInstance cache.CacheInterface[[]byte],
	key string,
	outcome cachedOutcome,
	ttl time.Duration,
) error {
	data, err := json.Marshal(outcome)
	if err != nil {
		return fmt.Errorf("cache: failed to marshal outcome for key '%s': %w", key, err)
	}
	if err := cacheInstance.Set(ctx, key, data, store.WithExpiration(ttl)); err != nil {
		return fmt.Errorf("cache: failed to set outcome for key '%s': %w", key, err)
	}
	return nil
}

// CachedValidate memoizes Engine.Validate outcomes. cacheKey must uniquely
// identify the data being validated; the caller owns that contract. Only
// sound when the engine's custom validators are pure: a validator consulting
// external state can go stale for up to the TTL. Configuration errors are
// never memoized. A replayed failure carries field names and messages but
// not the evaluated rule objects.
func CachedValidate(
	ctx context.Context,
	cacheInstance cache.CacheInterface[[]byte],
	engine *validation.Engine,
	cacheKey string,
	ttl time.Duration,
	data map[string]interface{},
) error {
	if cacheInstance == nil || cacheKey == "" {
		return engine.Validate(ctx, data)
	}

	key := OutcomeCacheKeyPrefix + cacheKey

	// - Try fetch from cache
	outcome, found, err := fetchOutcome(ctx, cacheInstance, key)
	if err != nil {
		zap.L().Warn("Failed to read memoized validation outcome, revalidating", zap.Error(err))
	} else if found {
		return replayOutcome(outcome)
	}

	// - Cache miss - run the engine
	validateErr := engine.Validate(ctx, data)

	var failures errors.Failures
	switch {
	case validateErr == nil:
		outcome = cachedOutcome{}
	case asFailures(validateErr, &failures):
		outcome = failures.ToMap()
	default:
		// Configuration errors are caller bugs, never memoized.
		return validateErr
	}

	if err := storeOutcome(ctx, cacheInstance, key, outcome, ttl); err != nil {
		zap.L().Warn("Failed to memoize validation outcome", zap.Error(err))
	}

	return validateErr
}

func replayOutcome(outcome cachedOutcome) error {
	if len(outcome) == 0 {
		return nil
	}
	failures := make(errors.Failures, len(outcome))
	for field, message := range outcome {
		failures[field] = &errors.FieldError{Field: field, Message: message}
	}
	return failures
}

func asFailures(err error, target *errors.Failures) bool {
	failures, ok := err.(errors.Failures)
	if ok {
		*target = failures
	}
	return ok
}
