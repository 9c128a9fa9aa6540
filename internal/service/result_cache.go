package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ielts-reading/internal/cache"
	"ielts-reading/internal/domain"
	"ielts-reading/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrResultNotFound is returned when no cached result exists for an id
var ErrResultNotFound = errors.New("test result not found in cache")

// ResultCache keeps scored test results for later retrieval by result id
type ResultCache interface {
	Put(ctx context.Context, result *domain.TestResult) error
	Get(ctx context.Context, resultID string) (*domain.TestResult, error)
}

type resultCache struct {
	cache domain.Cache
	ttl   time.Duration
	// concurrent lookups of the same id share one round trip
	group singleflight.Group
}

// NewResultCache stores results in c for ttl. A nil cache yields a no-op implementation.
func NewResultCache(c domain.Cache, ttl time.Duration) ResultCache {
	if c == nil {
		logger.Get().Warn("ResultCache initialized without a cache backend; results will not be retrievable")
		return noopResultCache{}
	}
	return &resultCache{cache: c, ttl: ttl}
}

func (s *resultCache) Put(ctx context.Context, result *domain.TestResult) error {
	if result == nil || result.ResultID == "" {
		return domain.NewInternalError("cannot cache a result without an id", nil)
	}

	key := cache.ResultKey(result.ResultID)
	data, err := json.Marshal(result)
	if err != nil {
		return domain.NewInternalError("failed to marshal result for caching", err)
	}
	if err := s.cache.Set(ctx, key, string(data), s.ttl); err != nil {
		return domain.NewInternalError(fmt.Sprintf("failed to cache result %s", result.ResultID), err)
	}

	logger.Get().Debug("Cached test result", zap.String("key", key), zap.Duration("ttl", s.ttl))
	return nil
}

func (s *resultCache) Get(ctx context.Context, resultID string) (*domain.TestResult, error) {
	key := cache.ResultKey(resultID)
	// the shared load outlives any single caller's cancellation
	ch := s.group.DoChan(key, func() (interface{}, error) {
		return s.load(context.WithoutCancel(ctx), key, resultID)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			logger.Get().Debug("Shared cached result lookup", zap.String("key", key))
		}
		return res.Val.(*domain.TestResult), nil
	}
}

func (s *resultCache) load(ctx context.Context, key, resultID string) (*domain.TestResult, error) {
	data, err := s.cache.Get(ctx, key)
	if errors.Is(err, domain.ErrCacheMiss) || (err == nil && data == "") {
		return nil, ErrResultNotFound
	}
	if err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to read result %s from cache", resultID), err)
	}

	var result domain.TestResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, domain.NewInternalError(fmt.Sprintf("failed to decode cached result %s", resultID), err)
	}
	return &result, nil
}

type noopResultCache struct{}

func (noopResultCache) Put(context.Context, *domain.TestResult) error { return nil }

func (noopResultCache) Get(context.Context, string) (*domain.TestResult, error) {
	return nil, ErrResultNotFound
}
