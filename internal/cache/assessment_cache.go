// Package cache provides a two-tier cache for risk assessments. Evaluation
// is deterministic for a given disease and feature vector, so results can
// be cached on a digest of the inputs: an in-process expirable LRU serves
// hot entries and an optional Redis tier shares results across instances.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/health-assistant-server/internal/domain"
)

// Stats tracks cache performance counters. Counters are approximate; they
// are read for logging and the health endpoint, not billing.
type Stats struct {
	MemoryHits int64 `json:"memory_hits"`
	RedisHits  int64 `json:"redis_hits"`
	Misses     int64 `json:"misses"`
}

// AssessmentCache caches completed risk assessments keyed by a digest of
// the disease and the raw feature vector. The Redis tier sits behind a
// circuit breaker so a failing Redis never slows down evaluations.
type AssessmentCache struct {
	log     *logrus.Logger
	ttl     time.Duration
	memory  *lru.LRU[string, *domain.RiskAssessment]
	redis   *redis.Client
	breaker *gobreaker.CircuitBreaker

	memoryHits atomic.Int64
	redisHits  atomic.Int64
	misses     atomic.Int64
}

// New creates an assessment cache. redisClient may be nil, in which case
// only the in-memory tier is used.
func New(size int, ttl time.Duration, redisClient *redis.Client, logger *logrus.Logger) *AssessmentCache {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "assessment-cache-redis",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Cache circuit breaker state changed")
		},
	})

	return &AssessmentCache{
		log:     logger,
		ttl:     ttl,
		memory:  lru.NewLRU[string, *domain.RiskAssessment](size, nil, ttl),
		redis:   redisClient,
		breaker: breaker,
	}
}

// Key digests a disease and feature vector into a stable cache key.
func Key(disease domain.Disease, features domain.FeatureVector) string {
	h := sha256.New()
	h.Write([]byte(disease))
	h.Write([]byte{0})
	for _, v := range features {
		fmt.Fprintf(h, "%g,", v)
	}
	return "assessment:" + hex.EncodeToString(h.Sum(nil))
}

// Get returns a cached assessment, checking memory first and Redis second.
// Redis hits are promoted into the memory tier.
func (c *AssessmentCache) Get(ctx context.Context, disease domain.Disease, features domain.FeatureVector) (*domain.RiskAssessment, bool) {
	key := Key(disease, features)

	if assessment, ok := c.memory.Get(key); ok {
		c.memoryHits.Add(1)
		return assessment, true
	}

	if c.redis == nil {
		c.misses.Add(1)
		return nil, false
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.redis.Get(ctx, key).Bytes()
	})
	if err != nil {
		if err != redis.Nil {
			c.log.WithError(err).Debug("Redis cache read failed")
		}
		c.misses.Add(1)
		return nil, false
	}

	var assessment domain.RiskAssessment
	if err := json.Unmarshal(result.([]byte), &assessment); err != nil {
		c.log.WithError(err).Warn("Discarding undecodable cached assessment")
		c.misses.Add(1)
		return nil, false
	}

	c.memory.Add(key, &assessment)
	c.redisHits.Add(1)
	return &assessment, true
}

// Put stores an assessment in both tiers. Redis failures are logged and
// otherwise ignored.
func (c *AssessmentCache) Put(ctx context.Context, disease domain.Disease, features domain.FeatureVector, assessment *domain.RiskAssessment) {
	key := Key(disease, features)
	c.memory.Add(key, assessment)

	if c.redis == nil {
		return
	}

	payload, err := json.Marshal(assessment)
	if err != nil {
		c.log.WithError(err).Warn("Failed to encode assessment for cache")
		return
	}

	if _, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.redis.Set(ctx, key, payload, c.ttl).Err()
	}); err != nil {
		c.log.WithError(err).Debug("Redis cache write failed")
	}
}

// Stats returns a snapshot of the cache counters.
func (c *AssessmentCache) Stats() Stats {
	return Stats{
		MemoryHits: c.memoryHits.Load(),
		RedisHits:  c.redisHits.Load(),
		Misses:     c.misses.Load(),
	}
}
