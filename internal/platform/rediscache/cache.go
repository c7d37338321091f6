// Package rediscache puts a Redis read-through cache in front of the plan
// store so the latest plan of a user is served without a database round trip.
package rediscache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/phrazzld/studyplan/internal/config"
	"github.com/phrazzld/studyplan/internal/domain"
	"github.com/phrazzld/studyplan/internal/platform/logger"
	"github.com/phrazzld/studyplan/internal/redact"
	"github.com/phrazzld/studyplan/internal/store"
)

const keyPrefix = "studyplan:plan:latest:"

// Client is the subset of the go-redis API the cache uses.
// *goredis.Client satisfies it.
type Client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// NewClient connects to the configured Redis and verifies it with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*goredis.Client, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("missing redis address")
	}
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// PlanStore decorates a store.PlanStore. GetLatest reads through the cache;
// Save invalidates the user's entry after the underlying write. Cache
// failures are logged and never fail the operation.
//
// A store bound to a transaction by WithTx does not invalidate on Save: the
// write is not visible until commit, so the caller must call Invalidate
// after the transaction commits.
type PlanStore struct {
	next   store.PlanStore
	client Client
	ttl    time.Duration
	logger *slog.Logger
	inTx   bool
}

var (
	_ store.PlanStore       = (*PlanStore)(nil)
	_ store.PlanInvalidator = (*PlanStore)(nil)
)

// NewPlanStore wraps next with a cache whose entries live for ttl.
func NewPlanStore(next store.PlanStore, client Client, ttl time.Duration, logger *slog.Logger) *PlanStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanStore{
		next:   next,
		client: client,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "plan_cache")),
	}
}

func latestKey(userID uuid.UUID) string {
	return keyPrefix + userID.String()
}

// Save implements store.PlanStore.
func (c *PlanStore) Save(ctx context.Context, plan *domain.SchedulePlan) error {
	if err := c.next.Save(ctx, plan); err != nil {
		return err
	}
	if !c.inTx {
		c.Invalidate(ctx, plan.UserID)
	}
	return nil
}

// Invalidate implements store.PlanInvalidator.
func (c *PlanStore) Invalidate(ctx context.Context, userID uuid.UUID) {
	if err := c.client.Del(ctx, latestKey(userID)).Err(); err != nil {
		logger.FromContextOrDefault(ctx, c.logger).Warn("failed to invalidate cached plan",
			slog.String("error", redact.Error(err)),
			slog.String("user_id", userID.String()))
	}
}

// GetByID implements store.PlanStore. It is not cached.
func (c *PlanStore) GetByID(ctx context.Context, userID, planID uuid.UUID) (*domain.SchedulePlan, error) {
	return c.next.GetByID(ctx, userID, planID)
}

// GetForUpdate implements store.PlanStore. It is not cached.
func (c *PlanStore) GetForUpdate(ctx context.Context, userID, planID uuid.UUID) (*domain.SchedulePlan, error) {
	return c.next.GetForUpdate(ctx, userID, planID)
}

// GetLatest implements store.PlanStore.
func (c *PlanStore) GetLatest(ctx context.Context, userID uuid.UUID) (*domain.SchedulePlan, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)
	key := latestKey(userID)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var plan domain.SchedulePlan
		if jsonErr := json.Unmarshal(raw, &plan); jsonErr == nil {
			log.Debug("plan cache hit", slog.String("user_id", userID.String()))
			return &plan, nil
		}
		log.Warn("discarding undecodable cached plan", slog.String("user_id", userID.String()))
	case errors.Is(err, goredis.Nil):
	default:
		log.Warn("plan cache read failed", slog.String("error", redact.Error(err)))
	}

	plan, err := c.next.GetLatest(ctx, userID)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(plan); err == nil {
		if err := c.client.Set(ctx, key, encoded, c.ttl).Err(); err != nil {
			log.Warn("plan cache write failed", slog.String("error", redact.Error(err)))
		}
	}
	return plan, nil
}

// WithTx implements store.PlanStore.
func (c *PlanStore) WithTx(tx *sql.Tx) store.PlanStore {
	return &PlanStore{
		next:   c.next.WithTx(tx),
		client: c.client,
		ttl:    c.ttl,
		logger: c.logger,
		inTx:   true,
	}
}
