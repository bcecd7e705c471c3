package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bountyhq/platform-api/internal/core/domain"
	"github.com/bountyhq/platform-api/internal/core/ports"
)

const defaultProfileTTL = time.Minute

// ProfileCache is a read-through cache in front of the profile store,
// bounding the per-request Mongo lookup done by the context builder.
// Cache failures degrade to direct store reads; membership checks are
// never cached so admin revocations take effect immediately.
type ProfileCache struct {
	client *redis.Client
	inner  ports.ProfileStore
	ttl    time.Duration
	log    zerolog.Logger
}

func NewProfileCache(client *redis.Client, inner ports.ProfileStore, ttl time.Duration, log zerolog.Logger) *ProfileCache {
	if ttl <= 0 {
		ttl = defaultProfileTTL
	}
	return &ProfileCache{client: client, inner: inner, ttl: ttl, log: log}
}

func (c *ProfileCache) GetProfile(ctx context.Context, userID string) (domain.Profile, error) {
	key := c.key(userID)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var p domain.Profile
		if json.Unmarshal(raw, &p) == nil {
			return p, nil
		}
	} else if err != redis.Nil {
		c.log.Warn().Err(err).Msg("profile cache read failed")
	}

	profile, err := c.inner.GetProfile(ctx, userID)
	if err != nil {
		return domain.Profile{}, err
	}

	if raw, err := json.Marshal(profile); err == nil {
		if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
			c.log.Warn().Err(err).Msg("profile cache write failed")
		}
	}
	return profile, nil
}

// IsOrgAdmin delegates straight to the store.
func (c *ProfileCache) IsOrgAdmin(ctx context.Context, userID, orgID string) (bool, error) {
	return c.inner.IsOrgAdmin(ctx, userID, orgID)
}

// Invalidate drops the cached profile for userID, used after profile
// mutations such as verification.
func (c *ProfileCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Del(ctx, c.key(userID)).Err(); err != nil {
		c.log.Warn().Err(err).Msg("profile cache invalidation failed")
	}
}

func (c *ProfileCache) key(userID string) string {
	return fmt.Sprintf("profile:%s", userID)
}
