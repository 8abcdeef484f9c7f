package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"styledecor/models"
	"styledecor/utils"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TokenCache remembers which local user a verified token resolved to.
type TokenCache interface {
	Get(ctx context.Context, token string) (*CachedIdentity, error)
	Set(ctx context.Context, token string, entry CachedIdentity, ttl time.Duration) error
	Delete(ctx context.Context, token string) error
}

// CachedIdentity is what the cache stores for a token. The user is always
// reloaded on a hit so role and approval changes apply immediately.
type CachedIdentity struct {
	UserID    primitive.ObjectID `json:"userId"`
	AuthType  string             `json:"authType"`
	ExpiresAt time.Time          `json:"expiresAt"`
}

// RedisTokenCache stores entries keyed by the token hash; raw tokens never reach Redis.
type RedisTokenCache struct {
	Client *redis.Client
}

func NewRedisTokenCache(client *redis.Client) *RedisTokenCache {
	return &RedisTokenCache{Client: client}
}

func cacheKey(token string) string {
	return utils.AuthCachePrefix + utils.HashToken(token)
}

func (c *RedisTokenCache) Get(ctx context.Context, token string) (*CachedIdentity, error) {
	raw, err := c.Client.Get(ctx, cacheKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entry CachedIdentity
	if err := json.Unmarshal(raw, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (c *RedisTokenCache) Set(ctx context.Context, token string, entry CachedIdentity, ttl time.Duration) error {
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, cacheKey(token), raw, ttl).Err()
}

func (c *RedisTokenCache) Delete(ctx context.Context, token string) error {
	return c.Client.Del(ctx, cacheKey(token)).Err()
}

// cacheTTL caps the entry lifetime at the credential's own expiry.
func cacheTTL(identity *models.Identity, now time.Time) time.Duration {
	if identity.ExpiresAt.IsZero() {
		return 0
	}
	ttl := identity.ExpiresAt.Sub(now)
	if ttl > utils.AuthCacheTTL {
		ttl = utils.AuthCacheTTL
	}
	return ttl
}
