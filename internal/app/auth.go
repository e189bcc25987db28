package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/xinmi/exammaster/internal/models"
	"github.com/xinmi/exammaster/internal/store"
)

// Auth resolves bearer tokens to users. The users table is the system
// of record; redis, when enabled, only caches token -> user id so hot
// sessions skip the token scan. Cache failures degrade to store
// lookups, they never fail a request.
type Auth struct {
	store       store.UserStore
	redis       *redis.Client
	keyTemplate string
	cacheTTL    time.Duration
}

func NewAuth(config *Config, userStore store.UserStore) (*Auth, error) {
	a := &Auth{
		store:       userStore,
		keyTemplate: config.Auth.TokenKeyTemplate,
		cacheTTL:    time.Duration(config.Auth.CacheTTLSeconds) * time.Second,
	}

	if !config.Auth.EnableCache {
		return a, nil
	}

	opt, err := redis.ParseURL(config.Auth.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis URL: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	a.redis = client
	return a, nil
}

func (a *Auth) Close() error {
	if a.redis != nil {
		return a.redis.Close()
	}
	return nil
}

func (a *Auth) key(token string) string {
	return strings.NewReplacer("{token}", token).Replace(a.keyTemplate)
}

// ResolveToken returns the user holding token, or nil when the token is
// unknown or has been superseded by a later validation.
func (a *Auth) ResolveToken(ctx context.Context, token string) (*models.User, error) {
	if a.redis != nil {
		val, err := a.redis.Get(ctx, a.key(token)).Result()
		if err == nil {
			userID, parseErr := strconv.ParseInt(val, 10, 64)
			if parseErr == nil {
				return a.store.GetUserByID(userID)
			}
			logger.Debug.Printf("Unparseable cache entry for token, falling through: %v", parseErr)
		} else if err != redis.Nil {
			logger.Debug.Printf("Redis lookup failed, falling through to store: %v", err)
		}
	}

	user, err := a.store.GetUserByToken(token)
	if err != nil {
		return nil, err
	}

	if user != nil && a.redis != nil {
		if err := a.redis.Set(ctx, a.key(token), user.ID, a.cacheTTL).Err(); err != nil {
			logger.Debug.Printf("Failed to cache token: %v", err)
		}
	}

	return user, nil
}

// CacheToken primes the cache for a freshly issued token.
func (a *Auth) CacheToken(ctx context.Context, token string, userID int64) {
	if a.redis == nil {
		return
	}
	if err := a.redis.Set(ctx, a.key(token), userID, a.cacheTTL).Err(); err != nil {
		logger.Debug.Printf("Failed to cache token: %v", err)
	}
}

// InvalidateToken drops a superseded token from the cache.
func (a *Auth) InvalidateToken(ctx context.Context, token string) {
	if a.redis == nil {
		return
	}
	if err := a.redis.Del(ctx, a.key(token)).Err(); err != nil {
		logger.Debug.Printf("Failed to invalidate cached token: %v", err)
	}
}
