// Package session keeps per-conversation state in Redis for transports that
// cannot carry the conversation context themselves.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lueurxax/seva-desk/internal/core/domain"
	"github.com/lueurxax/seva-desk/internal/platform/config"
)

const (
	contextKeyPrefix  = "seva:ctx:"
	defaultSessionTTL = 30 * time.Minute

	dialTimeout  = 5 * time.Second
	readTimeout  = 3 * time.Second
	writeTimeout = 3 * time.Second
	poolSize     = 10
	minIdleConns = 2
)

// NewClient creates a Redis client from settings.
func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		PoolSize:     poolSize,
		MinIdleConns: minIdleConns,
	})
}

// RedisStore stores conversation contexts as JSON values that expire after
// a period of silence.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *zerolog.Logger
}

// NewRedisStore creates a context store on top of client.
func NewRedisStore(client *redis.Client, ttl time.Duration, logger *zerolog.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}

	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}

	return &RedisStore{client: client, ttl: ttl, logger: logger}
}

// GetContext returns the stored context, or nil when the conversation has none.
// A value that no longer decodes is discarded and treated as absent.
func (s *RedisStore) GetContext(ctx context.Context, key string) (*domain.ConversationContext, error) {
	raw, err := s.client.Get(ctx, contextKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("get conversation context: %w", err)
	}

	var convCtx domain.ConversationContext
	if err := json.Unmarshal(raw, &convCtx); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("dropping undecodable conversation context")

		if delErr := s.DeleteContext(ctx, key); delErr != nil {
			return nil, delErr
		}

		return nil, nil
	}

	return &convCtx, nil
}

// PutContext stores convCtx and refreshes its expiry. A nil context deletes the key.
func (s *RedisStore) PutContext(ctx context.Context, key string, convCtx *domain.ConversationContext) error {
	if convCtx == nil {
		return s.DeleteContext(ctx, key)
	}

	raw, err := json.Marshal(convCtx)
	if err != nil {
		return fmt.Errorf("encode conversation context: %w", err)
	}

	if err := s.client.Set(ctx, contextKeyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("put conversation context: %w", err)
	}

	return nil
}

// DeleteContext removes the stored context.
func (s *RedisStore) DeleteContext(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, contextKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("delete conversation context: %w", err)
	}

	return nil
}
