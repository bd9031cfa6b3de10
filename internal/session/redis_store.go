package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jafarshop/myorders/internal/config"
	"github.com/jafarshop/myorders/pkg/errors"
)

const (
	erpTokenField  = "session_id"
	maxSaveRetries = 3
)

// RedisStore implements Store on the Redis instance shared with the session bootstrap
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore connects to Redis and verifies the connection
func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStoreWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisStoreWithClient creates a store with an existing Redis client
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "session:"
	}
	return &RedisStore{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Get loads a session, returning ErrNotFound when the key is unknown or expired
func (s *RedisStore) Get(ctx context.Context, key string) (*Session, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, &errors.ErrNotFound{Resource: "session", ID: key}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	sess.Key = key
	return &sess, nil
}

// Save rewrites the ERP token inside the stored session blob. Keys owned by
// the session bootstrap are left untouched and the expiry is kept.
func (s *RedisStore) Save(ctx context.Context, sess *Session) error {
	key := s.keyPrefix + sess.Key

	txf := func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return &errors.ErrNotFound{Resource: "session", ID: sess.Key}
		}
		if err != nil {
			return fmt.Errorf("failed to load session: %w", err)
		}

		fields := map[string]json.RawMessage{}
		if err := json.Unmarshal(raw, &fields); err != nil {
			return fmt.Errorf("failed to decode session: %w", err)
		}
		token, err := json.Marshal(sess.ERPToken)
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}
		fields[erpTokenField] = token

		updated, err := json.Marshal(fields)
		if err != nil {
			return fmt.Errorf("failed to encode session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetArgs(ctx, key, updated, redis.SetArgs{KeepTTL: true})
			return nil
		})
		if err != nil && err != redis.TxFailedErr {
			return fmt.Errorf("failed to save session: %w", err)
		}
		return err
	}

	for i := 0; i < maxSaveRetries; i++ {
		if err := s.client.Watch(ctx, txf, key); err != redis.TxFailedErr {
			return err
		}
	}
	return fmt.Errorf("failed to save session: %w", redis.TxFailedErr)
}

// Close closes the Redis client
func (s *RedisStore) Close() error {
	return s.client.Close()
}

var _ Store = (*RedisStore)(nil)
