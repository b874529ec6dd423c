package database

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"smartpark/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each document as a plain string value.
type RedisStore struct {
	conn   *redis.Client
	prefix string
}

func NewRedisStore(config utils.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis failed: %w", err)
	}

	return &RedisStore{conn: client, prefix: config.KeyPrefix}, nil
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	body, err := s.conn.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", key, err)
	}
	return body, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, body []byte) error {
	if err := s.conn.Set(ctx, s.prefix+key, body, 0).Err(); err != nil {
		if isRedisOOM(err) {
			return fmt.Errorf("put document %s: %w", key, ErrQuotaExceeded)
		}
		return fmt.Errorf("put document %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.conn.Ping(ctx).Err()
}

func (s *RedisStore) Close() error {
	return s.conn.Close()
}

// maxmemory with a noeviction policy answers writes with an OOM error.
func isRedisOOM(err error) bool {
	var redisErr redis.Error
	if errors.As(err, &redisErr) {
		return strings.HasPrefix(redisErr.Error(), "OOM")
	}
	return false
}
