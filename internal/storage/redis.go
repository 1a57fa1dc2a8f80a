package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// VisitorTTL est la durée de vie de l'état d'un visiteur inactif (30 jours)
const VisitorTTL = 30 * 24 * time.Hour

const redisOpTimeout = 3 * time.Second

// ConnectRedis ouvre la connexion Redis et vérifie qu'elle répond
func ConnectRedis(addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("impossible de se connecter à Redis: %w", err)
	}
	return client, nil
}

// RedisProvider range l'état des visiteurs sous visitor:<id>:<clé>.
// Chaque écriture repousse l'expiration de la clé écrite.
type RedisProvider struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProvider(client *redis.Client, ttl time.Duration) *RedisProvider {
	if ttl <= 0 {
		ttl = VisitorTTL
	}
	return &RedisProvider{client: client, ttl: ttl}
}

func (rp *RedisProvider) Namespace(visitorID string) Storage {
	return &RedisStorage{
		client: rp.client,
		prefix: "visitor:" + visitorID + ":",
		ttl:    rp.ttl,
	}
}

func (rp *RedisProvider) Close() error {
	if rp.client != nil {
		return rp.client.Close()
	}
	return nil
}

type RedisStorage struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func (rs *RedisStorage) Get(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	v, err := rs.client.Get(ctx, rs.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (rs *RedisStorage) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	if err := rs.client.Set(ctx, rs.prefix+key, value, rs.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (rs *RedisStorage) Remove(keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	pipe := rs.client.Pipeline()
	for _, key := range keys {
		pipe.Del(ctx, rs.prefix+key)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
