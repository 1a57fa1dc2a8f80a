package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// AttemptCounter compte des tentatives dans une fenêtre glissante
// (logins échoués par email)
type AttemptCounter interface {
	Attempts(ctx context.Context, key string) (int, error)
	Fail(ctx context.Context, key string, window time.Duration) error
	Reset(ctx context.Context, key string) error
}

type memAttempt struct {
	count   int
	expires time.Time
}

type MemAttemptCounter struct {
	mu   sync.Mutex
	now  func() time.Time
	hits map[string]memAttempt
}

func NewMemAttemptCounter() *MemAttemptCounter {
	return &MemAttemptCounter{now: time.Now, hits: make(map[string]memAttempt)}
}

func (m *MemAttemptCounter) Attempts(_ context.Context, key string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.hits[key]
	if !ok || !m.now().Before(a.expires) {
		delete(m.hits, key)
		return 0, nil
	}
	return a.count, nil
}

func (m *MemAttemptCounter) Fail(_ context.Context, key string, window time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a := m.hits[key]
	if !m.now().Before(a.expires) {
		a.count = 0
	}
	a.count++
	a.expires = m.now().Add(window)
	m.hits[key] = a
	return nil
}

func (m *MemAttemptCounter) Reset(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.hits, key)
	return nil
}

type RedisAttemptCounter struct {
	client *redis.Client
}

func NewRedisAttemptCounter(client *redis.Client) *RedisAttemptCounter {
	return &RedisAttemptCounter{client: client}
}

func (r *RedisAttemptCounter) Attempts(ctx context.Context, key string) (int, error) {
	n, err := r.client.Get(ctx, "attempts:"+key).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return n, err
}

func (r *RedisAttemptCounter) Fail(ctx context.Context, key string, window time.Duration) error {
	pipe := r.client.Pipeline()
	pipe.Incr(ctx, "attempts:"+key)
	pipe.Expire(ctx, "attempts:"+key, window)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *RedisAttemptCounter) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, "attempts:"+key).Err()
}
