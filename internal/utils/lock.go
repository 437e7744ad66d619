package utils

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Locker serializes work on a key. Lock blocks until the key is free or
// ctx is done; the returned func releases it and is safe to call twice.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// NewLocker returns a Redis-backed locker when rdb is set and an
// in-process one otherwise.
func NewLocker(rdb *redis.Client, ttl time.Duration) Locker {
	if rdb == nil {
		return NewLocalLocker()
	}
	return &RedisLocker{rdb: rdb, ttl: ttl, retry: 50 * time.Millisecond}
}

// LocalLocker is a keyed mutex for single-process deployments and tests.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]chan struct{}
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]chan struct{})}
}

func (l *LocalLocker) Lock(ctx context.Context, key string) (func(), error) {
	for {
		l.mu.Lock()
		wait, busy := l.held[key]
		if !busy {
			done := make(chan struct{})
			l.held[key] = done
			l.mu.Unlock()
			var once sync.Once
			return func() {
				once.Do(func() {
					l.mu.Lock()
					delete(l.held, key)
					l.mu.Unlock()
					close(done)
				})
			}, nil
		}
		l.mu.Unlock()
		select {
		case <-wait:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// compare-and-delete so a holder never frees a lock that expired and was
// taken by someone else
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisLocker implements Locker with SET NX PX, usable across replicas.
type RedisLocker struct {
	rdb   *redis.Client
	ttl   time.Duration
	retry time.Duration
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	for {
		ok, err := l.rdb.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			var once sync.Once
			return func() {
				once.Do(func() {
					_ = unlockScript.Run(context.Background(), l.rdb, []string{key}, token).Err()
				})
			}, nil
		}
		select {
		case <-time.After(l.retry):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
