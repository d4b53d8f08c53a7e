package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still holds our token, so an
// expired lock re-acquired by another instance is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// Acquire attempts to take the named lock for ttl.
// Returns the token needed to release it, or "" if the lock is already held.
func (s *LockStore) Acquire(ctx context.Context, name string, ttl time.Duration) (string, error) {
	token := uuid.New().String()

	ok, err := s.client.SetNX(ctx, lockKey(name), token, ttl).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

// Release frees the named lock if token still owns it.
func (s *LockStore) Release(ctx context.Context, name, token string) error {
	return releaseScript.Run(ctx, s.client, []string{lockKey(name)}, token).Err()
}

func lockKey(name string) string {
	return "lock:" + name
}
