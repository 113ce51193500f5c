package reminder

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	id "mandate/pkg/domain"
)

const passLockKeyPrefix = "reminder:pass:"

// releaseScript deletes the lock only if the caller still owns it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisPassLock is a per-org mutex with expiry. The TTL bounds how long a
// crashed holder blocks other replicas.
type RedisPassLock struct {
	client *redis.Client
}

func NewRedisPassLock(client *redis.Client) *RedisPassLock {
	return &RedisPassLock{client: client}
}

func (l *RedisPassLock) Acquire(ctx context.Context, orgID id.OrgID, ttl time.Duration) (string, bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, passLockKeyPrefix+orgID.String(), token, ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

func (l *RedisPassLock) Release(ctx context.Context, orgID id.OrgID, token string) error {
	return releaseScript.Run(ctx, l.client, []string{passLockKeyPrefix + orgID.String()}, token).Err()
}
