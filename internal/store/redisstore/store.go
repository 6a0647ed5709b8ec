package redisstore

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Store struct {
	rdb *redis.Client
}

func New(addr, password string, db int) *Store {
	return &Store{rdb: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

func (s *Store) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.rdb.Close()
}

func captchaKey(email string) string { return "captcha:" + email }
func resetKey(email string) string   { return "pwreset:" + email }

func (s *Store) SetCaptcha(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.rdb.Set(ctx, captchaKey(email), code, ttl).Err()
}

// GetCaptcha returns redis.Nil when the code expired or was never sent.
func (s *Store) GetCaptcha(ctx context.Context, email string) (string, error) {
	return s.rdb.Get(ctx, captchaKey(email)).Result()
}

func (s *Store) DeleteCaptcha(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, captchaKey(email)).Err()
}

func (s *Store) SetResetCode(ctx context.Context, email, code string, ttl time.Duration) error {
	return s.rdb.Set(ctx, resetKey(email), code, ttl).Err()
}

func (s *Store) GetResetCode(ctx context.Context, email string) (string, error) {
	return s.rdb.Get(ctx, resetKey(email)).Result()
}

func (s *Store) DeleteResetCode(ctx context.Context, email string) error {
	return s.rdb.Del(ctx, resetKey(email)).Err()
}

// The increment and the expiry run in one script so the counter can
// never exist without a TTL: a client dying between the two commands
// would otherwise leave a key that never resets.
var allowActionScript = redis.NewScript(`
local count = redis.call("INCR", KEYS[1])
if count == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return count
`)

// AllowAction is the rate-limit RPC: at most max admissions per window
// for (userID, action). Fixed window, reset aligned to first use; the
// scripted INCR keeps concurrent callers from exceeding max.
func (s *Store) AllowAction(ctx context.Context, userID uint64, action string, max int, window time.Duration) (bool, error) {
	key := fmt.Sprintf("ratelimit:%s:%d", action, userID)

	count, err := allowActionScript.Run(ctx, s.rdb, []string{key}, window.Milliseconds()).Int64()
	if err != nil {
		return false, err
	}
	return count <= int64(max), nil
}
