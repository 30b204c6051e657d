package application

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
)

func SessionKey(userID int64) string {
	return "user:session:" + strconv.FormatInt(userID, 10)
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// SessionStore keeps one session hash per user in redis.
// The hash role field is what the auth middleware trusts.
type SessionStore struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{Redis: rdb, TTL: ttl}
}

func (s *SessionStore) Enabled() bool { return s != nil && s.Redis != nil }

func (s *SessionStore) Put(ctx context.Context, u *entity.User, sid string) error {
	if !s.Enabled() {
		return nil
	}
	key := SessionKey(u.ID)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    u.ID,
		"email":      u.Email,
		"name":       u.Name,
		"role":       string(u.Role),
		"sid":        sid,
		"created_at": nowRFC3339(),
	})
	pipe.Expire(ctx, key, s.TTL)
	_, err := pipe.Exec(ctx)
	return err
}

// Get returns the session hash; an empty map means no session.
func (s *SessionStore) Get(ctx context.Context, userID int64) (map[string]string, error) {
	if !s.Enabled() {
		return nil, nil
	}
	return s.Redis.HGetAll(ctx, SessionKey(userID)).Result()
}

// Rotate replaces the session id, keeping the remaining fields.
func (s *SessionStore) Rotate(ctx context.Context, userID int64, sid string) error {
	if !s.Enabled() {
		return nil
	}
	key := SessionKey(userID)
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, map[string]any{"sid": sid, "updated_at": nowRFC3339()})
	pipe.Expire(ctx, key, s.TTL)
	_, err := pipe.Exec(ctx)
	return err
}

// refreshScript sets fields on the session hash only while it still exists.
var refreshScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
  return 0
end
redis.call("HSET", KEYS[1], unpack(ARGV))
return 1
`)

// Refresh copies profile fields into a live session without extending its TTL.
func (s *SessionStore) Refresh(ctx context.Context, u *entity.User) error {
	if !s.Enabled() {
		return nil
	}
	return refreshScript.Run(ctx, s.Redis, []string{SessionKey(u.ID)},
		"email", u.Email,
		"name", u.Name,
		"role", string(u.Role),
		"updated_at", nowRFC3339(),
	).Err()
}

func (s *SessionStore) Delete(ctx context.Context, userID int64) error {
	if !s.Enabled() {
		return nil
	}
	return s.Redis.Del(ctx, SessionKey(userID)).Err()
}
