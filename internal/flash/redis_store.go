package flash

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	appErr "github.com/staffdesk/admin/pkg/errors"
	"github.com/staffdesk/admin/pkg/logger"
	"go.uber.org/zap"
)

const (
	sessionCookieName = "staffdesk_sid"
	redisKeyPrefix    = "flash:"
)

// ListClient is the subset of *redis.Client used by RedisStore.
type ListClient interface {
	RPush(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	LRange(ctx context.Context, key string, start, stop int64) *redis.StringSliceCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisStore keeps pending messages server-side in a Redis list keyed by an
// opaque session id cookie. Lists expire after ttl when never popped.
type RedisStore struct {
	client ListClient
	ttl    time.Duration
	Secure bool
}

func NewRedisStore(client ListClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

var _ Store = (*RedisStore)(nil)

func (s *RedisStore) Add(w http.ResponseWriter, r *http.Request, msg Message) error {
	sid, ok := sessionID(r)
	if !ok {
		sid = uuid.NewString()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookieName,
			Value:    sid,
			Path:     "/",
			HttpOnly: true,
			Secure:   s.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	b, err := json.Marshal(msg)
	if err != nil {
		return appErr.Wrap(err, appErr.CodeInternal, "encode flash message failed")
	}
	key := redisKeyPrefix + sid
	if err := s.client.RPush(r.Context(), key, b).Err(); err != nil {
		return appErr.Wrap(err, appErr.CodeUnavailable, "push flash message failed")
	}
	if err := s.client.Expire(r.Context(), key, s.ttl).Err(); err != nil {
		return appErr.Wrap(err, appErr.CodeUnavailable, "expire flash messages failed")
	}
	return nil
}

func (s *RedisStore) Pop(w http.ResponseWriter, r *http.Request) ([]Message, error) {
	sid, ok := sessionID(r)
	if !ok {
		return nil, nil
	}
	key := redisKeyPrefix + sid
	raw, err := s.client.LRange(r.Context(), key, 0, -1).Result()
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeUnavailable, "read flash messages failed")
	}
	if len(raw) == 0 {
		return nil, nil
	}
	if err := s.client.Del(r.Context(), key).Err(); err != nil {
		return nil, appErr.Wrap(err, appErr.CodeUnavailable, "clear flash messages failed")
	}

	out := make([]Message, 0, len(raw))
	for _, item := range raw {
		var m Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			logger.L().Warn("skipping malformed flash message", zap.String("sid", sid), zap.Error(err))
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

// sessionID returns the session cookie value when it is a well-formed UUID.
func sessionID(r *http.Request) (string, bool) {
	c, err := r.Cookie(sessionCookieName)
	if err != nil {
		return "", false
	}
	id, err := uuid.Parse(c.Value)
	if err != nil {
		return "", false
	}
	return id.String(), true
}
