package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/catalog-backoffice/pkg/response"
)

// ipFromCtx prefers the address resolved by RealIP.
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString(CtxRealIPKey); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

// KeyFunc names the bucket a request counts against.
type KeyFunc func(c *gin.Context) string

// AllowFunc returns true to bypass the limit.
type AllowFunc func(*gin.Context) bool

func KeyByIP() KeyFunc {
	return func(c *gin.Context) string { return "ip:" + ipFromCtx(c) }
}

// KeyByUserID falls back to the client IP for anonymous requests.
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		if uid := c.GetString(CtxUserIDKey); uid != "" {
			return "user:" + uid
		}
		return "anon:" + ipFromCtx(c)
	}
}

// Limit is a fixed window of Max requests per Window. Scope keeps the
// counters of different limiters apart.
type Limit struct {
	Scope  string
	Max    int
	Window time.Duration
	Key    KeyFunc
	Allow  AllowFunc
}

func (l Limit) key(c *gin.Context) string {
	return "rl:" + l.Scope + ":" + l.Key(c)
}

// hitScript returns {count, pttl} after counting one hit.
var hitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

// RateLimit enforces l with a redis counter. It fails open when redis is
// missing or errors, and never counts OPTIONS.
func RateLimit(rdb *redis.Client, l Limit) gin.HandlerFunc {
	if rdb == nil || l.Max <= 0 || l.Window <= 0 || l.Key == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || (l.Allow != nil && l.Allow(c)) {
			c.Next()
			return
		}
		res, err := hitScript.Run(c.Request.Context(), rdb, []string{l.key(c)}, l.Window.Milliseconds()).Int64Slice()
		if err != nil || len(res) != 2 {
			c.Next()
			return
		}
		remaining, reset := window(l.Max, res[0], time.Duration(res[1])*time.Millisecond)
		c.Header("X-RateLimit-Limit", strconv.Itoa(l.Max))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.Itoa(reset))
		if res[0] > int64(l.Max) {
			c.Header("Retry-After", strconv.Itoa(reset))
			response.Error(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}

// window returns the remaining budget and the reset in whole seconds,
// rounded up so Retry-After is never 0 while blocked.
func window(max int, count int64, ttl time.Duration) (int, int) {
	remaining := max - int(count)
	if remaining < 0 {
		remaining = 0
	}
	reset := 0
	if ttl > 0 {
		reset = int((ttl + time.Second - 1) / time.Second)
	}
	return remaining, reset
}
