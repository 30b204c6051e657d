package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/catalog-backoffice/internal/domain/entity"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
)

type fakeSessions struct {
	enabled bool
	data    map[int64]map[string]string
	err     error
}

func (f *fakeSessions) Enabled() bool { return f.enabled }

func (f *fakeSessions) Get(_ context.Context, id int64) (map[string]string, error) {
	return f.data[id], f.err
}

func init() { gin.SetMode(gin.TestMode) }

func newJWT() *helpers.JWTManager {
	return helpers.NewJWTManager("a", "r", time.Minute, time.Hour)
}

func authRouter(sessions SessionLookup, jwt *helpers.JWTManager) *gin.Engine {
	r := gin.New()
	r.Use(RequestIDMiddleware(), Auth(sessions, jwt))
	r.GET("/whoami", func(c *gin.Context) {
		caller := CallerFrom(c)
		c.JSON(http.StatusOK, gin.H{"id": caller.UserID, "role": caller.Role, "uid": c.GetString(CtxUserIDKey)})
	})
	return r
}

func TestAuthBearerAndSessionRole(t *testing.T) {
	jwt := newJWT()
	tok, _, err := jwt.GenerateAccessToken(42, "admin", "sid-1")
	require.NoError(t, err)
	sessions := &fakeSessions{enabled: true, data: map[int64]map[string]string{42: {"role": "member", "sid": "sid-1"}}}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	authRouter(sessions, jwt).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["id"])
	assert.Equal(t, string(entity.RoleMember), body["role"], "session role wins over the claim")
	assert.Equal(t, "42", body["uid"])
}

func TestAuthCookieWithoutSessionStore(t *testing.T) {
	jwt := newJWT()
	tok, _, _ := jwt.GenerateAccessToken(7, "admin", "sid")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: tok})
	authRouter(&fakeSessions{}, jwt).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"admin"`)
}

func TestAuthRejects(t *testing.T) {
	jwt := newJWT()
	tok, _, _ := jwt.GenerateAccessToken(42, "member", "sid")

	cases := map[string]struct {
		header   string
		sessions SessionLookup
	}{
		"missing token":   {sessions: &fakeSessions{}},
		"garbage token":   {header: "Bearer nope", sessions: &fakeSessions{}},
		"no session":      {header: "Bearer " + tok, sessions: &fakeSessions{enabled: true}},
		"session failure": {header: "Bearer " + tok, sessions: &fakeSessions{enabled: true, err: errors.New("down")}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			authRouter(tc.sessions, jwt).ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"data":null`)
			assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
		})
	}
}

func TestRequestIDReusesValidHeader(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	const id = "7d444840-9dc0-11d1-b245-5ffdce74fad2"
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, id)
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid")
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Body.String())
}

func TestRealIPAndPrivateOnly(t *testing.T) {
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(nil))
	r.Use(RealIP(), PrivateOnly())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.1.2.3:5000"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "10.1.2.3", w.Body.String())

	// Forwarding headers from an untrusted public peer are ignored.
	for header, value := range map[string]string{
		"X-Forwarded-For":  "127.0.0.1",
		"X-Real-IP":        "10.0.0.1",
		"CF-Connecting-IP": "127.0.0.1",
	} {
		w = httptest.NewRecorder()
		req = httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		req.Header.Set(header, value)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code, header)
	}
}

func TestRealIPHonorsTrustedProxy(t *testing.T) {
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies([]string{"192.0.2.0/24"}))
	r.Use(RealIP())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(CtxRealIPKey)) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:443"
	req.Header.Set("X-Forwarded-For", "198.51.100.4")
	r.ServeHTTP(w, req)
	assert.Equal(t, "198.51.100.4", w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	req.Header.Set("X-Forwarded-For", "198.51.100.4")
	r.ServeHTTP(w, req)
	assert.Equal(t, "203.0.113.7", w.Body.String())
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("12345678")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestRateLimitKeysAreScoped(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Set(CtxRealIPKey, "10.0.0.7")

	login := Limit{Scope: "login", Key: KeyByIP()}
	api := Limit{Scope: "api", Key: KeyByIP()}
	assert.Equal(t, "rl:login:ip:10.0.0.7", login.key(c))
	assert.NotEqual(t, login.key(c), api.key(c))

	byUser := Limit{Scope: "api", Key: KeyByUserID()}
	assert.Equal(t, "rl:api:anon:10.0.0.7", byUser.key(c))
	c.Set(CtxUserIDKey, "42")
	assert.Equal(t, "rl:api:user:42", byUser.key(c))
}

func TestRateLimitWindowHeaders(t *testing.T) {
	remaining, reset := window(10, 3, 1500*time.Millisecond)
	assert.Equal(t, 7, remaining)
	assert.Equal(t, 2, reset)

	remaining, reset = window(10, 12, 200*time.Millisecond)
	assert.Equal(t, 0, remaining)
	assert.Equal(t, 1, reset)

	_, reset = window(10, 1, -1)
	assert.Equal(t, 0, reset)
}

func TestRateLimitWithoutRedisPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(nil, Limit{Scope: "x", Max: 1, Window: time.Minute, Key: KeyByIP()}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}

func TestAllowPrivateIP(t *testing.T) {
	allow := AllowPrivateIP()
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	c.Set(CtxRealIPKey, "192.168.1.20")
	assert.True(t, allow(c))
	c.Set(CtxRealIPKey, "8.8.4.4")
	assert.False(t, allow(c))
}
