package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/catalog-backoffice/internal/application"
	"github.com/oksasatya/catalog-backoffice/internal/domain/apperr"
	"github.com/oksasatya/catalog-backoffice/internal/interface/middleware"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
)

func newAuthServer(t *testing.T) (*gin.Engine, *mockUserRepo) {
	t.Helper()
	repo := &mockUserRepo{}
	jwt := helpers.NewJWTManager("access", "refresh", time.Minute, time.Hour)
	h := NewAuthHandler(application.NewAuthService(repo, jwt, nil, nil), helpers.NewCookie("localhost", false), nil)

	r := gin.New()
	r.POST("/api/login", h.Login)
	r.POST("/api/refresh", h.Refresh)
	r.POST("/api/logout", middleware.Auth(nil, jwt), h.Logout)
	return r, repo
}

func TestLoginSetsCookiesAndReturnsTokens(t *testing.T) {
	r, repo := newAuthServer(t)
	u := budi()
	hash, err := helpers.HashPassword("password123")
	require.NoError(t, err)
	u.Password = hash
	repo.On("GetByEmail", mock.Anything, "budi@example.com").Return(u, nil)
	repo.On("GetByID", mock.Anything, int64(42)).Return(u, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonReq(http.MethodPost, "/api/login", `{"email":"budi@example.com","password":"password123"}`))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var env struct {
		Data struct {
			UserID       int64  `json:"user_id"`
			Role         string `json:"role"`
			AccessToken  string `json:"access_token"`
			RefreshToken string `json:"refresh_token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, int64(42), env.Data.UserID)
	assert.Equal(t, "member", env.Data.Role)
	assert.NotEmpty(t, env.Data.AccessToken)

	names := map[string]bool{}
	for _, c := range w.Result().Cookies() {
		names[c.Name] = c.HttpOnly
	}
	assert.Equal(t, map[string]bool{"access_token": true, "refresh_token": true}, names)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonReq(http.MethodPost, "/api/refresh", `{"refresh_token":"`+env.Data.RefreshToken+`"}`))
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.Header.Set("Authorization", "Bearer "+env.Data.AccessToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginFailures(t *testing.T) {
	r, repo := newAuthServer(t)
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, apperr.NotFound("user not found"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonReq(http.MethodPost, "/api/login", `{"email":"ghost@example.com","password":"password123"}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid credentials")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonReq(http.MethodPost, "/api/login", `{"email":"not-an-email"}`))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"password":"is required"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, jsonReq(http.MethodPost, "/api/refresh", `{}`))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
