package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/catalog-backoffice/internal/container"
	handlers "github.com/oksasatya/catalog-backoffice/internal/interface/http"
	"github.com/oksasatya/catalog-backoffice/internal/interface/middleware"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
)

// AuthModule mounts the session endpoints.
// Public: POST /api/login, POST /api/refresh
// Protected: POST /api/logout
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Sessions middleware.SessionLookup
	JWT      *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, sessions middleware.SessionLookup, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, Sessions: sessions, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()
	loginLimiter := middleware.RateLimit(rdb, middleware.Limit{Scope: "login", Max: 10, Window: time.Minute, Key: middleware.KeyByIP()})
	refreshLimiter := middleware.RateLimit(rdb, middleware.Limit{Scope: "refresh", Max: 60, Window: time.Minute, Key: middleware.KeyByIP()})

	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Sessions, m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}

func (m *AuthModule) Name() string { return "auth" }
