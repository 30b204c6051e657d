package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/catalog-backoffice/internal/container"
	"github.com/oksasatya/catalog-backoffice/internal/interface/middleware"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
)

// protected returns a group behind the auth middleware and the shared
// per-IP and per-user limits. Private addresses skip the per-IP limit only.
func protected(rg *gin.RouterGroup, path string, sessions middleware.SessionLookup, jwt *helpers.JWTManager) *gin.RouterGroup {
	g := rg.Group(path)
	g.Use(middleware.Auth(sessions, jwt))
	g.Use(
		middleware.RateLimit(container.GetRedis(), middleware.Limit{Scope: "api", Max: 300, Window: time.Minute, Key: middleware.KeyByIP(), Allow: middleware.AllowPrivateIP()}),
		middleware.RateLimit(container.GetRedis(), middleware.Limit{Scope: "api", Max: 120, Window: time.Minute, Key: middleware.KeyByUserID()}),
	)
	return g
}

// updateRoutes mounts the same update handler on POST, PUT and PATCH.
func updateRoutes(g *gin.RouterGroup, path string, h gin.HandlerFunc) {
	g.POST(path, h)
	g.PUT(path, h)
	g.PATCH(path, h)
}
