package modules

import (
	"expvar"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/catalog-backoffice/internal/container"
	"github.com/oksasatya/catalog-backoffice/internal/interface/middleware"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

// Register mounts expvar (including resource_mutations) for private networks only.
func (m *DebugModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), middleware.Limit{Scope: "debug", Max: 120, Window: time.Minute, Key: middleware.KeyByIP()})
	rg.GET("/debug/vars", middleware.PrivateOnly(), rl, gin.WrapH(expvar.Handler()))
}

func (m *DebugModule) Name() string { return "debug" }
