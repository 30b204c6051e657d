package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/catalog-backoffice/pkg/response"
)

// Registry collects modules and the /api middleware chain, then mounts them
// in one pass.
type Registry struct {
	Engine *gin.Engine
	API    *gin.RouterGroup
	Logger *logrus.Logger

	middlewares []gin.HandlerFunc
	modules     []Module
	names       map[string]bool
}

func NewRegistry(engine *gin.Engine, logger *logrus.Logger) *Registry {
	return &Registry{Engine: engine, API: engine.Group("/api"), Logger: logger, names: map[string]bool{}}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

// Add queues mod. A second module with the same name is ignored.
func (r *Registry) Add(mod Module) {
	if r.names[mod.Name()] {
		return
	}
	r.names[mod.Name()] = true
	r.modules = append(r.modules, mod)
}

// RegisterAll mounts /healthz, the JSON 404 fallback and every module.
func (r *Registry) RegisterAll() {
	r.Engine.GET("/healthz", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "OK")
	})
	r.Engine.NoRoute(func(c *gin.Context) {
		response.Error(c, http.StatusNotFound, "route not found", nil)
	})
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
		if r.Logger != nil {
			r.Logger.WithField("module", m.Name()).Debug("module registered")
		}
	}
}
