package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/catalog-backoffice/internal/interface/http"
	"github.com/oksasatya/catalog-backoffice/internal/interface/middleware"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
)

type CategoryModule struct {
	Handler  *handlers.CategoryHandler
	Sessions middleware.SessionLookup
	JWT      *helpers.JWTManager
}

func NewCategoryModule(h *handlers.CategoryHandler, sessions middleware.SessionLookup, jwt *helpers.JWTManager) *CategoryModule {
	return &CategoryModule{Handler: h, Sessions: sessions, JWT: jwt}
}

func (m *CategoryModule) Register(rg *gin.RouterGroup) {
	g := protected(rg, "/categories", m.Sessions, m.JWT)
	g.POST("", m.Handler.Create)
	g.GET("/:id", m.Handler.GetOne)
	updateRoutes(g, "/:id", m.Handler.Update)
	g.DELETE("/:id", m.Handler.Delete)
}

func (m *CategoryModule) Name() string { return "categories" }
