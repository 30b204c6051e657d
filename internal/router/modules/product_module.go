package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/catalog-backoffice/internal/interface/http"
	"github.com/oksasatya/catalog-backoffice/internal/interface/middleware"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
)

type ProductModule struct {
	Handler  *handlers.ProductHandler
	Sessions middleware.SessionLookup
	JWT      *helpers.JWTManager
}

func NewProductModule(h *handlers.ProductHandler, sessions middleware.SessionLookup, jwt *helpers.JWTManager) *ProductModule {
	return &ProductModule{Handler: h, Sessions: sessions, JWT: jwt}
}

func (m *ProductModule) Register(rg *gin.RouterGroup) {
	g := protected(rg, "/products", m.Sessions, m.JWT)
	g.POST("", m.Handler.Create)
	g.GET("/:id", m.Handler.GetOne)
	updateRoutes(g, "/:id", m.Handler.Update)
	g.DELETE("/:id", m.Handler.Delete)
}

func (m *ProductModule) Name() string { return "products" }
