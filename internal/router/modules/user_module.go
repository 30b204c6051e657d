package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/catalog-backoffice/internal/interface/http"
	"github.com/oksasatya/catalog-backoffice/internal/interface/middleware"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
)

// UserModule mounts GET /api/users/:id and the update verbs on the same path.
type UserModule struct {
	Handler  *handlers.UserHandler
	Sessions middleware.SessionLookup
	JWT      *helpers.JWTManager
}

func NewUserModule(h *handlers.UserHandler, sessions middleware.SessionLookup, jwt *helpers.JWTManager) *UserModule {
	return &UserModule{Handler: h, Sessions: sessions, JWT: jwt}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	g := protected(rg, "/users", m.Sessions, m.JWT)
	g.GET("/:id", m.Handler.GetOne)
	updateRoutes(g, "/:id", m.Handler.Update)
}

func (m *UserModule) Name() string { return "users" }
