package router

import (
	"github.com/oksasatya/catalog-backoffice/internal/application"
	"github.com/oksasatya/catalog-backoffice/internal/container"
	pginfra "github.com/oksasatya/catalog-backoffice/internal/infrastructure/postgres"
	"github.com/oksasatya/catalog-backoffice/internal/infrastructure/search"
	"github.com/oksasatya/catalog-backoffice/internal/infrastructure/storage"
	handlers "github.com/oksasatya/catalog-backoffice/internal/interface/http"
	"github.com/oksasatya/catalog-backoffice/internal/router/modules"
	"github.com/oksasatya/catalog-backoffice/pkg/helpers"
)

// ModuleDeps holds the handlers the feature modules mount.
type ModuleDeps struct {
	Sessions *application.SessionStore
	Auth     *handlers.AuthHandler
	Users    *handlers.UserHandler
	Products *handlers.ProductHandler
	Category *handlers.CategoryHandler
}

func buildSupport() *application.Support {
	cfg := container.GetConfig()
	logger := container.GetLogger()

	support := &application.Support{
		Config: cfg,
		Logger: logger,
		Cache:  application.NewSnapshotCache(container.GetRedis(), cfg.CacheTTL, logger),
		Audit:  pginfra.NewAuditRepository(container.GetPGPool()),
	}
	// Only assign live clients: a typed nil inside an interface is not nil.
	if pub := container.GetRabbitPub(); pub != nil {
		support.Publisher = pub
	}
	if es := container.GetES(); es != nil {
		support.Search = search.NewIndexer(es, logger)
	}
	if gcs := container.GetGCS(); gcs != nil && cfg.GCSBucket != "" {
		support.Assets = storage.NewGCSStore(gcs, cfg.GCSBucket, cfg.GCSPublicBaseURL)
	}
	return support
}

func buildDeps() ModuleDeps {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	support := buildSupport()
	sessions := application.NewSessionStore(container.GetRedis(), cfg.SessionTTL)
	users := pginfra.NewUserRepository(pool)

	authSvc := application.NewAuthService(users, container.GetJWT(), sessions, logger)
	userSvc := application.NewUserService(support, users, sessions)
	productSvc := application.NewProductService(support, pginfra.NewProductRepository(pool))
	categorySvc := application.NewCategoryService(support, pginfra.NewCategoryRepository(pool))

	return ModuleDeps{
		Sessions: sessions,
		Auth:     handlers.NewAuthHandler(authSvc, helpers.NewCookie(cfg.CookieDomain, cfg.CookieSecure), logger),
		Users:    handlers.NewUserHandler(userSvc, logger),
		Products: handlers.NewProductHandler(productSvc, logger),
		Category: handlers.NewCategoryHandler(categorySvc, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	deps := buildDeps()
	jwt := container.GetJWT()

	r.Add(modules.NewAuthModule(deps.Auth, deps.Sessions, jwt))
	r.Add(modules.NewUserModule(deps.Users, deps.Sessions, jwt))
	r.Add(modules.NewProductModule(deps.Products, deps.Sessions, jwt))
	r.Add(modules.NewCategoryModule(deps.Category, deps.Sessions, jwt))
	if container.GetConfig().DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
