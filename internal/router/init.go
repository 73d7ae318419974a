package router

import (
	"cloud.google.com/go/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bloggramm/bloggramm/config"
	"github.com/bloggramm/bloggramm/internal/application"
	pginfra "github.com/bloggramm/bloggramm/internal/infrastructure/postgres"
	"github.com/bloggramm/bloggramm/internal/infrastructure/redisdoc"
	handlers "github.com/bloggramm/bloggramm/internal/interface/http"
	"github.com/bloggramm/bloggramm/internal/router/modules"
	"github.com/bloggramm/bloggramm/pkg/helpers"
)

// Deps carries everything the modules need, wired explicitly at startup.
// There is no global container; main builds this once and hands it over.
type Deps struct {
	Cfg    *config.Config
	Logger *logrus.Logger
	PG     *pgxpool.Pool
	RDB    *redis.Client
	GCS    *storage.Client
	JWT    *helpers.JWTManager
	Pub    *helpers.RabbitPublisher
}

// InitModules builds the services and handlers from Deps and registers every
// feature module on the registry.
func InitModules(r *Registry, d Deps) {
	users := redisdoc.NewUserRepository(d.RDB)
	sessions := redisdoc.NewSessionStore(d.RDB)
	posts := pginfra.NewPostRepository(d.PG)
	categories := pginfra.NewCategoryRepository(d.PG)

	authSvc := application.NewAuthService(users, sessions, d.JWT, d.Pub, d.Logger, d.Cfg.SessionTTL)
	blogSvc := application.NewBlogService(posts, categories, d.Logger)

	renderer := handlers.NewRenderer(sessions, d.JWT)
	authHandler := handlers.NewAuthHandler(renderer, authSvc, d.Logger, d.Cfg.CookieDomain, d.Cfg.CookieSecure)
	blogHandler := handlers.NewBlogHandler(renderer, blogSvc, d.Logger)
	adminHandler := handlers.NewAdminHandler(renderer, blogSvc, d.Logger, d.GCS, d.Cfg.GCSBucket)

	r.Add(modules.NewBlogModule(blogHandler))
	r.Add(modules.NewAuthModule(authHandler, sessions, d.JWT, d.RDB, d.Cfg))
	r.Add(modules.NewAdminModule(adminHandler, sessions, d.JWT))
}
