package modules

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/bloggramm/bloggramm/config"
	"github.com/bloggramm/bloggramm/internal/application"
	handlers "github.com/bloggramm/bloggramm/internal/interface/http"
	"github.com/bloggramm/bloggramm/internal/interface/middleware"
	"github.com/bloggramm/bloggramm/pkg/helpers"
)

// AuthModule registers the login and register forms plus logout and the
// gated login-history page.
type AuthModule struct {
	Handler  *handlers.AuthHandler
	Sessions application.SessionStore
	JWT      *helpers.JWTManager
	RDB      *redis.Client
	Cfg      *config.Config
}

func NewAuthModule(h *handlers.AuthHandler, sessions application.SessionStore, jwt *helpers.JWTManager, rdb *redis.Client, cfg *config.Config) *AuthModule {
	return &AuthModule{Handler: h, Sessions: sessions, JWT: jwt, RDB: rdb, Cfg: cfg}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	// Credential submissions carry an IP-based rate limit.
	limiter := middleware.RateLimit(m.RDB, m.Cfg.AuthRateLimit, m.Cfg.AuthRateWindow, middleware.KeyByIPAndPath(), middleware.AllowPrivateIP())

	rg.GET("/login", m.Handler.ShowLogin)
	rg.POST("/login", limiter, m.Handler.Login)
	rg.GET("/register", m.Handler.ShowRegister)
	rg.POST("/register", limiter, m.Handler.Register)
	rg.GET("/logout", m.Handler.Logout)

	gated := rg.Group("/")
	gated.Use(middleware.EnsureLogin(m.Sessions, m.JWT))
	{
		gated.GET("/userHistory", m.Handler.UserHistory)
	}
}
