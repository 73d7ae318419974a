package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/bloggramm/bloggramm/internal/application"
	handlers "github.com/bloggramm/bloggramm/internal/interface/http"
	"github.com/bloggramm/bloggramm/internal/interface/middleware"
	"github.com/bloggramm/bloggramm/pkg/helpers"
)

// AdminModule registers the management pages. Every route sits behind the
// login gate.
type AdminModule struct {
	Handler  *handlers.AdminHandler
	Sessions application.SessionStore
	JWT      *helpers.JWTManager
}

func NewAdminModule(h *handlers.AdminHandler, sessions application.SessionStore, jwt *helpers.JWTManager) *AdminModule {
	return &AdminModule{Handler: h, Sessions: sessions, JWT: jwt}
}

func (m *AdminModule) Register(rg *gin.RouterGroup) {
	gated := rg.Group("/")
	gated.Use(middleware.EnsureLogin(m.Sessions, m.JWT))
	{
		gated.GET("/posts", m.Handler.ListPosts)
		gated.GET("/posts/add", m.Handler.ShowAddPost)
		gated.POST("/posts/add", m.Handler.AddPost)
		gated.GET("/posts/:id", m.Handler.GetPostJSON)
		gated.GET("/posts/delete/:id", m.Handler.DeletePost)

		gated.GET("/categories", m.Handler.ListCategories)
		gated.GET("/categories/add", m.Handler.ShowAddCategory)
		gated.POST("/categories/add", m.Handler.AddCategory)
		gated.GET("/categories/delete/:id", m.Handler.DeleteCategory)
	}
}
