package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/bloggramm/bloggramm/internal/interface/http"
)

// BlogModule registers the public reader-facing pages.
type BlogModule struct {
	Handler *handlers.BlogHandler
}

func NewBlogModule(h *handlers.BlogHandler) *BlogModule {
	return &BlogModule{Handler: h}
}

func (m *BlogModule) Register(rg *gin.RouterGroup) {
	rg.GET("/", m.Handler.Home)
	rg.GET("/about", m.Handler.About)
	rg.GET("/blog", m.Handler.BlogIndex)
	rg.GET("/blog/:id", m.Handler.BlogByID)
}
