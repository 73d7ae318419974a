package handlers

import (
	"html/template"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bloggramm/bloggramm/internal/application"
	"github.com/bloggramm/bloggramm/internal/interface/middleware"
	"github.com/bloggramm/bloggramm/pkg/helpers"
)

var scriptRe = regexp.MustCompile(`(?is)<script.*?(?:</script>|/>)`)

// TemplateFuncMap is installed on the Gin engine before templates load.
func TemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		// formatDate renders timestamps the way post lists show them.
		"formatDate": func(t time.Time) string {
			return t.Format("2006-01-02")
		},
		// safeHTML allows stored post bodies through with script tags removed.
		"safeHTML": func(s string) template.HTML {
			return template.HTML(scriptRe.ReplaceAllString(s, ""))
		},
	}
}

// Renderer carries what every page needs: the current session for the nav
// and the active-route marker.
type Renderer struct {
	Sessions application.SessionStore
	JWT      *helpers.JWTManager
}

func NewRenderer(sessions application.SessionStore, jwt *helpers.JWTManager) *Renderer {
	return &Renderer{Sessions: sessions, JWT: jwt}
}

// data merges page-specific values with the ambient view state.
func (r *Renderer) data(c *gin.Context, extra gin.H) gin.H {
	out := gin.H{
		"Session":         middleware.CurrentSession(c, r.Sessions, r.JWT),
		"ActiveRoute":     activeRoute(c.Request.URL.Path),
		"ViewingCategory": c.Query("category"),
	}
	for k, v := range extra {
		out[k] = v
	}
	return out
}

// HTML renders a page template with the ambient view state merged in.
func (r *Renderer) HTML(c *gin.Context, status int, page string, extra gin.H) {
	c.HTML(status, page, r.data(c, extra))
}

// FailPage renders the generic failure page with a 5xx status.
func (r *Renderer) FailPage(c *gin.Context, message string) {
	r.HTML(c, http.StatusInternalServerError, "500.html", gin.H{"Message": message})
}

// NotFoundPage renders the custom 404 page.
func (r *Renderer) NotFoundPage(c *gin.Context) {
	r.HTML(c, http.StatusNotFound, "404.html", nil)
}

// activeRoute reduces the path to its first segment so the nav can highlight
// the section ("/blog/12" marks "/blog").
func activeRoute(path string) string {
	trimmed := strings.TrimPrefix(path, "/")
	if i := strings.Index(trimmed, "/"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}
