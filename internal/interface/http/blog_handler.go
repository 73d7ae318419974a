package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/bloggramm/bloggramm/internal/application"
	"github.com/bloggramm/bloggramm/internal/domain/entity"
	"github.com/bloggramm/bloggramm/pkg/apperr"
)

// BlogHandler serves the public pages: home, about and the reader-facing
// blog views built from published posts only.
type BlogHandler struct {
	*Renderer
	Blog   *application.BlogService
	Logger *logrus.Logger
}

func NewBlogHandler(r *Renderer, blog *application.BlogService, logger *logrus.Logger) *BlogHandler {
	return &BlogHandler{Renderer: r, Blog: blog, Logger: logger}
}

func (h *BlogHandler) Home(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/blog")
}

func (h *BlogHandler) About(c *gin.Context) {
	h.HTML(c, http.StatusOK, "about.html", nil)
}

// BlogIndex renders the blog page: published posts (optionally narrowed to
// one category), newest first, with the most recent post shown in full. Each
// section degrades on its own; a failing posts query still shows categories
// and vice versa.
func (h *BlogHandler) BlogIndex(c *gin.Context) {
	data := gin.H{}

	posts, err := h.listPublished(c)
	if err != nil || len(posts) == 0 {
		if err != nil {
			h.Logger.WithError(err).Warn("blog index: posts query failed")
		}
		data["Message"] = "no results"
	} else {
		application.SortPostsNewestFirst(posts)
		data["Posts"] = posts
		data["Post"] = posts[0]
	}

	cats, err := h.Blog.AllCategories(c.Request.Context())
	if err != nil || len(cats) == 0 {
		if err != nil {
			h.Logger.WithError(err).Warn("blog index: categories query failed")
		}
		data["CategoriesMessage"] = "no results"
	} else {
		data["Categories"] = cats
	}

	h.HTML(c, http.StatusOK, "blog.html", data)
}

// BlogByID renders the blog page with the requested post active. The post
// list and category sidebar are assembled the same way as the index.
func (h *BlogHandler) BlogByID(c *gin.Context) {
	data := gin.H{}

	posts, err := h.listPublished(c)
	if err != nil || len(posts) == 0 {
		if err != nil {
			h.Logger.WithError(err).Warn("blog post: posts query failed")
		}
		data["Message"] = "no results"
	} else {
		application.SortPostsNewestFirst(posts)
		data["Posts"] = posts
	}

	post, err := h.Blog.PostByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindInvalidID:
			data["Message"] = "no results"
		default:
			h.Logger.WithError(err).WithField("id", c.Param("id")).Warn("blog post: lookup failed")
			data["Message"] = "no results"
		}
	} else {
		data["Post"] = post
	}

	cats, err := h.Blog.AllCategories(c.Request.Context())
	if err != nil || len(cats) == 0 {
		if err != nil {
			h.Logger.WithError(err).Warn("blog post: categories query failed")
		}
		data["CategoriesMessage"] = "no results"
	} else {
		data["Categories"] = cats
	}

	h.HTML(c, http.StatusOK, "blog.html", data)
}

func (h *BlogHandler) listPublished(c *gin.Context) ([]entity.Post, error) {
	if raw := c.Query("category"); raw != "" {
		cat, err := strconv.Atoi(raw)
		if err != nil {
			return nil, apperr.New(apperr.KindInvalidID, "invalid category")
		}
		return h.Blog.PublishedPostsByCategory(c.Request.Context(), cat)
	}
	return h.Blog.PublishedPosts(c.Request.Context())
}
