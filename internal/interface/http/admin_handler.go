package handlers

import (
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/bloggramm/bloggramm/internal/application"
	"github.com/bloggramm/bloggramm/internal/domain/entity"
	"github.com/bloggramm/bloggramm/pkg/apperr"
	"github.com/bloggramm/bloggramm/pkg/helpers"
)

// AdminHandler serves the gated management pages: the full post list
// (drafts included), add/delete for posts and categories, and the raw
// post JSON view. Every route here sits behind the login middleware.
type AdminHandler struct {
	*Renderer
	Blog      *application.BlogService
	Logger    *logrus.Logger
	GCS       *storage.Client
	GCSBucket string
}

func NewAdminHandler(r *Renderer, blog *application.BlogService, logger *logrus.Logger, gcs *storage.Client, bucket string) *AdminHandler {
	return &AdminHandler{Renderer: r, Blog: blog, Logger: logger, GCS: gcs, GCSBucket: bucket}
}

// ListPosts shows all posts, narrowed by ?category or ?minDate when given.
// The two filters are mutually exclusive; category wins when both appear.
func (h *AdminHandler) ListPosts(c *gin.Context) {
	ctx := c.Request.Context()

	var (
		posts []entity.Post
		err   error
	)
	switch {
	case c.Query("category") != "":
		var cat int
		if cat, err = strconv.Atoi(c.Query("category")); err != nil {
			h.HTML(c, http.StatusOK, "posts.html", gin.H{"Message": "no results"})
			return
		}
		posts, err = h.Blog.PostsByCategory(ctx, cat)
	case c.Query("minDate") != "":
		var min time.Time
		if min, err = time.Parse("2006-01-02", c.Query("minDate")); err != nil {
			h.HTML(c, http.StatusOK, "posts.html", gin.H{"Message": "no results"})
			return
		}
		posts, err = h.Blog.PostsByMinDate(ctx, min)
	default:
		posts, err = h.Blog.AllPosts(ctx)
	}

	if err != nil {
		h.Logger.WithError(err).Warn("admin: post list failed")
		h.HTML(c, http.StatusOK, "posts.html", gin.H{"Message": "no results"})
		return
	}
	if len(posts) == 0 {
		h.HTML(c, http.StatusOK, "posts.html", gin.H{"Message": "no results"})
		return
	}
	h.HTML(c, http.StatusOK, "posts.html", gin.H{"Posts": posts})
}

// GetPostJSON returns a single post as JSON for the management UI.
func (h *AdminHandler) GetPostJSON(c *gin.Context) {
	post, err := h.Blog.PostByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInvalidID {
			c.JSON(http.StatusBadRequest, gin.H{"message": apperrMessage(err)})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"message": apperrMessage(err)})
		return
	}
	c.JSON(http.StatusOK, post)
}

// ShowAddPost renders the add-post form with the category dropdown. A failed
// category query still shows the form with an empty list.
func (h *AdminHandler) ShowAddPost(c *gin.Context) {
	cats, err := h.Blog.AllCategories(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Warn("admin: categories for add-post form failed")
		cats = nil
	}
	h.HTML(c, http.StatusOK, "addPost.html", gin.H{"Categories": cats})
}

// AddPost handles the multipart form. The feature image upload is best
// effort: when the relay is unconfigured or the upload fails, the post is
// still created without an image.
func (h *AdminHandler) AddPost(c *gin.Context) {
	imageURL := h.uploadFeatureImage(c)

	_, err := h.Blog.AddPost(c.Request.Context(), application.AddPostInput{
		Title:        c.PostForm("title"),
		Body:         c.PostForm("body"),
		FeatureImage: imageURL,
		Published:    c.PostForm("published"),
		Category:     c.PostForm("category"),
	})
	if err != nil {
		h.FailPage(c, "Unable to save the post")
		return
	}
	c.Redirect(http.StatusSeeOther, "/posts")
}

// DeletePost removes a post by ID. Malformed IDs are rejected before the
// store is touched.
func (h *AdminHandler) DeletePost(c *gin.Context) {
	if err := h.Blog.DeletePostByID(c.Request.Context(), c.Param("id")); err != nil {
		if apperr.KindOf(err) == apperr.KindInvalidID {
			c.String(http.StatusBadRequest, apperrMessage(err))
			return
		}
		h.FailPage(c, "Unable to Remove Post / Post not found")
		return
	}
	c.Redirect(http.StatusSeeOther, "/posts")
}

// ListCategories shows the category management page.
func (h *AdminHandler) ListCategories(c *gin.Context) {
	cats, err := h.Blog.AllCategories(c.Request.Context())
	if err != nil {
		h.Logger.WithError(err).Warn("admin: category list failed")
		h.HTML(c, http.StatusOK, "categories.html", gin.H{"Message": "no results"})
		return
	}
	if len(cats) == 0 {
		h.HTML(c, http.StatusOK, "categories.html", gin.H{"Message": "no results"})
		return
	}
	h.HTML(c, http.StatusOK, "categories.html", gin.H{"Categories": cats})
}

func (h *AdminHandler) ShowAddCategory(c *gin.Context) {
	h.HTML(c, http.StatusOK, "addCategory.html", nil)
}

func (h *AdminHandler) AddCategory(c *gin.Context) {
	label := c.PostForm("category")
	if label == "" {
		h.HTML(c, http.StatusBadRequest, "addCategory.html", gin.H{"ErrorMessage": "category name is required"})
		return
	}
	if _, err := h.Blog.AddCategory(c.Request.Context(), label); err != nil {
		h.FailPage(c, "Unable to save the category")
		return
	}
	c.Redirect(http.StatusSeeOther, "/categories")
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	if err := h.Blog.DeleteCategoryByID(c.Request.Context(), c.Param("id")); err != nil {
		if apperr.KindOf(err) == apperr.KindInvalidID {
			c.String(http.StatusBadRequest, apperrMessage(err))
			return
		}
		h.FailPage(c, "Unable to Remove Category / Category not found")
		return
	}
	c.Redirect(http.StatusSeeOther, "/categories")
}

// uploadFeatureImage relays the optional featureImage file to object storage
// and returns its public URL, or "" when there is nothing to upload or the
// relay fails.
func (h *AdminHandler) uploadFeatureImage(c *gin.Context) string {
	if h.GCS == nil || h.GCSBucket == "" {
		return ""
	}
	fh, err := c.FormFile("featureImage")
	if err != nil || fh == nil || fh.Size == 0 {
		return ""
	}
	f, err := fh.Open()
	if err != nil {
		h.Logger.WithError(err).Warn("feature image open failed")
		return ""
	}
	defer f.Close()

	objectPath := "feature-images/" + uuid.NewString() + filepath.Ext(fh.Filename)
	url, err := helpers.UploadObject(c.Request.Context(), h.GCS, h.GCSBucket, objectPath, fh.Header.Get("Content-Type"), f)
	if err != nil {
		h.Logger.WithError(err).Warn("feature image upload failed")
		return ""
	}
	return url
}
