package application

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bloggramm/bloggramm/internal/domain/entity"
	"github.com/bloggramm/bloggramm/internal/domain/repository"
	"github.com/bloggramm/bloggramm/pkg/apperr"
)

// BlogService is the content flow: normalized create/delete plus filtered
// reads over posts and categories. Filters are pushed down to the store.
type BlogService struct {
	Posts      repository.PostRepository
	Categories repository.CategoryRepository
	Logger     *logrus.Logger
}

func NewBlogService(posts repository.PostRepository, categories repository.CategoryRepository, logger *logrus.Logger) *BlogService {
	return &BlogService{Posts: posts, Categories: categories, Logger: logger}
}

type AddPostInput struct {
	Title        string
	Body         string
	FeatureImage string
	Published    string // raw form value; normalized to a strict bool
	Category     string // raw form value; empty or non-numeric means no category
}

func (s *BlogService) AllPosts(ctx context.Context) ([]entity.Post, error) {
	return s.listPosts(ctx, repository.PostFilter{})
}

func (s *BlogService) PostsByCategory(ctx context.Context, category int) ([]entity.Post, error) {
	return s.listPosts(ctx, repository.PostFilter{Category: &category})
}

func (s *BlogService) PostsByMinDate(ctx context.Context, minDate time.Time) ([]entity.Post, error) {
	return s.listPosts(ctx, repository.PostFilter{MinDate: &minDate})
}

func (s *BlogService) PublishedPosts(ctx context.Context) ([]entity.Post, error) {
	return s.listPosts(ctx, repository.PostFilter{PublishedOnly: true})
}

func (s *BlogService) PublishedPostsByCategory(ctx context.Context, category int) ([]entity.Post, error) {
	return s.listPosts(ctx, repository.PostFilter{Category: &category, PublishedOnly: true})
}

func (s *BlogService) listPosts(ctx context.Context, f repository.PostFilter) ([]entity.Post, error) {
	posts, err := s.Posts.List(ctx, f)
	if err != nil {
		s.Logger.WithError(err).Error("post list failed")
		return nil, apperr.Wrap(apperr.KindStorage, "unable to load posts", err)
	}
	return posts, nil
}

func (s *BlogService) PostByID(ctx context.Context, idStr string) (*entity.Post, error) {
	id, err := parseID(idStr)
	if err != nil {
		return nil, err
	}
	p, err := s.Posts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.New(apperr.KindStorage, "post not found")
		}
		s.Logger.WithError(err).WithField("post_id", id).Error("post lookup failed")
		return nil, apperr.Wrap(apperr.KindStorage, "unable to load post", err)
	}
	return p, nil
}

// AddPost normalizes the published flag to a strict boolean and stamps the
// post date server-side; the client-supplied date, if any, is ignored.
func (s *BlogService) AddPost(ctx context.Context, in AddPostInput) (*entity.Post, error) {
	p := &entity.Post{
		Title:        in.Title,
		Body:         in.Body,
		FeatureImage: in.FeatureImage,
		Published:    normalizePublished(in.Published),
		PostDate:     time.Now().UTC(),
		Category:     parseCategoryRef(in.Category),
	}
	if err := s.Posts.Create(ctx, p); err != nil {
		s.Logger.WithError(err).Error("post create failed")
		return nil, apperr.Wrap(apperr.KindStorage, "unable to save post", err)
	}
	return p, nil
}

func (s *BlogService) DeletePostByID(ctx context.Context, idStr string) error {
	id, err := parseID(idStr)
	if err != nil {
		return err
	}
	if err := s.Posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.KindStorage, "unable to remove post / post not found")
		}
		s.Logger.WithError(err).WithField("post_id", id).Error("post delete failed")
		return apperr.Wrap(apperr.KindStorage, "unable to remove post", err)
	}
	return nil
}

func (s *BlogService) AllCategories(ctx context.Context) ([]entity.Category, error) {
	cats, err := s.Categories.List(ctx)
	if err != nil {
		s.Logger.WithError(err).Error("category list failed")
		return nil, apperr.Wrap(apperr.KindStorage, "unable to load categories", err)
	}
	return cats, nil
}

func (s *BlogService) AddCategory(ctx context.Context, label string) (*entity.Category, error) {
	c := &entity.Category{Category: label}
	if err := s.Categories.Create(ctx, c); err != nil {
		s.Logger.WithError(err).Error("category create failed")
		return nil, apperr.Wrap(apperr.KindStorage, "unable to save category", err)
	}
	return c, nil
}

func (s *BlogService) DeleteCategoryByID(ctx context.Context, idStr string) error {
	id, err := parseID(idStr)
	if err != nil {
		return err
	}
	if err := s.Categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperr.New(apperr.KindStorage, "unable to remove category / category not found")
		}
		s.Logger.WithError(err).WithField("category_id", id).Error("category delete failed")
		return apperr.Wrap(apperr.KindStorage, "unable to remove category", err)
	}
	return nil
}

// SortPostsNewestFirst orders posts by post date descending for the public
// blog view.
func SortPostsNewestFirst(posts []entity.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].PostDate.After(posts[j].PostDate)
	})
}

// parseID validates that the raw identifier is a positive integer before any
// store call is made.
func parseID(idStr string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(idStr))
	if err != nil || id <= 0 {
		return 0, apperr.New(apperr.KindInvalidID, "invalid id")
	}
	return id, nil
}

// normalizePublished maps the raw form value of the published checkbox to a
// strict boolean. HTML checkboxes submit "on" when checked and are absent
// otherwise.
func normalizePublished(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "on", "true", "1":
		return true
	default:
		return false
	}
}

func parseCategoryRef(v string) *int {
	id, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}
