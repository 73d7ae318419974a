package application

import (
	"context"
	"testing"
	"time"

	"github.com/bloggramm/bloggramm/internal/domain/entity"
	"github.com/bloggramm/bloggramm/internal/domain/repository"
	"github.com/bloggramm/bloggramm/pkg/apperr"
)

type fakePostRepo struct {
	posts      []entity.Post
	lastFilter *repository.PostFilter
	deleteCnt  int
}

func (f *fakePostRepo) Create(ctx context.Context, p *entity.Post) error {
	p.ID = len(f.posts) + 1
	f.posts = append(f.posts, *p)
	return nil
}

func (f *fakePostRepo) GetByID(ctx context.Context, id int) (*entity.Post, error) {
	for i := range f.posts {
		if f.posts[i].ID == id {
			cp := f.posts[i]
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakePostRepo) List(ctx context.Context, fl repository.PostFilter) ([]entity.Post, error) {
	f.lastFilter = &fl
	return f.posts, nil
}

func (f *fakePostRepo) Delete(ctx context.Context, id int) error {
	f.deleteCnt++
	for i := range f.posts {
		if f.posts[i].ID == id {
			f.posts = append(f.posts[:i], f.posts[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

type fakeCategoryRepo struct {
	categories []entity.Category
	deleteCnt  int
}

func (f *fakeCategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	c.ID = len(f.categories) + 1
	f.categories = append(f.categories, *c)
	return nil
}

func (f *fakeCategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	return f.categories, nil
}

func (f *fakeCategoryRepo) Delete(ctx context.Context, id int) error {
	f.deleteCnt++
	for i := range f.categories {
		if f.categories[i].ID == id {
			f.categories = append(f.categories[:i], f.categories[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func newBlogService(posts *fakePostRepo, cats *fakeCategoryRepo) *BlogService {
	return NewBlogService(posts, cats, quietLogger())
}

func TestAddPostNormalizesPublished(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{"on", true},
		{"true", true},
		{"1", true},
		{"", false},
		{"off", false},
		{"banana", false},
	}
	for _, tc := range cases {
		repo := &fakePostRepo{}
		svc := newBlogService(repo, &fakeCategoryRepo{})
		p, err := svc.AddPost(context.Background(), AddPostInput{Title: "t", Body: "b", Published: tc.raw})
		if err != nil {
			t.Fatalf("add post (published=%q) failed: %v", tc.raw, err)
		}
		if p.Published != tc.want {
			t.Fatalf("published=%q: got %v, want %v", tc.raw, p.Published, tc.want)
		}
	}
}

func TestAddPostStampsServerDate(t *testing.T) {
	repo := &fakePostRepo{}
	svc := newBlogService(repo, &fakeCategoryRepo{})

	before := time.Now().UTC()
	p, err := svc.AddPost(context.Background(), AddPostInput{Title: "t", Body: "b"})
	if err != nil {
		t.Fatalf("add post failed: %v", err)
	}
	after := time.Now().UTC()
	if p.PostDate.Before(before) || p.PostDate.After(after) {
		t.Fatalf("post date %v not stamped at creation time", p.PostDate)
	}
}

func TestAddPostCategoryRef(t *testing.T) {
	repo := &fakePostRepo{}
	svc := newBlogService(repo, &fakeCategoryRepo{})

	p, err := svc.AddPost(context.Background(), AddPostInput{Title: "t", Body: "b", Category: "3"})
	if err != nil {
		t.Fatalf("add post failed: %v", err)
	}
	if p.Category == nil || *p.Category != 3 {
		t.Fatalf("expected category 3, got %v", p.Category)
	}

	p, err = svc.AddPost(context.Background(), AddPostInput{Title: "t", Body: "b", Category: ""})
	if err != nil {
		t.Fatalf("add post failed: %v", err)
	}
	if p.Category != nil {
		t.Fatalf("expected nil category, got %d", *p.Category)
	}
}

func TestDeletePostRejectsMalformedID(t *testing.T) {
	repo := &fakePostRepo{}
	svc := newBlogService(repo, &fakeCategoryRepo{})

	for _, raw := range []string{"abc", "", "0", "-4"} {
		err := svc.DeletePostByID(context.Background(), raw)
		if !apperr.IsKind(err, apperr.KindInvalidID) {
			t.Fatalf("id %q: expected invalid-id error, got %v", raw, err)
		}
	}
	if repo.deleteCnt != 0 {
		t.Fatalf("store was touched %d times for malformed ids", repo.deleteCnt)
	}
}

func TestDeleteCategoryRejectsMalformedID(t *testing.T) {
	cats := &fakeCategoryRepo{}
	svc := newBlogService(&fakePostRepo{}, cats)

	err := svc.DeleteCategoryByID(context.Background(), "not-a-number")
	if !apperr.IsKind(err, apperr.KindInvalidID) {
		t.Fatalf("expected invalid-id error, got %v", err)
	}
	if cats.deleteCnt != 0 {
		t.Fatalf("store was touched for a malformed id")
	}
}

func TestListFiltersPushedToStore(t *testing.T) {
	repo := &fakePostRepo{}
	svc := newBlogService(repo, &fakeCategoryRepo{})
	ctx := context.Background()

	if _, err := svc.AllPosts(ctx); err != nil {
		t.Fatalf("all posts failed: %v", err)
	}
	if repo.lastFilter.Category != nil || repo.lastFilter.MinDate != nil || repo.lastFilter.PublishedOnly {
		t.Fatalf("all posts sent a non-empty filter: %+v", repo.lastFilter)
	}

	if _, err := svc.PostsByCategory(ctx, 7); err != nil {
		t.Fatalf("posts by category failed: %v", err)
	}
	if repo.lastFilter.Category == nil || *repo.lastFilter.Category != 7 {
		t.Fatalf("category filter not pushed down: %+v", repo.lastFilter)
	}

	min := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.PostsByMinDate(ctx, min); err != nil {
		t.Fatalf("posts by min date failed: %v", err)
	}
	if repo.lastFilter.MinDate == nil || !repo.lastFilter.MinDate.Equal(min) {
		t.Fatalf("min-date filter not pushed down: %+v", repo.lastFilter)
	}

	if _, err := svc.PublishedPostsByCategory(ctx, 2); err != nil {
		t.Fatalf("published posts by category failed: %v", err)
	}
	if !repo.lastFilter.PublishedOnly || repo.lastFilter.Category == nil || *repo.lastFilter.Category != 2 {
		t.Fatalf("published+category filter not pushed down: %+v", repo.lastFilter)
	}
}

func TestPostByIDInvalid(t *testing.T) {
	svc := newBlogService(&fakePostRepo{}, &fakeCategoryRepo{})

	_, err := svc.PostByID(context.Background(), "xyz")
	if !apperr.IsKind(err, apperr.KindInvalidID) {
		t.Fatalf("expected invalid-id error, got %v", err)
	}
}

func TestSortPostsNewestFirst(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	posts := []entity.Post{
		{ID: 1, PostDate: day(3)},
		{ID: 2, PostDate: day(9)},
		{ID: 3, PostDate: day(1)},
		{ID: 4, PostDate: day(9)},
	}

	SortPostsNewestFirst(posts)

	want := []int{2, 4, 1, 3} // ties keep input order
	for i, id := range want {
		if posts[i].ID != id {
			t.Fatalf("position %d: got post %d, want %d (order %v)", i, posts[i].ID, id, posts)
		}
	}
}
