package repository

import (
	"context"
	"time"

	"github.com/bloggramm/bloggramm/internal/domain/entity"
)

// PostFilter is translated directly into store predicates; no in-memory joins.
type PostFilter struct {
	Category      *int
	MinDate       *time.Time
	PublishedOnly bool
}

// PostRepository defines the interface for post content-store operations.
type PostRepository interface {
	Create(ctx context.Context, p *entity.Post) error
	GetByID(ctx context.Context, id int) (*entity.Post, error)
	List(ctx context.Context, f PostFilter) ([]entity.Post, error)
	Delete(ctx context.Context, id int) error
}
