package repository

import (
	"context"

	"github.com/bloggramm/bloggramm/internal/domain/entity"
)

// CategoryRepository defines the interface for category content-store operations.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	List(ctx context.Context) ([]entity.Category, error)
	Delete(ctx context.Context, id int) error
}
