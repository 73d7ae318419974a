package repository

import (
	"context"

	"github.com/bloggramm/bloggramm/internal/domain/entity"
)

// UserRepository defines the interface for credential-store operations.
// Implementations report failures with the sentinel errors in errors.go so
// flows never see driver errors.
type UserRepository interface {
	// Create persists a new user. Returns ErrDuplicateKey when the userName
	// is already taken.
	Create(ctx context.Context, u *entity.User) error

	// GetByName returns the user including its full login history, or
	// ErrNotFound when no user with that name exists.
	GetByName(ctx context.Context, userName string) (*entity.User, error)

	// AppendLoginHistory appends one entry to the user's login history,
	// preserving insertion order.
	AppendLoginHistory(ctx context.Context, userName string, e entity.LoginEntry) error
}
