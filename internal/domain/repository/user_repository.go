package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/workspace-hub/internal/domain/entity"
)

var (
	ErrNotFound        = errors.New("user not found")
	ErrEmailInUse      = errors.New("email already in use")
	ErrAlreadyInactive = errors.New("user already inactive")
)

// UserRepository defines the interface for user-related database operations.
// Implementations translate store failures into the errors above; anything
// else they return is an unexpected store failure.
type UserRepository interface {
	Create(ctx context.Context, in entity.NewUser) (*entity.User, error)
	FindByID(ctx context.Context, id string) (*entity.User, error)
	// FindByEmail also loads PasswordHash.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, id string, in entity.UserUpdate) (*entity.User, error)
	UpdateLastLogin(ctx context.Context, id string) (*entity.User, error)
	Delete(ctx context.Context, id string) (*entity.User, error)
	SoftDelete(ctx context.Context, id string) (*entity.User, error)
	List(ctx context.Context, q entity.ListQuery) (entity.UserPage, error)
	Stats(ctx context.Context, since time.Time) (entity.UserStats, error)
}
