package repository

import (
	"context"
	"time"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
// Update never writes the password; UpdatePassword and ResetPassword do.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, u *entity.User) error
	UpdatePassword(ctx context.Context, id, hash string) error
	Delete(ctx context.Context, id string) error

	SetResetToken(ctx context.Context, id, tokenHash string, expire time.Time) error
	ClearResetToken(ctx context.Context, id string) error
	// GetByResetToken matches only tokens whose expiry is after now.
	GetByResetToken(ctx context.Context, tokenHash string, now time.Time) (*entity.User, error)
	// ResetPassword stores the new hash and clears the reset token fields.
	ResetPassword(ctx context.Context, id, hash string) error
}
