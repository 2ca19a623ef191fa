package repository

import (
	"context"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
)

// ReviewRepository persists reviews. Create returns ErrDuplicate when the
// user already reviewed the bootcamp.
type ReviewRepository interface {
	Create(ctx context.Context, r *entity.Review) error
	GetByID(ctx context.Context, id string) (*entity.Review, error)
	List(ctx context.Context) ([]entity.Review, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Review, error)
	Update(ctx context.Context, r *entity.Review) error
	Delete(ctx context.Context, id string) error
	// AverageRating returns the mean rating and the number of reviews.
	AverageRating(ctx context.Context, bootcampID string) (float64, int, error)
}
