package repository

import (
	"context"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
)

// BootcampRepository persists bootcamps. Update writes client-editable
// fields only; the derived averages have dedicated setters.
type BootcampRepository interface {
	Create(ctx context.Context, b *entity.Bootcamp) error
	GetByID(ctx context.Context, id string) (*entity.Bootcamp, error)
	List(ctx context.Context) ([]entity.Bootcamp, error)
	CountByOwner(ctx context.Context, ownerID string) (int, error)
	Update(ctx context.Context, b *entity.Bootcamp) error
	Delete(ctx context.Context, id string) error
	WithinRadius(ctx context.Context, lat, lng, radiusKm float64) ([]entity.Bootcamp, error)
	SetPhoto(ctx context.Context, id, photo string) error
	SetAverageRating(ctx context.Context, id string, avg *float64) error
	SetAverageCost(ctx context.Context, id string, avg *float64) error
}
