package repository

import (
	"context"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
)

type CourseRepository interface {
	Create(ctx context.Context, c *entity.Course) error
	GetByID(ctx context.Context, id string) (*entity.Course, error)
	List(ctx context.Context) ([]entity.Course, error)
	ListByBootcamp(ctx context.Context, bootcampID string) ([]entity.Course, error)
	Update(ctx context.Context, c *entity.Course) error
	Delete(ctx context.Context, id string) error
	// AverageTuition returns the mean tuition and the number of courses.
	AverageTuition(ctx context.Context, bootcampID string) (float64, int, error)
}
