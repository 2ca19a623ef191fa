package application

import (
	"context"
	"expvar"
	"math"

	"github.com/sirupsen/logrus"

	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

var (
	aggregatorRecomputations = expvar.NewInt("aggregator_recomputations")
	aggregatorFailures       = expvar.NewInt("aggregator_failures")
)

// Aggregator keeps the derived averages on a bootcamp in step with its
// reviews and courses. It is called after the triggering write has succeeded
// and never fails that write: problems are logged and counted.
type Aggregator struct {
	Bootcamps repo.BootcampRepository
	Reviews   repo.ReviewRepository
	Courses   repo.CourseRepository
	Logger    *logrus.Logger
}

func NewAggregator(bootcamps repo.BootcampRepository, reviews repo.ReviewRepository, courses repo.CourseRepository, logger *logrus.Logger) *Aggregator {
	return &Aggregator{Bootcamps: bootcamps, Reviews: reviews, Courses: courses, Logger: logger}
}

// RecomputeRating writes the mean review rating, or nil when there are no reviews.
func (a *Aggregator) RecomputeRating(ctx context.Context, bootcampID string) {
	aggregatorRecomputations.Add(1)
	avg, n, err := a.Reviews.AverageRating(ctx, bootcampID)
	if err != nil {
		a.fail(err, bootcampID, "read average rating")
		return
	}
	if err := a.Bootcamps.SetAverageRating(ctx, bootcampID, mean(avg, n)); err != nil {
		a.fail(err, bootcampID, "write average rating")
	}
}

// RecomputeCost writes the mean course tuition rounded up to a multiple of 10,
// or nil when the bootcamp has no courses.
func (a *Aggregator) RecomputeCost(ctx context.Context, bootcampID string) {
	aggregatorRecomputations.Add(1)
	avg, n, err := a.Courses.AverageTuition(ctx, bootcampID)
	if err != nil {
		a.fail(err, bootcampID, "read average cost")
		return
	}
	if err := a.Bootcamps.SetAverageCost(ctx, bootcampID, mean(RoundCost(avg), n)); err != nil {
		a.fail(err, bootcampID, "write average cost")
	}
}

// RoundCost rounds v up to the next multiple of 10.
func RoundCost(v float64) float64 {
	return math.Ceil(v/10) * 10
}

func mean(avg float64, n int) *float64 {
	if n == 0 {
		return nil
	}
	return &avg
}

func (a *Aggregator) fail(err error, bootcampID, op string) {
	aggregatorFailures.Add(1)
	if a.Logger != nil {
		a.Logger.WithError(err).WithField("bootcamp_id", bootcampID).Warn(op + " failed")
	}
}
