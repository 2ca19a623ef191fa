package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/policy"
	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/apperror"
)

const maxReviewTitle = 100

// ReviewService manages reviews. Every write recomputes the bootcamp's average rating.
type ReviewService struct {
	Reviews    repo.ReviewRepository
	Bootcamps  repo.BootcampRepository
	Aggregator *Aggregator
	Logger     *logrus.Logger
}

func NewReviewService(reviews repo.ReviewRepository, bootcamps repo.BootcampRepository, agg *Aggregator, logger *logrus.Logger) *ReviewService {
	return &ReviewService{Reviews: reviews, Bootcamps: bootcamps, Aggregator: agg, Logger: logger}
}

type ReviewInput struct {
	Title  string
	Text   string
	Rating int
}

type UpdateReviewInput struct {
	Title  *string
	Text   *string
	Rating *int
}

func (s *ReviewService) List(ctx context.Context, bootcampID string) ([]entity.Review, error) {
	var (
		out []entity.Review
		err error
	)
	if bootcampID == "" {
		out, err = s.Reviews.List(ctx)
	} else {
		if _, err := s.Bootcamps.GetByID(ctx, bootcampID); err != nil {
			return nil, storeErr(err, notFoundMsg("bootcamp", bootcampID), "")
		}
		out, err = s.Reviews.ListByBootcamp(ctx, bootcampID)
	}
	if err != nil {
		return nil, storeErr(err, "", "")
	}
	return out, nil
}

func (s *ReviewService) Get(ctx context.Context, id string) (*entity.Review, error) {
	r, err := s.Reviews.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, notFoundMsg("review", id), "")
	}
	return r, nil
}

// Create adds the actor's review of a bootcamp. A second review by the same
// user for the same bootcamp is a Conflict.
func (s *ReviewService) Create(ctx context.Context, actor *entity.User, bootcampID string, in ReviewInput) (*entity.Review, error) {
	if err := validReview(in.Title, in.Text, in.Rating); err != nil {
		return nil, err
	}
	if _, err := s.Bootcamps.GetByID(ctx, bootcampID); err != nil {
		return nil, storeErr(err, notFoundMsg("bootcamp", bootcampID), "")
	}
	r := &entity.Review{
		BootcampID: bootcampID,
		UserID:     actor.ID,
		Title:      in.Title,
		Text:       in.Text,
		Rating:     in.Rating,
	}
	if err := s.Reviews.Create(ctx, r); err != nil {
		return nil, storeErr(err, notFoundMsg("bootcamp", bootcampID), "user has already reviewed this bootcamp")
	}
	s.Aggregator.RecomputeRating(ctx, bootcampID)
	return r, nil
}

func (s *ReviewService) Update(ctx context.Context, actor *entity.User, id string, in UpdateReviewInput) (*entity.Review, error) {
	r, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.EnsureCanModify(actor, r.UserID, "review"); err != nil {
		return nil, err
	}
	setString(&r.Title, in.Title)
	setString(&r.Text, in.Text)
	if in.Rating != nil {
		r.Rating = *in.Rating
	}
	if err := validReview(r.Title, r.Text, r.Rating); err != nil {
		return nil, err
	}
	if err := s.Reviews.Update(ctx, r); err != nil {
		return nil, storeErr(err, notFoundMsg("review", id), "")
	}
	s.Aggregator.RecomputeRating(ctx, r.BootcampID)
	return r, nil
}

func (s *ReviewService) Delete(ctx context.Context, actor *entity.User, id string) error {
	r, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.EnsureCanModify(actor, r.UserID, "review"); err != nil {
		return err
	}
	if err := s.Reviews.Delete(ctx, id); err != nil {
		return storeErr(err, notFoundMsg("review", id), "")
	}
	s.Aggregator.RecomputeRating(ctx, r.BootcampID)
	return nil
}

func validReview(title, text string, rating int) error {
	switch {
	case title == "":
		return apperror.Validation("please add a title for the review")
	case len(title) > maxReviewTitle:
		return apperror.Validation(fmt.Sprintf("title can not be more than %d characters", maxReviewTitle))
	case text == "":
		return apperror.Validation("please add some text")
	case rating < entity.MinRating || rating > entity.MaxRating:
		return apperror.Validation(fmt.Sprintf("rating must be between %d and %d", entity.MinRating, entity.MaxRating))
	}
	return nil
}
