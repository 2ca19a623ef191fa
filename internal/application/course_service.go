package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/domain/policy"
	repo "github.com/oksasatya/bootcamp-directory/internal/domain/repository"
	"github.com/oksasatya/bootcamp-directory/pkg/apperror"
)

// CourseService manages courses. Every write recomputes the bootcamp's average cost.
type CourseService struct {
	Courses    repo.CourseRepository
	Bootcamps  repo.BootcampRepository
	Aggregator *Aggregator
	Logger     *logrus.Logger
}

func NewCourseService(courses repo.CourseRepository, bootcamps repo.BootcampRepository, agg *Aggregator, logger *logrus.Logger) *CourseService {
	return &CourseService{Courses: courses, Bootcamps: bootcamps, Aggregator: agg, Logger: logger}
}

type CreateCourseInput struct {
	Title                string
	Description          string
	Weeks                int
	Tuition              float64
	MinimumSkill         entity.Skill
	ScholarshipAvailable bool
}

type UpdateCourseInput struct {
	Title                *string
	Description          *string
	Weeks                *int
	Tuition              *float64
	MinimumSkill         *entity.Skill
	ScholarshipAvailable *bool
}

// List returns every course, or only the bootcamp's when bootcampID is set.
func (s *CourseService) List(ctx context.Context, bootcampID string) ([]entity.Course, error) {
	var (
		out []entity.Course
		err error
	)
	if bootcampID == "" {
		out, err = s.Courses.List(ctx)
	} else {
		if _, err := s.Bootcamps.GetByID(ctx, bootcampID); err != nil {
			return nil, storeErr(err, notFoundMsg("bootcamp", bootcampID), "")
		}
		out, err = s.Courses.ListByBootcamp(ctx, bootcampID)
	}
	if err != nil {
		return nil, storeErr(err, "", "")
	}
	return out, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*entity.Course, error) {
	c, err := s.Courses.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, notFoundMsg("course", id), "")
	}
	return c, nil
}

// Create adds a course to a bootcamp the actor owns (admins may add to any).
func (s *CourseService) Create(ctx context.Context, actor *entity.User, bootcampID string, in CreateCourseInput) (*entity.Course, error) {
	b, err := s.Bootcamps.GetByID(ctx, bootcampID)
	if err != nil {
		return nil, storeErr(err, notFoundMsg("bootcamp", bootcampID), "")
	}
	if err := policy.EnsureCanModify(actor, b.OwnerID, "bootcamp"); err != nil {
		return nil, err
	}
	if err := validSkill(in.MinimumSkill); err != nil {
		return nil, err
	}
	c := &entity.Course{
		BootcampID:           b.ID,
		OwnerID:              actor.ID,
		Title:                in.Title,
		Description:          in.Description,
		Weeks:                in.Weeks,
		Tuition:              in.Tuition,
		MinimumSkill:         in.MinimumSkill,
		ScholarshipAvailable: in.ScholarshipAvailable,
	}
	if err := s.Courses.Create(ctx, c); err != nil {
		return nil, storeErr(err, notFoundMsg("bootcamp", bootcampID), "")
	}
	s.Aggregator.RecomputeCost(ctx, c.BootcampID)
	return c, nil
}

func (s *CourseService) Update(ctx context.Context, actor *entity.User, id string, in UpdateCourseInput) (*entity.Course, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.EnsureCanModify(actor, c.OwnerID, "course"); err != nil {
		return nil, err
	}
	if in.MinimumSkill != nil {
		if err := validSkill(*in.MinimumSkill); err != nil {
			return nil, err
		}
		c.MinimumSkill = *in.MinimumSkill
	}
	setString(&c.Title, in.Title)
	setString(&c.Description, in.Description)
	if in.Weeks != nil {
		c.Weeks = *in.Weeks
	}
	if in.Tuition != nil {
		c.Tuition = *in.Tuition
	}
	setBool(&c.ScholarshipAvailable, in.ScholarshipAvailable)

	if err := s.Courses.Update(ctx, c); err != nil {
		return nil, storeErr(err, notFoundMsg("course", id), "")
	}
	s.Aggregator.RecomputeCost(ctx, c.BootcampID)
	return c, nil
}

func (s *CourseService) Delete(ctx context.Context, actor *entity.User, id string) error {
	c, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.EnsureCanModify(actor, c.OwnerID, "course"); err != nil {
		return err
	}
	if err := s.Courses.Delete(ctx, id); err != nil {
		return storeErr(err, notFoundMsg("course", id), "")
	}
	s.Aggregator.RecomputeCost(ctx, c.BootcampID)
	return nil
}

func validSkill(sk entity.Skill) error {
	switch sk {
	case entity.SkillBeginner, entity.SkillIntermediate, entity.SkillAdvanced:
		return nil
	}
	return apperror.Validation("minimum_skill must be one of beginner, intermediate, advanced")
}
