package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/internal/testkit"
)

func rating(t *testing.T, f *fixture, id string) *float64 {
	t.Helper()
	b, err := f.bootcamps.Get(context.Background(), id)
	require.NoError(t, err)
	return b.AverageRating
}

func TestAverageRatingFollowsReviews(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pub := f.user(t, "pub@example.com", entity.RolePublisher)
	b := f.bootcamp(t, pub, "Devworks")

	var ids []string
	for i, score := range []int{4, 6, 8} {
		u := f.user(t, string(rune('a'+i))+"@example.com", entity.RoleUser)
		r, err := f.reviews.Create(ctx, u, b.ID, ReviewInput{Title: "t", Text: "x", Rating: score})
		require.NoError(t, err)
		ids = append(ids, r.ID)
	}
	require.NotNil(t, rating(t, f, b.ID))
	assert.Equal(t, 6.0, *rating(t, f, b.ID))

	admin := f.user(t, "admin@example.com", entity.RoleAdmin)
	require.NoError(t, f.reviews.Delete(ctx, admin, ids[0]))
	require.NotNil(t, rating(t, f, b.ID))
	assert.Equal(t, 7.0, *rating(t, f, b.ID))

	ten := 10
	_, err := f.reviews.Update(ctx, admin, ids[1], UpdateReviewInput{Rating: &ten})
	require.NoError(t, err)
	assert.Equal(t, 9.0, *rating(t, f, b.ID))

	require.NoError(t, f.reviews.Delete(ctx, admin, ids[1]))
	require.NoError(t, f.reviews.Delete(ctx, admin, ids[2]))
	assert.Nil(t, rating(t, f, b.ID))
}

func TestAverageCostRoundsUpToTen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pub := f.user(t, "pub@example.com", entity.RolePublisher)
	b := f.bootcamp(t, pub, "Devworks")

	c1, err := f.courses.Create(ctx, pub, b.ID, CreateCourseInput{Title: "Go", Weeks: 8, Tuition: 8000, MinimumSkill: entity.SkillBeginner})
	require.NoError(t, err)
	_, err = f.courses.Create(ctx, pub, b.ID, CreateCourseInput{Title: "SQL", Weeks: 4, Tuition: 1001, MinimumSkill: entity.SkillIntermediate})
	require.NoError(t, err)

	got, err := f.bootcamps.Get(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.AverageCost)
	assert.Equal(t, 4510.0, *got.AverageCost)

	require.NoError(t, f.courses.Delete(ctx, pub, c1.ID))
	got, _ = f.bootcamps.Get(ctx, b.ID)
	assert.Equal(t, 1010.0, *got.AverageCost)
}

func TestRoundCost(t *testing.T) {
	assert.Equal(t, 0.0, RoundCost(0))
	assert.Equal(t, 10.0, RoundCost(0.5))
	assert.Equal(t, 4510.0, RoundCost(4500.5))
	assert.Equal(t, 4500.0, RoundCost(4500))
}

type failingBootcamps struct {
	*testkit.Bootcamps
}

func (failingBootcamps) SetAverageRating(context.Context, string, *float64) error {
	return errors.New("connection reset")
}

func TestAggregatorFailureDoesNotFailReviewWrite(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pub := f.user(t, "pub@example.com", entity.RolePublisher)
	u := f.user(t, "user@example.com", entity.RoleUser)
	b := f.bootcamp(t, pub, "Devworks")
	f.agg.Bootcamps = failingBootcamps{f.store.Bootcamps()}
	before := aggregatorFailures.Value()

	r, err := f.reviews.Create(ctx, u, b.ID, ReviewInput{Title: "t", Text: "x", Rating: 7})
	require.NoError(t, err)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, before+1, aggregatorFailures.Value())
	assert.Nil(t, rating(t, f, b.ID), "stale until the next successful recompute")
}

func TestRecomputeOnDeletedBootcampIsSwallowed(t *testing.T) {
	f := newFixture(t)
	before := aggregatorFailures.Value()
	f.agg.RecomputeRating(context.Background(), "gone")
	assert.Equal(t, before+1, aggregatorFailures.Value())
}
