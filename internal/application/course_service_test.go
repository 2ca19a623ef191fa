package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/bootcamp-directory/internal/domain/entity"
	"github.com/oksasatya/bootcamp-directory/pkg/apperror"
)

func TestCreateCourseRequiresBootcampOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com", entity.RolePublisher)
	other := f.user(t, "other@example.com", entity.RolePublisher)
	admin := f.user(t, "admin@example.com", entity.RoleAdmin)
	b := f.bootcamp(t, owner, "Devworks")
	in := CreateCourseInput{Title: "Go", Weeks: 8, Tuition: 1000, MinimumSkill: entity.SkillBeginner}

	_, err := f.courses.Create(ctx, other, b.ID, in)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	_, err = f.courses.Create(ctx, owner, "missing", in)
	assert.True(t, apperror.Is(err, apperror.KindNotFound))

	c, err := f.courses.Create(ctx, admin, b.ID, in)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, c.OwnerID)
	assert.Equal(t, b.ID, c.BootcampID)

	bad := in
	bad.MinimumSkill = "expert"
	_, err = f.courses.Create(ctx, owner, b.ID, bad)
	assert.True(t, apperror.Is(err, apperror.KindValidation))
}

func TestCourseOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.user(t, "owner@example.com", entity.RolePublisher)
	other := f.user(t, "other@example.com", entity.RolePublisher)
	b := f.bootcamp(t, owner, "Devworks")
	c, err := f.courses.Create(ctx, owner, b.ID, CreateCourseInput{Title: "Go", Weeks: 8, Tuition: 1000, MinimumSkill: entity.SkillBeginner})
	require.NoError(t, err)

	weeks := 12
	_, err = f.courses.Update(ctx, other, c.ID, UpdateCourseInput{Weeks: &weeks})
	assert.True(t, apperror.Is(err, apperror.KindForbidden))
	err = f.courses.Delete(ctx, other, c.ID)
	assert.True(t, apperror.Is(err, apperror.KindForbidden))

	got, err := f.courses.Update(ctx, owner, c.ID, UpdateCourseInput{Weeks: &weeks})
	require.NoError(t, err)
	assert.Equal(t, 12, got.Weeks)
	assert.Equal(t, "Go", got.Title)

	list, err := f.courses.List(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 12, list[0].Weeks)

	require.NoError(t, f.courses.Delete(ctx, owner, c.ID))
	b2, err := f.bootcamps.Get(ctx, b.ID)
	require.NoError(t, err)
	assert.Nil(t, b2.AverageCost)
}
