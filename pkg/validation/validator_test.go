package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signup struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
	Role     string `json:"role" binding:"omitempty,signuprole"`
}

type review struct {
	Title  string `json:"title" binding:"required,max=100"`
	Rating int    `json:"rating" binding:"required,rating"`
	Skill  string `json:"minimum_skill" binding:"omitempty,skill"`
}

func TestToDetailsUsesJSONNamesAndAliases(t *testing.T) {
	Init()
	Init()

	err := binding.Validator.ValidateStruct(&signup{Email: "nope", Password: "12345", Role: "admin"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{
		"email":    "must be a valid email",
		"password": "must be at least 6 characters long",
		"role":     "must be one of: user, publisher",
	}, ToDetails(err))

	err = binding.Validator.ValidateStruct(&review{Title: "ok", Rating: 11, Skill: "guru"})
	require.Error(t, err)
	assert.Equal(t, map[string]string{
		"rating":        "must be between 1 and 10",
		"minimum_skill": "must be one of: beginner, intermediate, advanced",
	}, ToDetails(err))

	assert.NoError(t, binding.Validator.ValidateStruct(&review{Title: "ok", Rating: 10}))
	assert.NoError(t, binding.Validator.ValidateStruct(&signup{Email: "a@b.co", Password: "123456"}))
}

func TestToDetailsInvalidJSON(t *testing.T) {
	var s signup
	err := binding.JSON.BindBody([]byte(`{"email":`), &s)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))
	assert.Nil(t, ToDetails(nil))
}
