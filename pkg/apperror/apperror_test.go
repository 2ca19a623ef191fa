package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	cases := map[Kind]int{
		KindUnauthenticated: http.StatusUnauthorized,
		KindForbidden:       http.StatusForbidden,
		KindNotFound:        http.StatusNotFound,
		KindConflict:        http.StatusConflict,
		KindValidation:      http.StatusBadRequest,
		KindInvalidToken:    http.StatusBadRequest,
		KindUpstream:        http.StatusBadGateway,
		KindInternal:        http.StatusInternalServerError,
	}
	for kind, want := range cases {
		assert.Equal(t, want, kind.HTTPStatus(), string(kind))
	}
}

func TestKindOfWrapped(t *testing.T) {
	err := fmt.Errorf("create review: %w", Conflict("review already exists"))
	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, Is(err, KindConflict))
	assert.Equal(t, "review already exists", MessageOf(err))
}

func TestKindOfPlainError(t *testing.T) {
	err := errors.New("boom")
	assert.Equal(t, KindInternal, KindOf(err))
	assert.False(t, Is(nil, KindInternal))
	assert.Equal(t, "an unexpected error occurred", MessageOf(err))
}

func TestUpstreamUnwrap(t *testing.T) {
	cause := errors.New("smtp down")
	err := Upstream("email could not be sent", cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "email could not be sent: smtp down", err.Error())
}
