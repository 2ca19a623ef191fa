package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/oksasatya/bootcamp-directory/internal/domain/repository"
)

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(pgx.ErrNoRows), repository.ErrNotFound)
	assert.ErrorIs(t, mapErr(fmt.Errorf("scan: %w", pgx.ErrNoRows)), repository.ErrNotFound)

	dup := &pgconn.PgError{Code: "23505", ConstraintName: "reviews_bootcamp_user_key"}
	err := mapErr(dup)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	assert.Contains(t, err.Error(), "reviews_bootcamp_user_key")

	assert.ErrorIs(t, mapErr(&pgconn.PgError{Code: "23503"}), repository.ErrNotFound)
	assert.ErrorIs(t, mapErr(&pgconn.PgError{Code: "22P02"}), repository.ErrNotFound)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapErr(other))
}

func TestAffectedOne(t *testing.T) {
	assert.NoError(t, affectedOne(pgconn.NewCommandTag("UPDATE 1"), nil))
	assert.ErrorIs(t, affectedOne(pgconn.NewCommandTag("DELETE 0"), nil), repository.ErrNotFound)
}
