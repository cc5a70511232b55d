package postgres

import (
	"testing"

	domainerrors "storerating/internal/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolations(t *testing.T) {
	wrapped := func(code string) error {
		return errors.Wrap(&pgconn.PgError{Code: code, Message: "violation"}, "insert")
	}

	assert.True(t, isUniqueConstraintViolation(wrapped(pgUniqueViolation)))
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueConstraintViolation(wrapped(pgForeignKeyViolation)))

	assert.True(t, isForeignKeyConstraintViolation(wrapped(pgForeignKeyViolation)))
	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))

	assert.True(t, isCheckConstraintViolation(wrapped(pgCheckViolation)))
	assert.True(t, isNotNullConstraintViolation(wrapped(pgNotNullViolation)))
	assert.True(t, isNotNullConstraintViolation(errors.New(`null value in column "name"`)))
	assert.False(t, isNotNullConstraintViolation(errors.New("connection refused")))
}

func TestRatingReferenceError(t *testing.T) {
	fkViolation := func(constraint string) error {
		return errors.Wrap(&pgconn.PgError{
			Code:           pgForeignKeyViolation,
			ConstraintName: constraint,
			Message:        "insert or update on table \"ratings\" violates foreign key constraint",
		}, "insert")
	}

	tests := []struct {
		name   string
		err    error
		target error
	}{
		{name: "deleted user", err: fkViolation(ratingsUserFKey), target: domainerrors.ErrUnauthenticated},
		{name: "deleted store", err: fkViolation(ratingsStoreFKey), target: domainerrors.ErrStoreNotFound},
		{name: "no constraint name", err: gorm.ErrForeignKeyViolated, target: domainerrors.ErrStoreNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ratingReferenceError(tt.err)

			assert.True(t, errors.Is(err, tt.target), err)
		})
	}

	assert.Equal(t, ratingsUserFKey, pgConstraintName(fkViolation(ratingsUserFKey)))
	assert.Empty(t, pgConstraintName(errors.New("connection refused")))
}
