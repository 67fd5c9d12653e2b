package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestFromDBNil(t *testing.T) {
	assert.NoError(t, FromDB("get_movie", "movie", nil))
}

func TestFromDBClassifies(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		typ      ErrorType
		sentinel error
	}{
		{"record not found", gorm.ErrRecordNotFound, ErrorTypeNotFound, ErrNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, ErrorTypeConflict, ErrDuplicateSlug},
		{"sqlite unique text", errors.New("UNIQUE constraint failed: genres.url"), ErrorTypeConflict, ErrDuplicateSlug},
		{"postgres unique text", errors.New(`ERROR: duplicate key value violates unique constraint "idx_movies_url"`), ErrorTypeConflict, ErrDuplicateSlug},
		{"translated foreign key", gorm.ErrForeignKeyViolated, ErrorTypeConstraint, ErrReferenceViolation},
		{"sqlite foreign key text", errors.New("FOREIGN KEY constraint failed"), ErrorTypeConstraint, ErrReferenceViolation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromDB("create_genre", "genre", tt.err)
			require.Error(t, err)
			assert.Equal(t, tt.typ, GetType(err))
			assert.ErrorIs(t, err, tt.sentinel)
			assert.ErrorIs(t, err, tt.err, "original error stays reachable")
		})
	}
}

func TestFromDBOtherErrorsAreDatabaseErrors(t *testing.T) {
	cause := errors.New("disk I/O error")
	err := FromDB("list_movies", "movie", cause)

	assert.Equal(t, ErrorTypeDatabase, GetType(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "database error in list_movies (movie): disk I/O error", err.Error())
}

func TestFromDBPassesCatalogErrorsThrough(t *testing.T) {
	orig := NotFound("get_movie", "movie", 42)
	wrapped := fmt.Errorf("loading page: %w", orig)

	assert.Same(t, wrapped, FromDB("other_op", "other", wrapped))
}

func TestFromDBValidationErrors(t *testing.T) {
	type sample struct {
		ParentID uint   `validate:"required"`
		URL      string `validate:"max=3"`
	}
	v := validator.New()

	err := FromDB("create_review", "review", v.Struct(sample{ParentID: 1, URL: "toolong"}))
	require.Error(t, err)

	var cErr *CatalogError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, ErrorTypeValidation, cErr.Type)
	assert.Equal(t, "url", cErr.Field)
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), `"max=3"`)
}

func TestNotFoundMessage(t *testing.T) {
	err := NotFound("get_category", "category", 7)
	assert.Equal(t, "not_found error in get_category (category) [id=7]: record not found", err.Error())
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(errors.New("boom")))
}

func TestInvalid(t *testing.T) {
	err := Invalid("create_review", "review", "parent_id", "belongs to another movie")
	assert.Equal(t, ErrorTypeValidation, err.Type)
	assert.Equal(t, "parent_id", err.Field)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestToSnake(t *testing.T) {
	assert.Equal(t, "url", toSnake("URL"))
	assert.Equal(t, "ip", toSnake("IP"))
	assert.Equal(t, "parent_id", toSnake("ParentID"))
	assert.Equal(t, "worlds_premiere", toSnake("WorldsPremiere"))
	assert.Equal(t, "fees_in_usa", toSnake("FeesInUSA"))
}
