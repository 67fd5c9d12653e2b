// Package errors provides structured error handling for the catalog.
// It defines error types, sentinel errors and the translation of storage
// engine and validation failures into them.
package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// ErrorType classifies a catalog error
type ErrorType string

const (
	// ErrorTypeValidation indicates a field constraint violation caught before storage
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound indicates the requested record does not exist
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeConflict indicates a uniqueness violation
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeConstraint indicates a referential integrity violation
	ErrorTypeConstraint ErrorType = "constraint"
	// ErrorTypeDatabase indicates any other storage failure
	ErrorTypeDatabase ErrorType = "database"
)

// Sentinel errors for common scenarios
var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateSlug      = errors.New("slug already exists")
	ErrInvalidInput       = errors.New("invalid input")
	ErrReferenceViolation = errors.New("referenced record does not exist")
)

// CatalogError carries the context of a failed catalog operation
type CatalogError struct {
	Type   ErrorType // Error classification
	Op     string    // Operation that failed (e.g. "create_movie")
	Entity string    // Entity involved (e.g. "movie")
	ID     string    // Record identifier if known
	Field  string    // Offending field for validation errors
	Err    error     // Underlying error
}

func (e *CatalogError) Error() string {
	var ctx []string
	if e.ID != "" {
		ctx = append(ctx, "id="+e.ID)
	}
	if e.Field != "" {
		ctx = append(ctx, "field="+e.Field)
	}

	msg := fmt.Sprintf("%s error in %s", e.Type, e.Op)
	if e.Entity != "" {
		msg += " (" + e.Entity + ")"
	}
	if len(ctx) > 0 {
		msg += " [" + strings.Join(ctx, " ") + "]"
	}
	return msg + ": " + e.Err.Error()
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *CatalogError) Unwrap() error {
	return e.Err
}

// New creates a CatalogError
func New(errType ErrorType, op, entity string, err error) *CatalogError {
	return &CatalogError{Type: errType, Op: op, Entity: entity, Err: err}
}

// WithID adds the record identifier
func (e *CatalogError) WithID(id interface{}) *CatalogError {
	e.ID = fmt.Sprint(id)
	return e
}

// WithField adds the offending field
func (e *CatalogError) WithField(field string) *CatalogError {
	e.Field = field
	return e
}

// NotFound creates a not-found error for an entity
func NotFound(op, entity string, id interface{}) *CatalogError {
	return New(ErrorTypeNotFound, op, entity, ErrNotFound).WithID(id)
}

// Invalid creates a validation error for a field
func Invalid(op, entity, field, reason string) *CatalogError {
	return New(ErrorTypeValidation, op, entity, fmt.Errorf("%w: %s %s", ErrInvalidInput, field, reason)).WithField(field)
}

// FromDB translates an error returned by GORM, a driver or the validator.
// Errors that are already CatalogErrors pass through unchanged.
func FromDB(op, entity string, err error) error {
	if err == nil {
		return nil
	}

	var cErr *CatalogError
	if errors.As(err, &cErr) {
		return err
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) && len(vErrs) > 0 {
		first := vErrs[0]
		field := toSnake(first.Field())
		return New(ErrorTypeValidation, op, entity,
			fmt.Errorf("%w: %s failed %q", ErrInvalidInput, field, describeTag(first))).WithField(field)
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return New(ErrorTypeNotFound, op, entity, fmt.Errorf("%w: %w", ErrNotFound, err))
	case errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err):
		return New(ErrorTypeConflict, op, entity, fmt.Errorf("%w: %w", ErrDuplicateSlug, err))
	case errors.Is(err, gorm.ErrForeignKeyViolated) || isForeignKeyViolation(err):
		return New(ErrorTypeConstraint, op, entity, fmt.Errorf("%w: %w", ErrReferenceViolation, err))
	default:
		return New(ErrorTypeDatabase, op, entity, err)
	}
}

// GetType extracts the error type from an error
func GetType(err error) ErrorType {
	var cErr *CatalogError
	if errors.As(err, &cErr) {
		return cErr.Type
	}
	return ErrorTypeDatabase
}

// IsNotFound reports whether err means a missing record
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, gorm.ErrRecordNotFound)
}

// Drivers that were opened without error translation still report
// constraint failures as plain text.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

func isForeignKeyViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "FOREIGN KEY constraint failed") ||
		strings.Contains(msg, "violates foreign key constraint")
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fe.Tag() + "=" + fe.Param()
	}
	return fe.Tag()
}

// toSnake turns a Go field name into its column name (URL -> url, WorldsPremiere -> worlds_premiere)
func toSnake(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		upper := r >= 'A' && r <= 'Z'
		if upper && i > 0 {
			prevLower := runes[i-1] >= 'a' && runes[i-1] <= 'z'
			nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
			if prevLower || nextLower && runes[i-1] >= 'A' && runes[i-1] <= 'Z' {
				b.WriteByte('_')
			}
		}
		if upper {
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
