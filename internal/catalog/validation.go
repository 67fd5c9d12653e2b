package catalog

import (
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var slugPattern = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// Validator returns the shared validator with the catalog's custom tags
// registered
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		if err := v.RegisterValidation("slug", isSlug); err != nil {
			panic(err)
		}
		validate = v
	})
	return validate
}

// IsSlug reports whether s is a non-empty URL-safe identifier
func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

func isSlug(fl validator.FieldLevel) bool {
	return IsSlug(fl.Field().String())
}
