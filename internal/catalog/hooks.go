package catalog

import (
	"time"

	apperrors "github.com/Lebid-Dmytro/dj-movie/internal/errors"
	"gorm.io/gorm"
)

// BeforeSave hooks reject records that violate their field constraints
// before any SQL is issued.

func (c *Category) BeforeSave(tx *gorm.DB) error {
	return Validator().Struct(c)
}

func (a *Actor) BeforeSave(tx *gorm.DB) error {
	return Validator().Struct(a)
}

func (g *Genre) BeforeSave(tx *gorm.DB) error {
	return Validator().Struct(g)
}

func (m *Movie) BeforeSave(tx *gorm.DB) error {
	return Validator().Struct(m)
}

func (s *MovieShot) BeforeSave(tx *gorm.DB) error {
	return Validator().Struct(s)
}

func (r *RatingStar) BeforeSave(tx *gorm.DB) error {
	return Validator().Struct(r)
}

func (r *Rating) BeforeSave(tx *gorm.DB) error {
	return Validator().Struct(r)
}

func (r *Review) BeforeSave(tx *gorm.DB) error {
	return Validator().Struct(r)
}

// BeforeCreate fills the defaults that depend on the creation moment
func (m *Movie) BeforeCreate(tx *gorm.DB) error {
	if m.Year == 0 {
		m.Year = DefaultMovieYear
	}
	if m.WorldsPremiere.IsZero() {
		m.WorldsPremiere = today(tx)
	}
	return nil
}

// BeforeUpdate refuses a movie without a premiere date; updates write every
// column and would otherwise store the zero date
func (m *Movie) BeforeUpdate(tx *gorm.DB) error {
	if m.WorldsPremiere.IsZero() {
		return apperrors.Invalid("update_movie", "movie", "worlds_premiere", "must be set")
	}
	return nil
}

// today returns the current date at midnight UTC, honouring the session clock
func today(tx *gorm.DB) time.Time {
	now := time.Now()
	if tx != nil && tx.Config != nil && tx.Config.NowFunc != nil {
		now = tx.Config.NowFunc()
	}
	y, mo, d := now.Date()
	return time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)
}
