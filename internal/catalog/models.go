package catalog

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Category groups movies (e.g. films, cartoons, series)
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:150;not null" json:"name" validate:"required,max=150"`
	Description string    `gorm:"type:text" json:"description"`
	URL         string    `gorm:"size:160;not null;uniqueIndex" json:"url" validate:"required,max=160,slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c Category) String() string { return c.Name }

// Actor is a person credited on movies. The same record can be linked to a
// movie as a director, an actor, or both.
type Actor struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null;index" json:"name" validate:"required,max=100"`
	Age         uint16    `gorm:"not null;default:0" json:"age" validate:"max=32767"`
	Description string    `gorm:"type:text" json:"description"`
	Image       ImageRef  `gorm:"size:255" json:"image" validate:"max=255"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a Actor) String() string { return a.Name }

// AbsoluteURL returns the canonical detail path of the actor
func (a Actor) AbsoluteURL() string {
	return "/actor/" + url.PathEscape(a.Name) + "/"
}

// Genre is a movie genre addressed by its slug
type Genre struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Description string    `gorm:"type:text" json:"description"`
	URL         string    `gorm:"size:160;not null;uniqueIndex" json:"url" validate:"required,max=160,slug"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (g Genre) String() string { return g.Name }

// DefaultMovieYear is stored when a movie is created without a year
const DefaultMovieYear = 2022

// Movie is the central catalog entry. Money fields are whole US dollars.
type Movie struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Title          string    `gorm:"size:100;not null" json:"title" validate:"required,max=100"`
	Tagline        string    `gorm:"size:100;not null;default:''" json:"tagline" validate:"max=100"`
	Description    string    `gorm:"type:text" json:"description"`
	Poster         ImageRef  `gorm:"size:255" json:"poster" validate:"max=255"`
	Year           uint16    `gorm:"not null;default:2022" json:"year" validate:"max=32767"`
	Country        string    `gorm:"size:30" json:"country" validate:"max=30"`
	Directors      []Actor   `gorm:"many2many:movie_directors;constraint:OnDelete:CASCADE" json:"directors,omitempty" validate:"-"`
	Actors         []Actor   `gorm:"many2many:movie_actors;constraint:OnDelete:CASCADE" json:"actors,omitempty" validate:"-"`
	Genres         []Genre   `gorm:"many2many:movie_genres;constraint:OnDelete:CASCADE" json:"genres,omitempty" validate:"-"`
	WorldsPremiere time.Time `gorm:"type:date;not null" json:"worlds_premiere"`
	Budget         uint16    `gorm:"not null;default:0" json:"budget" validate:"max=32767"`
	FeesInUSA      uint16    `gorm:"column:fees_in_usa;not null;default:0" json:"fees_in_usa" validate:"max=32767"`
	FeesInWorld    uint16    `gorm:"not null;default:0" json:"fees_in_world" validate:"max=32767"`
	CategoryID     *uint     `gorm:"index" json:"category_id"`
	Category       *Category `gorm:"constraint:OnDelete:SET NULL" json:"category,omitempty" validate:"-"`
	URL            string    `gorm:"size:130;not null;uniqueIndex" json:"url" validate:"required,max=130,slug"`
	Draft          bool      `gorm:"not null;default:false;index" json:"draft"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (m Movie) String() string { return m.Title }

// AbsoluteURL returns the canonical detail path of the movie
func (m Movie) AbsoluteURL() string {
	return "/movie/" + m.URL + "/"
}

// MovieShot is a still frame from a movie
type MovieShot struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:100;not null" json:"title" validate:"required,max=100"`
	Description string    `gorm:"type:text" json:"description"`
	Image       ImageRef  `gorm:"size:255" json:"image" validate:"max=255"`
	MovieID     uint      `gorm:"not null;index" json:"movie_id" validate:"required"`
	Movie       Movie     `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s MovieShot) String() string { return s.Title }

// RatingStar is one selectable value on the rating scale
type RatingStar struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Value uint16 `gorm:"not null;default:0" json:"value" validate:"max=32767"`
}

func (r RatingStar) String() string { return strconv.FormatUint(uint64(r.Value), 10) }

// Rating is a single vote for a movie from one IP address
type Rating struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	IP        string     `gorm:"column:ip;size:20;not null" json:"ip" validate:"required,max=20"`
	StarID    uint       `gorm:"not null;index" json:"star_id" validate:"required"`
	Star      RatingStar `gorm:"constraint:OnDelete:CASCADE" json:"star" validate:"-"`
	MovieID   uint       `gorm:"not null;index" json:"movie_id" validate:"required"`
	Movie     Movie      `gorm:"constraint:OnDelete:CASCADE" json:"movie" validate:"-"`
	CreatedAt time.Time  `json:"created_at"`
}

// String renders "{star} - {movie}"; Star and Movie must be loaded
func (r Rating) String() string {
	return fmt.Sprintf("%s - %s", r.Star, r.Movie)
}

// Review is a visitor comment on a movie. A review with a parent is a reply.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:254;not null" json:"email" validate:"required,email,max=254"`
	Name      string    `gorm:"size:100;not null" json:"name" validate:"required,max=100"`
	Text      string    `gorm:"size:5000;not null" json:"text" validate:"required,max=5000"`
	ParentID  *uint     `gorm:"index" json:"parent_id"`
	Parent    *Review   `gorm:"constraint:OnDelete:SET NULL" json:"-" validate:"-"`
	MovieID   uint      `gorm:"not null;index" json:"movie_id" validate:"required"`
	Movie     Movie     `gorm:"constraint:OnDelete:CASCADE" json:"-" validate:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// String renders "{name} - {movie}"; Movie must be loaded
func (r Review) String() string {
	return fmt.Sprintf("%s - %s", r.Name, r.Movie)
}

// IsReply reports whether the review answers another review
func (r Review) IsReply() bool { return r.ParentID != nil }

// Models returns every catalog model in dependency order
func Models() []interface{} {
	return []interface{}{
		&Category{},
		&Actor{},
		&Genre{},
		&Movie{},
		&MovieShot{},
		&RatingStar{},
		&Rating{},
		&Review{},
	}
}
