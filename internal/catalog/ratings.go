package catalog

import (
	"context"

	"gorm.io/gorm"
)

// Rating stars

func (s *Store) CreateRatingStar(ctx context.Context, star *RatingStar) error {
	if err := s.conn(ctx).Create(star).Error; err != nil {
		return fail("create_rating_star", "rating_star", star.Value, err)
	}
	return nil
}

// ListRatingStars returns the rating scale, highest value first
func (s *Store) ListRatingStars(ctx context.Context) ([]RatingStar, error) {
	var out []RatingStar
	if err := s.conn(ctx).Order("value DESC").Order("id").Find(&out).Error; err != nil {
		return nil, fail("list_rating_stars", "rating_star", nil, err)
	}
	return out, nil
}

// SeedRatingStars creates a star for every value not on the scale yet and
// returns how many were added. Running it again adds nothing.
func (s *Store) SeedRatingStars(ctx context.Context, values []uint16) (int, error) {
	created := 0
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var existing []uint16
		if err := tx.Model(&RatingStar{}).Pluck("value", &existing).Error; err != nil {
			return err
		}

		have := make(map[uint16]bool, len(existing))
		for _, v := range existing {
			have[v] = true
		}

		for _, v := range values {
			if have[v] {
				continue
			}
			if err := tx.Create(&RatingStar{Value: v}).Error; err != nil {
				return err
			}
			have[v] = true
			created++
		}
		return nil
	})
	if err != nil {
		return 0, fail("seed_rating_stars", "rating_star", nil, err)
	}

	if created > 0 {
		s.logger.Info("rating stars seeded", "created", created)
	}
	return created, nil
}

// Ratings

// CreateRating records one vote. The same IP may vote for a movie more than
// once.
func (s *Store) CreateRating(ctx context.Context, r *Rating) error {
	if err := s.conn(ctx).Omit("Star", "Movie").Create(r).Error; err != nil {
		return fail("create_rating", "rating", r.IP, err)
	}
	s.logger.Debug("rating recorded", "movie_id", r.MovieID, "star_id", r.StarID)
	return nil
}

// ListRatings returns the votes for a movie with their star and movie loaded
func (s *Store) ListRatings(ctx context.Context, movieID uint) ([]Rating, error) {
	var out []Rating
	err := s.conn(ctx).
		Preload("Star").
		Preload("Movie").
		Where("movie_id = ?", movieID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, fail("list_ratings", "rating", movieID, err)
	}
	return out, nil
}

// RatingSummary aggregates the votes of one movie
type RatingSummary struct {
	MovieID uint    `json:"movie_id"`
	Votes   int64   `json:"votes"`
	Average float64 `json:"average"`
}

// SummarizeRatings returns the vote count and the average star value of a movie
func (s *Store) SummarizeRatings(ctx context.Context, movieID uint) (*RatingSummary, error) {
	var row struct {
		Votes   int64
		Average *float64
	}
	err := s.conn(ctx).
		Model(&Rating{}).
		Select("COUNT(ratings.id) AS votes, AVG(rating_stars.value) AS average").
		Joins("JOIN rating_stars ON rating_stars.id = ratings.star_id").
		Where("ratings.movie_id = ?", movieID).
		Scan(&row).Error
	if err != nil {
		return nil, fail("summarize_ratings", "rating", movieID, err)
	}

	summary := &RatingSummary{MovieID: movieID, Votes: row.Votes}
	if row.Average != nil {
		summary.Average = *row.Average
	}
	return summary, nil
}
