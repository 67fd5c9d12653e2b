package catalog

import (
	"context"
	"time"

	apperrors "github.com/Lebid-Dmytro/dj-movie/internal/errors"
	"gorm.io/gorm"
)

// DeletionResult reports the outcome of deleting a record together with the
// records that depended on it
type DeletionResult struct {
	Entity       string        `json:"entity"`
	ID           uint          `json:"id"`
	CleanupStats *CleanupStats `json:"cleanup_stats"`
	Duration     time.Duration `json:"duration"`
	Timestamp    time.Time     `json:"timestamp"`
}

// CleanupStats tracks what was removed or detached during a deletion
type CleanupStats struct {
	MoviesDetached       int64 `json:"movies_detached"`
	RepliesDetached      int64 `json:"replies_detached"`
	ShotsDeleted         int64 `json:"shots_deleted"`
	RatingsDeleted       int64 `json:"ratings_deleted"`
	ReviewsDeleted       int64 `json:"reviews_deleted"`
	DirectorLinksRemoved int64 `json:"director_links_removed"`
	ActorLinksRemoved    int64 `json:"actor_links_removed"`
	GenreLinksRemoved    int64 `json:"genre_links_removed"`
}

type cleanupFunc func(tx *gorm.DB, id uint, stats *CleanupStats) error

// deleteWithCleanup runs cleanup and removes the record in one transaction.
// Nothing is touched when the record does not exist.
func (s *Store) deleteWithCleanup(ctx context.Context, entity string, id uint, model interface{}, cleanup cleanupFunc) (*DeletionResult, error) {
	op := "delete_" + entity
	start := time.Now()
	result := &DeletionResult{
		Entity:       entity,
		ID:           id,
		CleanupStats: &CleanupStats{},
		Timestamp:    start,
	}

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return apperrors.NotFound(op, entity, id)
		}

		if cleanup != nil {
			if err := cleanup(tx, id, result.CleanupStats); err != nil {
				return err
			}
		}
		return tx.Delete(model, id).Error
	})
	if err != nil {
		return nil, fail(op, entity, id, err)
	}

	result.Duration = time.Since(start)
	s.logger.Info("record deleted",
		"entity", entity,
		"id", id,
		"movies_detached", result.CleanupStats.MoviesDetached,
		"replies_detached", result.CleanupStats.RepliesDetached,
		"shots_deleted", result.CleanupStats.ShotsDeleted,
		"ratings_deleted", result.CleanupStats.RatingsDeleted,
		"reviews_deleted", result.CleanupStats.ReviewsDeleted,
		"duration", result.Duration)
	return result, nil
}

// DeleteCategory removes a category. Its movies stay, without a category.
func (s *Store) DeleteCategory(ctx context.Context, id uint) (*DeletionResult, error) {
	return s.deleteWithCleanup(ctx, "category", id, &Category{}, func(tx *gorm.DB, id uint, stats *CleanupStats) error {
		res := tx.Model(&Movie{}).Where("category_id = ?", id).UpdateColumn("category_id", nil)
		stats.MoviesDetached = res.RowsAffected
		return res.Error
	})
}

// DeleteActor removes an actor and its director and actor credits
func (s *Store) DeleteActor(ctx context.Context, id uint) (*DeletionResult, error) {
	return s.deleteWithCleanup(ctx, "actor", id, &Actor{}, func(tx *gorm.DB, id uint, stats *CleanupStats) error {
		var err error
		if stats.DirectorLinksRemoved, err = removeLinks(tx, "movie_directors", "actor_id", id); err != nil {
			return err
		}
		stats.ActorLinksRemoved, err = removeLinks(tx, "movie_actors", "actor_id", id)
		return err
	})
}

// DeleteGenre removes a genre and its links to movies
func (s *Store) DeleteGenre(ctx context.Context, id uint) (*DeletionResult, error) {
	return s.deleteWithCleanup(ctx, "genre", id, &Genre{}, func(tx *gorm.DB, id uint, stats *CleanupStats) error {
		var err error
		stats.GenreLinksRemoved, err = removeLinks(tx, "movie_genres", "genre_id", id)
		return err
	})
}

// DeleteMovie removes a movie with its shots, ratings, reviews and links
func (s *Store) DeleteMovie(ctx context.Context, id uint) (*DeletionResult, error) {
	return s.deleteWithCleanup(ctx, "movie", id, &Movie{}, func(tx *gorm.DB, id uint, stats *CleanupStats) error {
		res := tx.Where("movie_id = ?", id).Delete(&MovieShot{})
		if res.Error != nil {
			return res.Error
		}
		stats.ShotsDeleted = res.RowsAffected

		res = tx.Where("movie_id = ?", id).Delete(&Rating{})
		if res.Error != nil {
			return res.Error
		}
		stats.RatingsDeleted = res.RowsAffected

		// detach replies first so the reviews can go in any order
		if err := tx.Model(&Review{}).Where("movie_id = ?", id).UpdateColumn("parent_id", nil).Error; err != nil {
			return err
		}
		res = tx.Where("movie_id = ?", id).Delete(&Review{})
		if res.Error != nil {
			return res.Error
		}
		stats.ReviewsDeleted = res.RowsAffected

		var err error
		if stats.DirectorLinksRemoved, err = removeLinks(tx, "movie_directors", "movie_id", id); err != nil {
			return err
		}
		if stats.ActorLinksRemoved, err = removeLinks(tx, "movie_actors", "movie_id", id); err != nil {
			return err
		}
		stats.GenreLinksRemoved, err = removeLinks(tx, "movie_genres", "movie_id", id)
		return err
	})
}

// DeleteRatingStar removes a star and every vote cast with it
func (s *Store) DeleteRatingStar(ctx context.Context, id uint) (*DeletionResult, error) {
	return s.deleteWithCleanup(ctx, "rating_star", id, &RatingStar{}, func(tx *gorm.DB, id uint, stats *CleanupStats) error {
		res := tx.Where("star_id = ?", id).Delete(&Rating{})
		stats.RatingsDeleted = res.RowsAffected
		return res.Error
	})
}

// DeleteRating removes a single vote
func (s *Store) DeleteRating(ctx context.Context, id uint) (*DeletionResult, error) {
	return s.deleteWithCleanup(ctx, "rating", id, &Rating{}, nil)
}

// DeleteReview removes a review. Its replies stay, as top-level reviews.
func (s *Store) DeleteReview(ctx context.Context, id uint) (*DeletionResult, error) {
	return s.deleteWithCleanup(ctx, "review", id, &Review{}, func(tx *gorm.DB, id uint, stats *CleanupStats) error {
		res := tx.Model(&Review{}).Where("parent_id = ?", id).UpdateColumn("parent_id", nil)
		stats.RepliesDetached = res.RowsAffected
		return res.Error
	})
}

func removeLinks(tx *gorm.DB, table, column string, id uint) (int64, error) {
	res := tx.Exec("DELETE FROM "+table+" WHERE "+column+" = ?", id)
	return res.RowsAffected, res.Error
}
