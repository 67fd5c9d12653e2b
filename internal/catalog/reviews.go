package catalog

import (
	"context"
	"errors"

	apperrors "github.com/Lebid-Dmytro/dj-movie/internal/errors"
	"gorm.io/gorm"
)

// CreateReview stores a review. A reply must answer a review of the same
// movie.
func (s *Store) CreateReview(ctx context.Context, r *Review) error {
	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if r.ParentID == nil {
			return tx.Omit("Parent", "Movie").Create(r).Error
		}

		var parent Review
		if err := tx.Select("id", "movie_id").First(&parent, *r.ParentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.Invalid("create_review", "review", "parent_id", "does not exist")
			}
			return err
		}
		if parent.MovieID != r.MovieID {
			return apperrors.Invalid("create_review", "review", "parent_id", "belongs to another movie")
		}
		return tx.Omit("Parent", "Movie").Create(r).Error
	})
	if err != nil {
		return fail("create_review", "review", r.Email, err)
	}

	s.logger.Debug("review created", "id", r.ID, "movie_id", r.MovieID, "reply", r.IsReply())
	return nil
}

func (s *Store) GetReview(ctx context.Context, id uint) (*Review, error) {
	var r Review
	if err := s.conn(ctx).Preload("Movie").First(&r, id).Error; err != nil {
		return nil, fail("get_review", "review", id, err)
	}
	return &r, nil
}

// TopLevelReviews returns the reviews of a movie that do not answer another
// review, in the order they were stored
func (s *Store) TopLevelReviews(ctx context.Context, movieID uint) ([]Review, error) {
	var out []Review
	err := s.conn(ctx).
		Where("movie_id = ? AND parent_id IS NULL", movieID).
		Order("id").
		Find(&out).Error
	if err != nil {
		return nil, fail("top_level_reviews", "review", movieID, err)
	}
	return out, nil
}

// Replies returns the direct answers to a review, oldest first
func (s *Store) Replies(ctx context.Context, reviewID uint) ([]Review, error) {
	var out []Review
	if err := s.conn(ctx).Where("parent_id = ?", reviewID).Order("id").Find(&out).Error; err != nil {
		return nil, fail("list_replies", "review", reviewID, err)
	}
	return out, nil
}

// ReviewThread is a review with its replies, recursively
type ReviewThread struct {
	Review  Review          `json:"review"`
	Replies []*ReviewThread `json:"replies,omitempty"`
}

// ReviewThreads loads every review of a movie in one query and arranges them
// under their top-level reviews
func (s *Store) ReviewThreads(ctx context.Context, movieID uint) ([]*ReviewThread, error) {
	var all []Review
	if err := s.conn(ctx).Where("movie_id = ?", movieID).Order("id").Find(&all).Error; err != nil {
		return nil, fail("review_threads", "review", movieID, err)
	}

	nodes := make(map[uint]*ReviewThread, len(all))
	for i := range all {
		nodes[all[i].ID] = &ReviewThread{Review: all[i]}
	}

	var roots []*ReviewThread
	for i := range all {
		node := nodes[all[i].ID]
		if all[i].ParentID != nil {
			if parent, ok := nodes[*all[i].ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots, nil
}
