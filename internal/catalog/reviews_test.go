package catalog

import (
	"context"
	"testing"

	apperrors "github.com/Lebid-Dmytro/dj-movie/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustReview(t *testing.T, s *Store, movieID uint, name string, parent *Review) *Review {
	t.Helper()
	r := &Review{Email: "visitor@example.com", Name: name, Text: "text from " + name, MovieID: movieID}
	if parent != nil {
		r.ParentID = &parent.ID
	}
	require.NoError(t, s.CreateReview(context.Background(), r))
	return r
}

func reviewIDs(reviews []Review) []uint {
	out := make([]uint, 0, len(reviews))
	for _, r := range reviews {
		out = append(out, r.ID)
	}
	return out
}

func TestTopLevelReviews(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	m := mustMovie(t, s, &Movie{Title: "Inception", URL: "inception"})
	other := mustMovie(t, s, &Movie{Title: "Memento", URL: "memento"})

	r1 := mustReview(t, s, m.ID, "R1", nil)
	r2 := mustReview(t, s, m.ID, "R2", r1)
	r3 := mustReview(t, s, m.ID, "R3", nil)
	mustReview(t, s, other.ID, "elsewhere", nil)

	top, err := s.TopLevelReviews(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{r1.ID, r3.ID}, reviewIDs(top))

	replies, err := s.Replies(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{r2.ID}, reviewIDs(replies))
	assert.True(t, replies[0].IsReply())
}

func TestReviewString(t *testing.T) {
	s := setupTestStore(t)

	m := mustMovie(t, s, &Movie{Title: "Inception", URL: "inception"})
	r := mustReview(t, s, m.ID, "Ann", nil)

	got, err := s.GetReview(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ann - Inception", got.String())
}

func TestReplyMustAnswerSameMovie(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	m := mustMovie(t, s, &Movie{Title: "Inception", URL: "inception"})
	other := mustMovie(t, s, &Movie{Title: "Memento", URL: "memento"})
	root := mustReview(t, s, m.ID, "Ann", nil)

	err := s.CreateReview(ctx, &Review{Email: "b@example.com", Name: "Bob", Text: "hi", MovieID: other.ID, ParentID: &root.ID})
	require.Error(t, err)
	var cErr *apperrors.CatalogError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, "parent_id", cErr.Field)

	missing := uint(1234)
	err = s.CreateReview(ctx, &Review{Email: "b@example.com", Name: "Bob", Text: "hi", MovieID: m.ID, ParentID: &missing})
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestReviewRejectsBadEmail(t *testing.T) {
	s := setupTestStore(t)

	m := mustMovie(t, s, &Movie{Title: "Inception", URL: "inception"})
	err := s.CreateReview(context.Background(), &Review{Email: "not-an-email", Name: "Ann", Text: "hi", MovieID: m.ID})

	var cErr *apperrors.CatalogError
	require.ErrorAs(t, err, &cErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, cErr.Type)
	assert.Equal(t, "email", cErr.Field)
}

func TestDeleteParentReviewKeepsReplies(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	m := mustMovie(t, s, &Movie{Title: "Inception", URL: "inception"})
	r1 := mustReview(t, s, m.ID, "R1", nil)
	r2 := mustReview(t, s, m.ID, "R2", r1)
	r3 := mustReview(t, s, m.ID, "R3", r1)

	result, err := s.DeleteReview(ctx, r1.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.CleanupStats.RepliesDetached)

	got, err := s.GetReview(ctx, r2.ID)
	require.NoError(t, err)
	assert.Nil(t, got.ParentID)

	top, err := s.TopLevelReviews(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, []uint{r2.ID, r3.ID}, reviewIDs(top))
}

func TestReviewThreads(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	m := mustMovie(t, s, &Movie{Title: "Inception", URL: "inception"})
	r1 := mustReview(t, s, m.ID, "R1", nil)
	r2 := mustReview(t, s, m.ID, "R2", r1)
	r3 := mustReview(t, s, m.ID, "R3", r2)
	r4 := mustReview(t, s, m.ID, "R4", nil)

	threads, err := s.ReviewThreads(ctx, m.ID)
	require.NoError(t, err)
	require.Len(t, threads, 2)

	assert.Equal(t, r1.ID, threads[0].Review.ID)
	require.Len(t, threads[0].Replies, 1)
	assert.Equal(t, r2.ID, threads[0].Replies[0].Review.ID)
	require.Len(t, threads[0].Replies[0].Replies, 1)
	assert.Equal(t, r3.ID, threads[0].Replies[0].Replies[0].Review.ID)

	assert.Equal(t, r4.ID, threads[1].Review.ID)
	assert.Empty(t, threads[1].Replies)
}
