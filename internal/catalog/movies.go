package catalog

import (
	"context"

	"gorm.io/gorm"
)

// MovieQuery filters ListMovies. The zero value lists published movies.
type MovieQuery struct {
	IncludeDrafts bool
	CategoryID    uint
	GenreIDs      []uint
	Years         []uint16
	Limit         int
	Offset        int
}

// movie link tables and the column naming the linked record
var movieLinks = []struct {
	field  string
	table  string
	column string
}{
	{"Directors", "movie_directors", "actor_id"},
	{"Actors", "movie_actors", "actor_id"},
	{"Genres", "movie_genres", "genre_id"},
}

// CreateMovie stores m and links it to its existing directors, actors and
// genres. Linked records are referenced by ID only and are never written.
func (s *Store) CreateMovie(ctx context.Context, m *Movie) error {
	syncCategoryID(m)

	err := s.conn(ctx).
		Omit("Category", "Directors.*", "Actors.*", "Genres.*").
		Create(m).Error
	if err != nil {
		return fail("create_movie", "movie", m.URL, err)
	}

	s.logger.Debug("movie created", "id", m.ID, "url", m.URL, "draft", m.Draft)
	return nil
}

func (s *Store) GetMovie(ctx context.Context, id uint) (*Movie, error) {
	var m Movie
	if err := preloadMovie(s.conn(ctx)).First(&m, id).Error; err != nil {
		return nil, fail("get_movie", "movie", id, err)
	}
	return &m, nil
}

// GetMovieBySlug loads a movie with its category, people and genres.
// Drafts are returned too; hiding them is up to the caller.
func (s *Store) GetMovieBySlug(ctx context.Context, slug string) (*Movie, error) {
	var m Movie
	if err := preloadMovie(s.conn(ctx)).Where("url = ?", slug).First(&m).Error; err != nil {
		return nil, fail("get_movie", "movie", slug, err)
	}
	return &m, nil
}

func preloadMovie(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Category").
		Preload("Directors", orderByID).
		Preload("Actors", orderByID).
		Preload("Genres", orderByID)
}

func orderByID(tx *gorm.DB) *gorm.DB {
	return tx.Order("id")
}

// ListMovies returns the movies matching q, newest first
func (s *Store) ListMovies(ctx context.Context, q MovieQuery) ([]Movie, error) {
	tx := s.conn(ctx).Model(&Movie{})

	if !q.IncludeDrafts {
		tx = tx.Where("draft = ?", false)
	}
	if q.CategoryID != 0 {
		tx = tx.Where("category_id = ?", q.CategoryID)
	}
	if len(q.Years) > 0 {
		tx = tx.Where("year IN ?", q.Years)
	}
	if len(q.GenreIDs) > 0 {
		tx = tx.Where("id IN (?)",
			s.conn(ctx).Table("movie_genres").Select("movie_id").Where("genre_id IN ?", q.GenreIDs))
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var out []Movie
	if err := tx.Preload("Category").Preload("Genres", orderByID).Order("id DESC").Find(&out).Error; err != nil {
		return nil, fail("list_movies", "movie", nil, err)
	}
	return out, nil
}

// UpdateMovie writes every column of m, so m should be a fully loaded record.
// A nil Directors, Actors or Genres slice leaves those links untouched; a
// non-nil slice, even an empty one, replaces them.
func (s *Store) UpdateMovie(ctx context.Context, m *Movie) error {
	if err := requireID("update_movie", "movie", m.ID); err != nil {
		return err
	}
	syncCategoryID(m)

	err := s.conn(ctx).Transaction(func(tx *gorm.DB) error {
		if err := update(tx, m); err != nil {
			return err
		}
		return replaceMovieLinks(tx, m)
	})
	if err != nil {
		return fail("update_movie", "movie", m.ID, err)
	}

	s.logger.Debug("movie updated", "id", m.ID, "url", m.URL)
	return nil
}

func replaceMovieLinks(tx *gorm.DB, m *Movie) error {
	ids := make(map[string][]uint, len(movieLinks))
	if m.Directors != nil {
		ids["Directors"] = actorIDs(m.Directors)
	}
	if m.Actors != nil {
		ids["Actors"] = actorIDs(m.Actors)
	}
	if m.Genres != nil {
		ids["Genres"] = genreIDs(m.Genres)
	}

	for _, link := range movieLinks {
		if _, ok := ids[link.field]; !ok {
			continue
		}
		if err := tx.Exec("DELETE FROM "+link.table+" WHERE movie_id = ?", m.ID).Error; err != nil {
			return err
		}

		insert := "INSERT INTO " + link.table + " (movie_id, " + link.column + ") VALUES (?, ?)"
		for _, id := range ids[link.field] {
			if err := tx.Exec(insert, m.ID, id).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// syncCategoryID keeps CategoryID in step with an attached Category
func syncCategoryID(m *Movie) {
	if m.Category != nil && m.Category.ID != 0 {
		id := m.Category.ID
		m.CategoryID = &id
	}
}

func actorIDs(actors []Actor) []uint {
	return uniqueIDs(len(actors), func(i int) uint { return actors[i].ID })
}

func genreIDs(genres []Genre) []uint {
	return uniqueIDs(len(genres), func(i int) uint { return genres[i].ID })
}

func uniqueIDs(n int, id func(int) uint) []uint {
	seen := make(map[uint]bool, n)
	out := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		v := id(i)
		if v == 0 || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Movie shots

func (s *Store) CreateMovieShot(ctx context.Context, shot *MovieShot) error {
	if err := s.conn(ctx).Omit("Movie").Create(shot).Error; err != nil {
		return fail("create_movie_shot", "movie_shot", shot.Title, err)
	}
	return nil
}

// ListMovieShots returns the stills of a movie in upload order
func (s *Store) ListMovieShots(ctx context.Context, movieID uint) ([]MovieShot, error) {
	var out []MovieShot
	if err := s.conn(ctx).Where("movie_id = ?", movieID).Order("id").Find(&out).Error; err != nil {
		return nil, fail("list_movie_shots", "movie_shot", movieID, err)
	}
	return out, nil
}

// DeleteMovieShot removes a single still
func (s *Store) DeleteMovieShot(ctx context.Context, id uint) (*DeletionResult, error) {
	return s.deleteWithCleanup(ctx, "movie_shot", id, &MovieShot{}, nil)
}
