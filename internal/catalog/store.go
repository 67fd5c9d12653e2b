package catalog

import (
	"context"
	"errors"

	"github.com/Lebid-Dmytro/dj-movie/internal/database"
	apperrors "github.com/Lebid-Dmytro/dj-movie/internal/errors"
	"github.com/hashicorp/go-hclog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store reads and writes catalog records. It is safe for concurrent use.
type Store struct {
	db     *gorm.DB
	logger hclog.Logger
}

// NewStore creates a store on top of db
func NewStore(db *gorm.DB, logger hclog.Logger) *Store {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Store{
		db:     db,
		logger: logger.Named("catalog"),
	}
}

// DB returns the underlying connection
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Migrate creates or updates every catalog table, join table and foreign key
func Migrate(ctx context.Context, db *gorm.DB) error {
	registry := database.NewModelRegistry()
	if err := registry.RegisterModels(Models()...); err != nil {
		return err
	}
	return registry.AutoMigrateAll(db.WithContext(ctx))
}

func (s *Store) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

// fail translates err, reporting a missing record with its id
func fail(op, entity string, id interface{}, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(op, entity, id)
	}
	return apperrors.FromDB(op, entity, err)
}

func requireID(op, entity string, id uint) error {
	if id == 0 {
		return apperrors.Invalid(op, entity, "id", "must be set")
	}
	return nil
}

// update writes every column of value except the primary key, the creation
// time and associations. value must carry its primary key.
func update(tx *gorm.DB, value interface{}) error {
	result := tx.Model(value).
		Select("*").
		Omit("id", "created_at", clause.Associations).
		Updates(value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Categories

func (s *Store) CreateCategory(ctx context.Context, c *Category) error {
	if err := s.conn(ctx).Create(c).Error; err != nil {
		return fail("create_category", "category", c.URL, err)
	}
	s.logger.Debug("category created", "id", c.ID, "url", c.URL)
	return nil
}

func (s *Store) GetCategory(ctx context.Context, id uint) (*Category, error) {
	var c Category
	if err := s.conn(ctx).First(&c, id).Error; err != nil {
		return nil, fail("get_category", "category", id, err)
	}
	return &c, nil
}

func (s *Store) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	var c Category
	if err := s.conn(ctx).Where("url = ?", slug).First(&c).Error; err != nil {
		return nil, fail("get_category", "category", slug, err)
	}
	return &c, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]Category, error) {
	var out []Category
	if err := s.conn(ctx).Order("name, id").Find(&out).Error; err != nil {
		return nil, fail("list_categories", "category", nil, err)
	}
	return out, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *Category) error {
	if err := requireID("update_category", "category", c.ID); err != nil {
		return err
	}
	if err := update(s.conn(ctx), c); err != nil {
		return fail("update_category", "category", c.ID, err)
	}
	return nil
}

// Actors

func (s *Store) CreateActor(ctx context.Context, a *Actor) error {
	if err := s.conn(ctx).Create(a).Error; err != nil {
		return fail("create_actor", "actor", a.Name, err)
	}
	s.logger.Debug("actor created", "id", a.ID, "name", a.Name)
	return nil
}

func (s *Store) GetActor(ctx context.Context, id uint) (*Actor, error) {
	var a Actor
	if err := s.conn(ctx).First(&a, id).Error; err != nil {
		return nil, fail("get_actor", "actor", id, err)
	}
	return &a, nil
}

// GetActorByName resolves the name segment of an actor's canonical path.
// Names are not unique; the oldest record wins.
func (s *Store) GetActorByName(ctx context.Context, name string) (*Actor, error) {
	var a Actor
	if err := s.conn(ctx).Where("name = ?", name).Order("id").First(&a).Error; err != nil {
		return nil, fail("get_actor", "actor", name, err)
	}
	return &a, nil
}

func (s *Store) ListActors(ctx context.Context) ([]Actor, error) {
	var out []Actor
	if err := s.conn(ctx).Order("name, id").Find(&out).Error; err != nil {
		return nil, fail("list_actors", "actor", nil, err)
	}
	return out, nil
}

func (s *Store) UpdateActor(ctx context.Context, a *Actor) error {
	if err := requireID("update_actor", "actor", a.ID); err != nil {
		return err
	}
	if err := update(s.conn(ctx), a); err != nil {
		return fail("update_actor", "actor", a.ID, err)
	}
	return nil
}

// Genres

func (s *Store) CreateGenre(ctx context.Context, g *Genre) error {
	if err := s.conn(ctx).Create(g).Error; err != nil {
		return fail("create_genre", "genre", g.URL, err)
	}
	s.logger.Debug("genre created", "id", g.ID, "url", g.URL)
	return nil
}

func (s *Store) GetGenre(ctx context.Context, id uint) (*Genre, error) {
	var g Genre
	if err := s.conn(ctx).First(&g, id).Error; err != nil {
		return nil, fail("get_genre", "genre", id, err)
	}
	return &g, nil
}

func (s *Store) GetGenreBySlug(ctx context.Context, slug string) (*Genre, error) {
	var g Genre
	if err := s.conn(ctx).Where("url = ?", slug).First(&g).Error; err != nil {
		return nil, fail("get_genre", "genre", slug, err)
	}
	return &g, nil
}

func (s *Store) ListGenres(ctx context.Context) ([]Genre, error) {
	var out []Genre
	if err := s.conn(ctx).Order("name, id").Find(&out).Error; err != nil {
		return nil, fail("list_genres", "genre", nil, err)
	}
	return out, nil
}

func (s *Store) UpdateGenre(ctx context.Context, g *Genre) error {
	if err := requireID("update_genre", "genre", g.ID); err != nil {
		return err
	}
	if err := update(s.conn(ctx), g); err != nil {
		return fail("update_genre", "genre", g.ID, err)
	}
	return nil
}
