package database

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/Lebid-Dmytro/dj-movie/internal/logger"
	"gorm.io/gorm"
)

// ModelRegistry collects the models that make up the schema
type ModelRegistry struct {
	models []interface{}
	types  map[reflect.Type]struct{}
	mu     sync.RWMutex
}

// NewModelRegistry creates a new model registry
func NewModelRegistry() *ModelRegistry {
	return &ModelRegistry{
		models: make([]interface{}, 0),
		types:  make(map[reflect.Type]struct{}),
	}
}

// RegisterModel adds a model. Registration order is migration order, so
// referenced tables must be registered before the tables that point at them.
func (mr *ModelRegistry) RegisterModel(model interface{}) error {
	if model == nil {
		return fmt.Errorf("cannot register nil model")
	}

	t := reflect.TypeOf(model)
	if t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("model must be a pointer to a struct, got %T", model)
	}

	mr.mu.Lock()
	defer mr.mu.Unlock()

	if _, ok := mr.types[t]; ok {
		return fmt.Errorf("model %T already registered", model)
	}
	mr.types[t] = struct{}{}
	mr.models = append(mr.models, model)

	logger.Debug("registered model", "model", fmt.Sprintf("%T", model))
	return nil
}

// RegisterModels registers each model in order, stopping at the first error
func (mr *ModelRegistry) RegisterModels(models ...interface{}) error {
	for _, m := range models {
		if err := mr.RegisterModel(m); err != nil {
			return err
		}
	}
	return nil
}

// GetModels returns all registered models
func (mr *ModelRegistry) GetModels() []interface{} {
	mr.mu.RLock()
	defer mr.mu.RUnlock()

	models := make([]interface{}, len(mr.models))
	copy(models, mr.models)
	return models
}

// GetModelCount returns the number of registered models
func (mr *ModelRegistry) GetModelCount() int {
	mr.mu.RLock()
	defer mr.mu.RUnlock()
	return len(mr.models)
}

// AutoMigrateAll creates or updates the tables, indexes, join tables and
// foreign keys of every registered model
func (mr *ModelRegistry) AutoMigrateAll(db *gorm.DB) error {
	models := mr.GetModels()
	if len(models) == 0 {
		logger.Info("no models registered for auto-migration")
		return nil
	}

	logger.Info("auto-migrating models", "count", len(models))
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto-migrate models: %w", err)
	}

	logger.Info("auto-migration complete")
	return nil
}
