package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Lebid-Dmytro/dj-movie/internal/logger"
	"gopkg.in/yaml.v3"
)

// Config holds the complete application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig `yaml:"database" json:"database"`

	// Media (image reference) configuration
	Media MediaConfig `yaml:"media" json:"media"`

	// Catalog behaviour
	Catalog CatalogConfig `yaml:"catalog" json:"catalog"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging"`
}

// DatabaseConfig holds storage engine settings
type DatabaseConfig struct {
	Type            string        `yaml:"type" json:"type" env:"DATABASE_TYPE"`
	URL             string        `yaml:"url" json:"url" env:"DATABASE_URL"`
	Host            string        `yaml:"host" json:"host" env:"POSTGRES_HOST"`
	Port            int           `yaml:"port" json:"port" env:"POSTGRES_PORT"`
	Username        string        `yaml:"username" json:"username" env:"POSTGRES_USER"`
	Password        string        `yaml:"password" json:"-" env:"POSTGRES_PASSWORD"`
	Database        string        `yaml:"database" json:"database" env:"POSTGRES_DB"`
	SSLMode         string        `yaml:"ssl_mode" json:"ssl_mode" env:"POSTGRES_SSLMODE"`
	DataDir         string        `yaml:"data_dir" json:"data_dir" env:"DJMOVIE_DATA_DIR"`
	DatabasePath    string        `yaml:"database_path" json:"database_path" env:"SQLITE_PATH"`
	MaxOpenConns    int           `yaml:"max_open_conns" json:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" json:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" json:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" json:"conn_max_idle_time" env:"DB_CONN_MAX_IDLE_TIME"`
	LogQueries      bool          `yaml:"log_queries" json:"log_queries" env:"DB_LOG_QUERIES"`
}

// MediaConfig describes where image references resolve to
type MediaConfig struct {
	URL  string `yaml:"url" json:"url" env:"DJMOVIE_MEDIA_URL"`
	Root string `yaml:"root" json:"root" env:"DJMOVIE_MEDIA_ROOT"`
}

// CatalogConfig holds catalog-level settings
type CatalogConfig struct {
	SeedRatingStars bool  `yaml:"seed_rating_stars" json:"seed_rating_stars" env:"DJMOVIE_SEED_STARS"`
	RatingStars     []int `yaml:"rating_stars" json:"rating_stars" env:"DJMOVIE_RATING_STARS"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" json:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" json:"format" env:"LOG_FORMAT"`
}

// ConfigWatcher is called when configuration changes
type ConfigWatcher func(oldConfig, newConfig *Config)

// ConfigManager owns the current configuration and its reload lifecycle
type ConfigManager struct {
	config     *Config
	configPath string
	watchers   []ConfigWatcher
	mu         sync.RWMutex
}

var (
	globalConfigManager *ConfigManager
	configOnce          sync.Once
)

// GetConfigManager returns the global configuration manager instance
func GetConfigManager() *ConfigManager {
	configOnce.Do(func() {
		globalConfigManager = NewConfigManager()
	})
	return globalConfigManager
}

// NewConfigManager creates a new configuration manager
func NewConfigManager() *ConfigManager {
	return &ConfigManager{
		config:   DefaultConfig(),
		watchers: make([]ConfigWatcher, 0),
	}
}

// DefaultConfig returns the default application configuration
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			Type:            "sqlite",
			Host:            "localhost",
			Port:            5432,
			Username:        "djmovie",
			Database:        "djmovie",
			SSLMode:         "disable",
			DataDir:         "./data",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: time.Hour,
			ConnMaxIdleTime: 30 * time.Minute,
			LogQueries:      false,
		},
		Media: MediaConfig{
			URL:  "/media/",
			Root: "./media",
		},
		Catalog: CatalogConfig{
			SeedRatingStars: true,
			RatingStars:     []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// LoadConfig loads configuration from file and environment variables.
// Watchers run after the new configuration is in place.
func (cm *ConfigManager) LoadConfig(configPath string) error {
	oldConfig, newConfig, watchers, err := cm.load(configPath)
	if err != nil {
		return err
	}

	for _, watcher := range watchers {
		watcher(oldConfig, newConfig)
	}
	return nil
}

func (cm *ConfigManager) load(configPath string) (*Config, *Config, []ConfigWatcher, error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	oldConfig := *cm.config
	cm.configPath = configPath

	newConfig := DefaultConfig()

	if configPath != "" && fileExists(configPath) {
		if err := loadFromFile(configPath, newConfig); err != nil {
			return nil, nil, nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		logger.Debug("configuration file read", "path", configPath)
	}

	if err := loadStructFromEnv(reflect.ValueOf(newConfig).Elem()); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	if err := Validate(newConfig); err != nil {
		return nil, nil, nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	applyDerivedConfig(newConfig)
	cm.config = newConfig

	watchers := append([]ConfigWatcher(nil), cm.watchers...)
	return &oldConfig, newConfig, watchers, nil
}

// GetConfig returns a copy of the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	configCopy := *cm.config
	configCopy.Catalog.RatingStars = append([]int(nil), cm.config.Catalog.RatingStars...)
	return &configCopy
}

// Path returns the file the configuration was last loaded from
func (cm *ConfigManager) Path() string {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.configPath
}

// AddWatcher adds a configuration change watcher
func (cm *ConfigManager) AddWatcher(watcher ConfigWatcher) {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.watchers = append(cm.watchers, watcher)
}

// SaveConfig writes the current configuration to its file
func (cm *ConfigManager) SaveConfig() error {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	if cm.configPath == "" {
		return fmt.Errorf("no config path set")
	}
	return saveToFile(cm.configPath, cm.config)
}

func loadFromFile(path string, config *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, config)
	case ".json":
		return json.Unmarshal(data, config)
	default:
		return fmt.Errorf("unsupported config file format: %s", filepath.Ext(path))
	}
}

func saveToFile(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var data []byte
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(config)
	case ".json":
		data, err = json.MarshalIndent(config, "", "  ")
	default:
		return fmt.Errorf("unsupported config file format: %s", filepath.Ext(path))
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// loadStructFromEnv overrides fields tagged with env:"NAME" when NAME is set
func loadStructFromEnv(v reflect.Value) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		if !field.CanSet() {
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := loadStructFromEnv(field); err != nil {
				return err
			}
			continue
		}

		envTag := fieldType.Tag.Get("env")
		if envTag == "" {
			continue
		}

		envValue, ok := os.LookupEnv(envTag)
		if !ok || envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("failed to set field %s from %s: %w", fieldType.Name, envTag, err)
		}
	}

	return nil
}

func setFieldValue(field reflect.Value, value string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			duration, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(duration))
		} else {
			intVal, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(intVal)
		}
	case reflect.Bool:
		boolVal, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(boolVal)
	case reflect.Slice:
		parts := strings.Split(value, ",")
		switch field.Type().Elem().Kind() {
		case reflect.String:
			for i, p := range parts {
				parts[i] = strings.TrimSpace(p)
			}
			field.Set(reflect.ValueOf(parts))
		case reflect.Int:
			ints := make([]int, len(parts))
			for i, p := range parts {
				n, err := strconv.Atoi(strings.TrimSpace(p))
				if err != nil {
					return err
				}
				ints[i] = n
			}
			field.Set(reflect.ValueOf(ints))
		default:
			return fmt.Errorf("unsupported slice type: %v", field.Type())
		}
	default:
		return fmt.Errorf("unsupported field type: %v", field.Kind())
	}

	return nil
}

// Validate checks a configuration for values the rest of the process cannot use
func Validate(config *Config) error {
	switch config.Database.Type {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database type: %s", config.Database.Type)
	}

	if config.Database.Type == "postgres" && config.Database.URL == "" {
		if config.Database.Port < 1 || config.Database.Port > 65535 {
			return fmt.Errorf("invalid postgres port: %d", config.Database.Port)
		}
	}

	if config.Database.MaxOpenConns < 0 || config.Database.MaxIdleConns < 0 {
		return fmt.Errorf("connection pool sizes must not be negative")
	}

	for _, v := range config.Catalog.RatingStars {
		if v < 0 || v > 32767 {
			return fmt.Errorf("rating star value out of range: %d", v)
		}
	}

	switch strings.ToLower(config.Logging.Format) {
	case "json", "text", "":
	default:
		return fmt.Errorf("unsupported log format: %s", config.Logging.Format)
	}

	return nil
}

func applyDerivedConfig(config *Config) {
	if config.Database.DatabasePath == "" && config.Database.Type == "sqlite" {
		config.Database.DatabasePath = filepath.Join(config.Database.DataDir, "dj-movie.db")
	}

	if !strings.HasSuffix(config.Media.URL, "/") {
		config.Media.URL += "/"
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Get returns the current global configuration
func Get() *Config {
	return GetConfigManager().GetConfig()
}

// Load loads configuration from the specified path into the global manager
func Load(configPath string) error {
	return GetConfigManager().LoadConfig(configPath)
}

// AddWatcher adds a global configuration watcher
func AddWatcher(watcher ConfigWatcher) {
	GetConfigManager().AddWatcher(watcher)
}

// Save saves the current global configuration
func Save() error {
	return GetConfigManager().SaveConfig()
}
