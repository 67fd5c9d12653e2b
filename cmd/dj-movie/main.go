package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Lebid-Dmytro/dj-movie/internal/catalog"
	"github.com/Lebid-Dmytro/dj-movie/internal/config"
	"github.com/Lebid-Dmytro/dj-movie/internal/database"
	"github.com/Lebid-Dmytro/dj-movie/internal/logger"
	"github.com/joho/godotenv"
)

type options struct {
	configPath string
	envFile    string
	migrate    bool
	seedStars  bool
	describe   bool
	watch      bool
}

func main() {
	opts := parseFlags(os.Args[1:])

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "dj-movie: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags(args []string) options {
	var opts options
	fs := flag.NewFlagSet("dj-movie", flag.ExitOnError)
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML or JSON configuration file")
	fs.StringVar(&opts.envFile, "env-file", ".env", "dotenv file loaded before the configuration")
	fs.BoolVar(&opts.migrate, "migrate", false, "create or update the catalog schema")
	fs.BoolVar(&opts.seedStars, "seed-stars", false, "create the configured rating stars")
	fs.BoolVar(&opts.describe, "describe", false, "print the catalog constraint table as YAML")
	fs.BoolVar(&opts.watch, "watch", false, "keep running and reload the configuration on change")
	fs.Parse(args)

	// with no action requested, bring the schema up to date
	if !opts.migrate && !opts.seedStars && !opts.describe && !opts.watch {
		opts.migrate = true
	}
	return opts
}

func run(ctx context.Context, opts options, stdout io.Writer) error {
	if opts.envFile != "" {
		if err := godotenv.Load(opts.envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to load %s: %w", opts.envFile, err)
		}
	}

	configPath := resolveConfigPath(opts.configPath)
	if err := config.Load(configPath); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	cfg := config.Get()

	log := logger.Init(logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
	if configPath != "" {
		log.Info("configuration loaded", "path", configPath)
	}

	config.AddWatcher(func(oldCfg, newCfg *config.Config) {
		if oldCfg.Logging.Level != newCfg.Logging.Level {
			logger.SetLevel(newCfg.Logging.Level)
			log.Info("log level changed", "from", oldCfg.Logging.Level, "to", newCfg.Logging.Level)
		}
	})

	if opts.describe {
		out, err := catalog.SchemaYAML()
		if err != nil {
			return err
		}
		if _, err := stdout.Write(out); err != nil {
			return err
		}
		if !opts.migrate && !opts.seedStars && !opts.watch {
			return nil
		}
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// seeding needs the rating_stars table
	if opts.migrate || opts.seedStars {
		if err := catalog.Migrate(ctx, db); err != nil {
			return err
		}
	}

	log.Info("catalog ready", "database", cfg.Database.Type, "media_url", cfg.Media.URL, "media_root", cfg.Media.Root)

	store := catalog.NewStore(db, log)
	if opts.seedStars || (opts.migrate && cfg.Catalog.SeedRatingStars) {
		if _, err := store.SeedRatingStars(ctx, starValues(cfg.Catalog.RatingStars)); err != nil {
			return err
		}
	}

	if !opts.watch {
		return nil
	}
	if configPath == "" {
		return fmt.Errorf("-watch needs a configuration file")
	}
	if err := config.Watch(ctx); err != nil {
		return err
	}

	log.Info("running until interrupted")
	<-ctx.Done()
	log.Info("shutting down")
	return nil
}

// resolveConfigPath prefers the flag, then DJMOVIE_CONFIG_PATH, then
// ./dj-movie.yaml when it exists
func resolveConfigPath(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if p := os.Getenv("DJMOVIE_CONFIG_PATH"); p != "" {
		return p
	}
	if _, err := os.Stat("dj-movie.yaml"); err == nil {
		return "dj-movie.yaml"
	}
	return ""
}

func starValues(values []int) []uint16 {
	out := make([]uint16, 0, len(values))
	for _, v := range values {
		out = append(out, uint16(v))
	}
	return out
}
