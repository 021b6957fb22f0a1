package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ptit-edu/portal-backend/internal/config"
	"github.com/ptit-edu/portal-backend/internal/database"
	"github.com/ptit-edu/portal-backend/internal/logger"
	"github.com/ptit-edu/portal-backend/internal/repository"
	"github.com/ptit-edu/portal-backend/internal/service"
)

// contentTables are cleared by --reset. Admissions are never touched.
var contentTables = []string{"intro_slides", "history_events", "achievements", "partners", "campus_models"}

func main() {
	var (
		reset    bool
		seedFile string
	)
	flag.BoolVar(&reset, "reset", false, "Clear the content tables and re-import (deletes content data)")
	flag.StringVar(&seedFile, "file", "seeds/ptit.sql", "Seed SQL file to execute")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat).With().Str("component", "import_db").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	sql, err := os.ReadFile(seedFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", seedFile).Msg("Failed to read seed file")
	}

	// ─── Connect ───────────────────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	hasData, err := contentExists(ctx, pool)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to inspect content tables (run `migrate up` first)")
	}
	if hasData && !reset {
		log.Info().Msg("Content already imported, skipping. Run again with --reset to clear and re-import")
		return
	}

	// ─── Import ────────────────────────────────────────────────────────
	err = pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if reset {
			for _, table := range contentTables {
				if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", table)); err != nil {
					return fmt.Errorf("truncate %s: %w", table, err)
				}
			}
		}
		// No arguments: pgx sends the file over the simple protocol, so
		// multiple statements are allowed.
		if _, err := tx.Exec(ctx, string(sql)); err != nil {
			return fmt.Errorf("execute %s: %w", seedFile, err)
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	// ─── Drop stale cache entries ──────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, cached content expires on its own")
	} else if rdb != nil {
		defer rdb.Close()
		content := service.NewContentService(repository.NewContentRepository(pool), service.NewRedisListCache(rdb), cfg.ContentCacheTTL, log)
		if err := content.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to invalidate content cache")
		}
	}

	log.Info().Str("file", seedFile).Bool("reset", reset).Msg("Imported content")
}

func contentExists(ctx context.Context, pool *pgxpool.Pool) (bool, error) {
	for _, table := range contentTables {
		var exists bool
		q := fmt.Sprintf("SELECT EXISTS (SELECT 1 FROM %s)", table)
		if err := pool.QueryRow(ctx, q).Scan(&exists); err != nil {
			return false, fmt.Errorf("check %s: %w", table, err)
		}
		if exists {
			return true, nil
		}
	}
	return false, nil
}
