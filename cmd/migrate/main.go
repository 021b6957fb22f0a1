package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/ptit-edu/portal-backend/internal/config"
	"github.com/ptit-edu/portal-backend/internal/logger"
	"github.com/rs/zerolog"
)

func main() {
	dir := flag.String("path", "migrations", "Directory holding the *.up.sql / *.down.sql files")
	steps := flag.Int("steps", 0, "Apply only N migrations (down rolls back N); 0 means all")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat).With().Str("component", "migrate").Logger()

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}
	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	m, err := migrate.New("file://"+*dir, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Str("path", *dir).Msg("Failed to open migrations")
	}
	defer m.Close()

	cmd := flag.Arg(0)
	switch cmd {
	case "up", "down":
		if err := apply(m, cmd, *steps); err != nil {
			log.Fatal().Err(err).Str("direction", cmd).Msg("Migration failed")
		}
		report(m, log)
	case "version":
		report(m, log)
	case "force":
		v, err := strconv.Atoi(flag.Arg(1))
		if err != nil {
			log.Fatal().Str("arg", flag.Arg(1)).Msg("force needs a numeric version")
		}
		if err := m.Force(v); err != nil {
			log.Fatal().Err(err).Int("version", v).Msg("Force failed")
		}
		log.Info().Int("version", v).Msg("Version forced, dirty flag cleared")
	default:
		usage()
		os.Exit(2)
	}
}

func apply(m *migrate.Migrate, direction string, steps int) error {
	var err error
	switch {
	case steps != 0 && direction == "down":
		err = m.Steps(-max(steps, -steps))
	case steps != 0:
		err = m.Steps(max(steps, -steps))
	case direction == "down":
		err = m.Down()
	default:
		err = m.Up()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func report(m *migrate.Migrate, log zerolog.Logger) {
	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		log.Info().Msg("No migrations applied")
	case err != nil:
		log.Fatal().Err(err).Msg("Failed to read schema version")
	default:
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Schema version")
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: migrate [-path dir] [-steps n] up|down|version|force <version>")
	flag.PrintDefaults()
}
