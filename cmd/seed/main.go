package main

import (
	"context"
	"flag"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tuaha311/aesthetics-clinic/internal/config"
	"github.com/tuaha311/aesthetics-clinic/internal/repository/postgres"
	"github.com/tuaha311/aesthetics-clinic/internal/seed"
	"github.com/tuaha311/aesthetics-clinic/pkg/logger"
	"github.com/tuaha311/aesthetics-clinic/pkg/security"
)

func main() {
	configDir := flag.String("config", "", "directory holding config.yaml")
	timeout := flag.Duration("timeout", time.Minute, "abort seeding after this long")
	flag.Parse()

	var paths []string
	if *configDir != "" {
		paths = append(paths, *configDir)
	}
	cfg, err := config.LoadConfig(paths...)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	s := seed.New(postgres.NewRepositories(db), security.NewBcryptHasher(security.DefaultCost))
	if err := s.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}
	log.Info().Msg("database seeded successfully")
}
