package main

import (
	"context"
	"flag"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"

	"github.com/clinicdesk/clinic-api/internal/config"
	"github.com/clinicdesk/clinic-api/internal/repository/postgres"
)

// initdb bootstraps the clinic schema and seed data. Re-running it
// drops every table, so an existing store is refused without -force.
func main() {
	force := flag.Bool("force", false, "re-initialize even if the schema already exists (destroys all data)")
	flag.Parse()

	_ = godotenv.Load()

	var dbCfg config.DatabaseConfig
	if err := envconfig.Process("clinic", &dbCfg); err != nil {
		log.Fatal().Err(err).Msg("failed to read database configuration")
	}

	db, err := postgres.NewDB(dbCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	ctx := context.Background()

	exists, err := postgres.SchemaExists(ctx, db)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to inspect database")
	}
	if exists && !*force {
		log.Fatal().Msg("schema already exists; pass -force to drop and recreate it")
	}

	if err := postgres.InitSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize schema")
	}
	if err := postgres.Seed(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to seed reference data")
	}

	log.Info().Str("database", dbCfg.Name).Msg("database initialized successfully")
}
