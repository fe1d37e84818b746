package main

import (
	"context"
	"flag"
	"os"
	"parcel-network-service/internal/adapters/repositories"
	"parcel-network-service/internal/app"
	"parcel-network-service/internal/config"
	"parcel-network-service/internal/platform/obs"
)

// dbtool prepares the Postgres registry backend: it creates the schema and,
// when -import is given, replaces the table contents with a JSON registry file.
func main() {
	importPath := flag.String("import", "", "JSON registry file to load into Postgres")
	flag.Parse()

	dotenv := config.LoadDotEnv()
	logger := obs.NewLogger(os.Stderr, config.Get("LOG_LEVEL", "info"), config.Get("LOG_FORMAT", "console"))
	if !dotenv {
		logger.Debug().Msg("no .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		logger.Fatal().Msg("DATABASE_URL is required")
	}

	ctx := logger.WithContext(context.Background())

	logger.Info().Msg("initializing database schema")
	db, err := app.OpenPostgres(ctx, databaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("schema initialization failed")
	}
	defer db.Close()
	logger.Info().Msg("schema ready")

	if *importPath == "" {
		return
	}

	pkgs, err := repositories.NewJSONRegistryStore(*importPath).Load(ctx)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *importPath).Msg("read registry file")
	}
	if err := repositories.NewPostgresRegistryStore(db).Save(ctx, pkgs); err != nil {
		logger.Fatal().Err(err).Msg("import failed")
	}
	logger.Info().Int("packages", len(pkgs)).Str("path", *importPath).Msg("import complete")
}
