package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/octagoniq/octagoniq-api/internal/config"
	"github.com/octagoniq/octagoniq-api/internal/logger"
	"github.com/octagoniq/octagoniq-api/internal/seed"
	"github.com/octagoniq/octagoniq-api/internal/storage/postgres"
)

type options struct {
	promote      string
	skipFighters bool
}

func main() {
	var opts options
	flag.StringVar(&opts.promote, "promote", "", "username to grant the admin role")
	flag.BoolVar(&opts.skipFighters, "skip-fighters", false, "do not insert the sample fighters")
	flag.Parse()

	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	lg := logger.New(cfg)

	if err := run(cfg, opts, lg); err != nil {
		lg.Fatal().Err(err).Msg("seed failed")
	}
}

func run(cfg config.Config, opts options, lg zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.DBMaxConns, lg)
	if err != nil {
		return fmt.Errorf("init database: %w", err)
	}
	defer db.Close()

	if !opts.skipFighters {
		n, err := seed.SeedFighters(ctx, postgres.NewFighterStore(db.SQL()), seed.Fighters(), lg)
		if err != nil {
			return err
		}
		lg.Info().Int("created", n).Msg("seed data inserted")
	}

	if opts.promote != "" {
		account, err := seed.Promote(ctx, postgres.NewAccountStore(db.SQL()), opts.promote)
		if err != nil {
			return err
		}
		lg.Info().Int64("account_id", account.ID).Str("username", account.Username).Msg("account is admin")
	}
	return nil
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found; relying on existing environment")
	}
}
