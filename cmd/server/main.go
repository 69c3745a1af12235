package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"github.com/octagoniq/octagoniq-api/internal/app"
)

func main() {
	loadLocalEnv()

	fx.New(
		app.Module,
		fx.Invoke(app.RunServer),
	).Run()
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found; relying on existing environment")
	}
}
