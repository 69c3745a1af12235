package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/octagoniq/octagoniq-api/internal/auth"
	"github.com/octagoniq/octagoniq-api/internal/config"
	"github.com/octagoniq/octagoniq-api/internal/http/handlers"
	"github.com/octagoniq/octagoniq-api/internal/logger"
	"github.com/octagoniq/octagoniq-api/internal/middleware"
	"github.com/octagoniq/octagoniq-api/internal/server"
	"github.com/octagoniq/octagoniq-api/internal/storage"
	"github.com/octagoniq/octagoniq-api/internal/storage/postgres"
)

const connectTimeout = 10 * time.Second

// Module provides every dependency of the HTTP API.
var Module = fx.Options(
	fx.Provide(config.Load),
	fx.Provide(logger.New),
	fx.Provide(NewDatabase),
	fx.Provide(func(db *postgres.DB) *sql.DB { return db.SQL() }),
	// stores
	fx.Provide(
		fx.Annotate(postgres.NewAccountStore, fx.As(new(storage.AccountStore)), fx.As(new(auth.AccountFinder))),
		fx.Annotate(postgres.NewFighterStore, fx.As(new(storage.FighterStore))),
		fx.Annotate(postgres.NewEventStore, fx.As(new(storage.EventStore))),
		fx.Annotate(postgres.NewFightStore, fx.As(new(storage.FightStore))),
	),
	// auth
	fx.Provide(NewTokenManager),
	fx.Provide(func(cfg config.Config) *auth.PasswordHasher { return auth.NewPasswordHasher(cfg.BcryptCost) }),
	fx.Provide(fx.Annotate(auth.NewResolver, fx.As(new(middleware.IdentityResolver)))),
	fx.Provide(middleware.NewGuard),
	// routes
	fx.Provide(
		asRoutes(func() *handlers.HealthHandler { return handlers.NewHealthHandler(time.Now()) }),
		asRoutes(handlers.NewAuthHandler),
		asRoutes(handlers.NewUserHandler),
		asRoutes(handlers.NewFighterHandler),
		asRoutes(handlers.NewEventHandler),
		asRoutes(handlers.NewFightHandler),
	),
	fx.Provide(fx.Annotate(server.New, fx.ParamTags(``, ``, `group:"routes"`))),
)

func asRoutes(f any) any {
	return fx.Annotate(f, fx.As(new(server.Routes)), fx.ResultTags(`group:"routes"`))
}

// NewDatabase connects, migrates and closes the pool when the app stops.
func NewDatabase(lc fx.Lifecycle, cfg config.Config, logger zerolog.Logger) (*postgres.DB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	db, err := postgres.Connect(ctx, cfg.DatabaseURL, cfg.DBMaxConns, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			db.Close()
			logger.Info().Msg("database closed")
			return nil
		},
	})
	return db, nil
}

// NewTokenManager builds the token service from configuration.
func NewTokenManager(cfg config.Config) (*auth.TokenManager, error) {
	return auth.NewTokenManager(auth.TokenConfig{
		Secret:    cfg.JWTSecret,
		Algorithm: cfg.JWTAlgorithm,
		Issuer:    cfg.JWTIssuer,
		TTL:       cfg.JWTTTL,
	})
}

// RunServer starts the HTTP server on app start and drains it on stop.
func RunServer(lc fx.Lifecycle, srv *server.Server, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr()).Msg("octagoniq api listening")
				if err := srv.Start(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("http server failed")
				}
			}()
			return nil
		},
		OnStop: func(context.Context) error {
			logger.Info().Msg("shutting down server")
			ctx, cancel := context.WithTimeout(context.Background(), server.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil {
				logger.Error().Err(err).Msg("graceful shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
