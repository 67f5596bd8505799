package main

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	server "hotel_desk/internal/adapters/http_server"
	"hotel_desk/internal/adapters/observability"
	redisad "hotel_desk/internal/adapters/redis"
	"hotel_desk/internal/app"
	"hotel_desk/internal/domain"
	"hotel_desk/internal/shared"
	filestore "hotel_desk/internal/storage/file"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve()

	ctx := context.Background()
	store := openStore(ctx, cfg)

	var hasher domain.PasswordHasher = app.BcryptHasher{}
	if cfg.PasswordScheme == "legacy" {
		hasher = app.LegacyHasher{}
	}

	auth := app.NewAuthService(ctx, store, hasher, app.AuthOptions{
		RestoreSession: cfg.SessionRestore,
		FoldEmails:     cfg.EmailCaseInsensitive,
	})
	inventory := app.NewInventoryService(ctx, store)
	notify := app.NewNotifier(cfg.NotifyTTL)

	srv := server.New()
	reg := observability.InitRegistry()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Auth:       auth,
		Inventory:  inventory,
		Notify:     notify,
		LoginLimit: rate.NewLimiter(rate.Limit(cfg.LoginRPS), cfg.LoginRPS),
	})

	log.Info().Str("addr", cfg.HTTPAddr).Str("store", cfg.StoreBackend).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}

func openStore(ctx context.Context, cfg shared.Config) domain.Store {
	if cfg.StoreBackend == "redis" {
		s := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := s.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("redis ping failed")
		}
		log.Info().Msg("redis connection ok")
		return s
	}
	s, err := filestore.New(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("open file store failed")
	}
	return s
}
