package main

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_desk/internal/adapters/observability"
	redisad "hotel_desk/internal/adapters/redis"
	"hotel_desk/internal/app"
	"hotel_desk/internal/domain"
	"hotel_desk/internal/shared"
	filestore "hotel_desk/internal/storage/file"
)

// seeder loads a fixture file of hotels into the configured store, so a
// fresh deployment starts with a catalogue instead of an empty list.
func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("fixtures", cfg.FixturesPath).
		Int("workers", cfg.SeedWorkers).
		Str("store", cfg.StoreBackend).
		Msg("seeder starting")

	raw, err := os.ReadFile(cfg.FixturesPath)
	if err != nil {
		log.Fatal().Err(err).Msg("read fixtures failed")
	}
	var fixtures []domain.Hotel
	if err := json.Unmarshal(raw, &fixtures); err != nil {
		log.Fatal().Err(err).Msg("decode fixtures failed")
	}

	store := openStore(ctx, cfg)
	inventory := app.NewInventoryService(ctx, store)

	sem := semaphore.NewWeighted(int64(cfg.SeedWorkers))
	var wg sync.WaitGroup

	for _, h := range fixtures {
		h := h
		if h.Name == "" {
			log.Warn().Msg("skipping fixture without a name")
			continue
		}

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func(h domain.Hotel) {
			defer wg.Done()
			defer sem.Release(1)

			created := inventory.Add(ctx, h)
			log.Info().Int64("id", created.ID).Str("name", created.Name).Msg("seeded")
		}(h)
	}

	wg.Wait()
	log.Info().Int("count", len(fixtures)).Msg("seeding completed")
}

func openStore(ctx context.Context, cfg shared.Config) domain.Store {
	if cfg.StoreBackend == "redis" {
		s := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := s.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("redis ping failed")
		}
		return s
	}
	s, err := filestore.New(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("open file store failed")
	}
	return s
}
