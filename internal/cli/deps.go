package cli

import (
	"context"

	"github.com/daycoach-ai/daycoach/internal/coach"
	"github.com/daycoach-ai/daycoach/internal/config"
	"github.com/daycoach-ai/daycoach/internal/llm"
	"github.com/daycoach-ai/daycoach/internal/logging"
	"github.com/daycoach-ai/daycoach/internal/store"
)

// newStore opens the document store for the configured data file. An
// unopenable or unreadable file degrades to an in-memory store so the
// process still runs; mutations are then lost on exit.
func newStore(ctx context.Context, cfg *config.Config) store.Store {
	file, err := store.NewFile(cfg.DataFile())
	if err != nil {
		logging.Logger().Warn("data file unusable; falling back to in-memory store", "path", cfg.DataFile(), "err", err)
		return store.NewMemory()
	}
	if _, err := file.Get(ctx); err != nil {
		logging.Logger().Warn("data file unreadable; falling back to in-memory store", "path", cfg.DataFile(), "err", err)
		return store.NewMemory()
	}
	return file
}

// newCoach builds a coach without a delivery channel, for one-shot commands.
func newCoach(ctx context.Context, cfg *config.Config) (*coach.Coach, error) {
	gen, err := llm.New(cfg.LLM)
	if err != nil {
		return nil, err
	}
	return coach.New(coach.Options{
		Store:     newStore(ctx, cfg),
		Generator: gen,
		Config:    cfg.Coach,
	})
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
