package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/existflow/glow/internal/client"
	"github.com/existflow/glow/internal/config"
	"github.com/existflow/glow/internal/db"
	"github.com/existflow/glow/internal/habit"
	"github.com/existflow/glow/internal/logger"
	"github.com/existflow/glow/internal/model"
	"github.com/existflow/glow/internal/store"
)

// openService picks a backing store and loads a refreshed Service.
// Precedence: --demo flag, then a logged-in remote session, then the
// local SQLite database.
func openService(cmd *cobra.Command) (*habit.Service, func(), error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	st, cleanup, err := openStore()
	if err != nil {
		return nil, nil, err
	}

	svc := habit.NewService(st)
	if err := svc.Refresh(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("load data: %w", err)
	}
	return svc, cleanup, nil
}

func openStore() (store.Store, func(), error) {
	if demoMode {
		logger.Info("Using in-memory demo store")
		mem := store.NewMemory()
		ctx := context.Background()
		for _, cat := range model.StarterCategories {
			if _, err := mem.InsertCategory(ctx, cat); err != nil {
				return nil, nil, fmt.Errorf("seed demo store: %w", err)
			}
		}
		for _, a := range model.StarterArchetypes {
			if _, err := mem.InsertArchetype(ctx, a); err != nil {
				return nil, nil, fmt.Errorf("seed demo store: %w", err)
			}
		}
		return mem, func() {}, nil
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}

	if cfg.ServerURL != "" {
		c, err := client.New(cfg.ServerURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to server: %w", err)
		}
		if c.IsLoggedIn() {
			logger.Info("Using remote store", logger.F("server", c.ServerURL()))
			return c, func() {}, nil
		}
		logger.Warn("Server configured but not logged in, falling back to local database",
			logger.F("server", cfg.ServerURL))
	}

	database, err := db.OpenDefault()
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return database, func() { database.Close() }, nil
}
