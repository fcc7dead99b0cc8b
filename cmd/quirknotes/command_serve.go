package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"quirknotes/internal/config"
	"quirknotes/internal/daemon"
	"quirknotes/internal/logging"
	"quirknotes/internal/store"
)

type serveOptions struct {
	addr     string
	backend  string
	dataPath string
}

func newServeCommand(wiring commandWiring) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local notes backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := wiring.loadConfig()
			if err != nil {
				return err
			}
			if opts.addr != "" {
				cfg.Server.Address = opts.addr
			}
			if opts.backend != "" {
				cfg.Server.Storage = opts.backend
			}
			if opts.dataPath != "" {
				cfg.Server.DataPath = opts.dataPath
			}
			logger := logging.New(wiring.stderr, logging.ParseLevel(cfg.LogLevel())).With(logging.F("component", "serve"))

			repo, err := openServerRepository(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer repo.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return wiring.runDaemon(ctx, daemon.New(cfg.ServerAddress(), wiring.version, repo, logger))
		},
	}
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, 127.0.0.1:4000)")
	cmd.Flags().StringVar(&opts.backend, "backend", "", "storage backend: file|bbolt")
	cmd.Flags().StringVar(&opts.dataPath, "data", "", "storage path (default under ~/.quirknotes)")
	return cmd
}

// openServerRepository opens the configured store. A fresh bbolt store is
// seeded from the JSON notes file so switching backends keeps existing notes.
func openServerRepository(ctx context.Context, cfg config.Config, logger logging.Logger) (store.Repository, error) {
	dataPath, err := cfg.ServerDataPath()
	if err != nil {
		return nil, err
	}
	paths := store.RepositoryPaths{NotesPath: dataPath}
	if cfg.ServerStorage() == config.StorageBbolt {
		paths.DBPath = dataPath
		paths.NotesPath = ""
		if notesPath, err := config.NotesPath(); err == nil {
			paths.NotesPath = notesPath
		}
	}
	repo, err := store.OpenRepository(paths, cfg.ServerStorage())
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.ServerStorage(), err)
	}
	seeded, err := store.SeedRepositoryFromFiles(ctx, repo, paths)
	if err != nil {
		logger.Warn("seed_failed", logging.Err(err))
	} else if seeded > 0 {
		logger.Info("seeded_notes", logging.F("count", seeded))
	}
	return repo, nil
}
