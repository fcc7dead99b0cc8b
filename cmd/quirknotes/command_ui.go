package main

import (
	"io"

	"github.com/spf13/cobra"

	"quirknotes/internal/app"
	"quirknotes/internal/logging"
)

func newUICommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Run the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := wiring.resolveClient(opts)
			if err != nil {
				return err
			}
			logger, closer := wiring.configureUILogging(logging.ParseLevel(cfg.LogLevel()))
			defer closer.Close()
			logger.Info("ui_started", logging.F("base_url", client.BaseURL()), logging.F("version", wiring.version))

			return wiring.runUI(client, app.Options{
				RequestTimeout:        cfg.RequestTimeout(),
				RenderMarkdown:        cfg.RenderMarkdown(),
				ConfirmDeleteAll:      cfg.ConfirmDeleteAll(),
				RollbackFailedDeletes: cfg.RollbackFailedDeletes(),
				Logger:                logger,
			})
		},
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// configureUILogging sends UI logs to a file since the terminal belongs to
// the TUI. Logging is dropped when the file cannot be opened.
func (w commandWiring) configureUILogging(level logging.Level) (logging.Logger, io.Closer) {
	if w.uiLogPath == nil {
		return logging.Nop(), nopCloser{}
	}
	path, err := w.uiLogPath()
	if err != nil {
		return logging.Nop(), nopCloser{}
	}
	logger, closer, err := logging.OpenFile(path, level)
	if err != nil {
		return logging.Nop(), nopCloser{}
	}
	return logger, closer
}
