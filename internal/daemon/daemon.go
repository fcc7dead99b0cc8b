package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"quirknotes/internal/logging"
	"quirknotes/internal/store"
)

const shutdownTimeout = 5 * time.Second

// Daemon serves the notes API over a store repository until its context ends.
type Daemon struct {
	addr    string
	version string
	repo    store.Repository
	logger  logging.Logger
}

func New(addr, version string, repo store.Repository, logger logging.Logger) *Daemon {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Daemon{addr: addr, version: version, repo: repo, logger: logger}
}

func (d *Daemon) API() *API {
	return &API{
		Version: d.version,
		Notes:   NewNoteService(d.repo.Notes(), d.logger.With(logging.F("component", "notes"))),
		Logger:  d.logger.With(logging.F("component", "http")),
	}
}

func (d *Daemon) Run(ctx context.Context) error {
	if d.repo == nil {
		return errors.New("repository is required")
	}
	listener, err := net.Listen("tcp", d.addr)
	if err != nil {
		return err
	}
	return d.Serve(ctx, listener)
}

// Serve runs the API on an existing listener. It returns nil after a clean
// shutdown triggered by ctx.
func (d *Daemon) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           d.API().Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		d.logger.Info("daemon_listening",
			logging.F("addr", listener.Addr().String()),
			logging.F("storage", d.repo.Backend()),
			logging.F("version", d.version),
		)
		errCh <- server.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		d.logger.Info("daemon_stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
