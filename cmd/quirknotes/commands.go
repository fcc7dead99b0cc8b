package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"quirknotes/internal/app"
	"quirknotes/internal/config"
	"quirknotes/internal/daemon"
)

type commandWiring struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.Config, error)
	newClient  clientFactory
	runUI      func(api app.NotesAPI, opts app.Options) error
	runDaemon  func(ctx context.Context, d *daemon.Daemon) error
	uiLogPath  func() (string, error)
	version    string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: config.Load,
		newClient:  newNotesClient,
		runUI:      app.Run,
		runDaemon: func(ctx context.Context, d *daemon.Daemon) error {
			return d.Run(ctx)
		},
		uiLogPath: config.UILogPath,
		version:   buildVersion(),
	}
}

type rootOptions struct {
	baseURL string
}

func newRootCommand(wiring commandWiring) *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:   "quirknotes",
		Short: "The best note-taking app ever",
		Long: `quirknotes lists, posts, edits and deletes notes stored behind a small
HTTP backend. Run "quirknotes ui" for the terminal interface or
"quirknotes serve" to start a local backend.`,
		Example: `quirknotes serve --backend bbolt
quirknotes ui --base-url http://localhost:4000
quirknotes add --title "Groceries" --content "milk, eggs"`,
		SilenceUsage: true,
	}
	root.SetOut(wiring.stdout)
	root.SetErr(wiring.stderr)
	root.PersistentFlags().StringVar(&opts.baseURL, "base-url", "", "notes backend base url (overrides config and "+config.EnvBaseURL+")")

	root.AddCommand(
		newUICommand(wiring, opts),
		newServeCommand(wiring),
		newConfigCommand(wiring),
		newListCommand(wiring, opts),
		newAddCommand(wiring, opts),
		newEditCommand(wiring, opts),
		newRemoveCommand(wiring, opts),
		newClearCommand(wiring, opts),
		newStatusCommand(wiring, opts),
	)
	return root
}

// resolveClient loads config and builds a client, letting --base-url win over
// the file and environment.
func (w commandWiring) resolveClient(opts *rootOptions) (commandClient, config.Config, error) {
	cfg, err := w.loadConfig()
	if err != nil {
		return nil, config.Config{}, err
	}
	if opts != nil && opts.baseURL != "" {
		cfg.Backend.BaseURL = opts.baseURL
	}
	client, err := w.newClient(cfg.BaseURL(), cfg.RequestTimeout())
	if err != nil {
		return nil, config.Config{}, err
	}
	return client, cfg, nil
}
