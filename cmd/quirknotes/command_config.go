package main

import (
	"github.com/spf13/cobra"

	"quirknotes/internal/config"
)

type configOutput struct {
	ConfigPath string              `json:"config_path,omitempty" toml:"config_path,omitempty" yaml:"config_path,omitempty"`
	Backend    backendConfigOutput `json:"backend" toml:"backend" yaml:"backend"`
	Logging    loggingConfigOutput `json:"logging" toml:"logging" yaml:"logging"`
	UI         uiConfigOutput      `json:"ui" toml:"ui" yaml:"ui"`
	Notes      notesConfigOutput   `json:"notes" toml:"notes" yaml:"notes"`
	Server     serverConfigOutput  `json:"server" toml:"server" yaml:"server"`
}

type backendConfigOutput struct {
	BaseURL string `json:"base_url" toml:"base_url" yaml:"base_url"`
	Timeout string `json:"timeout" toml:"timeout" yaml:"timeout"`
}

type loggingConfigOutput struct {
	Level string `json:"level" toml:"level" yaml:"level"`
}

type uiConfigOutput struct {
	RenderMarkdown   bool `json:"render_markdown" toml:"render_markdown" yaml:"render_markdown"`
	ConfirmDeleteAll bool `json:"confirm_delete_all" toml:"confirm_delete_all" yaml:"confirm_delete_all"`
}

type notesConfigOutput struct {
	RollbackFailedDeletes bool `json:"rollback_failed_deletes" toml:"rollback_failed_deletes" yaml:"rollback_failed_deletes"`
}

type serverConfigOutput struct {
	Address  string `json:"address" toml:"address" yaml:"address"`
	Storage  string `json:"storage" toml:"storage" yaml:"storage"`
	DataPath string `json:"data_path,omitempty" toml:"data_path,omitempty" yaml:"data_path,omitempty"`
}

func newConfigCommand(wiring commandWiring) *cobra.Command {
	var (
		defaults bool
		format   string
	)
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveFormat(format, formatJSON, formatTOML, formatYAML)
			if err != nil {
				return err
			}
			cfg := config.DefaultConfig()
			if !defaults {
				cfg, err = wiring.loadConfig()
				if err != nil {
					return err
				}
			}
			out := buildConfigOutput(cfg)
			if path, err := config.ConfigPath(); err == nil {
				out.ConfigPath = path
			}
			return writeStructured(wiring.stdout, resolved, out)
		},
	}
	cmd.Flags().BoolVar(&defaults, "default", false, "print default config values")
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format: json|toml|yaml")
	return cmd
}

func buildConfigOutput(cfg config.Config) configOutput {
	out := configOutput{
		Backend: backendConfigOutput{
			BaseURL: cfg.BaseURL(),
			Timeout: cfg.RequestTimeout().String(),
		},
		Logging: loggingConfigOutput{Level: cfg.LogLevel()},
		UI: uiConfigOutput{
			RenderMarkdown:   cfg.RenderMarkdown(),
			ConfirmDeleteAll: cfg.ConfirmDeleteAll(),
		},
		Notes: notesConfigOutput{RollbackFailedDeletes: cfg.RollbackFailedDeletes()},
		Server: serverConfigOutput{
			Address: cfg.ServerAddress(),
			Storage: cfg.ServerStorage(),
		},
	}
	if path, err := cfg.ServerDataPath(); err == nil {
		out.Server.DataPath = path
	}
	return out
}
