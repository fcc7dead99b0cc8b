package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type statusOutput struct {
	BaseURL   string `json:"base_url" yaml:"base_url"`
	OK        bool   `json:"ok" yaml:"ok"`
	Version   string `json:"version,omitempty" yaml:"version,omitempty"`
	LatencyMS int64  `json:"latency_ms" yaml:"latency_ms"`
}

func newStatusCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check that the notes backend is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			resolved, err := resolveFormat(format, formatTable, formatJSON, formatYAML)
			if err != nil {
				return err
			}
			client, cfg, err := wiring.resolveClient(opts)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
			defer cancel()

			started := time.Now()
			health, err := client.Health(ctx)
			if err != nil {
				return fmt.Errorf("backend %s unreachable: %w", client.BaseURL(), err)
			}
			out := statusOutput{
				BaseURL:   client.BaseURL(),
				OK:        health.OK,
				Version:   health.Version,
				LatencyMS: time.Since(started).Milliseconds(),
			}
			if resolved != formatTable {
				return writeStructured(wiring.stdout, resolved, out)
			}
			state := "ok"
			if !out.OK {
				state = "degraded"
			}
			fmt.Fprintf(wiring.stdout, "backend  %s\nstatus   %s\nversion  %s\nlatency  %dms\n", out.BaseURL, state, out.Version, out.LatencyMS)
			return nil
		},
	}
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table|json|yaml")
	return cmd
}
