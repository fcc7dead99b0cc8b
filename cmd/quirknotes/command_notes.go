package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"quirknotes/internal/types"
)

func newListCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List notes",
		Args:    cobra.NoArgs,
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
			notes, err := client.ListNotes(ctx)
			if err != nil {
				return err
			}
			if resolved == formatTable {
				printNotes(wiring.stdout, notes)
				return nil
			}
			return writeStructured(wiring.stdout, resolved, notes)
		},
	}
	cmd.Flags().StringVar(&format, "format", formatTable, "output format: table|json|yaml")
	return cmd
}

func newAddCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var fields types.NoteFields
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Post a new note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fields = fields.Normalized()
			if fields.Title == "" {
				return errors.New("title is required")
			}
			client, cfg, err := wiring.resolveClient(opts)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
			defer cancel()
			note, err := client.CreateNote(ctx, fields)
			if err != nil {
				return err
			}
			fmt.Fprintln(wiring.stdout, note.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&fields.Title, "title", "", "note title (required)")
	cmd.Flags().StringVar(&fields.Content, "content", "", "note content")
	return cmd
}

func newEditCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	var fields types.NoteFields
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a note's title or content",
		Long: `edit replaces the fields passed as flags. A field without a flag keeps
its current value, read from the backend first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			if id == "" {
				return errors.New("note id is required")
			}
			titleSet := cmd.Flags().Changed("title")
			contentSet := cmd.Flags().Changed("content")
			if !titleSet && !contentSet {
				return errors.New("nothing to change: pass --title and/or --content")
			}
			client, cfg, err := wiring.resolveClient(opts)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
			defer cancel()

			next := fields.Normalized()
			if !titleSet || !contentSet {
				current, err := findNote(ctx, client, id)
				if err != nil {
					return err
				}
				if !titleSet {
					next.Title = current.Title
				}
				if !contentSet {
					next.Content = current.Content
				}
			}
			if strings.TrimSpace(next.Title) == "" {
				return errors.New("title is required")
			}
			if _, err := client.UpdateNote(ctx, id, next); err != nil {
				return err
			}
			fmt.Fprintln(wiring.stdout, id)
			return nil
		},
	}
	cmd.Flags().StringVar(&fields.Title, "title", "", "new note title")
	cmd.Flags().StringVar(&fields.Content, "content", "", "new note content")
	return cmd
}

// findNote looks id up in the full listing; the backend has no single-note
// read endpoint.
func findNote(ctx context.Context, client commandClient, id string) (*types.Note, error) {
	notes, err := client.ListNotes(ctx)
	if err != nil {
		return nil, err
	}
	for _, note := range notes {
		if note != nil && note.ID == id {
			return note, nil
		}
	}
	return nil, fmt.Errorf("note %s not found", id)
}

func newRemoveCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := wiring.resolveClient(opts)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
			defer cancel()
			return client.DeleteNote(ctx, args[0])
		},
	}
}

func newClearCommand(wiring commandWiring, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all notes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, err := wiring.resolveClient(opts)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout())
			defer cancel()
			return client.DeleteAllNotes(ctx)
		},
	}
}
