package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pawprint/internal/watched"
)

func openStore(ctx *commandContext) (*watched.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, err
	}
	return watched.Open(cfg.DatabasePath())
}

func newWatchedCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watched",
		Short: "Manage the watched-movie list",
	}
	cmd.AddCommand(newWatchedListCommand(ctx))
	cmd.AddCommand(newWatchedAddCommand(ctx))
	cmd.AddCommand(newWatchedRemoveCommand(ctx))
	return cmd
}

func newWatchedListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show watched movies, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), cfg.Search.DefaultUserID)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No watched movies recorded.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					strconv.FormatInt(entry.TMDBID, 10),
					entry.Title,
					entry.CreatedAt.Format("2006-01-02 15:04"),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"TMDB ID", "Title", "Marked"},
				rows,
				[]columnAlignment{alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func newWatchedAddCommand(ctx *commandContext) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "add <tmdb-id>",
		Short: "Mark a movie as watched",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmdbID, err := parseTMDBID(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Mark(cmd.Context(), cfg.Search.DefaultUserID, tmdbID, strings.TrimSpace(title)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Marked %d as watched.\n", tmdbID)
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title to record alongside the id")
	return cmd
}

func newWatchedRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <tmdb-id>",
		Short: "Remove a movie from the watched list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tmdbID, err := parseTMDBID(args[0])
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Unmark(cmd.Context(), cfg.Search.DefaultUserID, tmdbID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d from the watched list.\n", tmdbID)
			return nil
		},
	}
}

func parseTMDBID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid TMDB id %q", raw)
	}
	return id, nil
}
