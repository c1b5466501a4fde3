package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"lyrasync/internal/logging"
	"lyrasync/internal/store"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Resolved-timeline cache maintenance",
	}

	cacheCmd.AddCommand(newCacheListCommand(ctx))
	cacheCmd.AddCommand(newCacheInvalidateCommand(ctx))
	cacheCmd.AddCommand(newCachePruneCommand(ctx))

	return cacheCmd
}

func newCacheListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached timelines, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			tracks, err := st.List(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(tracks) == 0 {
				fmt.Fprintln(out, "Cache is empty")
				return nil
			}

			rows := make([][]string, 0, len(tracks))
			for _, track := range tracks {
				rows = append(rows, []string{
					track.TrackID,
					track.Title,
					strconv.Itoa(len(track.Lines)),
					track.SavedAt.Local().Format(time.RFC3339),
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"Track ID", "Title", "Lines", "Saved"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft}))
			return nil
		},
	}
}

func newCacheInvalidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate <track-id>",
		Short: "Remove one cached timeline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			removed, err := st.Invalidate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if removed {
				fmt.Fprintf(out, "Invalidated %s\n", args[0])
			} else {
				fmt.Fprintf(out, "No cached timeline for %s\n", args[0])
			}
			return nil
		},
	}
}

func newCachePruneCommand(ctx *commandContext) *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Drop all but the most recently saved timelines",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if keep < 0 {
				keep = cfg.Store.MaxTracks
			}

			st, err := openStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			removed, err := st.Prune(cmd.Context(), keep)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cached timelines (kept up to %d)\n", removed, keep)
			return nil
		},
	}

	cmd.Flags().IntVar(&keep, "keep", -1, "Number of timelines to keep (defaults to store.max_tracks)")
	return cmd
}

func openStore(ctx *commandContext) (*store.Store, error) {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return store.Open(cfg, logger)
}
