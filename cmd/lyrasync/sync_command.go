package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"lyrasync/internal/config"
	"lyrasync/internal/ingest"
	"lyrasync/internal/logging"
	"lyrasync/internal/store"
	"lyrasync/internal/textkit"
	"lyrasync/internal/timeline"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var payloadPath string
	var referencePath string
	var envelopePath string
	var format string
	var outputPath string
	var noStore bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Reconcile a provider payload and write the lyric file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return err
			}

			outcome, err := reconcile(cmd, cfg, logger, ingest.Request{
				PayloadPath:   payloadPath,
				ReferencePath: referencePath,
				EnvelopePath:  envelopePath,
			})
			if err != nil {
				return err
			}

			renderFormat := strings.TrimSpace(format)
			if renderFormat == "" {
				renderFormat = cfg.Output.Format
			}

			meta := timeline.Metadata{}
			if cfg.Output.LRCHeader {
				meta.Title = outcome.Title
				meta.Duration = outcome.Context.Duration
			}
			content, err := timeline.Render(renderFormat, outcome.Result.Lines, meta)
			if err != nil {
				return err
			}

			target := strings.TrimSpace(outputPath)
			if target == "" {
				name := textkit.SanitizeFileName(outcome.Title) + "." + renderFormat
				target = filepath.Join(cfg.Paths.OutputDir, name)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return fmt.Errorf("create output directory: %w", err)
			}
			if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
				return fmt.Errorf("write lyric file: %w", err)
			}

			if cfg.Store.Enabled && !noStore && outcome.TrackID != "" {
				if err := cacheOutcome(cmd, cfg, logger, outcome); err != nil {
					return fmt.Errorf("cache timeline: %w", err)
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d lines to %s\n", len(outcome.Result.Lines), target)
			return nil
		},
	}

	cmd.Flags().StringVar(&payloadPath, "payload", "", "Provider payload JSON file")
	cmd.Flags().StringVar(&referencePath, "reference", "", "Reference lyric text file")
	cmd.Flags().StringVar(&envelopePath, "envelope", "", "Energy envelope sidecar file")
	cmd.Flags().StringVar(&format, "format", "", "Output format: lrc or srt (defaults to config)")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (defaults to the output directory)")
	cmd.Flags().BoolVar(&noStore, "no-store", false, "Skip caching the resolved timeline")
	_ = cmd.MarkFlagRequired("payload")

	return cmd
}

// cacheOutcome saves the resolved timeline and keeps the cache inside its
// configured bound.
func cacheOutcome(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, outcome runOutcome) error {
	st, err := store.Open(cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	cmdCtx := cmd.Context()
	if err := st.Save(cmdCtx, outcome.TrackID, outcome.Title, outcome.Result.Lines); err != nil {
		return err
	}
	if _, err := st.Prune(cmdCtx, cfg.Store.MaxTracks); err != nil {
		return err
	}
	return nil
}
