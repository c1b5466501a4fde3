package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lyrasync/internal/ingest"
	"lyrasync/internal/logging"
)

func newInspectCommand(ctx *commandContext) *cobra.Command {
	var payloadPath string
	var referencePath string
	var envelopePath string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Show resolved per-line timing and pipeline diagnostics",
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

			out := cmd.OutOrStdout()
			result := outcome.Result

			fmt.Fprintf(out, "Track: %s\n", outcome.Title)
			if outcome.TrackID != "" {
				fmt.Fprintf(out, "Track ID: %s\n", outcome.TrackID)
			}
			fmt.Fprintf(out, "Source: %s (valid %d, monotonic breaks %d)\n",
				result.Source, result.Score.ValidCount, result.Score.MonotonicBreaks)
			fmt.Fprintf(out, "Scale: %g\n", result.Scale)
			fmt.Fprintf(out, "Relative timing: %s (envelope guided: %s)\n",
				yesNo(result.Relative), yesNo(result.EnvelopeGuided))
			if result.Inserted > 0 {
				fmt.Fprintf(out, "Repaired lines: %d\n", result.Inserted)
			}
			fmt.Fprintln(out)

			rows := make([][]string, 0, len(result.Lines))
			for i, line := range result.Lines {
				rows = append(rows, []string{
					strconv.Itoa(i + 1),
					fmt.Sprintf("%.3f", line.Start),
					fmt.Sprintf("%.3f", line.End),
					line.Text,
				})
			}
			fmt.Fprintln(out, renderTable(out,
				[]string{"#", "Start", "End", "Text"},
				rows,
				[]columnAlignment{alignRight, alignRight, alignRight, alignLeft}))
			return nil
		},
	}

	cmd.Flags().StringVar(&payloadPath, "payload", "", "Provider payload JSON file")
	cmd.Flags().StringVar(&referencePath, "reference", "", "Reference lyric text file")
	cmd.Flags().StringVar(&envelopePath, "envelope", "", "Energy envelope sidecar file")
	_ = cmd.MarkFlagRequired("payload")

	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
