package main

import (
	"log/slog"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"lyrasync/internal/config"
	"lyrasync/internal/ingest"
	"lyrasync/internal/logging"
	"lyrasync/internal/services"
	"lyrasync/internal/textkit"
	"lyrasync/internal/timing"
)

// paramsFromConfig merges configured thresholds over the pipeline defaults.
// Unset values keep their defaults.
func paramsFromConfig(cfg *config.Config) timing.Params {
	params := timing.DefaultParams()
	if cfg == nil {
		return params
	}
	if cfg.Timing.ValidRatio > 0 {
		params.ValidRatio = cfg.Timing.ValidRatio
	}
	if cfg.Timing.ScaleTolerance > 0 {
		params.ScaleTolerance = cfg.Timing.ScaleTolerance
	}
	if cfg.Timing.ActivityWeight > 0 {
		params.ActivityWeight = cfg.Timing.ActivityWeight
	}
	if cfg.Timing.EmphasisExponent > 0 {
		params.EmphasisExponent = cfg.Timing.EmphasisExponent
	}
	return params
}

// runOutcome collects everything a command needs after one reconciliation.
type runOutcome struct {
	Inputs  ingest.Inputs
	Context timing.Context
	Result  timing.Result
	TrackID string
	Title   string
}

// reconcile loads the requested inputs and runs the pipeline under a fresh
// run ID.
func reconcile(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger, req ingest.Request) (runOutcome, error) {
	ctx := services.WithRunID(cmd.Context(), uuid.NewString())

	inputs, err := ingest.Load(ctx, req)
	if err != nil {
		return runOutcome{}, err
	}

	title := inputs.Payload.Title
	if title == "" {
		title = textkit.DeriveTitle(req.PayloadPath)
	}

	rc := inputs.Context()
	pipeline := timing.NewPipeline(paramsFromConfig(cfg), logging.WithContext(services.WithTrackID(ctx, inputs.Payload.TrackID), logger))
	result := pipeline.Reconcile(inputs.Payload.Lines, rc)

	return runOutcome{
		Inputs:  inputs,
		Context: rc,
		Result:  result,
		TrackID: inputs.Payload.TrackID,
		Title:   title,
	}, nil
}
