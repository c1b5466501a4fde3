package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"lyrasync/internal/provider"
	"lyrasync/internal/services"
	"lyrasync/internal/timing"
)

// Request names the input files of one run. PayloadPath is required; the
// others are optional and absent paths simply leave their fields empty.
type Request struct {
	PayloadPath   string
	ReferencePath string
	EnvelopePath  string
}

// Inputs is the loaded and parsed material for one reconciliation run.
type Inputs struct {
	Payload   provider.Payload
	Reference string
	// SidecarEnvelope is the envelope loaded from the sidecar file, nil
	// when no sidecar was given or it was unusable.
	SidecarEnvelope []float64
}

// Context assembles the pipeline context. A sidecar envelope takes
// precedence over one embedded in the payload.
func (in Inputs) Context() timing.Context {
	rc := in.Payload.Context(in.Reference)
	if len(in.SidecarEnvelope) > 0 {
		rc.Envelope = in.SidecarEnvelope
	}
	return rc
}

// Load reads the requested files concurrently. A missing payload file is an
// error; missing optional files yield absent fields.
func Load(ctx context.Context, req Request) (Inputs, error) {
	if strings.TrimSpace(req.PayloadPath) == "" {
		return Inputs{}, services.Wrap(services.ErrValidation, "ingest", "load", "payload path required", nil)
	}

	var inputs Inputs
	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		data, err := readFile(ctx, req.PayloadPath)
		if err != nil {
			return services.Wrap(services.ErrValidation, "ingest", "read payload", req.PayloadPath, err)
		}
		inputs.Payload = provider.Parse(data)
		return nil
	})

	group.Go(func() error {
		if req.ReferencePath == "" {
			return nil
		}
		data, err := readFile(ctx, req.ReferencePath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return services.Wrap(services.ErrTransient, "ingest", "read reference", req.ReferencePath, err)
		}
		inputs.Reference = string(data)
		return nil
	})

	group.Go(func() error {
		if req.EnvelopePath == "" {
			return nil
		}
		data, err := readFile(ctx, req.EnvelopePath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return services.Wrap(services.ErrTransient, "ingest", "read envelope", req.EnvelopePath, err)
		}
		inputs.SidecarEnvelope = parseEnvelopeSidecar(data)
		return nil
	})

	if err := group.Wait(); err != nil {
		return Inputs{}, err
	}
	return inputs, nil
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// parseEnvelopeSidecar accepts either a JSON number array or
// whitespace-separated numbers. Unusable content yields nil.
func parseEnvelopeSidecar(data []byte) []float64 {
	content := strings.TrimSpace(string(data))
	if content == "" {
		return nil
	}

	if strings.HasPrefix(content, "[") {
		var samples []float64
		if err := json.Unmarshal([]byte(content), &samples); err != nil {
			return nil
		}
		return clampSamples(samples)
	}

	fields := strings.Fields(content)
	samples := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil
		}
		samples[i] = v
	}
	return clampSamples(samples)
}

func clampSamples(samples []float64) []float64 {
	if len(samples) == 0 {
		return nil
	}
	for i, v := range samples {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil
		}
		samples[i] = math.Max(v, 0)
	}
	return samples
}
