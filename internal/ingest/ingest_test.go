package ingest_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"lyrasync/internal/ingest"
	"lyrasync/internal/services"
	"lyrasync/internal/testsupport"
)

const samplePayload = `{
	"id": "track-1",
	"duration": 30,
	"aligned_words": [{"word": "Hello", "start_s": 1, "end_s": 2}]
}`

func TestLoadAllInputs(t *testing.T) {
	dir := t.TempDir()
	payloadPath := testsupport.WriteFile(t, dir, "payload.json", samplePayload)
	referencePath := testsupport.WriteFile(t, dir, "reference.txt", "Hello\nWorld\n")
	envelopePath := testsupport.WriteFile(t, dir, "envelope.json", "[0, 1, 2, 3]")

	inputs, err := ingest.Load(context.Background(), ingest.Request{
		PayloadPath:   payloadPath,
		ReferencePath: referencePath,
		EnvelopePath:  envelopePath,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if inputs.Payload.TrackID != "track-1" || len(inputs.Payload.Lines) != 1 {
		t.Fatalf("payload = %+v", inputs.Payload)
	}
	if inputs.Reference == "" {
		t.Error("reference not loaded")
	}
	if len(inputs.SidecarEnvelope) != 4 {
		t.Errorf("envelope = %v", inputs.SidecarEnvelope)
	}

	rc := inputs.Context()
	if rc.Duration != 30 || len(rc.Envelope) != 4 || rc.Reference == "" {
		t.Fatalf("context = %+v", rc)
	}
}

func TestLoadPayloadOnly(t *testing.T) {
	dir := t.TempDir()
	payloadPath := testsupport.WriteFile(t, dir, "payload.json", samplePayload)

	inputs, err := ingest.Load(context.Background(), ingest.Request{PayloadPath: payloadPath})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if inputs.Reference != "" || inputs.SidecarEnvelope != nil {
		t.Fatalf("optional fields should be absent: %+v", inputs)
	}
}

func TestLoadMissingOptionalFilesAreAbsent(t *testing.T) {
	dir := t.TempDir()
	payloadPath := testsupport.WriteFile(t, dir, "payload.json", samplePayload)

	inputs, err := ingest.Load(context.Background(), ingest.Request{
		PayloadPath:   payloadPath,
		ReferencePath: filepath.Join(dir, "missing.txt"),
		EnvelopePath:  filepath.Join(dir, "missing.json"),
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if inputs.Reference != "" || inputs.SidecarEnvelope != nil {
		t.Fatalf("missing optional files should yield absent fields: %+v", inputs)
	}
}

func TestLoadMissingPayloadIsError(t *testing.T) {
	_, err := ingest.Load(context.Background(), ingest.Request{
		PayloadPath: filepath.Join(t.TempDir(), "missing.json"),
	})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoadEmptyPayloadPathIsError(t *testing.T) {
	_, err := ingest.Load(context.Background(), ingest.Request{})
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoadHonorsCancellation(t *testing.T) {
	dir := t.TempDir()
	payloadPath := testsupport.WriteFile(t, dir, "payload.json", samplePayload)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ingest.Load(ctx, ingest.Request{PayloadPath: payloadPath}); err == nil {
		t.Fatal("expected error from canceled context")
	}
}

func TestEnvelopeSidecarFormats(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"json array", "[1, 2, 3]", 3},
		{"whitespace separated", "0.5 1.25\n3 0\n", 4},
		{"malformed json", "[1, 2", 0},
		{"non-numeric token", "1 two 3", 0},
		{"empty file", "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			payloadPath := testsupport.WriteFile(t, dir, "payload.json", samplePayload)
			envelopePath := testsupport.WriteFile(t, dir, "envelope.txt", tt.content)

			inputs, err := ingest.Load(context.Background(), ingest.Request{
				PayloadPath:  payloadPath,
				EnvelopePath: envelopePath,
			})
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(inputs.SidecarEnvelope) != tt.want {
				t.Fatalf("envelope = %v, want %d samples", inputs.SidecarEnvelope, tt.want)
			}
		})
	}
}

func TestSidecarEnvelopeOverridesPayload(t *testing.T) {
	dir := t.TempDir()
	payloadPath := testsupport.WriteFile(t, dir, "payload.json",
		`{"envelope": [9, 9], "aligned_words": [{"word": "a"}]}`)
	envelopePath := testsupport.WriteFile(t, dir, "envelope.json", "[1, 2, 3]")

	inputs, err := ingest.Load(context.Background(), ingest.Request{
		PayloadPath:  payloadPath,
		EnvelopePath: envelopePath,
	})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rc := inputs.Context()
	if len(rc.Envelope) != 3 {
		t.Fatalf("sidecar should win: %v", rc.Envelope)
	}
}
