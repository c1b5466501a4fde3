package provider

import (
	"encoding/json"
	"math"

	"lyrasync/internal/timing"
)

// Payload is the usable portion of one provider response. Absent fields keep
// their zero values; Duration is 0 when no hint was found.
type Payload struct {
	TrackID  string
	Title    string
	Lines    []timing.RawLine
	Duration float64
	Envelope []float64
}

// lineArrayKeys are the payload locations probed for the aligned-line
// sequence, in preference order.
var lineArrayKeys = []string{"lines", "aligned_lines", "aligned_words"}

// Parse extracts whatever usable data the payload carries. It never fails:
// malformed JSON or an unrecognized shape yields an empty Payload.
func Parse(data []byte) Payload {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return Payload{}
	}
	root, ok := asMap(decoded)
	if !ok {
		return Payload{}
	}

	payload := Payload{
		TrackID:  probeTrackID(root),
		Title:    stringAt(root, "title"),
		Duration: probeDuration(root),
		Envelope: probeEnvelope(root),
	}
	for _, key := range lineArrayKeys {
		if lines := parseLines(root[key]); len(lines) > 0 {
			payload.Lines = lines
			break
		}
	}
	return payload
}

// Context assembles the pipeline context from the payload plus the optional
// reference lyric text.
func (p Payload) Context(reference string) timing.Context {
	return timing.Context{
		Duration:  p.Duration,
		Envelope:  p.Envelope,
		Reference: reference,
	}
}

func parseLines(value any) []timing.RawLine {
	items, ok := value.([]any)
	if !ok {
		return nil
	}
	lines := make([]timing.RawLine, 0, len(items))
	for _, item := range items {
		entry, ok := asMap(item)
		if !ok {
			continue
		}
		line := timing.RawLine{
			Text:    textField(entry),
			Start:   timestampField(entry, "start_s", "start"),
			End:     timestampField(entry, "end_s", "end"),
			Section: boolAt(entry, "section"),
		}
		if tokens, ok := entry["words"].([]any); ok {
			line.Tokens = parseTokens(tokens)
		}
		if line.Text == "" && !line.Start.Valid && !line.End.Valid && len(line.Tokens) == 0 {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

func parseTokens(items []any) []timing.RawToken {
	tokens := make([]timing.RawToken, 0, len(items))
	for _, item := range items {
		entry, ok := asMap(item)
		if !ok {
			continue
		}
		token := timing.RawToken{
			Text:  textField(entry),
			Start: timestampField(entry, "start_s", "start"),
			End:   timestampField(entry, "end_s", "end"),
		}
		if token.Text == "" && !token.Start.Valid && !token.End.Valid {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// probeDuration checks the known duration-hint locations in preference
// order. The audio object reports milliseconds.
func probeDuration(root map[string]any) float64 {
	if v, ok := numberAt(root, "duration"); ok {
		return v
	}
	if v, ok := numberAt(root, "duration_s"); ok {
		return v
	}
	if meta, ok := asMap(root["metadata"]); ok {
		if v, ok := numberAt(meta, "duration"); ok {
			return v
		}
	}
	if clip, ok := asMap(root["clip"]); ok {
		if v, ok := numberAt(clip, "duration"); ok {
			return v
		}
	}
	if audio, ok := asMap(root["audio"]); ok {
		if v, ok := numberAt(audio, "duration_ms"); ok {
			return v / 1000
		}
	}
	return 0
}

func probeEnvelope(root map[string]any) []float64 {
	if samples := parseEnvelope(root["envelope"]); samples != nil {
		return samples
	}
	if samples := parseEnvelope(root["energy"]); samples != nil {
		return samples
	}
	if waveform, ok := asMap(root["waveform"]); ok {
		return parseEnvelope(waveform["samples"])
	}
	return nil
}

// parseEnvelope accepts an array of finite numbers, clamping negatives to
// zero. Any non-numeric sample makes the whole envelope unusable.
func parseEnvelope(value any) []float64 {
	items, ok := value.([]any)
	if !ok || len(items) == 0 {
		return nil
	}
	samples := make([]float64, len(items))
	for i, item := range items {
		v, ok := asNumber(item)
		if !ok {
			return nil
		}
		samples[i] = math.Max(v, 0)
	}
	return samples
}

func probeTrackID(root map[string]any) string {
	if id := stringAt(root, "id"); id != "" {
		return id
	}
	if clip, ok := asMap(root["clip"]); ok {
		return stringAt(clip, "id")
	}
	return ""
}

func textField(entry map[string]any) string {
	if text := stringAt(entry, "text"); text != "" {
		return text
	}
	return stringAt(entry, "word")
}

func timestampField(entry map[string]any, keys ...string) timing.Timestamp {
	for _, key := range keys {
		if _, present := entry[key]; !present {
			continue
		}
		if v, ok := asNumber(entry[key]); ok {
			return timing.NewTimestamp(v)
		}
		return timing.Timestamp{}
	}
	return timing.Timestamp{}
}

func asMap(value any) (map[string]any, bool) {
	m, ok := value.(map[string]any)
	return m, ok
}

func asNumber(value any) (float64, bool) {
	v, ok := value.(float64)
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func numberAt(m map[string]any, key string) (float64, bool) {
	v, ok := asNumber(m[key])
	if !ok || v <= 0 {
		return 0, false
	}
	return v, true
}

func stringAt(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func boolAt(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}
