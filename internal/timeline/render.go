package timeline

import (
	"fmt"

	"lyrasync/internal/services"
	"lyrasync/internal/timing"
)

// Supported output formats.
const (
	FormatLRC = "lrc"
	FormatSRT = "srt"
)

// Metadata carries the optional header fields some layouts can embed.
type Metadata struct {
	Title  string
	Artist string
	// Duration is the track length in seconds, 0 when unknown.
	Duration float64
}

// Render produces the serialized timeline in the requested format.
func Render(format string, lines []timing.LineTiming, meta Metadata) (string, error) {
	switch format {
	case FormatLRC:
		return RenderLRC(lines, meta), nil
	case FormatSRT:
		return RenderSRT(lines), nil
	default:
		return "", services.Wrap(services.ErrValidation, "timeline", "render",
			fmt.Sprintf("unsupported format %q", format), nil)
	}
}
