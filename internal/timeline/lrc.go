package timeline

import (
	"fmt"
	"strings"

	"lyrasync/internal/timing"
)

// RenderLRC writes start-instant lyric lines as [mm:ss.xx]text. Header tags
// are emitted only for the metadata fields that are present.
func RenderLRC(lines []timing.LineTiming, meta Metadata) string {
	var sb strings.Builder
	if meta.Title != "" {
		sb.WriteString(fmt.Sprintf("[ti:%s]\n", meta.Title))
	}
	if meta.Artist != "" {
		sb.WriteString(fmt.Sprintf("[ar:%s]\n", meta.Artist))
	}
	if meta.Duration > 0 {
		total := int(meta.Duration + 0.5)
		sb.WriteString(fmt.Sprintf("[length:%02d:%02d]\n", total/60, total%60))
	}
	for _, line := range lines {
		sb.WriteString(formatLRCTimestamp(line.Start))
		sb.WriteString(line.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

// formatLRCTimestamp renders seconds as [mm:ss.xx] with centisecond
// precision. Minutes are not wrapped at the hour; LRC players expect them to
// keep counting.
func formatLRCTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	csTotal := int(seconds*100 + 0.5)
	minutes := csTotal / 6_000
	csTotal %= 6_000
	secs := csTotal / 100
	centis := csTotal % 100
	return fmt.Sprintf("[%02d:%02d.%02d]", minutes, secs, centis)
}
