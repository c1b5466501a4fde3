package timeline

import (
	"fmt"
	"strings"

	"lyrasync/internal/timing"
)

// RenderSRT writes the timeline as numbered SRT cues with
// HH:MM:SS,mmm --> HH:MM:SS,mmm interval headers.
func RenderSRT(lines []timing.LineTiming) string {
	var sb strings.Builder
	for i, line := range lines {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%d\n", i+1))
		sb.WriteString(fmt.Sprintf("%s --> %s\n", formatSRTTimestamp(line.Start), formatSRTTimestamp(line.End)))
		sb.WriteString(line.Text)
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatSRTTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	msTotal := int(seconds*1000 + 0.5)
	hours := msTotal / 3_600_000
	msTotal %= 3_600_000
	minutes := msTotal / 60_000
	msTotal %= 60_000
	secs := msTotal / 1_000
	millis := msTotal % 1_000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
