// Package timeline renders committed line timings into the two supported
// lyric file layouts: LRC start-instant lines and numbered SRT interval
// cues.
package timeline
