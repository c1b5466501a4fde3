// Package ingest loads the file-based inputs of one reconciliation run: the
// provider payload, the optional reference lyric text, and the optional
// envelope sidecar. Files are read concurrently and assembled into the
// pipeline's input types.
package ingest
