// Package store persists committed timelines in a bounded SQLite database
// keyed by provider track ID. Saves are idempotent upserts; pruning keeps
// the most recently saved tracks and drops the rest.
package store
