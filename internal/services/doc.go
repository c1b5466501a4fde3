// Package services provides error classification and context plumbing shared
// by the pipeline stages and the collaborator layers around them.
//
// Errors carry a sentinel marker so callers can distinguish validation
// problems from configuration mistakes and missing inputs without parsing
// messages. Context helpers attach track, stage, and run identifiers that
// the logging package renders as structured fields.
package services
