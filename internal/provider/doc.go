// Package provider parses generative-music provider responses into the raw
// line and context types the timing pipeline consumes. Payloads are treated
// as loosely shaped JSON: fields are probed at several known locations,
// missing or malformed values are reported absent rather than zero, and a
// fully unusable payload parses to an empty line sequence instead of an
// error.
package provider
