// Package logging configures structured slog loggers for aircast.
//
// It provides a human-readable console handler for interactive use, a JSON
// handler for machine consumption, context-derived attributes (run id, post
// id, stage), and a no-op logger for tests.
package logging
