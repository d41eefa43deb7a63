// Package job defines the per-invocation job model: the immutable request
// parameters, the execution mode, and the identifiers derived during source
// resolution.
package job
