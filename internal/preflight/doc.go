// Package preflight provides readiness checks for external services
// and filesystem paths that aircast depends on.
//
// The CLI runs RunAll and CheckSystemDeps before starting a job so a
// misconfigured endpoint or missing binary fails fast instead of partway
// through a long capture. Each check is gated by its config toggle --
// disabled features are skipped.
package preflight
