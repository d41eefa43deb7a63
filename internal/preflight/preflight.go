package preflight

import (
	"context"

	"aircast/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Work directory", cfg.Paths.WorkDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	if cfg.TranscribeEnabled() {
		results = append(results, CheckEndpoint(ctx, "Transcription API", cfg.Transcribe.BaseURL, cfg.Transcribe.APIToken))
	}
	if cfg.Storage.BaseURL != "" {
		results = append(results, CheckEndpoint(ctx, "Object storage", cfg.Storage.BaseURL, cfg.Storage.APIToken))
	}
	if cfg.Publish.BaseURL != "" {
		results = append(results, CheckEndpoint(ctx, "Publishing API", cfg.Publish.BaseURL, cfg.Publish.APIToken))
	}

	return results
}
