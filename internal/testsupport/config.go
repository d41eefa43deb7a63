package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"aircast/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.WorkDir = filepath.Join(base, "work")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Transcode.TimeoutSeconds = 30
	cfgVal.Publish.TimeoutSeconds = 5
	cfgVal.Links.FetchTitles = false

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCapture enables the live-capture strategy with a throwaway cookie file.
func WithCapture() ConfigOption {
	return func(b *configBuilder) {
		cookie := filepath.Join(b.baseDir, "cookies.txt")
		if err := os.WriteFile(cookie, []byte("# netscape cookies\n"), 0o600); err != nil {
			b.t.Fatalf("write cookie file: %v", err)
		}
		b.cfg.Capture.CookiePath = cookie
	}
}

// WithStorage points the object-storage section at the given endpoint.
func WithStorage(baseURL, token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Storage.BaseURL = baseURL
		b.cfg.Storage.APIToken = token
	}
}

// WithPublish points the publishing section at the given endpoint.
func WithPublish(baseURL, token string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Publish.BaseURL = baseURL
		b.cfg.Publish.APIToken = token
	}
}

// WithStubbedBinaries writes stub executables for the provided names and
// prepends them to PATH. If names is empty, the default aircast external
// binaries are stubbed.
func WithStubbedBinaries(names ...string) ConfigOption {
	return func(b *configBuilder) {
		if len(names) == 0 {
			names = []string{"spacescrape", "yt-dlp", "ffmpeg"}
		}
		binDir := filepath.Join(b.baseDir, "bin")
		if err := os.MkdirAll(binDir, 0o755); err != nil {
			b.t.Fatalf("mkdir bin dir: %v", err)
		}
		script := []byte("#!/bin/sh\nexit 0\n")
		for _, name := range names {
			target := filepath.Join(binDir, name)
			if err := os.WriteFile(target, script, 0o755); err != nil {
				b.t.Fatalf("write stub %s: %v", name, err)
			}
		}

		oldPath := os.Getenv("PATH")
		if err := os.Setenv("PATH", binDir+string(os.PathListSeparator)+oldPath); err != nil {
			b.t.Fatalf("set PATH: %v", err)
		}
		b.t.Cleanup(func() {
			_ = os.Setenv("PATH", oldPath)
		})
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.WorkDir)
}
