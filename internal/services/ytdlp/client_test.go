package ytdlp

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aircast/internal/services"
)

func TestDownloadProducesFile(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "download")

	var gotArgs []string
	client := NewClient("yt-dlp", WithCommandRunner(
		func(_ context.Context, name string, args ...string) error {
			gotArgs = append([]string{name}, args...)
			return os.WriteFile(filepath.Join(outputDir, "download.m4a"), []byte("data"), 0o644)
		}))

	path, err := client.Download(context.Background(), "https://example.com/audio", outputDir)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if path != filepath.Join(outputDir, "download.m4a") {
		t.Fatalf("unexpected path: %s", path)
	}

	joined := strings.Join(gotArgs, " ")
	for _, want := range []string{"--extract-audio", "--audio-format m4a", "--no-playlist"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in args: %v", want, gotArgs)
		}
	}
}

func TestDownloadEmptyOutputIsExternalToolError(t *testing.T) {
	outputDir := filepath.Join(t.TempDir(), "download")
	client := NewClient("yt-dlp", WithCommandRunner(
		func(_ context.Context, _ string, _ ...string) error {
			return os.WriteFile(filepath.Join(outputDir, "download.m4a"), nil, 0o644)
		}))

	_, err := client.Download(context.Background(), "https://example.com/audio", outputDir)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestDownloadEmptyURL(t *testing.T) {
	client := NewClient("yt-dlp")
	_, err := client.Download(context.Background(), "", t.TempDir())
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
