package ytdlp

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"aircast/internal/services"
)

const stageName = "download"

// Client wraps the yt-dlp command-line downloader.
type Client struct {
	binary        string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// Option configures the client.
type Option func(*Client)

// WithCommandRunner sets a custom command runner (for testing).
func WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) Option {
	return func(c *Client) {
		c.commandRunner = runner
	}
}

// NewClient constructs a downloader client.
func NewClient(binary string, opts ...Option) *Client {
	if binary == "" {
		binary = "yt-dlp"
	}
	c := &Client{binary: binary}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Download fetches the audio at sourceURL into outputDir and returns the
// local file path.
func (c *Client) Download(ctx context.Context, sourceURL, outputDir string) (string, error) {
	if strings.TrimSpace(sourceURL) == "" {
		return "", services.Wrap(services.ErrValidation, stageName, "download", "source url required", nil)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrConfiguration, stageName, "download", "ensure output dir", err)
	}

	outputPath := filepath.Join(outputDir, "download.m4a")
	args := []string{
		"--extract-audio",
		"--audio-format", "m4a",
		"--no-playlist",
		"--output", outputPath,
		sourceURL,
	}
	if err := c.run(ctx, c.binary, args...); err != nil {
		if ctx.Err() != nil {
			return "", services.Wrap(services.ErrTimeout, stageName, "download", "download exceeded budget", ctx.Err())
		}
		return "", services.Wrap(services.ErrExternalTool, stageName, "download", "downloader failed", err)
	}
	if info, err := os.Stat(outputPath); err != nil || info.Size() == 0 {
		return "", services.Wrap(services.ErrExternalTool, stageName, "download", "downloader produced no audio", err)
	}
	return outputPath, nil
}

func (c *Client) run(ctx context.Context, name string, args ...string) error {
	if c.commandRunner != nil {
		return c.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}
