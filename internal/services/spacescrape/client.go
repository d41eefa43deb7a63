package spacescrape

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"aircast/internal/services"
)

const stageName = "capture"

// Result describes the files produced by one capture call. CaptionsPath and
// MetadataPath are empty when the crawler did not emit them; both always
// originate from the same capture as the audio.
type Result struct {
	AudioPath    string
	CaptionsPath string
	MetadataPath string
	CapturedAt   time.Time
}

// Client wraps the spacescrape command-line crawler.
type Client struct {
	binary        string
	cookiePath    string
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

// NewClient constructs a capture client.
func NewClient(binary, cookiePath string, opts ...Option) *Client {
	if binary == "" {
		binary = "spacescrape"
	}
	c := &Client{binary: binary, cookiePath: cookiePath}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Enabled reports whether capture credentials are available.
func (c *Client) Enabled() bool {
	return strings.TrimSpace(c.cookiePath) != ""
}

// Capture records the conversation at spaceURL into outputDir and reports
// which artifacts the crawler produced.
func (c *Client) Capture(ctx context.Context, spaceURL, outputDir string) (Result, error) {
	var result Result
	if strings.TrimSpace(spaceURL) == "" {
		return result, services.Wrap(services.ErrValidation, stageName, "capture", "source url required", nil)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return result, services.Wrap(services.ErrConfiguration, stageName, "capture", "ensure output dir", err)
	}

	args := []string{"--url", spaceURL, "--output", outputDir}
	if c.cookiePath != "" {
		args = append(args, "--cookie", c.cookiePath)
	}
	result.CapturedAt = time.Now().UTC()
	if err := c.run(ctx, c.binary, args...); err != nil {
		if ctx.Err() != nil {
			return result, services.Wrap(services.ErrTimeout, stageName, "capture", "capture exceeded budget", ctx.Err())
		}
		return result, services.Wrap(services.ErrExternalTool, stageName, "capture", "crawler failed", err)
	}

	audio := filepath.Join(outputDir, "audio.m4a")
	if _, err := os.Stat(audio); err != nil {
		return result, services.Wrap(services.ErrExternalTool, stageName, "capture", "crawler produced no audio", err)
	}
	result.AudioPath = audio

	// Side-channel artifacts are best-effort.
	if captions := filepath.Join(outputDir, "captions.jsonl"); fileExists(captions) {
		result.CaptionsPath = captions
	}
	if metadata := filepath.Join(outputDir, "metadata.json"); fileExists(metadata) {
		result.MetadataPath = metadata
	}
	return result, nil
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

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir() && info.Size() > 0
}
