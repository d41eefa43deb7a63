package ffmpeg

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"aircast/internal/services"
)

const stageName = "transcode"

// Client wraps the ffmpeg command-line encoder.
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

// NewClient constructs a transcoder client.
func NewClient(binary string, opts ...Option) *Client {
	if binary == "" {
		binary = "ffmpeg"
	}
	c := &Client{binary: binary}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode transcodes inputPath into outputPath using the named profile.
func (c *Client) Encode(ctx context.Context, inputPath, outputPath, profile string) error {
	if strings.TrimSpace(inputPath) == "" {
		return services.Wrap(services.ErrValidation, stageName, "encode", "input path required", nil)
	}
	if strings.TrimSpace(outputPath) == "" {
		return services.Wrap(services.ErrValidation, stageName, "encode", "output path required", nil)
	}
	profileFlags, err := ArgsForProfile(profile)
	if err != nil {
		return services.Wrap(services.ErrConfiguration, stageName, "encode", "resolve profile", err)
	}

	args := []string{"-y", "-hide_banner", "-nostdin", "-i", inputPath}
	args = append(args, profileFlags...)
	args = append(args, outputPath)

	if err := c.run(ctx, c.binary, args...); err != nil {
		if ctx.Err() != nil {
			return services.Wrap(services.ErrTimeout, stageName, "encode", "encode exceeded budget", ctx.Err())
		}
		return services.Wrap(services.ErrExternalTool, stageName, "encode", "encoder failed", err)
	}
	if info, err := os.Stat(outputPath); err != nil || info.Size() == 0 {
		return services.Wrap(services.ErrExternalTool, stageName, "encode", "encoder produced no output", err)
	}
	return nil
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
