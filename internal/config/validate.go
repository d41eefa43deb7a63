package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateTranscode(); err != nil {
		return err
	}
	if err := c.validateTranscribe(); err != nil {
		return err
	}
	if err := c.validatePublish(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranscode() error {
	switch c.Transcode.DefaultProfile {
	case "transparent", "radio", "aggressive":
	default:
		return fmt.Errorf("transcode.default_profile: unknown profile %q", c.Transcode.DefaultProfile)
	}
	if strings.TrimSpace(c.Transcode.Binary) == "" {
		return errors.New("transcode.binary must be set")
	}
	return nil
}

func (c *Config) validateTranscribe() error {
	if c.Transcribe.BaseURL == "" && c.Transcribe.APIToken != "" {
		return errors.New("transcribe.base_url must be set when transcribe.api_token is set")
	}
	return nil
}

func (c *Config) validatePublish() error {
	if c.Publish.BaseURL == "" {
		return nil
	}
	if c.Publish.APIToken == "" {
		return errors.New("publish.api_token must be set when publish.base_url is set")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}
