package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeEndpoints()
	c.normalizeLinks()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.WorkDir) == "" {
		c.Paths.WorkDir = defaultWorkDir
	}
	if c.Paths.WorkDir, err = expandPath(c.Paths.WorkDir); err != nil {
		return fmt.Errorf("paths.work_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Capture.CookiePath) != "" {
		if c.Capture.CookiePath, err = expandPath(c.Capture.CookiePath); err != nil {
			return fmt.Errorf("capture.cookie_path: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeEndpoints() {
	c.Transcribe.BaseURL = strings.TrimRight(strings.TrimSpace(c.Transcribe.BaseURL), "/")
	c.Transcribe.APIToken = strings.TrimSpace(c.Transcribe.APIToken)
	c.Storage.BaseURL = strings.TrimRight(strings.TrimSpace(c.Storage.BaseURL), "/")
	c.Storage.PublicBaseURL = strings.TrimRight(strings.TrimSpace(c.Storage.PublicBaseURL), "/")
	c.Storage.APIToken = strings.TrimSpace(c.Storage.APIToken)
	c.Publish.BaseURL = strings.TrimRight(strings.TrimSpace(c.Publish.BaseURL), "/")
	c.Publish.APIToken = strings.TrimSpace(c.Publish.APIToken)
}

func (c *Config) normalizeLinks() {
	if c.Links.FetchLimit <= 0 {
		c.Links.FetchLimit = defaultLinkFetchLimit
	}
	if c.Links.FetchTimeoutSeconds <= 0 {
		c.Links.FetchTimeoutSeconds = defaultLinkFetchTimeout
	}
	if c.Links.FetchWorkers <= 0 {
		c.Links.FetchWorkers = defaultLinkFetchWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
