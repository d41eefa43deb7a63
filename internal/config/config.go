package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	WorkDir string `toml:"work_dir"`
	LogDir  string `toml:"log_dir"`
}

// Capture contains configuration for the live-capture crawler.
type Capture struct {
	Binary         string `toml:"binary"`
	CookiePath     string `toml:"cookie_path"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Download contains configuration for the generic URL downloader.
type Download struct {
	Binary         string `toml:"binary"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Transcode contains configuration for the audio transcoder.
type Transcode struct {
	Binary         string `toml:"binary"`
	DefaultProfile string `toml:"default_profile"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Transcribe contains configuration for the speech-to-text fallback service.
type Transcribe struct {
	BaseURL        string `toml:"base_url"`
	APIToken       string `toml:"api_token"`
	Language       string `toml:"language"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Storage contains configuration for the object-storage collaborator.
type Storage struct {
	BaseURL       string `toml:"base_url"`
	APIToken      string `toml:"api_token"`
	PublicBaseURL string `toml:"public_base_url"`
}

// Publish contains configuration for the publishing collaborator.
type Publish struct {
	BaseURL        string `toml:"base_url"`
	APIToken       string `toml:"api_token"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Links contains configuration for engagement link collection.
type Links struct {
	FetchTitles         bool `toml:"fetch_titles"`
	FetchLimit          int  `toml:"fetch_limit"`
	FetchTimeoutSeconds int  `toml:"fetch_timeout_seconds"`
	FetchWorkers        int  `toml:"fetch_workers"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for aircast.
//
// Configuration sections by subsystem:
//   - Paths: working and log directories
//   - Capture: live-capture crawler binary and credentials
//   - Download: generic URL downloader binary
//   - Transcode: audio encoder binary and default profile
//   - Transcribe: speech-to-text fallback API
//   - Storage: object storage endpoint
//   - Publish: CMS registration endpoint
//   - Links: engagement link title fetching budget
//   - Logging: log format and level
type Config struct {
	Paths      Paths      `toml:"paths"`
	Capture    Capture    `toml:"capture"`
	Download   Download   `toml:"download"`
	Transcode  Transcode  `toml:"transcode"`
	Transcribe Transcribe `toml:"transcribe"`
	Storage    Storage    `toml:"storage"`
	Publish    Publish    `toml:"publish"`
	Links      Links      `toml:"links"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/aircast/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("aircast.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs before stages start.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.WorkDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CaptureEnabled reports whether the live-capture strategy has usable credentials.
func (c *Config) CaptureEnabled() bool {
	return strings.TrimSpace(c.Capture.Binary) != "" && strings.TrimSpace(c.Capture.CookiePath) != ""
}

// TranscribeEnabled reports whether the speech-to-text fallback is configured.
func (c *Config) TranscribeEnabled() bool {
	return strings.TrimSpace(c.Transcribe.BaseURL) != "" && strings.TrimSpace(c.Transcribe.APIToken) != ""
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
