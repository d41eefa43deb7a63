package acquire

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"aircast/internal/job"
	"aircast/internal/logging"
	"aircast/internal/services"
	"aircast/internal/services/spacescrape"
)

// Strategy names recorded on the acquisition result.
const (
	StrategyCapture   = "capture"
	StrategyDownload  = "download"
	StrategyLocalFile = "local-file"
)

// ErrAcquisitionFailed reports that every strategy failed while the job mode
// required audio.
var ErrAcquisitionFailed = errors.New("acquisition failed")

// Result describes the outcome of the fallback chain. Strategy is empty when
// no strategy ran to success and the mode tolerated that.
type Result struct {
	Strategy     string
	AudioPath    string
	CaptionsPath string
	MetadataPath string
	AcquiredAt   time.Time
}

// CaptureClient is the live-capture collaborator contract.
type CaptureClient interface {
	Enabled() bool
	Capture(ctx context.Context, spaceURL, outputDir string) (spacescrape.Result, error)
}

// DownloadClient is the generic downloader collaborator contract.
type DownloadClient interface {
	Download(ctx context.Context, sourceURL, outputDir string) (string, error)
}

// Chain tries acquisition strategies in priority order.
type Chain struct {
	capture         CaptureClient
	download        DownloadClient
	captureTimeout  time.Duration
	downloadTimeout time.Duration
	logger          *slog.Logger
}

// NewChain builds the fallback chain.
func NewChain(capture CaptureClient, download DownloadClient, captureTimeout, downloadTimeout time.Duration, logger *slog.Logger) *Chain {
	if captureTimeout <= 0 {
		captureTimeout = 30 * time.Minute
	}
	if downloadTimeout <= 0 {
		downloadTimeout = 15 * time.Minute
	}
	return &Chain{
		capture:         capture,
		download:        download,
		captureTimeout:  captureTimeout,
		downloadTimeout: downloadTimeout,
		logger:          logging.NewComponentLogger(logger, "acquire"),
	}
}

// Acquire runs the chain for the job. Strategy order: a directly provided
// file wins over live capture, capture over the generic download. A strategy
// that fails or exceeds its budget passes control to the next; there is no
// in-place retry. When nothing succeeds, Acquire fails only if the job mode
// requires audio.
func (c *Chain) Acquire(ctx context.Context, j *job.Job) (Result, error) {
	var lastErr error

	if path, ok := c.localFile(j); ok {
		c.logger.Info("using directly provided audio file", logging.String("path", path))
		return Result{Strategy: StrategyLocalFile, AudioPath: path, AcquiredAt: time.Now().UTC()}, nil
	}

	if result, err := c.tryCapture(ctx, j); err == nil && result.Strategy != "" {
		return result, nil
	} else if err != nil {
		lastErr = err
		c.logger.Warn("live capture unusable, falling back", logging.Error(err))
	}

	if result, err := c.tryDownload(ctx, j); err == nil && result.Strategy != "" {
		return result, nil
	} else if err != nil {
		lastErr = err
		c.logger.Warn("download strategy unusable", logging.Error(err))
	}

	if !j.Mode.RequiresAudio() {
		return Result{}, nil
	}
	if lastErr != nil {
		return Result{}, services.Wrap(ErrAcquisitionFailed, "acquire", "chain", "no strategy produced audio", lastErr)
	}
	return Result{}, services.Wrap(ErrAcquisitionFailed, "acquire", "chain", "no applicable strategy for source", nil)
}

// localFile validates the directly provided audio file. Only honored when the
// job explicitly restricts itself to caption generation.
func (c *Chain) localFile(j *job.Job) (string, bool) {
	if j.DirectFile == "" || j.Mode != job.ModeTranscriptOnly {
		return "", false
	}
	info, err := os.Stat(j.DirectFile)
	if err != nil || info.IsDir() || info.Size() == 0 {
		return "", false
	}
	return j.DirectFile, true
}

func (c *Chain) tryCapture(ctx context.Context, j *job.Job) (Result, error) {
	if c.capture == nil || !c.capture.Enabled() {
		return Result{}, nil
	}
	if j.Kind != job.KindLiveConversation || j.Source == "" {
		return Result{}, nil
	}

	captureCtx, cancel := context.WithTimeout(ctx, c.captureTimeout)
	defer cancel()

	captured, err := c.capture.Capture(captureCtx, j.Source, filepath.Join(j.WorkDir, "capture"))
	if err != nil {
		return Result{}, err
	}
	return Result{
		Strategy:     StrategyCapture,
		AudioPath:    captured.AudioPath,
		CaptionsPath: captured.CaptionsPath,
		MetadataPath: captured.MetadataPath,
		AcquiredAt:   captured.CapturedAt,
	}, nil
}

func (c *Chain) tryDownload(ctx context.Context, j *job.Job) (Result, error) {
	if c.download == nil || j.Source == "" {
		return Result{}, nil
	}

	downloadCtx, cancel := context.WithTimeout(ctx, c.downloadTimeout)
	defer cancel()

	path, err := c.download.Download(downloadCtx, j.Source, filepath.Join(j.WorkDir, "download"))
	if err != nil {
		return Result{}, err
	}
	return Result{Strategy: StrategyDownload, AudioPath: path, AcquiredAt: time.Now().UTC()}, nil
}
