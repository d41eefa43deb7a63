package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"aircast/internal/acquire"
	"aircast/internal/config"
	"aircast/internal/job"
	"aircast/internal/links"
	"aircast/internal/logging"
	"aircast/internal/pipeline"
	"aircast/internal/preflight"
	"aircast/internal/runjournal"
	"aircast/internal/services/blobstore"
	"aircast/internal/services/cms"
	"aircast/internal/services/ffmpeg"
	"aircast/internal/services/spacescrape"
	"aircast/internal/services/whisper"
	"aircast/internal/services/ytdlp"
)

func newRunCommand(cmdCtx *commandContext) *cobra.Command {
	var (
		kindHint       string
		titleHint      string
		postID         string
		storagePrefix  string
		public         bool
		modeFlag       string
		referenceLink  string
		audioProfile   string
		captionShift   float64
		directFile     string
		metadataFile   string
		transcriptFile string
		fetchTitles    bool
		fetchLimit     int
		fetchTimeout   int
		skipPreflight  bool
	)

	cmd := &cobra.Command{
		Use:   "run <source>",
		Short: "Process one conversation into publishable assets",
		Long: `Run the full pipeline for one source reference: acquire audio, encode it,
normalize captions, extract attendees, collect engagement links, upload the
artifacts, and register the post. Scoped modes run a subset of those stages.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}

			mode, err := job.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			if mode.Scoped() && strings.TrimSpace(postID) == "" {
				return fmt.Errorf("mode %s updates an existing post and requires --post-id", mode)
			}

			if !skipPreflight {
				if err := runPreflight(cmd.Context(), cfg, mode); err != nil {
					return err
				}
			}

			req := job.Request{
				Source:         strings.TrimSpace(args[0]),
				KindHint:       kindHint,
				TitleHint:      titleHint,
				PostID:         strings.TrimSpace(postID),
				StoragePrefix:  storagePrefix,
				Public:         public,
				Mode:           mode,
				ReferenceLink:  referenceLink,
				AudioProfile:   audioProfile,
				CaptionShift:   captionShift,
				DirectFile:     directFile,
				MetadataFile:   metadataFile,
				TranscriptFile: transcriptFile,
				Options: job.Options{
					FetchTitles:     fetchTitles,
					FetchLimit:      fetchLimit,
					FetchTimeoutSec: fetchTimeout,
				},
			}
			return executeRun(cmd, cfg, req)
		},
	}

	cmd.Flags().StringVar(&kindHint, "kind", "", "Source kind override (live-conversation or direct-audio-file)")
	cmd.Flags().StringVar(&titleHint, "title", "", "Title used when session metadata has none")
	cmd.Flags().StringVar(&postID, "post-id", "", "Existing post identifier to update")
	cmd.Flags().StringVar(&storagePrefix, "storage-prefix", "", "Object storage prefix (defaults to YYYY/MM)")
	cmd.Flags().BoolVar(&public, "public", false, "Register the post as publicly visible")
	cmd.Flags().StringVar(&modeFlag, "mode", "full", "Execution mode: full, transcript-only, attendees-only, replies-only")
	cmd.Flags().StringVar(&referenceLink, "reference-link", "", "Link back to the original conversation")
	cmd.Flags().StringVar(&audioProfile, "profile", "", "Audio encoding profile (transparent, radio, aggressive)")
	cmd.Flags().Float64Var(&captionShift, "caption-shift", 0, "Seconds subtracted from every caption timestamp")
	cmd.Flags().StringVar(&directFile, "audio-file", "", "Directly provided audio file (transcript-only mode)")
	cmd.Flags().StringVar(&metadataFile, "metadata-file", "", "Session metadata file for modes that skip acquisition")
	cmd.Flags().StringVar(&transcriptFile, "transcript-file", "", "Transcript markup to scan for links (replies-only mode)")
	cmd.Flags().BoolVar(&fetchTitles, "fetch-titles", true, "Fetch page titles for collected links")
	cmd.Flags().IntVar(&fetchLimit, "fetch-limit", 18, "Maximum number of links to collect")
	cmd.Flags().IntVar(&fetchTimeout, "fetch-timeout", 4, "Per-link title fetch timeout in seconds")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip readiness checks before running")

	return cmd
}

func executeRun(cmd *cobra.Command, cfg *config.Config, req job.Request) error {
	logger, err := logging.NewForRun(cfg.Logging.Level, cfg.Logging.Format, cfg.Paths.LogDir)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	j := job.New(req)

	release, err := acquireJobLock(ctx, cfg, j.LockKey())
	if err != nil {
		return err
	}
	defer release()

	journal, err := runjournal.Open(cfg)
	if err != nil {
		return fmt.Errorf("open run journal: %w", err)
	}
	defer journal.Close()

	record, err := journal.Begin(ctx, j.RunID, j.PostID, string(j.Mode), j.Source)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	record.Status = runjournal.StatusRunning
	if err := journal.Update(ctx, record); err != nil {
		logger.Warn("journal update failed", logging.Error(err))
	}

	// Invocation options override the configured link fetching budget.
	cfg.Links.FetchTitles = req.Options.FetchTitles
	if req.Options.FetchLimit > 0 {
		cfg.Links.FetchLimit = req.Options.FetchLimit
	}
	if req.Options.FetchTimeoutSec > 0 {
		cfg.Links.FetchTimeoutSeconds = req.Options.FetchTimeoutSec
	}

	summary := buildPipeline(cfg, logger).Run(ctx, j)

	record.Status = journalStatus(summary)
	record.Strategy = summary.Strategy
	record.Assets = summary.Produced
	if summary.Err != nil {
		record.ErrorMessage = summary.Err.Error()
	}
	if err := journal.Update(ctx, record); err != nil {
		logger.Warn("journal update failed", logging.Error(err))
	}

	fmt.Fprint(cmd.OutOrStdout(), summary.Render())
	if summary.Failed() {
		return summary.Err
	}
	return nil
}

// buildPipeline wires the stage collaborators from configuration. HTTP
// collaborators share one client; external tools get their own subprocess
// clients.
func buildPipeline(cfg *config.Config, logger *slog.Logger) *pipeline.Pipeline {
	httpClient := &http.Client{Timeout: 30 * time.Second}

	capture := spacescrape.NewClient(cfg.Capture.Binary, cfg.Capture.CookiePath)
	download := ytdlp.NewClient(cfg.Download.Binary)
	chain := acquire.NewChain(
		capture,
		download,
		time.Duration(cfg.Capture.TimeoutSeconds)*time.Second,
		time.Duration(cfg.Download.TimeoutSeconds)*time.Second,
		logger,
	)

	encoder := ffmpeg.NewClient(cfg.Transcode.Binary)
	transcriber := whisper.NewClient(cfg.Transcribe.BaseURL, cfg.Transcribe.APIToken, cfg.Transcribe.Language, httpClient)
	store := blobstore.NewClient(cfg.Storage.BaseURL, cfg.Storage.PublicBaseURL, cfg.Storage.APIToken, httpClient)
	publisher := cms.NewClient(cfg.Publish.BaseURL, cfg.Publish.APIToken, httpClient)
	titles := links.NewResolver(
		httpClient,
		cfg.Links.FetchTitles,
		time.Duration(cfg.Links.FetchTimeoutSeconds)*time.Second,
		cfg.Links.FetchWorkers,
	)

	return pipeline.New(cfg, chain, encoder, transcriber, store, publisher, titles, logger)
}

// acquireJobLock serializes jobs targeting the same post. The lock blocks
// with a retry interval rather than failing fast so queued invocations run
// in turn.
func acquireJobLock(ctx context.Context, cfg *config.Config, key string) (func(), error) {
	lockDir := filepath.Join(cfg.Paths.LogDir, "locks")
	if err := os.MkdirAll(lockDir, 0o755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	fl := flock.New(filepath.Join(lockDir, key+".lock"))
	locked, err := fl.TryLockContext(ctx, time.Second)
	if err != nil {
		return nil, fmt.Errorf("acquire job lock for %q: %w", key, err)
	}
	if !locked {
		return nil, fmt.Errorf("job lock for %q is held by another invocation", key)
	}
	return func() { _ = fl.Unlock() }, nil
}

func journalStatus(summary *pipeline.Summary) runjournal.Status {
	if summary.Failed() {
		return runjournal.StatusFailed
	}
	for _, outcome := range summary.Outcomes {
		if outcome.Status == pipeline.OutcomeSoftFailed {
			return runjournal.StatusPartial
		}
	}
	return runjournal.StatusCompleted
}

// runPreflight fails the invocation when a readiness check for a required
// collaborator fails. Optional binaries only warn.
func runPreflight(ctx context.Context, cfg *config.Config, mode job.Mode) error {
	for _, result := range preflight.RunAll(ctx, cfg) {
		if !result.Passed {
			return fmt.Errorf("preflight: %s: %s", result.Name, result.Detail)
		}
	}
	if mode.RequiresAudio() {
		for _, status := range preflight.CheckSystemDeps(ctx, cfg) {
			if !status.Available && !status.Optional {
				return fmt.Errorf("preflight: %s: %s", status.Name, status.Detail)
			}
		}
	}
	return nil
}
