package pipeline

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"aircast/internal/acquire"
	"aircast/internal/config"
	"aircast/internal/job"
	"aircast/internal/links"
	"aircast/internal/logging"
	"aircast/internal/services"
	"aircast/internal/services/blobstore"
	"aircast/internal/services/cms"
)

// Encoder is the transcoder collaborator contract.
type Encoder interface {
	Encode(ctx context.Context, inputPath, outputPath, profile string) error
}

// Transcriber is the speech-to-text fallback contract.
type Transcriber interface {
	Enabled() bool
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// Uploader is the object-storage collaborator contract.
type Uploader interface {
	Enabled() bool
	Store(ctx context.Context, localPath, destPath string) (blobstore.Location, error)
}

// Publisher is the publishing collaborator contract.
type Publisher interface {
	Enabled() bool
	Register(ctx context.Context, req cms.RegisterRequest) error
	PatchAssets(ctx context.Context, postID string, patch cms.PatchRequest) error
}

// Acquirer runs the acquisition fallback chain.
type Acquirer interface {
	Acquire(ctx context.Context, j *job.Job) (acquire.Result, error)
}

// TitleResolver resolves display titles for collected links.
type TitleResolver interface {
	Resolve(ctx context.Context, urls []string) []links.LinkEntry
}

// Pipeline wires the stages to their collaborators.
type Pipeline struct {
	cfg         *config.Config
	chain       Acquirer
	encoder     Encoder
	transcriber Transcriber
	store       Uploader
	publisher   Publisher
	titles      TitleResolver
	logger      *slog.Logger
}

// New constructs a pipeline.
func New(cfg *config.Config, chain Acquirer, encoder Encoder, transcriber Transcriber, store Uploader, publisher Publisher, titles TitleResolver, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:         cfg,
		chain:       chain,
		encoder:     encoder,
		transcriber: transcriber,
		store:       store,
		publisher:   publisher,
		titles:      titles,
		logger:      logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Run executes the stage table for one job and returns the run summary.
// Cancellation of the whole job still publishes already-produced assets: the
// publish stage runs on the outcomes accumulated so far.
func (p *Pipeline) Run(ctx context.Context, j *job.Job) *Summary {
	state := &State{Job: j}
	ctx = services.WithRunID(ctx, j.RunID)
	ctx = services.WithPostID(ctx, j.PostID)

	if j.WorkDir == "" {
		j.WorkDir = filepath.Join(p.cfg.Paths.WorkDir, j.RunID)
	}
	if err := os.MkdirAll(j.WorkDir, 0o755); err != nil {
		state.Outcomes = append(state.Outcomes, StageOutcome{
			Stage: "setup", Status: OutcomeHardFailed, Err: err,
		})
		return NewSummary(state, err)
	}

	var jobErr error
	for _, spec := range stageTable() {
		outcome := p.runStage(ctx, spec, state)
		state.Outcomes = append(state.Outcomes, outcome)
		if outcome.Status == OutcomeHardFailed {
			state.audioLost = true
			if jobErr == nil {
				jobErr = outcome.Err
			}
		}
	}
	return NewSummary(state, jobErr)
}

func (p *Pipeline) runStage(ctx context.Context, spec stageSpec, state *State) StageOutcome {
	outcome := StageOutcome{Stage: spec.name}

	if state.audioLost && spec.needsAudio {
		outcome.Status = OutcomeSkipped
		outcome.Reason = "audio unavailable after acquisition failure"
		return outcome
	}
	if skip, reason := spec.skip(state); skip {
		outcome.Status = OutcomeSkipped
		outcome.Reason = reason
		p.logger.Debug("stage skipped",
			logging.String(logging.FieldStage, spec.name),
			logging.String("reason", reason),
		)
		return outcome
	}

	stageCtx := logging.WithStage(ctx, spec.name)
	stageLogger := logging.WithContext(stageCtx, p.logger)
	stageLogger.Info("stage started", logging.String(logging.FieldEventType, "stage_start"))

	started := time.Now()
	err := spec.run(stageCtx, p, state)
	outcome.Duration = time.Since(started)

	if err == nil {
		outcome.Status = OutcomeRan
		stageLogger.Info("stage completed",
			logging.String(logging.FieldEventType, "stage_complete"),
			logging.Duration("elapsed", outcome.Duration),
		)
		return outcome
	}

	outcome.Err = err
	if p.hardFailure(spec, state, err) {
		outcome.Status = OutcomeHardFailed
		stageLogger.Error("stage failed",
			logging.String(logging.FieldEventType, "stage_failure"),
			logging.Error(err),
		)
	} else {
		outcome.Status = OutcomeSoftFailed
		stageLogger.Warn("stage degraded, continuing",
			logging.String(logging.FieldEventType, "stage_degraded"),
			logging.Error(err),
		)
	}
	return outcome
}

// hardFailure decides whether a stage error aborts dependent stages. Only the
// total absence of a mode-required asset escalates: a failed acquisition when
// audio is required, or a configuration problem that makes the run unusable.
func (p *Pipeline) hardFailure(spec stageSpec, state *State, err error) bool {
	if spec.name == "acquire" && state.Job.Mode.RequiresAudio() {
		return true
	}
	return !services.IsRecoverable(err)
}
