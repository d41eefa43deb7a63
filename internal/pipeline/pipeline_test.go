package pipeline

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"aircast/internal/acquire"
	"aircast/internal/config"
	"aircast/internal/job"
	"aircast/internal/links"
	"aircast/internal/logging"
	"aircast/internal/services"
	"aircast/internal/services/blobstore"
	"aircast/internal/services/cms"
	"aircast/internal/testsupport"
)

type fakeAcquirer struct {
	result acquire.Result
	err    error
	calls  int
}

func (f *fakeAcquirer) Acquire(_ context.Context, _ *job.Job) (acquire.Result, error) {
	f.calls++
	return f.result, f.err
}

type fakeEncoder struct {
	err     error
	calls   int
	profile string
}

func (f *fakeEncoder) Encode(_ context.Context, _, _, profile string) error {
	f.calls++
	f.profile = profile
	return f.err
}

type fakeTranscriber struct {
	enabled  bool
	document string
	err      error
	calls    int
}

func (f *fakeTranscriber) Enabled() bool { return f.enabled }

func (f *fakeTranscriber) Transcribe(_ context.Context, _ string) (string, error) {
	f.calls++
	return f.document, f.err
}

type fakeUploader struct {
	enabled bool
	stored  []string
	err     error
}

func (f *fakeUploader) Enabled() bool { return f.enabled }

func (f *fakeUploader) Store(_ context.Context, _, destPath string) (blobstore.Location, error) {
	if f.err != nil {
		return blobstore.Location{}, f.err
	}
	f.stored = append(f.stored, destPath)
	return blobstore.Location{
		URL:       "https://blobs.example/" + destPath,
		PublicURL: "https://cdn.example/" + destPath,
	}, nil
}

type fakePublisher struct {
	enabled    bool
	registered *cms.RegisterRequest
	patchedID  string
	patch      *cms.PatchRequest
}

func (f *fakePublisher) Enabled() bool { return f.enabled }

func (f *fakePublisher) Register(_ context.Context, req cms.RegisterRequest) error {
	f.registered = &req
	return nil
}

func (f *fakePublisher) PatchAssets(_ context.Context, postID string, patch cms.PatchRequest) error {
	f.patchedID = postID
	f.patch = &patch
	return nil
}

type fakeTitles struct{}

func (fakeTitles) Resolve(_ context.Context, urls []string) []links.LinkEntry {
	entries := make([]links.LinkEntry, len(urls))
	for i, u := range urls {
		entries[i] = links.LinkEntry{URL: u, Title: links.FallbackLabel(u)}
	}
	return entries
}

type testRig struct {
	cfg         *config.Config
	acquirer    *fakeAcquirer
	encoder     *fakeEncoder
	transcriber *fakeTranscriber
	uploader    *fakeUploader
	publisher   *fakePublisher
}

func newTestRig(t *testing.T) *testRig {
	t.Helper()
	return &testRig{
		cfg:         testsupport.NewConfig(t),
		acquirer:    &fakeAcquirer{},
		encoder:     &fakeEncoder{},
		transcriber: &fakeTranscriber{},
		uploader:    &fakeUploader{enabled: true},
		publisher:   &fakePublisher{enabled: true},
	}
}

func (r *testRig) pipeline() *Pipeline {
	return New(r.cfg, r.acquirer, r.encoder, r.transcriber, r.uploader, r.publisher, fakeTitles{}, logging.NewNop())
}

func writeCaptureArtifacts(t *testing.T) acquire.Result {
	t.Helper()
	dir := t.TempDir()

	audio := filepath.Join(dir, "audio.m4a")
	testsupport.WriteFile(t, audio, 256)

	captions := filepath.Join(dir, "captions.jsonl")
	testsupport.WriteText(t, captions, strings.Join([]string{
		`{"start_sec": 0.0, "end_sec": 2.0, "text": "welcome, link https://a.example/one here"}`,
		`{"start_ms": 2000, "end_ms": 4000, "caption": "see <a href=\"https://a.example/one\">this</a>"}`,
	}, "\n"))

	metadata := filepath.Join(dir, "metadata.json")
	testsupport.WriteText(t, metadata, `{
		"title": "Launch Q&A",
		"started_at": 1700000000,
		"creator": {"screen_name": "alice", "display_name": "Alice"},
		"admins": [{"screen_name": "bob"}],
		"speakers": [{"screen_name": "carol"}]
	}`)

	return acquire.Result{
		Strategy:     acquire.StrategyCapture,
		AudioPath:    audio,
		CaptionsPath: captions,
		MetadataPath: metadata,
		AcquiredAt:   time.Now().UTC(),
	}
}

func outcomeFor(t *testing.T, summary *Summary, stage string) StageOutcome {
	t.Helper()
	for _, outcome := range summary.Outcomes {
		if outcome.Stage == stage {
			return outcome
		}
	}
	t.Fatalf("stage %q missing from outcomes", stage)
	return StageOutcome{}
}

func TestRunFullMode(t *testing.T) {
	rig := newTestRig(t)
	rig.acquirer.result = writeCaptureArtifacts(t)

	j := job.New(job.Request{
		Source: "https://x.com/i/spaces/1abc",
		Mode:   job.ModeFull,
		Public: true,
	})
	summary := rig.pipeline().Run(context.Background(), j)

	if summary.Failed() {
		t.Fatalf("unexpected failure: %v", summary.Err)
	}
	for _, stage := range []string{"resolve", "acquire", "transcode", "captions", "attendees", "links", "upload", "publish"} {
		if outcome := outcomeFor(t, summary, stage); outcome.Status != OutcomeRan {
			t.Errorf("stage %s: %s (%s)", stage, outcome.Status, outcome.Reason)
		}
	}
	if outcome := outcomeFor(t, summary, "transcribe-fallback"); outcome.Status != OutcomeSkipped {
		t.Errorf("fallback should be skipped when captions normalize: %s", outcome.Status)
	}

	if rig.publisher.registered == nil {
		t.Fatal("expected full registration")
	}
	reg := rig.publisher.registered
	if reg.Title != "Launch Q&A" {
		t.Errorf("metadata title should win: %q", reg.Title)
	}
	if reg.Visibility != "public" {
		t.Errorf("unexpected visibility: %q", reg.Visibility)
	}
	if !strings.HasPrefix(reg.AudioURL, "https://cdn.example/") {
		t.Errorf("expected public audio url, got %q", reg.AudioURL)
	}
	if !strings.Contains(reg.TranscriptHTML, `class="cue"`) {
		t.Errorf("missing transcript markup: %q", reg.TranscriptHTML)
	}
	if !strings.Contains(reg.AttendeesHTML, "alice") {
		t.Errorf("missing roster markup: %q", reg.AttendeesHTML)
	}
	if reg.LinksHTML != "" {
		t.Errorf("escaped cue text carries no anchors, got %q", reg.LinksHTML)
	}
	if reg.RecordedAt != time.Unix(1700000000, 0).UTC().Format(time.RFC3339) {
		t.Errorf("metadata start time should win: %q", reg.RecordedAt)
	}

	if len(rig.uploader.stored) != 2 {
		t.Fatalf("expected audio and caption uploads, got %v", rig.uploader.stored)
	}
	for _, dest := range rig.uploader.stored {
		if !strings.HasPrefix(dest, j.StoragePrefix+"/") {
			t.Errorf("upload missing storage prefix: %q", dest)
		}
	}
}

func TestRunTranscriptOnlySkipsRosterAndLinks(t *testing.T) {
	rig := newTestRig(t)
	rig.acquirer.result = writeCaptureArtifacts(t)

	j := job.New(job.Request{Source: "https://x.com/i/spaces/1abc", Mode: job.ModeTranscriptOnly})
	summary := rig.pipeline().Run(context.Background(), j)

	if summary.Failed() {
		t.Fatalf("unexpected failure: %v", summary.Err)
	}
	if outcome := outcomeFor(t, summary, "attendees"); outcome.Status != OutcomeSkipped {
		t.Errorf("attendees should be skipped: %s", outcome.Status)
	}
	if outcome := outcomeFor(t, summary, "links"); outcome.Status != OutcomeSkipped {
		t.Errorf("links should be skipped: %s", outcome.Status)
	}
	if rig.publisher.registered == nil {
		t.Fatal("expected registration")
	}
	if rig.publisher.registered.AttendeesHTML != "" {
		t.Error("roster must not leak into transcript-only registration")
	}
}

func TestRunAttendeesOnlyPatchesExistingPost(t *testing.T) {
	rig := newTestRig(t)

	metadata := filepath.Join(t.TempDir(), "metadata.json")
	testsupport.WriteText(t, metadata, `{"creator": {"screen_name": "alice"}}`)

	j := job.New(job.Request{
		Source:       "https://x.com/i/spaces/1abc",
		Mode:         job.ModeAttendeesOnly,
		PostID:       "post-42",
		MetadataFile: metadata,
	})
	summary := rig.pipeline().Run(context.Background(), j)

	if summary.Failed() {
		t.Fatalf("unexpected failure: %v", summary.Err)
	}
	if outcome := outcomeFor(t, summary, "acquire"); outcome.Status != OutcomeSkipped {
		t.Errorf("acquisition should be skipped: %s", outcome.Status)
	}
	if rig.acquirer.calls != 0 {
		t.Error("acquirer must not run for attendees-only")
	}
	if rig.encoder.calls != 0 {
		t.Error("encoder must not run for attendees-only")
	}

	if rig.publisher.registered != nil {
		t.Fatal("scoped mode must not register")
	}
	if rig.publisher.patchedID != "post-42" {
		t.Fatalf("unexpected patch target: %q", rig.publisher.patchedID)
	}
	if rig.publisher.patch.AttendeesHTML == "" || rig.publisher.patch.RepliesHTML != "" {
		t.Fatalf("patch carries wrong fields: %+v", rig.publisher.patch)
	}
	if rig.publisher.patch.Status != "complete" || rig.publisher.patch.Progress != 100 {
		t.Fatalf("missing completion marker: %+v", rig.publisher.patch)
	}
}

func TestRunRepliesOnlyUsesTranscriptFile(t *testing.T) {
	rig := newTestRig(t)

	transcript := filepath.Join(t.TempDir(), "transcript.html")
	testsupport.WriteText(t, transcript, `<div><a href="https://a.example/one">one</a></div>`)

	j := job.New(job.Request{
		Source:         "https://x.com/i/spaces/1abc",
		Mode:           job.ModeRepliesOnly,
		PostID:         "post-42",
		ReferenceLink:  "https://x.com/i/spaces/1abc",
		TranscriptFile: transcript,
		Options:        job.DefaultOptions(),
	})
	summary := rig.pipeline().Run(context.Background(), j)

	if summary.Failed() {
		t.Fatalf("unexpected failure: %v", summary.Err)
	}
	if rig.publisher.patch == nil {
		t.Fatal("expected scoped patch")
	}
	if !strings.Contains(rig.publisher.patch.LinksHTML, "https://a.example/one") {
		t.Errorf("links missing from patch: %q", rig.publisher.patch.LinksHTML)
	}
	if !strings.Contains(rig.publisher.patch.RepliesHTML, "Open the full conversation") {
		t.Errorf("reference fragment missing: %q", rig.publisher.patch.RepliesHTML)
	}
}

func TestRunAcquisitionHardFailureSkipsAudioStages(t *testing.T) {
	rig := newTestRig(t)
	rig.acquirer.err = services.Wrap(acquire.ErrAcquisitionFailed, "acquire", "chain", "no strategy produced audio", nil)

	j := job.New(job.Request{Source: "https://x.com/i/spaces/1abc", Mode: job.ModeFull})
	summary := rig.pipeline().Run(context.Background(), j)

	if !summary.Failed() {
		t.Fatal("expected job failure when required audio is missing")
	}
	if outcome := outcomeFor(t, summary, "acquire"); outcome.Status != OutcomeHardFailed {
		t.Errorf("acquire outcome: %s", outcome.Status)
	}
	if outcome := outcomeFor(t, summary, "transcode"); outcome.Status != OutcomeSkipped {
		t.Errorf("transcode should be skipped after hard failure: %s", outcome.Status)
	}
	if rig.encoder.calls != 0 {
		t.Error("encoder must not run without audio")
	}
	// Audio-independent stages still execute.
	if outcome := outcomeFor(t, summary, "attendees"); outcome.Status != OutcomeRan {
		t.Errorf("attendees should still run: %s", outcome.Status)
	}
	if outcome := outcomeFor(t, summary, "publish"); outcome.Status != OutcomeRan {
		t.Errorf("publish should still run: %s", outcome.Status)
	}
}

func TestRunTranscribeFallbackWhenNoCaptions(t *testing.T) {
	rig := newTestRig(t)
	result := writeCaptureArtifacts(t)
	result.CaptionsPath = ""
	rig.acquirer.result = result
	rig.transcriber.enabled = true
	rig.transcriber.document = "WEBVTT\n\n0:00:00.000 --> 0:00:01.000\nhello\n"

	j := job.New(job.Request{Source: "https://x.com/i/spaces/1abc", Mode: job.ModeFull})
	summary := rig.pipeline().Run(context.Background(), j)

	if summary.Failed() {
		t.Fatalf("unexpected failure: %v", summary.Err)
	}
	if rig.transcriber.calls != 1 {
		t.Fatalf("expected one fallback call, got %d", rig.transcriber.calls)
	}
	if outcome := outcomeFor(t, summary, "transcribe-fallback"); outcome.Status != OutcomeRan {
		t.Errorf("fallback outcome: %s", outcome.Status)
	}
	if rig.publisher.registered.CaptionTrackURL == "" {
		t.Error("fallback document should be uploaded as the caption track")
	}
}

func TestRunTranscribeFailureIsSoft(t *testing.T) {
	rig := newTestRig(t)
	result := writeCaptureArtifacts(t)
	result.CaptionsPath = ""
	rig.acquirer.result = result
	rig.transcriber.enabled = true
	rig.transcriber.err = services.Wrap(services.ErrExternalTool, "transcribe", "transcribe", "service down", nil)

	j := job.New(job.Request{Source: "https://x.com/i/spaces/1abc", Mode: job.ModeFull})
	summary := rig.pipeline().Run(context.Background(), j)

	if summary.Failed() {
		t.Fatalf("fallback failure must not fail the job: %v", summary.Err)
	}
	if outcome := outcomeFor(t, summary, "transcribe-fallback"); outcome.Status != OutcomeSoftFailed {
		t.Errorf("expected soft failure, got %s", outcome.Status)
	}
	if rig.publisher.registered == nil {
		t.Fatal("publish should still run with remaining assets")
	}
}

func TestRunCaptionShiftApplied(t *testing.T) {
	rig := newTestRig(t)
	rig.acquirer.result = writeCaptureArtifacts(t)

	j := job.New(job.Request{
		Source:       "https://x.com/i/spaces/1abc",
		Mode:         job.ModeTranscriptOnly,
		CaptionShift: 1.0,
	})
	summary := rig.pipeline().Run(context.Background(), j)
	if summary.Failed() {
		t.Fatalf("unexpected failure: %v", summary.Err)
	}
	if !strings.Contains(rig.publisher.registered.TranscriptHTML, `data-start="1.000"`) {
		t.Errorf("shift not applied: %q", rig.publisher.registered.TranscriptHTML)
	}
}

func TestSummaryRender(t *testing.T) {
	rig := newTestRig(t)
	rig.acquirer.result = writeCaptureArtifacts(t)

	j := job.New(job.Request{Source: "https://x.com/i/spaces/1abc", Mode: job.ModeFull})
	summary := rig.pipeline().Run(context.Background(), j)

	rendered := summary.Render()
	for _, want := range []string{"live-conversation", "1abc", "capture", "result: ok"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("summary missing %q:\n%s", want, rendered)
		}
	}
}

func TestRunUsesConfiguredDefaultProfile(t *testing.T) {
	rig := newTestRig(t)
	rig.acquirer.result = writeCaptureArtifacts(t)
	rig.cfg.Transcode.DefaultProfile = "radio"

	j := job.New(job.Request{Source: "https://x.com/i/spaces/1abc", Mode: job.ModeFull})
	if summary := rig.pipeline().Run(context.Background(), j); summary.Failed() {
		t.Fatalf("unexpected failure: %v", summary.Err)
	}
	if rig.encoder.profile != "radio" {
		t.Fatalf("expected configured default profile, got %q", rig.encoder.profile)
	}

	rig2 := newTestRig(t)
	rig2.acquirer.result = writeCaptureArtifacts(t)
	j2 := job.New(job.Request{Source: "https://x.com/i/spaces/1abc", Mode: job.ModeFull, AudioProfile: "aggressive"})
	if summary := rig2.pipeline().Run(context.Background(), j2); summary.Failed() {
		t.Fatalf("unexpected failure: %v", summary.Err)
	}
	if rig2.encoder.profile != "aggressive" {
		t.Fatalf("explicit profile should win, got %q", rig2.encoder.profile)
	}
}
