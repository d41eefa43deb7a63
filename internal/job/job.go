package job

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SourceKind classifies what the source reference points at.
type SourceKind string

const (
	KindLiveConversation SourceKind = "live-conversation"
	KindDirectAudioFile  SourceKind = "direct-audio-file"
	KindUnknown          SourceKind = "unknown"
)

// UnknownID is the sentinel identifier used when no stable identifier can be
// derived from the source reference.
const UnknownID = "unknown"

// Options carries the small per-invocation options object.
type Options struct {
	FetchTitles     bool
	FetchLimit      int
	FetchTimeoutSec int
}

// DefaultOptions mirrors the documented option defaults.
func DefaultOptions() Options {
	return Options{FetchTitles: true, FetchLimit: 18, FetchTimeoutSec: 4}
}

// Request holds the invocation parameters for one job. Immutable once built.
type Request struct {
	Source         string
	KindHint       string
	TitleHint      string
	PostID         string
	StoragePrefix  string
	Public         bool
	Mode           Mode
	ReferenceLink  string
	AudioProfile   string
	CaptionShift   float64
	DirectFile     string
	MetadataFile   string
	TranscriptFile string
	Options        Options
}

// Job is the per-invocation context threaded through the pipeline. The
// orchestrator owns it; stages read it and return outputs, they never write
// Job fields themselves.
type Job struct {
	Request

	RunID     string
	Kind      SourceKind
	SpaceID   string
	StartedAt time.Time
	WorkDir   string
}

// New builds a Job from a request, deriving the run identifier and start time.
// Source resolution fills Kind and SpaceID afterwards.
func New(req Request) *Job {
	j := &Job{
		Request:   req,
		Kind:      KindUnknown,
		SpaceID:   UnknownID,
		StartedAt: time.Now().UTC(),
	}
	j.RunID = strings.TrimSpace(req.PostID)
	if j.RunID == "" {
		j.RunID = uuid.NewString()
	}
	if strings.TrimSpace(j.StoragePrefix) == "" {
		j.StoragePrefix = j.StartedAt.Format("2006/01")
	}
	return j
}

// BaseName returns the stable, collision-free artifact base name for this run.
func (j *Job) BaseName() string {
	id := j.SpaceID
	if strings.TrimSpace(id) == "" {
		id = UnknownID
	}
	return fmt.Sprintf("%s-%s", id, j.StartedAt.Format("20060102"))
}

// ArtifactPath returns the path of a run artifact inside the job work
// directory, named `<base><suffix>`.
func (j *Job) ArtifactPath(suffix string) string {
	return filepath.Join(j.WorkDir, j.BaseName()+suffix)
}

// LockKey returns the key used to serialize jobs targeting the same post.
func (j *Job) LockKey() string {
	if id := strings.TrimSpace(j.PostID); id != "" {
		return id
	}
	return j.RunID
}
