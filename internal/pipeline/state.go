package pipeline

import (
	"aircast/internal/acquire"
	"aircast/internal/captions"
	"aircast/internal/job"
	"aircast/internal/links"
	"aircast/internal/publish"
	"aircast/internal/services/blobstore"
)

// State is the mutable job context threaded stage to stage. The orchestrator
// owns it; no two stages of the same job run concurrently.
type State struct {
	Job *job.Job

	Acquisition acquire.Result
	Meta        publish.SessionMeta

	Cues           []captions.Cue
	VTTDoc         string
	TranscriptHTML string

	EncodedAudioPath string
	CaptionTrackPath string

	AttendeesHTML string
	LinkEntries   []links.LinkEntry
	LinksHTML     string
	RepliesHTML   string

	AudioLocation   blobstore.Location
	CaptionLocation blobstore.Location

	Outcomes []StageOutcome

	// audioLost is set when acquisition hard-fails; audio-dependent stages
	// are skipped while independent ones still run.
	audioLost bool
}

// HasAudio reports whether an acquired audio file is available.
func (s *State) HasAudio() bool {
	return s.Acquisition.AudioPath != ""
}

// HasTranscript reports whether any subtitle document exists, locally
// normalized or produced by the fallback.
func (s *State) HasTranscript() bool {
	return s.VTTDoc != ""
}

// TranscriptMarkup returns the markup the engagement collector scans.
func (s *State) TranscriptMarkup() string {
	return s.TranscriptHTML
}
