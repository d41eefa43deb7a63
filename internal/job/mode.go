package job

import (
	"fmt"
	"strings"
)

// Mode selects which pipeline stages a job runs.
type Mode string

const (
	ModeFull           Mode = "full"
	ModeTranscriptOnly Mode = "transcript-only"
	ModeAttendeesOnly  Mode = "attendees-only"
	ModeRepliesOnly    Mode = "replies-only"
)

// ParseMode maps an invocation mode string to a Mode. The empty string means
// a full run.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "full":
		return ModeFull, nil
	case "transcript-only", "transcript":
		return ModeTranscriptOnly, nil
	case "attendees-only", "attendees":
		return ModeAttendeesOnly, nil
	case "replies-only", "replies":
		return ModeRepliesOnly, nil
	default:
		return "", fmt.Errorf("unknown mode %q", value)
	}
}

// RequiresAudio reports whether a job in this mode fails without an audio file.
func (m Mode) RequiresAudio() bool {
	switch m {
	case ModeAttendeesOnly, ModeRepliesOnly:
		return false
	default:
		return true
	}
}

// WantsTranscript reports whether caption normalization and rendering run.
func (m Mode) WantsTranscript() bool {
	return m == ModeFull || m == ModeTranscriptOnly
}

// WantsAttendees reports whether attendee extraction runs.
func (m Mode) WantsAttendees() bool {
	return m == ModeFull || m == ModeAttendeesOnly
}

// WantsLinks reports whether the engagement collector runs.
func (m Mode) WantsLinks() bool {
	return m == ModeFull || m == ModeRepliesOnly
}

// Scoped reports whether publishing uses a partial patch instead of a full
// registration.
func (m Mode) Scoped() bool {
	return m == ModeAttendeesOnly || m == ModeRepliesOnly
}
