package pipeline

import (
	"fmt"
	"strings"
)

// Summary is the human-readable account of one run: what was resolved, which
// stages ran, which assets were produced, and which were omitted and why.
type Summary struct {
	RunID    string
	PostID   string
	Mode     string
	Kind     string
	SpaceID  string
	Strategy string
	Outcomes []StageOutcome
	Produced []string
	Omitted  map[string]string
	Err      error
}

// NewSummary derives the summary from the final job state.
func NewSummary(state *State, jobErr error) *Summary {
	s := &Summary{
		RunID:    state.Job.RunID,
		PostID:   state.Job.PostID,
		Mode:     string(state.Job.Mode),
		Kind:     string(state.Job.Kind),
		SpaceID:  state.Job.SpaceID,
		Strategy: state.Acquisition.Strategy,
		Outcomes: state.Outcomes,
		Omitted:  map[string]string{},
		Err:      jobErr,
	}

	record := func(name, value, reason string) {
		if strings.TrimSpace(value) != "" {
			s.Produced = append(s.Produced, name)
			return
		}
		s.Omitted[name] = reason
	}

	record("audio", state.EncodedAudioPath, "no encoded audio")
	record("caption-track", state.VTTDoc, "no caption records and no fallback transcript")
	record("transcript-markup", state.TranscriptHTML, "no normalized cues")
	record("attendees", state.AttendeesHTML, "no attendee metadata")
	record("links", state.LinksHTML, "no links found in transcript")
	record("replies", state.RepliesHTML, "no reference link supplied")
	return s
}

// Failed reports whether the run ended with a job-level failure.
func (s *Summary) Failed() bool {
	return s.Err != nil
}

// Render formats the summary for terminal output.
func (s *Summary) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "run %s (mode %s)\n", s.RunID, s.Mode)
	fmt.Fprintf(&b, "  source kind: %s, space id: %s\n", s.Kind, s.SpaceID)
	if s.Strategy != "" {
		fmt.Fprintf(&b, "  acquisition: %s\n", s.Strategy)
	}

	b.WriteString("  stages:\n")
	for _, outcome := range s.Outcomes {
		line := fmt.Sprintf("    %-20s %s", outcome.Stage, outcome.Status)
		if outcome.Reason != "" {
			line += " (" + outcome.Reason + ")"
		}
		if outcome.Err != nil {
			line += ": " + outcome.Err.Error()
		}
		b.WriteString(line + "\n")
	}

	if len(s.Produced) > 0 {
		fmt.Fprintf(&b, "  produced: %s\n", strings.Join(s.Produced, ", "))
	}
	for name, reason := range s.Omitted {
		fmt.Fprintf(&b, "  omitted %s: %s\n", name, reason)
	}
	if s.Err != nil {
		fmt.Fprintf(&b, "  result: FAILED: %v\n", s.Err)
	} else {
		b.WriteString("  result: ok\n")
	}
	return b.String()
}
