package publish

import (
	"fmt"
	"strings"
	"time"

	"aircast/internal/job"
	"aircast/internal/services/cms"
)

// AssetBundle aggregates whatever stage outputs exist for a job. Every field
// is optional; only non-empty fields are transmitted.
type AssetBundle struct {
	Title           string
	AudioURL        string
	CaptionTrackURL string
	TranscriptHTML  string
	AttendeesHTML   string
	RepliesHTML     string
	LinksHTML       string
	RecordedAt      time.Time
}

// ResolveTitle applies the title precedence: captured session metadata, then
// the job's title hint, then a generated fallback name from the resolved
// identifier and capture date.
func ResolveTitle(meta SessionMeta, j *job.Job) string {
	if title := strings.TrimSpace(meta.Title); title != "" {
		return title
	}
	if title := strings.TrimSpace(j.TitleHint); title != "" {
		return title
	}
	return fmt.Sprintf("Space %s (%s)", j.SpaceID, j.StartedAt.Format("2006-01-02"))
}

// ResolveStartTime applies the start-time precedence: captured metadata
// timestamp, then the acquisition wall-clock, then the job start.
func ResolveStartTime(meta SessionMeta, acquiredAt, jobStart time.Time) time.Time {
	if !meta.StartedAt.IsZero() {
		return meta.StartedAt
	}
	if !acquiredAt.IsZero() {
		return acquiredAt
	}
	return jobStart
}

// BuildRegister shapes the bundle into a full-registration request. Fields
// that are empty after trimming are left out of the payload entirely.
func BuildRegister(j *job.Job, bundle AssetBundle) cms.RegisterRequest {
	visibility := "private"
	if j.Public {
		visibility = "public"
	}
	postID := strings.TrimSpace(j.PostID)
	if postID == "" {
		postID = j.RunID
	}
	req := cms.RegisterRequest{
		PostID:          postID,
		Title:           strings.TrimSpace(bundle.Title),
		Visibility:      visibility,
		AudioURL:        strings.TrimSpace(bundle.AudioURL),
		CaptionTrackURL: strings.TrimSpace(bundle.CaptionTrackURL),
		TranscriptHTML:  strings.TrimSpace(bundle.TranscriptHTML),
		AttendeesHTML:   strings.TrimSpace(bundle.AttendeesHTML),
		RepliesHTML:     strings.TrimSpace(bundle.RepliesHTML),
		LinksHTML:       strings.TrimSpace(bundle.LinksHTML),
	}
	if !bundle.RecordedAt.IsZero() {
		req.RecordedAt = bundle.RecordedAt.UTC().Format(time.RFC3339)
	}
	return req
}

// BuildPatch shapes the bundle into the scoped patch for attendees-only and
// replies-only runs: post identifier, completion marker, and only the fields
// relevant to the mode.
func BuildPatch(mode job.Mode, bundle AssetBundle) cms.PatchRequest {
	patch := cms.PatchRequest{Status: "complete", Progress: 100}
	switch mode {
	case job.ModeAttendeesOnly:
		patch.AttendeesHTML = strings.TrimSpace(bundle.AttendeesHTML)
	case job.ModeRepliesOnly:
		patch.RepliesHTML = strings.TrimSpace(bundle.RepliesHTML)
		patch.LinksHTML = strings.TrimSpace(bundle.LinksHTML)
	}
	return patch
}
