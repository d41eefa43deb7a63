package cms

// RegisterRequest is the full-registration payload. Every optional field must
// be pre-trimmed by the caller; empty fields are not transmitted.
type RegisterRequest struct {
	PostID          string `json:"post_id"`
	Title           string `json:"title,omitempty"`
	Visibility      string `json:"visibility,omitempty"`
	AudioURL        string `json:"audio_url,omitempty"`
	CaptionTrackURL string `json:"caption_track_url,omitempty"`
	TranscriptHTML  string `json:"transcript_html,omitempty"`
	AttendeesHTML   string `json:"attendees_html,omitempty"`
	RepliesHTML     string `json:"replies_html,omitempty"`
	LinksHTML       string `json:"links_html,omitempty"`
	RecordedAt      string `json:"recorded_at,omitempty"`
}

// PatchRequest is the scoped partial-update payload.
type PatchRequest struct {
	Status        string `json:"status"`
	Progress      int    `json:"progress"`
	AttendeesHTML string `json:"attendees_html,omitempty"`
	RepliesHTML   string `json:"replies_html,omitempty"`
	LinksHTML     string `json:"links_html,omitempty"`
}
