package source

import (
	"net/url"
	"path"
	"strings"

	"aircast/internal/job"
)

var audioExtensions = map[string]struct{}{
	".mp3":  {},
	".m4a":  {},
	".aac":  {},
	".wav":  {},
	".flac": {},
	".ogg":  {},
	".opus": {},
}

// Resolution is the outcome of classifying a source reference.
type Resolution struct {
	Kind    job.SourceKind
	SpaceID string
}

// Resolve classifies the reference and derives a stable identifier. The hint
// wins when it names a concrete kind; "auto" or empty falls back to
// pattern matching. Resolve never fails: anything unrecognizable comes back
// as KindUnknown with the sentinel identifier.
func Resolve(reference, kindHint string) Resolution {
	res := Resolution{Kind: job.KindUnknown, SpaceID: job.UnknownID}
	reference = strings.TrimSpace(reference)

	switch strings.ToLower(strings.TrimSpace(kindHint)) {
	case string(job.KindLiveConversation):
		res.Kind = job.KindLiveConversation
	case string(job.KindDirectAudioFile):
		res.Kind = job.KindDirectAudioFile
	case "", "auto":
		res.Kind = classify(reference)
	default:
		res.Kind = classify(reference)
	}

	if id := extractSpaceID(reference); id != "" {
		res.SpaceID = id
	}
	return res
}

func classify(reference string) job.SourceKind {
	if reference == "" {
		return job.KindUnknown
	}
	if hasAudioExtension(reference) {
		return job.KindDirectAudioFile
	}
	if extractSpaceID(reference) != "" {
		return job.KindLiveConversation
	}
	return job.KindUnknown
}

func hasAudioExtension(reference string) bool {
	trimmed := reference
	if parsed, err := url.Parse(reference); err == nil && parsed.Path != "" {
		trimmed = parsed.Path
	}
	ext := strings.ToLower(path.Ext(trimmed))
	_, ok := audioExtensions[ext]
	return ok
}

// extractSpaceID pulls the identifier from a live-conversation URL such as
// https://x.com/i/spaces/1vOxwdZjqoOxB or a bare /spaces/<id> path.
func extractSpaceID(reference string) string {
	if reference == "" {
		return ""
	}
	candidate := reference
	if parsed, err := url.Parse(reference); err == nil && parsed.Path != "" {
		candidate = parsed.Path
	}
	segments := strings.Split(strings.Trim(candidate, "/"), "/")
	for i, segment := range segments {
		if !strings.EqualFold(segment, "spaces") {
			continue
		}
		if i+1 < len(segments) {
			if id := sanitizeID(segments[i+1]); id != "" {
				return id
			}
		}
	}
	return ""
}

func sanitizeID(segment string) string {
	segment = strings.TrimSpace(segment)
	for _, r := range segment {
		valid := r == '_' || r == '-' ||
			(r >= '0' && r <= '9') ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z')
		if !valid {
			return ""
		}
	}
	return segment
}
