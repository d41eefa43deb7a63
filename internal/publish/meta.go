package publish

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// SessionMeta carries the fields of captured session metadata that publishing
// cares about. Zero values mean the capture did not provide them.
type SessionMeta struct {
	Title     string
	StartedAt time.Time
}

var metaTitleKeys = []string{"title", "name"}
var metaStartKeys = []string{"started_at", "created_at", "start_time"}

// ParseSessionMeta decodes captured metadata. An undecodable document yields
// an empty SessionMeta, never an error.
func ParseSessionMeta(raw []byte) SessionMeta {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return SessionMeta{}
	}

	var meta SessionMeta
	for _, key := range metaTitleKeys {
		if v, ok := doc[key].(string); ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				meta.Title = trimmed
				break
			}
		}
	}
	for _, key := range metaStartKeys {
		if ts, ok := parseEpoch(doc[key]); ok {
			meta.StartedAt = ts
			break
		}
	}
	return meta
}

// parseEpoch accepts second- and millisecond-epoch encodings, disambiguated
// by digit count: thirteen or more digits means milliseconds.
func parseEpoch(value any) (time.Time, bool) {
	var n int64
	switch v := value.(type) {
	case float64:
		n = int64(v)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return time.Time{}, false
		}
		n = parsed
	default:
		return time.Time{}, false
	}
	if n <= 0 {
		return time.Time{}, false
	}
	if n >= 1_000_000_000_000 {
		return time.UnixMilli(n).UTC(), true
	}
	return time.Unix(n, 0).UTC(), true
}
