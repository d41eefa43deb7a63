package roster

import (
	"encoding/json"
	"strings"
)

// Role-specific field aliases for participant records.
var (
	handleKeys  = []string{"screen_name", "twitter_screen_name", "username", "handle"}
	displayKeys = []string{"display_name", "name"}
)

// ParticipantEntry identifies one attendee. Handle is the case-insensitive
// unique key; ProfileURL is derived from it.
type ParticipantEntry struct {
	Handle     string
	Display    string
	ProfileURL string
}

// Roster is the deduplicated attendee set for one session.
type Roster struct {
	Host     *ParticipantEntry
	CoHosts  []ParticipantEntry
	Speakers []ParticipantEntry
}

// Empty reports whether nothing usable was extracted.
func (r Roster) Empty() bool {
	return r.Host == nil && len(r.CoHosts) == 0 && len(r.Speakers) == 0
}

// Parse decodes a raw metadata document and extracts the roster. A document
// that does not decode yields an empty roster, not an error.
func Parse(raw []byte) Roster {
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Roster{}
	}
	return Extract(doc)
}

// Extract builds the roster from decoded session metadata. The host comes
// from the creator record; co-hosts from the admins list with the host's
// handle excluded; speakers from the speakers list independently. All
// deduplication is case-insensitive on handle. Extraction is idempotent.
func Extract(doc map[string]any) Roster {
	var roster Roster

	if creator, ok := doc["creator"].(map[string]any); ok {
		if entry, ok := participant(creator); ok {
			roster.Host = &entry
		}
	}

	hostKey := ""
	if roster.Host != nil {
		hostKey = strings.ToLower(roster.Host.Handle)
	}

	roster.CoHosts = participants(doc["admins"], hostKey)
	roster.Speakers = participants(doc["speakers"], "")
	return roster
}

func participants(value any, excludeKey string) []ParticipantEntry {
	list, ok := value.([]any)
	if !ok {
		return nil
	}
	var entries []ParticipantEntry
	seen := map[string]struct{}{}
	for _, item := range list {
		record, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry, ok := participant(record)
		if !ok {
			continue
		}
		key := strings.ToLower(entry.Handle)
		if key == excludeKey {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		entries = append(entries, entry)
	}
	return entries
}

func participant(record map[string]any) (ParticipantEntry, bool) {
	handle := stringField(record, handleKeys)
	if handle == "" {
		return ParticipantEntry{}, false
	}
	entry := ParticipantEntry{
		Handle:     handle,
		Display:    stringField(record, displayKeys),
		ProfileURL: "https://x.com/" + handle,
	}
	if entry.Display == "" {
		entry.Display = handle
	}
	return entry, true
}

func stringField(record map[string]any, keys []string) string {
	for _, key := range keys {
		if v, ok := record[key].(string); ok {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}
