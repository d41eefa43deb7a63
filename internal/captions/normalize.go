package captions

import (
	"bufio"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Field alias priority lists. Capture sources disagree on key names for the
// same logical field, so resolution walks each list in order and takes the
// first key that parses.
var (
	startKeys    = []string{"start_sec", "start"}
	startMSKeys  = []string{"start_ms", "startMs"}
	offsetKeys   = []string{"offset", "offset_sec"}
	endKeys      = []string{"end_sec", "end"}
	endMSKeys    = []string{"end_ms", "endMs"}
	durationKeys = []string{"duration", "dur", "duration_sec"}
	textKeys     = []string{"text", "caption", "body"}
)

// Normalize reads line-delimited JSON caption records, resolves aliased
// fields, applies the global shift, and returns cues sorted by start
// ascending. Individual records that cannot resolve both start and end, have
// empty text, or end before they start are dropped; malformed lines never
// abort the batch.
func Normalize(r io.Reader, shift float64) []Cue {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	var cues []Cue
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			continue
		}
		if cue, ok := normalizeRecord(record, shift); ok {
			cues = append(cues, cue)
		}
	}

	sort.SliceStable(cues, func(i, j int) bool { return cues[i].Start < cues[j].Start })
	return cues
}

func normalizeRecord(record map[string]any, shift float64) (Cue, bool) {
	start, ok := resolveStart(record)
	if !ok {
		return Cue{}, false
	}
	end, ok := resolveEnd(record, start)
	if !ok {
		return Cue{}, false
	}
	text, ok := resolveText(record)
	if !ok {
		return Cue{}, false
	}

	start -= shift
	end -= shift
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	// Cues that end before they start carry no renderable interval.
	if end < start {
		return Cue{}, false
	}
	return Cue{Start: start, End: end, Text: text}, true
}

func resolveStart(record map[string]any) (float64, bool) {
	if v, ok := floatField(record, startKeys); ok {
		return v, true
	}
	if v, ok := floatField(record, startMSKeys); ok {
		return v / 1000, true
	}
	if v, ok := floatField(record, offsetKeys); ok {
		return v, true
	}
	return 0, false
}

func resolveEnd(record map[string]any, start float64) (float64, bool) {
	if v, ok := floatField(record, endKeys); ok {
		return v, true
	}
	if v, ok := floatField(record, endMSKeys); ok {
		return v / 1000, true
	}
	if v, ok := floatField(record, durationKeys); ok {
		return start + v, true
	}
	return 0, false
}

func resolveText(record map[string]any) (string, bool) {
	for _, key := range textKeys {
		v, ok := record[key]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				return trimmed, true
			}
		}
	}
	return "", false
}

// floatField resolves the first present key to a number, accepting JSON
// numbers and numeric strings.
func floatField(record map[string]any, keys []string) (float64, bool) {
	for _, key := range keys {
		v, ok := record[key]
		if !ok {
			continue
		}
		switch value := v.(type) {
		case float64:
			return value, true
		case json.Number:
			if f, err := value.Float64(); err == nil {
				return f, true
			}
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}
