package captions

import (
	"fmt"
	"html"
	"strings"
)

// RenderVTT turns the cue list into a WebVTT document. Text is HTML-escaped
// and collapsed to a single line per cue. An empty cue list yields an empty
// string, never a bare header.
func RenderVTT(cues []Cue) string {
	if len(cues) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for _, cue := range cues {
		b.WriteString(formatTimestamp(cue.Start))
		b.WriteString(" --> ")
		b.WriteString(formatTimestamp(cue.End))
		b.WriteByte('\n')
		b.WriteString(escapeText(cue.Text))
		b.WriteString("\n\n")
	}
	return b.String()
}

// RenderMarkup turns the cue list into an annotated transcript fragment: one
// container element per cue carrying machine-readable start/end attributes in
// three-decimal seconds.
func RenderMarkup(cues []Cue) string {
	if len(cues) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<div class=\"transcript\">\n")
	for _, cue := range cues {
		fmt.Fprintf(&b, "<p class=\"cue\" data-start=\"%.3f\" data-end=\"%.3f\">%s</p>\n",
			cue.Start, cue.End, escapeText(cue.Text))
	}
	b.WriteString("</div>\n")
	return b.String()
}

// formatTimestamp renders seconds as H:MM:SS.mmm.
func formatTimestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	millis := int64(seconds*1000 + 0.5)
	h := millis / 3600000
	m := (millis % 3600000) / 60000
	s := (millis % 60000) / 1000
	ms := millis % 1000
	return fmt.Sprintf("%d:%02d:%02d.%03d", h, m, s, ms)
}

func escapeText(text string) string {
	collapsed := strings.Join(strings.Fields(text), " ")
	return html.EscapeString(collapsed)
}
