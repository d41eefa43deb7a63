package roster

import (
	"fmt"
	"html"
	"strings"
)

// RenderMarkup formats the roster as optional Host / Co-host(s) / Speakers
// sections. Empty sections are omitted; an empty roster renders nothing.
func RenderMarkup(r Roster) string {
	if r.Empty() {
		return ""
	}
	var b strings.Builder
	b.WriteString("<div class=\"attendees\">\n")
	if r.Host != nil {
		writeSection(&b, "Host", []ParticipantEntry{*r.Host})
	}
	if len(r.CoHosts) > 0 {
		heading := "Co-host"
		if len(r.CoHosts) > 1 {
			heading = "Co-hosts"
		}
		writeSection(&b, heading, r.CoHosts)
	}
	if len(r.Speakers) > 0 {
		writeSection(&b, "Speakers", r.Speakers)
	}
	b.WriteString("</div>\n")
	return b.String()
}

func writeSection(b *strings.Builder, heading string, entries []ParticipantEntry) {
	fmt.Fprintf(b, "<h4>%s</h4>\n<ul>\n", heading)
	for _, entry := range entries {
		fmt.Fprintf(b, "<li><a href=\"%s\">%s</a> (@%s)</li>\n",
			entry.ProfileURL, html.EscapeString(entry.Display), html.EscapeString(entry.Handle))
	}
	b.WriteString("</ul>\n")
}
