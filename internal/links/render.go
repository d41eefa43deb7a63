package links

import (
	"fmt"
	"html"
	"strings"
)

// RenderList formats resolved links as an ordered list fragment. No links,
// no fragment.
func RenderList(entries []LinkEntry) string {
	if len(entries) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("<div class=\"linked-references\">\n<h4>Linked references</h4>\n<ol>\n")
	for _, entry := range entries {
		label := strings.TrimSpace(entry.Title)
		if label == "" {
			label = entry.URL
		}
		fmt.Fprintf(&b, "<li><a href=\"%s\">%s</a></li>\n", entry.URL, html.EscapeString(label))
	}
	b.WriteString("</ol>\n</div>\n")
	return b.String()
}

// RenderReference formats the one-line "open full conversation" fragment for
// a supplied reference link.
func RenderReference(link string) string {
	link = strings.TrimSpace(link)
	if link == "" {
		return ""
	}
	return fmt.Sprintf("<p class=\"conversation-link\"><a href=\"%s\">Open the full conversation</a></p>\n", link)
}
