package links

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkEntry pairs a referenced URL with its resolved display title or a
// derived fallback label.
type LinkEntry struct {
	URL   string
	Title string
}

// Extract scans anchor elements in transcript markup and returns http(s)
// hrefs deduplicated in first-seen order, truncated to limit. Unparseable
// markup yields no links rather than an error.
func Extract(markup string, limit int) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil
	}

	var urls []string
	seen := map[string]struct{}{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		href = strings.TrimSpace(href)
		lower := strings.ToLower(href)
		if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
			return
		}
		if _, dup := seen[href]; dup {
			return
		}
		seen[href] = struct{}{}
		urls = append(urls, href)
	})

	if limit > 0 && len(urls) > limit {
		urls = urls[:limit]
	}
	return urls
}
