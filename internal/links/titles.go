package links

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"
)

// HTTPDoer describes the HTTP client used for title fetches.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// maxTitleBody caps how much of a page is read while looking for <title>.
const maxTitleBody = 256 * 1024

// Resolver resolves display titles for collected links.
type Resolver struct {
	client      HTTPDoer
	fetchTitles bool
	timeout     time.Duration
	workers     int
}

// NewResolver builds a title resolver. A nil client falls back to
// http.DefaultClient.
func NewResolver(client HTTPDoer, fetchTitles bool, timeout time.Duration, workers int) *Resolver {
	if client == nil {
		client = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = 4 * time.Second
	}
	if workers <= 0 {
		workers = 4
	}
	return &Resolver{client: client, fetchTitles: fetchTitles, timeout: timeout, workers: workers}
}

// Resolve maps each URL to a LinkEntry. Title fetches run concurrently with
// a bounded worker count; every fetch is independently bounded by the
// per-request timeout and any failure degrades only that entry's label.
// Output order matches input order since each fetch writes its own slot.
func (r *Resolver) Resolve(ctx context.Context, urls []string) []LinkEntry {
	entries := make([]LinkEntry, len(urls))
	for i, u := range urls {
		entries[i] = LinkEntry{URL: u, Title: FallbackLabel(u)}
	}
	if !r.fetchTitles || len(urls) == 0 {
		return entries
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(r.workers)
	for i, u := range urls {
		i, u := i, u
		group.Go(func() error {
			if title, err := r.fetchTitle(groupCtx, u); err == nil && title != "" {
				entries[i].Title = title
			}
			return nil
		})
	}
	_ = group.Wait()
	return entries
}

func (r *Resolver) fetchTitle(ctx context.Context, pageURL string) (string, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "aircast/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("title fetch returned %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxTitleBody))
	if err != nil {
		return "", err
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())
	return strings.Join(strings.Fields(title), " "), nil
}

// FallbackLabel derives a label from the link's registrable domain, or
// returns the raw URL when no host can be parsed.
func FallbackLabel(link string) string {
	parsed, err := url.Parse(link)
	if err != nil || parsed.Host == "" {
		return link
	}
	host := strings.TrimPrefix(strings.ToLower(parsed.Hostname()), "www.")
	if host == "" {
		return link
	}
	return host
}
