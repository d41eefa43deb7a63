package links

import (
	"strings"
	"testing"
)

func TestExtractDedupAndOrder(t *testing.T) {
	markup := `<div>
		<a href="https://a.example/one">one</a>
		<a href="https://b.example/two">two</a>
		<a href="https://a.example/one">one again</a>
		<a href="mailto:x@example.com">mail</a>
		<a href="/relative">rel</a>
		<a href="https://c.example/three">three</a>
	</div>`

	urls := Extract(markup, 0)
	want := []string{"https://a.example/one", "https://b.example/two", "https://c.example/three"}
	if len(urls) != len(want) {
		t.Fatalf("expected %d urls, got %v", len(want), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Fatalf("url %d: got %q, want %q", i, urls[i], want[i])
		}
	}
}

func TestExtractLimit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 25; i++ {
		b.WriteString(`<a href="https://example.com/p` + strings.Repeat("x", i+1) + `">l</a>`)
	}

	urls := Extract(b.String(), 18)
	if len(urls) != 18 {
		t.Fatalf("expected truncation at 18, got %d", len(urls))
	}
}

func TestExtractEmptyMarkup(t *testing.T) {
	if urls := Extract("", 10); len(urls) != 0 {
		t.Fatalf("expected no urls, got %v", urls)
	}
}

func TestFallbackLabel(t *testing.T) {
	cases := []struct {
		link string
		want string
	}{
		{"https://www.example.com/path?q=1", "example.com"},
		{"http://Sub.Example.Org/x", "sub.example.org"},
		{"not a url at all", "not a url at all"},
	}
	for _, tc := range cases {
		if got := FallbackLabel(tc.link); got != tc.want {
			t.Fatalf("FallbackLabel(%q) = %q, want %q", tc.link, got, tc.want)
		}
	}
}
