package links

import (
	"strings"
	"testing"
)

func TestRenderList(t *testing.T) {
	entries := []LinkEntry{
		{URL: "https://a.example", Title: "A & B"},
		{URL: "https://b.example", Title: ""},
	}

	fragment := RenderList(entries)
	if !strings.Contains(fragment, "A &amp; B") {
		t.Fatalf("title not escaped: %q", fragment)
	}
	if !strings.Contains(fragment, ">https://b.example</a>") {
		t.Fatalf("expected raw url label for empty title: %q", fragment)
	}
	if RenderList(nil) != "" {
		t.Fatal("expected no fragment for empty entries")
	}
}

func TestRenderReference(t *testing.T) {
	fragment := RenderReference("https://x.com/i/spaces/1abc")
	if !strings.Contains(fragment, "Open the full conversation") {
		t.Fatalf("unexpected fragment: %q", fragment)
	}
	if RenderReference("   ") != "" {
		t.Fatal("expected no fragment for blank link")
	}
}
