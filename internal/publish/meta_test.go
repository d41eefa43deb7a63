package publish

import (
	"testing"
	"time"
)

func TestParseSessionMeta(t *testing.T) {
	meta := ParseSessionMeta([]byte(`{"title": "  Weekly Sync  ", "started_at": 1700000000}`))
	if meta.Title != "Weekly Sync" {
		t.Fatalf("unexpected title: %q", meta.Title)
	}
	want := time.Unix(1700000000, 0).UTC()
	if !meta.StartedAt.Equal(want) {
		t.Fatalf("unexpected start: %v", meta.StartedAt)
	}
}

func TestParseSessionMetaMillisecondEpoch(t *testing.T) {
	meta := ParseSessionMeta([]byte(`{"created_at": 1700000000000}`))
	want := time.UnixMilli(1700000000000).UTC()
	if !meta.StartedAt.Equal(want) {
		t.Fatalf("expected millisecond interpretation, got %v", meta.StartedAt)
	}
}

func TestParseSessionMetaStringEpoch(t *testing.T) {
	meta := ParseSessionMeta([]byte(`{"start_time": "1700000000"}`))
	if meta.StartedAt.IsZero() {
		t.Fatal("expected string epoch to parse")
	}
}

func TestParseSessionMetaMalformed(t *testing.T) {
	meta := ParseSessionMeta([]byte("nope"))
	if meta.Title != "" || !meta.StartedAt.IsZero() {
		t.Fatalf("expected zero meta, got %+v", meta)
	}
}
