package whisper

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aircast/internal/services"
)

type fakeDoer struct {
	fn func(req *http.Request) (*http.Response, error)
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) { return f.fn(req) }

func response(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{},
	}
}

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.m4a")
	if err := os.WriteFile(path, []byte("fake audio"), 0o644); err != nil {
		t.Fatalf("write audio: %v", err)
	}
	return path
}

func TestTranscribe(t *testing.T) {
	audio := writeAudio(t)

	var captured *http.Request
	var form map[string]string
	doer := &fakeDoer{fn: func(req *http.Request) (*http.Response, error) {
		captured = req
		if err := req.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		form = map[string]string{}
		for key, values := range req.MultipartForm.Value {
			form[key] = values[0]
		}
		return response(http.StatusOK, "WEBVTT\n\n0:00:00.000 --> 0:00:01.000\nhi\n"), nil
	}}

	client := NewClient("https://stt.example/", "token-1", "en-US", doer)
	document, err := client.Transcribe(context.Background(), audio)
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}

	if captured.URL.String() != "https://stt.example/v1/audio/transcriptions" {
		t.Fatalf("unexpected endpoint: %s", captured.URL)
	}
	if captured.Header.Get("Authorization") != "Bearer token-1" {
		t.Fatalf("missing auth header: %v", captured.Header)
	}
	if form["language"] != "en" {
		t.Fatalf("expected normalized base language, got %q", form["language"])
	}
	if form["response_format"] != "vtt" {
		t.Fatalf("expected vtt response format, got %q", form["response_format"])
	}
	if !strings.HasPrefix(document, "WEBVTT") || !strings.HasSuffix(document, "\n") {
		t.Fatalf("unexpected document: %q", document)
	}
}

func TestTranscribeNonOK(t *testing.T) {
	doer := &fakeDoer{fn: func(*http.Request) (*http.Response, error) {
		return response(http.StatusBadGateway, ""), nil
	}}
	client := NewClient("https://stt.example", "token", "en", doer)

	_, err := client.Transcribe(context.Background(), writeAudio(t))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestTranscribeEmptyDocument(t *testing.T) {
	doer := &fakeDoer{fn: func(*http.Request) (*http.Response, error) {
		return response(http.StatusOK, "   "), nil
	}}
	client := NewClient("https://stt.example", "token", "en", doer)

	_, err := client.Transcribe(context.Background(), writeAudio(t))
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error for empty document, got %v", err)
	}
}

func TestTranscribeDisabled(t *testing.T) {
	client := NewClient("", "", "en", nil)
	if client.Enabled() {
		t.Fatal("expected disabled client")
	}
	_, err := client.Transcribe(context.Background(), "unused")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestNormalizeLanguage(t *testing.T) {
	cases := map[string]string{
		"en-US":           "en",
		"pt-BR":           "pt",
		"de":              "de",
		"":                "",
		"zz-bogus-tag-++": "",
	}
	for input, want := range cases {
		if got := normalizeLanguage(input); got != want {
			t.Errorf("normalizeLanguage(%q) = %q, want %q", input, got, want)
		}
	}
}
