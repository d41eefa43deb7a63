package logging_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"aircast/internal/logging"
)

func newFileLogger(t *testing.T, format, level string) (*slog.Logger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "out.log")
	logger, err := logging.New(logging.Options{
		Level:       level,
		Format:      format,
		OutputPaths: []string{path},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	return logger, path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestConsoleHandlerLine(t *testing.T) {
	logger, path := newFileLogger(t, "console", "info")
	component := logging.NewComponentLogger(logger, "pipeline")
	component.Info("stage started",
		logging.String("stage", "acquire"),
		logging.String("note", "two words"),
	)

	content := readLog(t, path)
	if !strings.Contains(content, " INFO pipeline: stage started") {
		t.Fatalf("unexpected console line: %q", content)
	}
	if !strings.Contains(content, "stage=acquire") {
		t.Fatalf("missing key=value attr: %q", content)
	}
	if !strings.Contains(content, `note="two words"`) {
		t.Fatalf("expected quoting for spaced value: %q", content)
	}
}

func TestConsoleHandlerFlattensGroups(t *testing.T) {
	logger, path := newFileLogger(t, "console", "info")
	logger.WithGroup("job").Info("queued", logging.String("id", "run-1"))

	if content := readLog(t, path); !strings.Contains(content, "job.id=run-1") {
		t.Fatalf("group attrs not flattened: %q", content)
	}
}

func TestConsoleOmitsSourceAtInfo(t *testing.T) {
	logger, path := newFileLogger(t, "console", "info")
	logger.Info("plain message")

	if content := readLog(t, path); strings.Contains(content, ".go:") {
		t.Fatalf("expected no source location at info level: %q", content)
	}
}

func TestConsoleIncludesSourceAtDebug(t *testing.T) {
	logger, path := newFileLogger(t, "console", "debug")
	logger.Info("message with source")

	if content := readLog(t, path); !strings.Contains(content, ".go:") {
		t.Fatalf("expected source location at debug level: %q", content)
	}
}

func TestJSONHandlerFieldNames(t *testing.T) {
	logger, path := newFileLogger(t, "json", "info")
	logger.Warn("upload degraded", logging.String("dest", "2026/08/a.m4a"))

	content := readLog(t, path)
	for _, want := range []string{
		`"level":"warn"`,
		`"msg":"upload degraded"`,
		`"ts":"`,
		`"dest":"2026/08/a.m4a"`,
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("missing %q in json output: %q", want, content)
		}
	}
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	logger, path := newFileLogger(t, "console", "bogus")
	logger.Debug("hidden")
	logger.Info("visible")

	content := readLog(t, path)
	if strings.Contains(content, "hidden") {
		t.Fatalf("debug record leaked at default level: %q", content)
	}
	if !strings.Contains(content, "visible") {
		t.Fatalf("info record missing: %q", content)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "xml"})
	if err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewForRunWritesLogFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	logger, err := logging.NewForRun("info", "json", dir)
	if err != nil {
		t.Fatalf("NewForRun returned error: %v", err)
	}
	logger.Info("run started")

	content, err := os.ReadFile(filepath.Join(dir, "aircast.log"))
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	if !strings.Contains(string(content), "run started") {
		t.Fatalf("expected record in run log, got %q", content)
	}
}
