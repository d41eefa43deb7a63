package deps

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckBinaries(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	if err := os.WriteFile(present, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	statuses := CheckBinaries([]Requirement{
		{Name: "Present", Command: present, Description: "  trims  "},
		{Name: "Missing", Command: "definitely-not-installed"},
		{Name: "Unset", Command: "   ", Optional: true},
	})
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}

	if got := statuses[0]; !got.Available || got.Detail != "" {
		t.Fatalf("expected clean availability for present binary: %+v", got)
	}
	if statuses[0].Description != "trims" {
		t.Fatalf("description not trimmed: %q", statuses[0].Description)
	}

	if got := statuses[1]; got.Available || !strings.Contains(got.Detail, "not found") {
		t.Fatalf("expected lookup failure detail: %+v", got)
	}
	if statuses[1].Command != "definitely-not-installed" {
		t.Fatalf("command not recorded: %q", statuses[1].Command)
	}

	if got := statuses[2]; got.Available || got.Detail != "no command configured" {
		t.Fatalf("expected configuration detail for blank command: %+v", got)
	}
	if !statuses[2].Optional {
		t.Fatal("optional flag must carry through")
	}
}

func TestCheckBinariesEmptyInput(t *testing.T) {
	if statuses := CheckBinaries(nil); len(statuses) != 0 {
		t.Fatalf("expected no statuses, got %d", len(statuses))
	}
}
