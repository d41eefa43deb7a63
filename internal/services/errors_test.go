package services

import (
	"errors"
	"strings"
	"testing"
)

func TestWrapCarriesMarkerAndCause(t *testing.T) {
	cause := errors.New("exit status 1")
	err := Wrap(ErrExternalTool, "transcode", "encode", "encoder failed", cause)

	if !errors.Is(err, ErrExternalTool) {
		t.Fatal("marker lost")
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause lost")
	}
	if !strings.Contains(err.Error(), "transcode: encode: encoder failed") {
		t.Fatalf("missing detail: %v", err)
	}
}

func TestWrapNilMarkerDefaultsTransient(t *testing.T) {
	err := Wrap(nil, "stage", "op", "msg", nil)
	if !errors.Is(err, ErrTransient) {
		t.Fatalf("expected transient default, got %v", err)
	}
}

func TestIsRecoverable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, true},
		{Wrap(ErrTimeout, "s", "o", "m", nil), true},
		{Wrap(ErrTransient, "s", "o", "m", nil), true},
		{Wrap(ErrExternalTool, "s", "o", "m", nil), true},
		{Wrap(ErrNotFound, "s", "o", "m", nil), true},
		{Wrap(ErrValidation, "s", "o", "m", nil), false},
		{Wrap(ErrConfiguration, "s", "o", "m", nil), false},
	}
	for _, tc := range cases {
		if got := IsRecoverable(tc.err); got != tc.want {
			t.Errorf("IsRecoverable(%v) = %v, want %v", tc.err, got, tc.want)
		}
	}
}
