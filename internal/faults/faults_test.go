package faults_test

import (
	"errors"
	"strings"
	"testing"

	"filerename/internal/faults"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := faults.Wrap(faults.ErrConflict, "walker", "rename directory", "destination exists", base)
	if !errors.Is(err, faults.ErrConflict) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"walker", "rename directory", "destination exists", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutMarker(t *testing.T) {
	err := faults.Wrap(nil, "", "", "", nil)
	if err == nil || err.Error() != "rename failure" {
		t.Fatalf("unexpected error: %v", err)
	}
	if faults.ExitCode(err) != faults.ExitFailure {
		t.Fatalf("unclassified error should map to generic failure")
	}
}

func TestExitCodeMapping(t *testing.T) {
	tests := []struct {
		marker error
		want   int
	}{
		{faults.ErrUsage, faults.ExitUsage},
		{faults.ErrConfiguration, faults.ExitUsage},
		{faults.ErrConflict, faults.ExitConflict},
		{faults.ErrLocked, faults.ExitConflict},
		{faults.ErrUnsupportedFile, faults.ExitUnsupported},
		{faults.ErrIntegrity, faults.ExitIntegrity},
		{faults.ErrTagWrite, faults.ExitTagWrite},
		{faults.ErrNotFound, faults.ExitNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.marker.Error(), func(t *testing.T) {
			err := faults.Wrap(tt.marker, "test", "op", "", errors.New("io"))
			if got := faults.ExitCode(err); got != tt.want {
				t.Fatalf("ExitCode(%v) = %d, want %d", err, got, tt.want)
			}
		})
	}
	if faults.ExitCode(nil) != 0 {
		t.Fatal("expected zero exit code for nil error")
	}
}
