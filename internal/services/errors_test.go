package services_test

import (
	"errors"
	"testing"

	"kithara/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	inner := errors.New("disk full")
	err := services.Wrap(services.ErrIO, "soundbank", "extract", "write failed", inner)
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected ErrIO marker, got %v", err)
	}
	if !errors.Is(err, inner) {
		t.Fatalf("expected inner error to be wrapped, got %v", err)
	}
}

func TestWrapWithoutInnerError(t *testing.T) {
	err := services.Wrap(services.ErrFormat, "soundbank", "parse", "index without data section", nil)
	if !errors.Is(err, services.ErrFormat) {
		t.Fatalf("expected ErrFormat marker, got %v", err)
	}
	want := "format error: soundbank: parse: index without data section"
	if err.Error() != want {
		t.Fatalf("unexpected message: got %q, want %q", err.Error(), want)
	}
}

func TestWrapNilMarkerDefaultsToIO(t *testing.T) {
	err := services.Wrap(nil, "", "", "", errors.New("boom"))
	if !errors.Is(err, services.ErrIO) {
		t.Fatalf("expected ErrIO fallback, got %v", err)
	}
}
