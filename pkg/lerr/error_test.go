package lerr

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCarriesKindThroughWrapping(t *testing.T) {
	base := New(InvalidPalette, "no combinations for height %d", 5)
	wrapped := fmt.Errorf("loading palette: %w", base)

	var e *Error
	if !errors.As(wrapped, &e) {
		t.Fatal("expected errors.As to find *Error through the wrap chain")
	}
	if e.Kind != InvalidPalette {
		t.Fatalf("expected InvalidPalette, got %v", e.Kind)
	}
}

func TestWrapNil(t *testing.T) {
	if Wrap(Serialization, nil) != nil {
		t.Fatal("expected Wrap(nil) to be nil")
	}
}

func TestKindStrings(t *testing.T) {
	cases := map[Kind]string{
		Config:         "config",
		InvalidPalette: "invalid palette",
		InvalidHexCode: "invalid hex code",
		ImageProcess:   "image process",
		Serialization:  "serialization",
	}
	for kind, want := range cases {
		if kind.String() != want {
			t.Fatalf("Kind(%d).String() = %q, want %q", kind, kind.String(), want)
		}
	}
}
