// Package lerr defines the exhaustive error-kind taxonomy shared by every
// core package, so the orchestrator and its callers can distinguish a
// configuration mistake from a malformed palette from a low-level write
// failure without parsing error strings.
package lerr

import "fmt"

// Kind is one of the core's exhaustive error categories.
type Kind int

const (
	// Config means a configuration field failed a validation predicate.
	Config Kind = iota
	// InvalidPalette means the palette is empty, malformed, or missing
	// a mandatory entry (e.g. "#FFFFFF" in additive mode).
	InvalidPalette
	// InvalidHexCode means a hex string is not of the form #RRGGBB.
	InvalidHexCode
	// ImageProcess means an image operation produced a degenerate result
	// (e.g. resized dimensions computed to zero).
	ImageProcess
	// Serialization means a low-level write failed at the STL/ZIP boundary.
	Serialization
)

func (k Kind) String() string {
	switch k {
	case Config:
		return "config"
	case InvalidPalette:
		return "invalid palette"
	case InvalidHexCode:
		return "invalid hex code"
	case ImageProcess:
		return "image process"
	case Serialization:
		return "serialization"
	default:
		return "unknown"
	}
}

// Error wraps an underlying error with its Kind. The core never logs;
// every failure is returned through an Error so the caller can branch on
// Kind without string matching.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error from a format string, mirroring fmt.Errorf.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a Kind to an existing error without losing it to %w chains.
func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}
