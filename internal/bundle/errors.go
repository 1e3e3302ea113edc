package bundle

import (
	"errors"
	"fmt"
)

// ErrNotLoaded is returned by Write and SaveSnapshot before a successful Load.
var ErrNotLoaded = errors.New("bundle not loaded")

// ErrNoResolver is returned by Load for a Bundle restored from a snapshot.
var ErrNoResolver = errors.New("bundle has no resolver")

// ErrorKind classifies a load failure.
type ErrorKind uint8

const (
	// ErrResolutionNotFound: no source exists for a declared module.
	ErrResolutionNotFound ErrorKind = iota + 1
	// ErrIOFailure: a source could not be opened or read, or the sink failed.
	ErrIOFailure
	// ErrMalformedCapture: a structural pattern matched without a required group.
	// Classification is total, so the loader never produces it.
	ErrMalformedCapture
)

func (k ErrorKind) String() string {
	switch k {
	case ErrResolutionNotFound:
		return "not-found"
	case ErrIOFailure:
		return "io"
	case ErrMalformedCapture:
		return "malformed-capture"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// LoadError describes the innermost module that failed to load. Outer frames
// return it unchanged, so RelPath and Module always point at the culprit.
type LoadError struct {
	Kind    ErrorKind
	RelPath string // resolution context of the declaring file
	Module  string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load module %q (path %q): %v", e.Module, e.RelPath, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// WriteError wraps a failure of the output sink.
type WriteError struct {
	Err error
}

func (e *WriteError) Error() string { return "write bundle: " + e.Err.Error() }

func (e *WriteError) Unwrap() error { return e.Err }

// KindOf returns the ErrorKind carried by err, or 0 if it has none.
// Sink failures are ErrIOFailure.
func KindOf(err error) ErrorKind {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Kind
	}
	var we *WriteError
	if errors.As(err, &we) {
		return ErrIOFailure
	}
	return 0
}
