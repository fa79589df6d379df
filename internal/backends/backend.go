// Package backends exposes speech-to-text models through a uniform
// transcription capability and a config-driven registry.
package backends

import (
	"context"
	"errors"
	"fmt"
)

// FailureKind classifies a backend invocation failure so the evaluation loop
// can record it instead of parsing free text.
type FailureKind string

const (
	FailureInit      FailureKind = "init"
	FailureInference FailureKind = "inference"
	FailureDecode    FailureKind = "decode"
	FailureTimeout   FailureKind = "timeout"
	FailureCanceled  FailureKind = "canceled"
)

// InvocationError tags a backend failure with its kind. Backends return it
// from Transcribe instead of embedding diagnostics in the hypothesis text.
type InvocationError struct {
	Kind FailureKind
	Err  error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

func invocationErr(kind FailureKind, format string, args ...interface{}) error {
	return &InvocationError{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the failure kind from an invocation error. Deadline expiry
// maps to FailureTimeout, caller cancellation to FailureCanceled; anything
// untagged counts as inference failure.
func KindOf(err error) FailureKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureTimeout
	}
	if errors.Is(err, context.Canceled) {
		return FailureCanceled
	}
	var invErr *InvocationError
	if errors.As(err, &invErr) {
		return invErr.Kind
	}
	return FailureInference
}

// Backend wraps one named speech-to-text model. Transcribe blocks until the
// model returns a hypothesis or the context expires.
type Backend interface {
	Name() string
	Transcribe(ctx context.Context, audio []float64, sampleRate int) (string, error)
}
