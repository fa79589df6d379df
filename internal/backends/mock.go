package backends

import (
	"context"
	"fmt"
	"sync"
)

// MockBackend returns a fixed fake hypothesis. Useful for wiring checks and
// as the registry's "mock" kind.
type MockBackend struct {
	name string
}

func NewMockBackend(name string) *MockBackend {
	return &MockBackend{name: name}
}

func (m *MockBackend) Name() string { return m.name }

func (m *MockBackend) Transcribe(_ context.Context, audio []float64, sampleRate int) (string, error) {
	return fmt.Sprintf("[mock transcript: %d samples at %d Hz]", len(audio), sampleRate), nil
}

// ScriptedBackend replays canned hypotheses in invocation order. The demo
// mode and tests drive the comparison loop with it.
type ScriptedBackend struct {
	name  string
	lines []string

	mu   sync.Mutex
	next int
}

func NewScriptedBackend(name string, lines []string) *ScriptedBackend {
	return &ScriptedBackend{name: name, lines: lines}
}

func (s *ScriptedBackend) Name() string { return s.name }

func (s *ScriptedBackend) Transcribe(_ context.Context, _ []float64, _ int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.lines) == 0 {
		return "", nil
	}
	line := s.lines[s.next%len(s.lines)]
	s.next++
	return line, nil
}

// FailingBackend fails every invocation with a fixed kind. Test-only.
type FailingBackend struct {
	name   string
	kind   FailureKind
	detail string
}

func NewFailingBackend(name string, kind FailureKind, detail string) *FailingBackend {
	return &FailingBackend{name: name, kind: kind, detail: detail}
}

func (f *FailingBackend) Name() string { return f.name }

func (f *FailingBackend) Transcribe(_ context.Context, _ []float64, _ int) (string, error) {
	return "", invocationErr(f.kind, "%s", f.detail)
}
