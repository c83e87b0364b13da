package multi

import (
	"context"
	"errors"
	"testing"

	"github.com/crimson-sun/journal/internal/model"
)

// mockOutput records calls for test assertions.
type mockOutput struct {
	outcomes []model.Outcome
	closed   bool
	err      error // if set, Write and Close return this error
}

func (m *mockOutput) Write(_ context.Context, outcome model.Outcome) error {
	m.outcomes = append(m.outcomes, outcome)
	return m.err
}

func (m *mockOutput) Close() error {
	m.closed = true
	return m.err
}

func testOutcome(line int, kind string) model.Outcome {
	return model.Outcome{
		Source: "Journal.log",
		Line:   line,
		Event:  model.UnknownEvent{Fields: map[string]any{"event": kind}},
	}
}

func TestFanOutDeliversToAll(t *testing.T) {
	a := &mockOutput{}
	b := &mockOutput{}
	c := &mockOutput{}
	m := New(a, b, c)

	if err := m.Write(context.Background(), testOutcome(1, "Music")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i, out := range []*mockOutput{a, b, c} {
		if len(out.outcomes) != 1 {
			t.Fatalf("output %d: got %d outcomes, want 1", i, len(out.outcomes))
		}
		if out.outcomes[0].Kind() != "Music" {
			t.Errorf("output %d: got kind %q, want %q", i, out.outcomes[0].Kind(), "Music")
		}
	}
}

func TestErrorDoesNotPreventDelivery(t *testing.T) {
	failing := &mockOutput{err: errors.New("disk full")}
	healthy := &mockOutput{}
	m := New(failing, healthy)

	err := m.Write(context.Background(), testOutcome(1, "Scan"))
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	// Healthy output still received the outcome despite earlier failure.
	if len(healthy.outcomes) != 1 {
		t.Fatalf("healthy output got %d outcomes, want 1", len(healthy.outcomes))
	}
	if len(failing.outcomes) != 1 {
		t.Fatalf("failing output got %d outcomes, want 1", len(failing.outcomes))
	}
}

func TestCloseCallsAllOutputs(t *testing.T) {
	a := &mockOutput{}
	b := &mockOutput{}
	m := New(a, b)

	if err := m.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !a.closed || !b.closed {
		t.Errorf("Close not called on all outputs: a=%v b=%v", a.closed, b.closed)
	}
}

func TestCloseCollectsErrors(t *testing.T) {
	errA := errors.New("err-a")
	errB := errors.New("err-b")
	a := &mockOutput{err: errA}
	b := &mockOutput{err: errB}
	m := New(a, b)

	err := m.Close()
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected both errors joined, got %v", err)
	}
	if !a.closed || !b.closed {
		t.Error("Close should be called on all outputs even when errors occur")
	}
}

func TestNilOutputsSkipped(t *testing.T) {
	inner := &mockOutput{}
	m := New(nil, inner, nil)
	if m.Len() != 1 {
		t.Fatalf("Len = %d, want 1", m.Len())
	}
	if err := m.Write(context.Background(), testOutcome(4, "Music")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := m.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(inner.outcomes) != 1 || inner.outcomes[0].Line != 4 {
		t.Error("Multi did not deliver to the only real output")
	}
	if !inner.closed {
		t.Error("Multi did not close inner output")
	}
}
