package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/crimson-sun/journal/internal/model"
	"github.com/crimson-sun/journal/internal/output"
)

func testOutcome(line int) model.Outcome {
	return model.Outcome{
		Source: "Journal.log",
		Line:   line,
		Raw:    `{"event":"SendText","To":"local","Message":"o7","Sent":true}`,
		Event:  model.SendText{To: "local", Message: "o7", Sent: true},
	}
}

func readLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return strings.Split(strings.TrimSpace(string(data)), "\n")
}

func TestWriteProducesValidNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	out, err := New(path, output.Standard)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for i := 1; i <= 5; i++ {
		if err := out.Write(context.Background(), testOutcome(i)); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	out.Close()

	lines := readLines(t, path)
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	for i, line := range lines {
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Errorf("line %d: invalid JSON: %v", i, err)
		}
		if rec["kind"] != "SendText" {
			t.Errorf("line %d: kind = %v, want SendText", i, rec["kind"])
		}
		if rec["line"] != float64(i+1) {
			t.Errorf("line %d: line = %v, want %d", i, rec["line"], i+1)
		}
	}
}

func TestRotationTriggersAtMaxSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")

	// Each record is well over 100 bytes, so every write after the first rotates.
	out, err := New(path, output.Full, WithMaxSize(200))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for i := 1; i <= 5; i++ {
		if err := out.Write(context.Background(), testOutcome(i)); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	out.Close()

	if _, err := os.Stat(path + ".1"); os.IsNotExist(err) {
		t.Error("expected rotated file .1 to exist")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("current file stat error: %v", err)
	}
	if info.Size() == 0 {
		t.Error("current file is empty after rotation")
	}
}

func TestRotationKeepsMaxBackups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	out, err := New(path, output.Full, WithMaxSize(10), WithMaxBackups(2))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	for i := 1; i <= 6; i++ {
		out.Write(context.Background(), testOutcome(i))
	}
	out.Close()

	for _, suffix := range []string{"", ".1", ".2"} {
		if _, err := os.Stat(path + suffix); err != nil {
			t.Errorf("expected %s to exist: %v", path+suffix, err)
		}
	}
	if _, err := os.Stat(path + ".3"); !os.IsNotExist(err) {
		t.Error("expected no third backup")
	}

	// Newest record is in the current file, the one before it in .1.
	if lines := readLines(t, path); !strings.Contains(lines[0], `"line":6`) {
		t.Errorf("current file holds %s", lines[0])
	}
	if lines := readLines(t, path+".1"); !strings.Contains(lines[0], `"line":5`) {
		t.Errorf(".1 holds %s", lines[0])
	}
}

func TestCloseFlushesData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	out, err := New(path, output.Standard)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	out.Write(context.Background(), testOutcome(1))
	out.Close()

	data, _ := os.ReadFile(path)
	if len(data) == 0 {
		t.Error("file is empty, Close did not flush buffered data")
	}
}

func TestVerbosityMinimalStripsFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	out, err := New(path, output.Minimal)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	out.Write(context.Background(), testOutcome(1))
	out.Close()

	var rec map[string]any
	json.Unmarshal([]byte(readLines(t, path)[0]), &rec)

	if _, ok := rec["raw"]; ok {
		t.Error("Minimal verbosity should strip 'raw' field")
	}
	if _, ok := rec["event"]; ok {
		t.Error("Minimal verbosity should strip 'event' field")
	}
}

func TestConcurrentWritesSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	out, err := New(path, output.Standard)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out.Write(context.Background(), testOutcome(i+1))
		}()
	}
	wg.Wait()
	out.Close()

	lines := readLines(t, path)
	if len(lines) != 50 {
		t.Errorf("got %d lines, want 50", len(lines))
	}
	for _, line := range lines {
		if !json.Valid([]byte(line)) {
			t.Fatalf("interleaved write: %s", line)
		}
	}
}

func TestAppendsToExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	for run := 0; run < 2; run++ {
		out, err := New(path, output.Minimal)
		if err != nil {
			t.Fatalf("New error: %v", err)
		}
		out.Write(context.Background(), testOutcome(run+1))
		out.Close()
	}
	if lines := readLines(t, path); len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %s", len(lines), fmt.Sprint(lines))
	}
}
