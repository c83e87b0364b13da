package connector

import (
	"context"
	"strings"
	"testing"

	"github.com/crimson-sun/journal/internal/model"
)

type nopConnector struct{}

func (nopConnector) Stream(context.Context, ConnectorConfig) (<-chan model.RawLog, error) {
	return nil, nil
}

func (nopConnector) Query(context.Context, ConnectorConfig, QueryParams) ([]model.RawLog, error) {
	return nil, nil
}

func TestRegistry(t *testing.T) {
	Register("test-nop", func() Connector { return nopConnector{} })
	defer delete(registry, "test-nop")

	ctor, err := Get("test-nop")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ctor() == nil {
		t.Fatal("constructor returned nil")
	}

	found := false
	for _, p := range Providers() {
		if p == "test-nop" {
			found = true
		}
	}
	if !found {
		t.Fatalf("Providers() = %v, missing test-nop", Providers())
	}

	if _, err := Get("nope"); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		line   string
		kind   string
		wantOK bool
	}{
		{`{"event":"Commander","FID":"F1","Name":"A"}`, "Commander", true},
		{`{ "timestamp":"2024-07-04T08:15:41Z", "event":"Music" }`, "Music", true},
		{`{"event":42}`, "", false},
		{`{"Name":"A"}`, "", false},
		{`{"event":"Commander"`, "", false},
		{``, "", false},
	}
	for _, tt := range tests {
		kind, ok := KindOf(tt.line)
		if kind != tt.kind || ok != tt.wantOK {
			t.Errorf("KindOf(%q) = %q, %v; want %q, %v", tt.line, kind, ok, tt.kind, tt.wantOK)
		}
	}
}

func TestQueryParamsMatch(t *testing.T) {
	p := QueryParams{Kinds: []string{"Commander", "LoadGame"}}
	if !p.Match(`{"event":"Commander"}`) {
		t.Error("Commander should match")
	}
	if p.Match(`{"event":"Music"}`) {
		t.Error("Music should not match")
	}
	if !p.Match(`{"event":"Music"`) {
		t.Error("malformed lines always match")
	}
	if !(QueryParams{}).Match(`{"event":"Music"}`) {
		t.Error("empty Kinds matches everything")
	}
}

func TestScanLines(t *testing.T) {
	input := "{\"event\":\"A\"}\r\n{\"event\":\"B\"}\n\n{\"event\":\"C\"}"
	var got []model.RawLog
	err := ScanLines(strings.NewReader(input), "Journal.log", func(r model.RawLog) bool {
		got = append(got, r)
		return true
	})
	if err != nil {
		t.Fatalf("ScanLines: %v", err)
	}
	want := []model.RawLog{
		{Source: "Journal.log", Line: 1, Text: `{"event":"A"}`},
		{Source: "Journal.log", Line: 2, Text: `{"event":"B"}`},
		{Source: "Journal.log", Line: 3, Text: ``},
		{Source: "Journal.log", Line: 4, Text: `{"event":"C"}`},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestScanLinesOversizedLine(t *testing.T) {
	long := strings.Repeat("x", MaxLineSize+100)
	input := "a\n" + long + "\r\nb"
	var got []model.RawLog
	err := ScanLines(strings.NewReader(input), "Journal.log", func(r model.RawLog) bool {
		got = append(got, r)
		return true
	})
	if err != nil {
		t.Fatalf("ScanLines: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d lines, want 3", len(got))
	}
	if len(got[1].Text) != MaxLineSize || got[1].Line != 2 {
		t.Errorf("expected line 2 cut to %d bytes, got line %d with %d bytes", MaxLineSize, got[1].Line, len(got[1].Text))
	}
	if got[2].Text != "b" || got[2].Line != 3 {
		t.Errorf("unexpected last line %+v", got[2])
	}
}

func TestClipLine(t *testing.T) {
	if got := ClipLine("short"); got != "short" {
		t.Errorf("ClipLine changed a short line: %q", got)
	}
	if got := ClipLine(strings.Repeat("y", MaxLineSize+1)); len(got) != MaxLineSize {
		t.Errorf("expected %d bytes, got %d", MaxLineSize, len(got))
	}
}

func TestScanLinesStopsEarly(t *testing.T) {
	n := 0
	ScanLines(strings.NewReader("a\nb\nc\n"), "x", func(model.RawLog) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Fatalf("expected scan to stop after 2 lines, got %d", n)
	}
}
