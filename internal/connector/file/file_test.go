package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/crimson-sun/journal/internal/connector"
	"github.com/crimson-sun/journal/internal/model"
)

const (
	header    = `{"event":"Fileheader","part":1,"Odyssey":true,"gameversion":"4.0","build":"r1","language":"English/UK"}`
	commander = `{"event":"Commander","FID":"F1","Name":"A"}`
	music     = `{"event":"Music","MusicTrack":"NoTrack"}`
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func appendFile(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append %s: %v", path, err)
	}
}

func journalDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "Journal.2024-07-04T081446.01.log"), header+"\n"+commander+"\n")
	writeFile(t, filepath.Join(dir, "Journal.2024-07-05T190002.01.log"), header+"\n"+music+"\n"+commander+"\n")
	writeFile(t, filepath.Join(dir, "Status.json"), `{"event":"Status"}`)
	return dir
}

func TestFilesSortedAndFiltered(t *testing.T) {
	dir := journalDir(t)
	files, err := Files(dir)
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 journal files, got %v", files)
	}
	if filepath.Base(files[0]) != "Journal.2024-07-04T081446.01.log" {
		t.Fatalf("files out of order: %v", files)
	}
}

func TestQueryDirectory(t *testing.T) {
	c := &Connector{}
	raws, err := c.Query(context.Background(), connector.ConnectorConfig{Endpoint: journalDir(t)}, connector.QueryParams{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	want := []model.RawLog{
		{Source: "Journal.2024-07-04T081446.01.log", Line: 1, Text: header},
		{Source: "Journal.2024-07-04T081446.01.log", Line: 2, Text: commander},
		{Source: "Journal.2024-07-05T190002.01.log", Line: 1, Text: header},
		{Source: "Journal.2024-07-05T190002.01.log", Line: 2, Text: music},
		{Source: "Journal.2024-07-05T190002.01.log", Line: 3, Text: commander},
	}
	if len(raws) != len(want) {
		t.Fatalf("got %d lines, want %d", len(raws), len(want))
	}
	for i := range want {
		if raws[i] != want[i] {
			t.Errorf("line %d: got %+v, want %+v", i, raws[i], want[i])
		}
	}
}

func TestQuerySingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.log")
	writeFile(t, path, header+"\n"+music) // no trailing newline

	c := &Connector{}
	raws, err := c.Query(context.Background(), connector.ConnectorConfig{Endpoint: path}, connector.QueryParams{})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(raws) != 2 || raws[1].Text != music || raws[1].Source != "journal.log" {
		t.Fatalf("unexpected lines %+v", raws)
	}
}

func TestQueryLimitAndKinds(t *testing.T) {
	c := &Connector{}
	cfg := connector.ConnectorConfig{Endpoint: journalDir(t)}

	raws, err := c.Query(context.Background(), cfg, connector.QueryParams{Limit: 3})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(raws) != 3 {
		t.Fatalf("expected 3 lines with Limit=3, got %d", len(raws))
	}

	raws, err = c.Query(context.Background(), cfg, connector.QueryParams{Kinds: []string{"Commander"}})
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if len(raws) != 2 {
		t.Fatalf("expected 2 Commander lines, got %d", len(raws))
	}
	for _, r := range raws {
		if r.Text != commander {
			t.Errorf("unexpected line %q", r.Text)
		}
	}
}

func TestQueryMissingPath(t *testing.T) {
	c := &Connector{}
	if _, err := c.Query(context.Background(), connector.ConnectorConfig{}, connector.QueryParams{}); err == nil {
		t.Fatal("expected error for empty endpoint")
	}
	cfg := connector.ConnectorConfig{Endpoint: filepath.Join(t.TempDir(), "missing")}
	if _, err := c.Query(context.Background(), cfg, connector.QueryParams{}); err == nil {
		t.Fatal("expected error for missing path")
	}
}

func TestRegistered(t *testing.T) {
	ctor, err := connector.Get("file")
	if err != nil {
		t.Fatalf("file connector not registered: %v", err)
	}
	if _, ok := ctor().(*Connector); !ok {
		t.Fatal("unexpected connector type")
	}
}

func receive(t *testing.T, ch <-chan model.RawLog) model.RawLog {
	t.Helper()
	select {
	case raw, ok := <-ch:
		if !ok {
			t.Fatal("stream closed early")
		}
		return raw
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a line")
	}
	return model.RawLog{}
}

func TestStreamFollowsAppendsAndNewFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "Journal.2024-07-04T081446.01.log")
	writeFile(t, first, header+"\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := &Connector{}
	ch, err := c.Stream(ctx, connector.ConnectorConfig{
		Endpoint: dir,
		Extra:    map[string]string{"poll_interval": "10ms"},
	})
	if err != nil {
		t.Fatalf("Stream: %v", err)
	}

	if raw := receive(t, ch); raw.Line != 1 || raw.Text != header {
		t.Fatalf("unexpected first line %+v", raw)
	}

	// A partial line is held back until its newline arrives.
	appendFile(t, first, `{"event":"Mu`)
	time.Sleep(50 * time.Millisecond)
	appendFile(t, first, `sic","MusicTrack":"NoTrack"}`+"\r\n")
	if raw := receive(t, ch); raw.Line != 2 || raw.Text != music {
		t.Fatalf("unexpected appended line %+v", raw)
	}

	second := filepath.Join(dir, "Journal.2024-07-05T190002.01.log")
	writeFile(t, second, commander+"\n")
	raw := receive(t, ch)
	if raw.Source != filepath.Base(second) || raw.Line != 1 || raw.Text != commander {
		t.Fatalf("unexpected line from new file %+v", raw)
	}

	cancel()
	for range ch {
	}
}
