package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/crimson-sun/journal/internal/model"
	"github.com/crimson-sun/journal/internal/output"
)

func commanderOutcome(line int) model.Outcome {
	return model.Outcome{
		Source: "Journal.01.log",
		Line:   line,
		Raw:    `{ "timestamp":"2024-07-04T08:15:41Z", "event":"Commander", "FID":"F1908163", "Name":"OMGasm" }`,
		Event: model.Commander{
			Envelope: model.Envelope{Timestamp: model.Some(time.Date(2024, 7, 4, 8, 15, 41, 0, time.UTC))},
			Identity: model.Identity{FID: "F1908163", Name: "OMGasm"},
		},
	}
}

func failedOutcome(line int) model.Outcome {
	return model.Outcome{
		Source: "Journal.01.log",
		Line:   line,
		Raw:    `{"event":`,
		Err:    &model.LineError{Line: line, Kind: model.KindMalformedInput, Err: fmt.Errorf("unexpected EOF")},
	}
}

func openTest(t *testing.T, v output.Verbosity) (*Output, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	o, err := Open(path, v)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { o.Close() })
	return o, path
}

func TestWriteAndCount(t *testing.T) {
	o, _ := openTest(t, output.Standard)
	ctx := context.Background()

	for _, oc := range []model.Outcome{commanderOutcome(1), failedOutcome(2), commanderOutcome(3)} {
		if err := o.Write(ctx, oc); err != nil {
			t.Fatalf("Write line %d: %v", oc.Line, err)
		}
	}

	counts, err := o.KindCounts(ctx)
	if err != nil {
		t.Fatalf("KindCounts: %v", err)
	}
	if counts["Commander"] != 2 || counts["!MalformedInput"] != 1 || len(counts) != 2 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestRowContents(t *testing.T) {
	o, _ := openTest(t, output.Full)
	ctx := context.Background()
	if err := o.Write(ctx, commanderOutcome(4)); err != nil {
		t.Fatal(err)
	}
	if err := o.Write(ctx, failedOutcome(5)); err != nil {
		t.Fatal(err)
	}

	var kind, record string
	var eventTime sql.NullInt64
	err := o.db.QueryRow(`SELECT kind, event_time, record FROM outcomes WHERE source = ? AND line = ?`, "Journal.01.log", 4).
		Scan(&kind, &eventTime, &record)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if kind != "Commander" {
		t.Errorf("kind = %q", kind)
	}
	want := time.Date(2024, 7, 4, 8, 15, 41, 0, time.UTC).UnixMilli()
	if !eventTime.Valid || eventTime.Int64 != want {
		t.Errorf("event_time = %+v, want %d", eventTime, want)
	}
	if !strings.Contains(record, `"raw"`) {
		t.Errorf("expected raw line at full verbosity: %s", record)
	}
	if !strings.Contains(record, `"fid":"F~~~~~~"`) {
		t.Errorf("expected masked fid in record: %s", record)
	}

	var errKind string
	if err := o.db.QueryRow(`SELECT error_kind, event_time FROM outcomes WHERE line = 5`).Scan(&errKind, &eventTime); err != nil {
		t.Fatalf("select failed row: %v", err)
	}
	if errKind != "MalformedInput" || eventTime.Valid {
		t.Errorf("failed row: error_kind %q event_time %+v", errKind, eventTime)
	}
}

func TestRescanReplacesRows(t *testing.T) {
	o, _ := openTest(t, output.Standard)
	ctx := context.Background()

	if err := o.Write(ctx, failedOutcome(1)); err != nil {
		t.Fatal(err)
	}
	if err := o.Write(ctx, commanderOutcome(1)); err != nil {
		t.Fatal(err)
	}

	counts, err := o.KindCounts(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(counts) != 1 || counts["Commander"] != 1 {
		t.Fatalf("expected the row to be replaced, got %v", counts)
	}
}

func TestReopenKeepsRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	o, err := Open(path, output.Minimal)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Write(context.Background(), commanderOutcome(1)); err != nil {
		t.Fatal(err)
	}
	if err := o.Close(); err != nil {
		t.Fatal(err)
	}

	o, err = Open(path, output.Minimal)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer o.Close()

	counts, err := o.KindCounts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if counts["Commander"] != 1 {
		t.Fatalf("expected row to survive reopen, got %v", counts)
	}

	var migrations int
	if err := o.db.QueryRow(`SELECT COUNT(*) FROM schema_migrations`).Scan(&migrations); err != nil {
		t.Fatal(err)
	}
	if migrations != 1 {
		t.Fatalf("expected 1 applied migration, got %d", migrations)
	}
}

func TestConcurrentWrites(t *testing.T) {
	o, _ := openTest(t, output.Minimal)

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if err := o.Write(context.Background(), commanderOutcome(n)); err != nil {
				t.Errorf("Write %d: %v", n, err)
			}
		}(i)
	}
	wg.Wait()

	counts, err := o.KindCounts(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if counts["Commander"] != 50 {
		t.Fatalf("expected 50 rows, got %v", counts)
	}
}

func TestOpenEmptyPath(t *testing.T) {
	if _, err := Open("  ", output.Standard); err == nil {
		t.Fatal("expected error for empty path")
	}
}
