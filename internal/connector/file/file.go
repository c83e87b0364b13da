// Package file reads journal lines from a journal file, or from the
// Journal.*.log files of a journal directory.
package file

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/crimson-sun/journal/internal/connector"
	"github.com/crimson-sun/journal/internal/model"
)

// Pattern matches the journal files the game writes, one per session part.
// Their names embed the start time, so name order is chronological.
const Pattern = "Journal.*.log"

const defaultPollInterval = time.Second

func init() {
	connector.Register("file", func() connector.Connector {
		return &Connector{}
	})
}

// Connector implements connector.Connector over the local filesystem.
// ConnectorConfig.Endpoint is a journal file or a journal directory.
type Connector struct{}

// Files lists the journal files under path in chronological order. A path
// naming a file is returned as is.
func Files(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("file connector: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	files, err := filepath.Glob(filepath.Join(path, Pattern))
	if err != nil {
		return nil, fmt.Errorf("file connector: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func (c *Connector) Query(ctx context.Context, cfg connector.ConnectorConfig, params connector.QueryParams) ([]model.RawLog, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("file connector: missing journal path")
	}
	files, err := Files(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	var results []model.RawLog
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		done, err := readFile(path, func(raw model.RawLog) bool {
			if !params.Match(raw.Text) {
				return true
			}
			results = append(results, raw)
			return params.Limit <= 0 || len(results) < params.Limit
		})
		if err != nil {
			return nil, err
		}
		if done {
			break
		}
	}
	return results, nil
}

// readFile scans one file. done reports that fn asked to stop.
func readFile(path string, fn func(model.RawLog) bool) (done bool, err error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("file connector: %w", err)
	}
	defer f.Close()

	err = connector.ScanLines(f, filepath.Base(path), func(raw model.RawLog) bool {
		if !fn(raw) {
			done = true
		}
		return !done
	})
	if err != nil {
		return done, fmt.Errorf("file connector: read %s: %w", path, err)
	}
	return done, nil
}

// Stream follows the newest journal file, starting from its first line.
// When the game opens a newer file, the rest of the current one is read and
// the stream moves on. Only complete lines are sent.
func (c *Connector) Stream(ctx context.Context, cfg connector.ConnectorConfig) (<-chan model.RawLog, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("file connector: missing journal path")
	}
	files, err := Files(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	pollInterval := defaultPollInterval
	if raw := cfg.Extra["poll_interval"]; raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			pollInterval = d
		}
	}

	t := &tail{root: cfg.Endpoint}
	if len(files) > 0 {
		t.path = files[len(files)-1]
	}

	ch := make(chan model.RawLog, 64)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			if err := t.poll(ctx, ch); err != nil {
				if ctx.Err() != nil {
					return
				}
				slog.Warn("poll error", "connector", "file", "path", t.path, "error", err)
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}()

	return ch, nil
}

// tail is the read position in the file being followed.
type tail struct {
	root   string
	path   string
	offset int64
	line   int
}

func (t *tail) poll(ctx context.Context, ch chan<- model.RawLog) error {
	if t.path != "" {
		if err := t.readNew(ctx, ch); err != nil {
			return err
		}
	}
	files, err := Files(t.root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return nil
	}
	if newest := files[len(files)-1]; newest != t.path {
		slog.Info("following new journal file", "path", newest)
		t.path, t.offset, t.line = newest, 0, 0
		return t.readNew(ctx, ch)
	}
	return nil
}

// readNew sends the complete lines appended since the last read.
func (t *tail) readNew(ctx context.Context, ch chan<- model.RawLog) error {
	f, err := os.Open(t.path)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	if info.Size() < t.offset {
		slog.Warn("journal file truncated, rereading", "path", t.path)
		t.offset, t.line = 0, 0
	}
	if _, err := f.Seek(t.offset, io.SeekStart); err != nil {
		return err
	}

	source := filepath.Base(t.path)
	br := bufio.NewReaderSize(f, 64*1024)
	for {
		s, err := br.ReadString('\n')
		if errors.Is(err, io.EOF) {
			return nil // partial line stays unread until it is complete
		}
		if err != nil {
			return err
		}
		t.offset += int64(len(s))
		t.line++
		raw := model.RawLog{Source: source, Line: t.line, Text: connector.ClipLine(strings.TrimRight(s, "\r\n"))}
		select {
		case ch <- raw:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
