// Package remote reads a journal file served over HTTP, for example by a
// companion app on the gaming PC.
package remote

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/crimson-sun/journal/internal/connector"
	"github.com/crimson-sun/journal/internal/connector/httpclient"
	"github.com/crimson-sun/journal/internal/model"
)

const defaultPollInterval = 2 * time.Second

func init() {
	connector.Register("http", func() connector.Connector {
		return &Connector{}
	})
}

// Connector implements connector.Connector for a journal at an HTTP URL.
// ConnectorConfig.Endpoint is the URL; APIKey, when set, is sent as a
// Bearer token.
type Connector struct{}

func newClient(cfg connector.ConnectorConfig) (*httpclient.Client, string, error) {
	if cfg.Endpoint == "" {
		return nil, "", errors.New("http connector: missing journal URL")
	}
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, "", fmt.Errorf("http connector: invalid journal URL %q", cfg.Endpoint)
	}
	source := cfg.Extra["source"]
	if source == "" {
		source = path.Base(u.Path)
	}
	return httpclient.New(cfg.Endpoint, cfg.APIKey), source, nil
}

func (c *Connector) Query(ctx context.Context, cfg connector.ConnectorConfig, params connector.QueryParams) ([]model.RawLog, error) {
	client, source, err := newClient(cfg)
	if err != nil {
		return nil, err
	}
	resp, err := client.Get(ctx, "", nil)
	if err != nil {
		return nil, fmt.Errorf("http connector: %w", err)
	}

	var results []model.RawLog
	err = connector.ScanLines(bytes.NewReader(resp.Body), source, func(raw model.RawLog) bool {
		if !params.Match(raw.Text) {
			return true
		}
		results = append(results, raw)
		return params.Limit <= 0 || len(results) < params.Limit
	})
	if err != nil {
		return nil, fmt.Errorf("http connector: %w", err)
	}
	return results, nil
}

// Stream polls the URL, asking only for bytes past the last complete line.
// Servers that ignore Range are handled by skipping what was already read.
func (c *Connector) Stream(ctx context.Context, cfg connector.ConnectorConfig) (<-chan model.RawLog, error) {
	client, source, err := newClient(cfg)
	if err != nil {
		return nil, err
	}

	pollInterval := defaultPollInterval
	if raw := cfg.Extra["poll_interval"]; raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			pollInterval = d
		}
	}

	f := &follower{client: client, source: source}
	ch := make(chan model.RawLog, 64)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			if err := f.poll(ctx, ch); err != nil && ctx.Err() == nil {
				slog.Warn("poll error", "connector", "http", "error", err)
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

type follower struct {
	client *httpclient.Client
	source string
	offset int64
	line   int
}

func (f *follower) poll(ctx context.Context, ch chan<- model.RawLog) error {
	var h http.Header
	if f.offset > 0 {
		h = http.Header{}
		h.Set("Range", fmt.Sprintf("bytes=%d-", f.offset))
	}

	resp, err := f.client.Get(ctx, "", h)
	var apiErr *httpclient.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusRequestedRangeNotSatisfiable {
		if size, ok := rangeSize(apiErr.Header); ok && size >= f.offset {
			return nil // nothing appended
		}
		// The journal shrank below the offset, or the server did not say
		// how long it is: read the whole body and compare.
		resp, err = f.client.Get(ctx, "", nil)
	}
	if err != nil {
		return err
	}

	data := resp.Body
	if resp.StatusCode != http.StatusPartialContent && f.offset > 0 {
		if int64(len(data)) < f.offset {
			slog.Warn("remote journal shrank, rereading", "source", f.source)
			f.offset, f.line = 0, 0
		} else {
			data = data[f.offset:]
		}
	}

	for {
		i := bytes.IndexByte(data, '\n')
		if i < 0 {
			return nil
		}
		f.offset += int64(i + 1)
		f.line++
		raw := model.RawLog{Source: f.source, Line: f.line, Text: connector.ClipLine(strings.TrimRight(string(data[:i]), "\r"))}
		data = data[i+1:]
		select {
		case ch <- raw:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// rangeSize reads the full length from a 416 response's
// "Content-Range: bytes */<size>" header.
func rangeSize(h http.Header) (int64, bool) {
	rest, ok := strings.CutPrefix(h.Get("Content-Range"), "bytes */")
	if !ok {
		return 0, false
	}
	size, err := strconv.ParseInt(rest, 10, 64)
	return size, err == nil
}
