package connector

import (
	"context"

	"github.com/crimson-sun/journal/internal/model"
)

// Connector defines the interface all journal line sources must implement.
type Connector interface {
	// Stream follows the source and sends lines as they are appended.
	Stream(ctx context.Context, cfg ConnectorConfig) (<-chan model.RawLog, error)

	// Query reads the lines currently in the source.
	Query(ctx context.Context, cfg ConnectorConfig, params QueryParams) ([]model.RawLog, error)
}

// ConnectorConfig holds source-specific connection settings.
type ConnectorConfig struct {
	Provider string
	APIKey   string
	Endpoint string // file or directory path, or URL
	Extra    map[string]string
}

// QueryParams defines filters for one-shot reads.
type QueryParams struct {
	Limit int      // 0 = no limit
	Kinds []string // only lines whose event kind is listed; empty = all
}

// Match reports whether a line passes the Kinds filter. Lines whose kind
// cannot be read always pass so the decoder can report them.
func (p QueryParams) Match(text string) bool {
	if len(p.Kinds) == 0 {
		return true
	}
	kind, ok := KindOf(text)
	if !ok {
		return true
	}
	for _, k := range p.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}
