package output

import (
	"context"

	"github.com/crimson-sun/journal/internal/model"
)

// Output defines the interface for decoded outcome destinations.
type Output interface {
	Write(ctx context.Context, outcome model.Outcome) error
	Close() error
}
