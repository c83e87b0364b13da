package pipeline

import (
	"github.com/crimson-sun/journal/internal/connector"
)

// Filter selects lines by event kind before they are decoded. The kind is
// read from the raw line, so filtered-out lines cost no decoding. Lines whose
// kind cannot be read always pass so their errors are reported.
type Filter struct {
	include map[string]bool
	exclude map[string]bool
}

// NewFilter builds a filter. An empty include list admits every kind not
// excluded. It returns nil when both lists are empty.
func NewFilter(include, exclude []string) *Filter {
	if len(include) == 0 && len(exclude) == 0 {
		return nil
	}
	f := &Filter{include: make(map[string]bool), exclude: make(map[string]bool)}
	for _, k := range include {
		f.include[k] = true
	}
	for _, k := range exclude {
		f.exclude[k] = true
	}
	return f
}

// Allow reports whether the line should be decoded. A nil Filter allows all.
func (f *Filter) Allow(line string) bool {
	if f == nil {
		return true
	}
	kind, ok := connector.KindOf(line)
	if !ok {
		return true
	}
	if f.exclude[kind] {
		return false
	}
	return len(f.include) == 0 || f.include[kind]
}
