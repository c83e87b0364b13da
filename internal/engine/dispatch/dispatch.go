// Package dispatch selects the schema for a parsed record by its "event"
// field and decodes the record against it.
package dispatch

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/crimson-sun/journal/internal/engine/coerce"
	"github.com/crimson-sun/journal/internal/engine/schema"
	"github.com/crimson-sun/journal/internal/model"
)

// Discriminator is the field naming a record's event kind.
const Discriminator = "event"

// ErrMissingDiscriminator is returned for records without an "event" field.
var ErrMissingDiscriminator = errors.New("record has no \"event\" field")

// Dispatcher maps event tags to schemas. It is immutable once built and safe
// for concurrent use.
type Dispatcher struct {
	table map[string]schema.DecodeFunc
}

// New builds a dispatcher over variants. Two variants with the same tag are
// an error.
func New(variants ...schema.Variant) (*Dispatcher, error) {
	table := make(map[string]schema.DecodeFunc, len(variants))
	for _, v := range variants {
		if v.Tag == "" || v.Decode == nil {
			return nil, fmt.Errorf("dispatch: incomplete variant %q", v.Tag)
		}
		if _, dup := table[v.Tag]; dup {
			return nil, fmt.Errorf("dispatch: duplicate tag %q", v.Tag)
		}
		table[v.Tag] = v.Decode
	}
	return &Dispatcher{table: table}, nil
}

// Default returns a dispatcher over every known event kind.
func Default() *Dispatcher {
	d, err := New(schema.All()...)
	if err != nil {
		panic(err)
	}
	return d
}

// Only returns a dispatcher over the named kinds. Every other kind decodes
// as model.UnknownEvent. Naming a kind without a schema is an error.
func Only(tags ...string) (*Dispatcher, error) {
	byTag := make(map[string]schema.Variant)
	for _, v := range schema.All() {
		byTag[v.Tag] = v
	}
	var selected []schema.Variant
	var errs []error
	for _, tag := range tags {
		v, ok := byTag[tag]
		if !ok {
			errs = append(errs, fmt.Errorf("dispatch: no schema for %q", tag))
			continue
		}
		selected = append(selected, v)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return New(selected...)
}

// Dispatch decodes obj against the schema named by its "event" field. Kinds
// without a schema are returned as model.UnknownEvent holding obj unchanged.
func (d *Dispatcher) Dispatch(obj coerce.Object) (model.Event, error) {
	raw, ok := obj[Discriminator]
	if !ok {
		return nil, ErrMissingDiscriminator
	}
	tag, ok := raw.(string)
	if !ok {
		return nil, &model.SchemaViolation{Field: Discriminator, Expected: "string", Actual: coerce.Describe(raw)}
	}

	decode, known := d.table[tag]
	if !known {
		return model.UnknownEvent{Fields: obj}, nil
	}
	ev, err := decode(obj)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", tag, err)
	}
	return ev, nil
}

// Known reports whether tag has a schema.
func (d *Dispatcher) Known(tag string) bool {
	_, ok := d.table[tag]
	return ok
}

// Tags returns the known tags, sorted.
func (d *Dispatcher) Tags() []string {
	return slices.Sorted(maps.Keys(d.table))
}
