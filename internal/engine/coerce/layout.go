package coerce

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

// Layout is the field declaration of one record shape or sub-block. Layouts
// are built during package initialization and never change afterwards; the
// builder methods return modified copies.
type Layout struct {
	name       string
	convention Convention
	prefix     string
	fields     []string          // canonical names, declaration order
	input      map[string]string // canonical -> input spelling, without prefix
}

// NewLayout declares a layout whose fields are spelled with convention.
func NewLayout(name string, convention Convention, fields ...string) *Layout {
	l := &Layout{
		name:       name,
		convention: convention,
		fields:     make([]string, 0, len(fields)),
		input:      make(map[string]string, len(fields)),
	}
	for _, f := range fields {
		if _, dup := l.input[f]; dup {
			panic(fmt.Sprintf("coerce: layout %s declares %q twice", name, f))
		}
		l.fields = append(l.fields, f)
		l.input[f] = convention.Apply(f)
	}
	return l
}

func (l *Layout) clone() *Layout {
	c := *l
	c.fields = slices.Clone(l.fields)
	c.input = make(map[string]string, len(l.input))
	for k, v := range l.input {
		c.input[k] = v
	}
	return &c
}

// Override spells one declared field literally, for names the convention
// cannot produce (FID, CQC, Ship_Localised).
func (l *Layout) Override(canonical, literal string) *Layout {
	if _, ok := l.input[canonical]; !ok {
		panic(fmt.Sprintf("coerce: layout %s has no field %q to override", l.name, canonical))
	}
	c := l.clone()
	c.input[canonical] = literal
	return c
}

// WithPrefix returns a copy whose fields are read from input keys carrying
// prefix. The prefix is stripped before matching; keys without it are
// invisible to the layout.
func (l *Layout) WithPrefix(prefix string) *Layout {
	c := l.clone()
	c.prefix = prefix
	return c
}

// Name returns the layout's name.
func (l *Layout) Name() string { return l.name }

// Prefix returns the group prefix, or "".
func (l *Layout) Prefix() string { return l.prefix }

// Fields returns the canonical field names in declaration order.
func (l *Layout) Fields() []string { return slices.Clone(l.fields) }

// InputName returns the spelling of canonical inside the (prefix-stripped)
// record, and whether the field is declared.
func (l *Layout) InputName(canonical string) (string, bool) {
	name, ok := l.input[canonical]
	return name, ok
}

// Keys returns the full input keys the layout reads, prefix included, sorted.
func (l *Layout) Keys() []string {
	keys := make([]string, 0, len(l.input))
	for _, name := range l.input {
		keys = append(keys, l.prefix+name)
	}
	sort.Strings(keys)
	return keys
}

// Merge checks that layouts flattened into one record read disjoint input
// keys and returns the combined layout. Canonical names in the result are
// qualified with the contributing layout's name.
func Merge(name string, layouts ...*Layout) (*Layout, error) {
	merged := &Layout{name: name, input: make(map[string]string)}
	owner := make(map[string]string)
	var collisions []string
	for _, l := range layouts {
		for _, f := range l.fields {
			key := l.prefix + l.input[f]
			if prev, taken := owner[key]; taken {
				collisions = append(collisions, fmt.Sprintf("%q (%s, %s)", key, prev, l.name))
				continue
			}
			owner[key] = l.name
			qualified := l.name + "." + f
			merged.fields = append(merged.fields, qualified)
			merged.input[qualified] = key
		}
	}
	if len(collisions) > 0 {
		return nil, fmt.Errorf("coerce: layout %s: overlapping fields %s", name, strings.Join(collisions, ", "))
	}
	return merged, nil
}

// MustMerge is Merge for package-level declarations; an overlap panics at
// initialization.
func MustMerge(name string, layouts ...*Layout) *Layout {
	l, err := Merge(name, layouts...)
	if err != nil {
		panic(err)
	}
	return l
}
