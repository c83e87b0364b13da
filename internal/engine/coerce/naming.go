// Package coerce turns the loosely typed values of a parsed journal record
// into typed Go values.
//
// Field names are declared once, in canonical snake_case, on a Layout. The
// Layout resolves them to the spelling used in the journal under one naming
// Convention (plus literal overrides for irregular names), optionally behind
// a shared prefix. A Reader binds a Layout to one record and exposes typed
// accessors that record the first failure instead of panicking.
package coerce

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Convention is a field-name spelling rule applied to canonical snake_case names.
type Convention int

const (
	PascalSnake Convention = iota // current_wealth -> Current_Wealth
	Pascal                        // current_wealth -> CurrentWealth
	Lower                         // game_version -> gameversion
)

func (c Convention) String() string {
	switch c {
	case PascalSnake:
		return "Pascal_Snake"
	case Pascal:
		return "PascalCase"
	case Lower:
		return "lowercase"
	default:
		return fmt.Sprintf("Convention(%d)", int(c))
	}
}

// Apply spells canonical under the convention.
func (c Convention) Apply(canonical string) string {
	words := strings.Split(canonical, "_")
	if c == Lower {
		return strings.ToLower(strings.Join(words, ""))
	}

	// A Caser keeps state between calls, so each Apply gets its own.
	title := cases.Title(language.Und)
	for i, w := range words {
		words[i] = title.String(w)
	}
	if c == Pascal {
		return strings.Join(words, "")
	}
	return strings.Join(words, "_")
}
