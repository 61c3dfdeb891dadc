package bib2json

import "strings"

// months maps the conventional bibtex month abbreviations to the values the
// standard styles expand them to. They may be shadowed by an explicit
// @string redefinition.
var months = map[string]string{
	"jan": "January",
	"feb": "February",
	"mar": "March",
	"apr": "April",
	"may": "May",
	"jun": "June",
	"jul": "July",
	"aug": "August",
	"sep": "September",
	"oct": "October",
	"nov": "November",
	"dec": "December",
}

// MacroTable holds the @string bindings of one parse. Names are
// case-insensitive. A table is owned by a single Parse invocation and is not
// safe for concurrent mutation.
type MacroTable struct {
	m map[string]string
}

// NewMacroTable returns a table preloaded with the month abbreviations.
func NewMacroTable() *MacroTable {
	m := make(map[string]string, len(months)+16)
	for k, v := range months {
		m[k] = v
	}
	return &MacroTable{m: m}
}

// Define inserts or overwrites a binding. Macro values are resolved eagerly
// at definition time, so a redefinition shadows the old value for later
// references only and never alters text already resolved.
func (t *MacroTable) Define(name, value string) {
	t.m[strings.ToLower(name)] = value
}

// Resolve looks up the current binding for name.
func (t *MacroTable) Resolve(name string) (string, bool) {
	v, ok := t.m[strings.ToLower(name)]
	return v, ok
}

// Len returns the number of bindings, months included.
func (t *MacroTable) Len() int { return len(t.m) }
