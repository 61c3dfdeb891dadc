package bib2json

import "fmt"

// Pos locates a byte in the input.
type Pos struct {
	Offset int // byte offset, 0-based
	Line   int // line number, 1-based
}

func (p Pos) String() string {
	return fmt.Sprintf("line %d (offset %d)", p.Line, p.Offset)
}

// Severity classifies a diagnostic.
type Severity int

const (
	Warning Severity = iota // non-aborting
	Error                   // entry dropped; fatal under Options.Strict
)

func (s Severity) String() string {
	if s == Error {
		return "error"
	}
	return "warning"
}

// A Diagnostic reports a recoverable problem found while parsing or
// resolving, located by position and, when known, by citation key.
type Diagnostic struct {
	Severity Severity
	Pos      Pos
	Key      string // enclosing citation key, "" if none
	Message  string
}

func (d Diagnostic) String() string {
	if d.Key == "" {
		return fmt.Sprintf("%s: %s: %s", d.Severity, d.Pos, d.Message)
	}
	return fmt.Sprintf("%s: %s: [%s] %s", d.Severity, d.Pos, d.Key, d.Message)
}

// A ParseError is a fatal, structural failure: the input cannot be trusted
// past Pos, so the whole document is abandoned.
type ParseError struct {
	File string
	Pos  Pos
	Msg  string
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("parsing error at %s: %s", e.Pos, e.Msg)
	}
	return fmt.Sprintf("%s: parsing error at %s: %s", e.File, e.Pos, e.Msg)
}
