package bib2json

import (
	"fmt"
	"io"
	"strings"
)

// File is one parsed bibliography: records in source order, an index by
// citation key, and the diagnostics collected along the way. A File is owned
// by a single Parse invocation.
type File struct {
	Records    []*Record
	name       string
	index      map[string]*Record
	duplicates []*Record
	diags      []Diagnostic
}

func newFile(fileName string) *File {
	return &File{name: fileName, index: make(map[string]*Record)}
}

func (f *File) Name() string { return f.name }

func (f *File) RecordCount() int { return len(f.Records) }

// AddRecord appends rec preserving source order. On a duplicate citation key
// the first occurrence is kept and the newcomer is reported, never silently
// dropped or overwritten.
func (f *File) AddRecord(rec *Record) bool {
	if first, ok := f.index[rec.key]; ok {
		f.duplicates = append(f.duplicates, rec)
		f.warnf(rec.pos, rec.key, "duplicate citation key; first defined at line %d", first.line)
		return false
	}
	rec.order = len(f.Records)
	f.index[rec.key] = rec
	f.Records = append(f.Records, rec)
	return true
}

// Lookup finds a record by citation key.
func (f *File) Lookup(key string) (*Record, bool) {
	rec, ok := f.index[key]
	return rec, ok
}

// Duplicates returns the records rejected for reusing a citation key.
func (f *File) Duplicates() []*Record { return f.duplicates }

// Diagnostics returns all warnings and recoverable errors in the order they
// were found.
func (f *File) Diagnostics() []Diagnostic { return f.diags }

func (f *File) warnf(at Pos, key, format string, args ...any) {
	f.diags = append(f.diags, Diagnostic{Severity: Warning, Pos: at, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (f *File) errorf(at Pos, key, format string, args ...any) {
	f.diags = append(f.diags, Diagnostic{Severity: Error, Pos: at, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (f *File) errorCount() int {
	n := 0
	for _, d := range f.diags {
		if d.Severity == Error {
			n++
		}
	}
	return n
}

// Record is one bibliographic entry.
type Record struct {
	fields []Field
	key    string // citation key, case preserved
	typ    string // entry type, lowercased
	line   int
	pos    Pos
	order  int // index in source order
}

func (rec *Record) Key() string { return rec.key }

func (rec *Record) Type() string { return rec.typ }

func (rec *Record) Line() int { return rec.line }

// Field returns the value of the named field, or "" if absent.
// Names are stored lowercased.
func (rec *Record) Field(fieldName string) string {
	for _, fld := range rec.fields {
		if fld.key == fieldName {
			return fld.value
		}
	}
	return ""
}

// Fields returns the fields in insertion order.
func (rec *Record) Fields() []Field { return rec.fields }

func (rec *Record) hasField(name string) bool {
	for _, fld := range rec.fields {
		if fld.key == name {
			return true
		}
	}
	return false
}

// setField adds a field; if the name is already present the new value
// supersedes the old one in place (last occurrence wins).
func (rec *Record) setField(name, value string, line int) {
	for i := range rec.fields {
		if rec.fields[i].key == name {
			rec.fields[i].value = value
			rec.fields[i].line = line
			return
		}
	}
	rec.fields = append(rec.fields, Field{key: name, value: value, line: line})
}

func (rec *Record) removeField(name string) {
	for i := range rec.fields {
		if rec.fields[i].key == name {
			rec.fields = append(rec.fields[:i], rec.fields[i+1:]...)
			return
		}
	}
}

// BibtexRepr re-serializes the record as biblatex source text.
func (rec *Record) BibtexRepr() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "@%s{%s,\n", rec.typ, rec.key)
	for _, fld := range rec.fields {
		sb.WriteString("    ")
		sb.WriteString(fld.BibtexRepr())
		sb.WriteString(",\n")
	}
	sb.WriteString("}")
	return sb.String()
}

// Field is one name/value pair of a record. Values are fully resolved text:
// delimiters stripped, macros substituted, concatenations joined, LaTeX
// markup left verbatim.
type Field struct {
	key   string
	value string
	line  int
}

func (fld Field) Key() string { return fld.key }

func (fld Field) Value() string { return fld.value }

func (fld Field) Line() int { return fld.line }

func (fld Field) BibtexRepr() string {
	return fmt.Sprintf("%s = {%s}", fld.key, fld.value)
}

// Print writes n back out as bibtex source.
func Print(w io.Writer, n any) error {
	switch n := n.(type) {
	case *File:
		for _, rec := range n.Records {
			if err := Print(w, rec); err != nil {
				return err
			}
		}
		return nil
	case *Record:
		_, err := fmt.Fprintln(w, n.BibtexRepr())
		return err
	case Field:
		_, err := fmt.Fprint(w, n.BibtexRepr())
		return err
	}
	return fmt.Errorf("unknown node type %T", n)
}
