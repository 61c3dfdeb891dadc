package bib2json

import (
	"bytes"
	"encoding/json"
	"io"
)

// EntryJSON is the serializable projection of one Record: lowercase type,
// citation key as written, and the resolved fields in insertion order.
// Authors, Editors and Bibtex are populated only when the matching Options
// are set.
type EntryJSON struct {
	Type    string
	Key     string
	Fields  []Field
	Authors []Person
	Editors []Person
	Bibtex  string

	people bool
}

// MarshalJSON writes the fields object by hand because the order of field
// names must match insertion order and encoding/json sorts map keys.
func (e EntryJSON) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	if err := appendJSON(&buf, e.Type); err != nil {
		return nil, err
	}
	buf.WriteString(`,"key":`)
	if err := appendJSON(&buf, e.Key); err != nil {
		return nil, err
	}
	buf.WriteString(`,"fields":{`)
	for i, fld := range e.Fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := appendJSON(&buf, fld.key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := appendJSON(&buf, fld.value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	if e.people {
		buf.WriteString(`,"authors":`)
		if err := appendJSON(&buf, nonNil(e.Authors)); err != nil {
			return nil, err
		}
		buf.WriteString(`,"editors":`)
		if err := appendJSON(&buf, nonNil(e.Editors)); err != nil {
			return nil, err
		}
	}
	if e.Bibtex != "" {
		buf.WriteString(`,"bibtex":`)
		if err := appendJSON(&buf, e.Bibtex); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func appendJSON(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}

func nonNil(p []Person) []Person {
	if p == nil {
		return []Person{}
	}
	return p
}

// Project maps the document to its output schema, one element per record in
// source order. Meta-blocks never reach the document, so nothing is filtered
// here; the projection is total over a parsed File.
func Project(f *File, opts Options) []EntryJSON {
	out := make([]EntryJSON, 0, len(f.Records))
	for _, rec := range f.Records {
		e := EntryJSON{Type: rec.typ, Key: rec.key, Fields: rec.fields}
		if opts.People {
			e.people = true
			e.Authors = ParsePersons(rec.Field("author"))
			e.Editors = ParsePersons(rec.Field("editor"))
		}
		if opts.IncludeBibtex {
			e.Bibtex = rec.BibtexRepr()
		}
		out = append(out, e)
	}
	return out
}

// WriteJSON projects f and writes the JSON array to w. indent may be "" for
// compact output.
func WriteJSON(w io.Writer, f *File, opts Options, indent string) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(Project(f, opts))
}
