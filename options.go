package bib2json

// Options controls parsing, resolution and projection. The zero value gives
// the default behavior: skip malformed entries with an error diagnostic,
// keep unresolved macro references verbatim, inherit one hop of
// crossref/xdata fields and retain the inheritance fields, and project the
// plain {type, key, fields} schema.
type Options struct {
	// Strict turns error-severity diagnostics into a failed parse.
	Strict bool

	// MaxHops limits crossref/xdata inheritance depth. 0 means the bibtex
	// default of one hop.
	MaxHops int

	// DropInheritanceFields removes crossref and xdata fields from entries
	// after inheritance instead of retaining them for provenance.
	DropInheritanceFields bool

	// People adds parsed authors/editors arrays to the JSON projection.
	People bool

	// IncludeBibtex adds a verbatim biblatex re-serialization of each entry
	// to the JSON projection.
	IncludeBibtex bool
}

func (o Options) maxHops() int {
	if o.MaxHops < 1 {
		return 1
	}
	return o.MaxHops
}
