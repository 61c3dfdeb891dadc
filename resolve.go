package bib2json

import "strings"

// inheritanceFields name other entries whose fields a child inherits:
// crossref holds a single key, xdata a comma-separated key list.
var inheritanceFields = []string{"crossref", "xdata"}

// Resolve runs the post-parse inheritance pass: for every record naming a
// parent via crossref or xdata, copy each parent field the child does not
// already define. Child fields always win. Depth is limited to
// opts.maxHops() (bibtex convention: one hop) and a visited set makes deeper
// chains cycle-proof. The inheritance fields themselves are retained for
// provenance unless opts.DropInheritanceFields is set.
//
// Parse calls Resolve; it is exported for callers that assemble a File by
// other means.
func Resolve(f *File, opts Options) {
	for _, rec := range f.Records {
		visited := map[string]bool{rec.key: true}
		inherit(f, rec, rec, opts.maxHops(), visited)
	}
	if opts.DropInheritanceFields {
		for _, rec := range f.Records {
			for _, name := range inheritanceFields {
				rec.removeField(name)
			}
		}
	}
}

func inherit(f *File, child, src *Record, hops int, visited map[string]bool) {
	if hops == 0 {
		return
	}
	for _, name := range inheritanceFields {
		raw := src.Field(name)
		if raw == "" {
			continue
		}
		for _, pkey := range splitKeys(raw) {
			if pkey == child.key {
				if src == child {
					f.errorf(child.pos, child.key, "%s refers to its own entry", name)
				}
				continue
			}
			if visited[pkey] {
				continue
			}
			visited[pkey] = true
			parent, ok := f.Lookup(pkey)
			if !ok {
				f.warnf(child.pos, child.key, "%s target %q not in document", name, pkey)
				continue
			}
			for _, fld := range parent.Fields() {
				if fld.key == "crossref" || fld.key == "xdata" {
					continue
				}
				if !child.hasField(fld.key) {
					child.setField(fld.key, fld.value, fld.line)
				}
			}
			inherit(f, child, parent, hops-1, visited)
		}
	}
}

func splitKeys(raw string) []string {
	var keys []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			keys = append(keys, part)
		}
	}
	return keys
}
