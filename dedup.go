package bib2json

import (
	"bytes"
	"fmt"
	"io"
	"strings"
)

// DedupReport groups citation-key collisions: for each reused key, the
// record that kept it followed by the rejected occurrences.
type DedupReport struct {
	Sets map[string][]*Record
}

// DuplicateReport builds a report from the records AddRecord rejected, or
// nil when every key was unique.
func (f *File) DuplicateReport() *DedupReport {
	if len(f.duplicates) == 0 {
		return nil
	}
	sets := make(map[string][]*Record)
	for _, dup := range f.duplicates {
		if _, seen := sets[dup.key]; !seen {
			if first, ok := f.index[dup.key]; ok {
				sets[dup.key] = append(sets[dup.key], first)
			}
		}
		sets[dup.key] = append(sets[dup.key], dup)
	}
	return &DedupReport{Sets: sets}
}

func (dr *DedupReport) SetCount() int {
	if dr == nil {
		return 0
	}
	return len(dr.Sets)
}

func (dr *DedupReport) Print(w io.Writer) (err error) {
	if dr == nil || len(dr.Sets) == 0 {
		return nil
	}
	fmt.Fprintf(w, "%d duplicate sets found\n", len(dr.Sets))
	for key, recs := range dr.Sets {
		_, err = fmt.Fprintf(w, "%s\n[%s] has %d occurrences in lines\n", strings.Repeat("*", 60), key, len(recs))
		for _, rec := range recs {
			_, err = fmt.Fprintf(w, "%d:\n", rec.Line())
			err = Print(w, rec)
		}
	}
	return err
}

func (dr DedupReport) String() string {
	var b = new(bytes.Buffer)
	if err := dr.Print(b); err != nil {
		b.WriteString("error: " + err.Error())
	}
	return b.String()
}

// ValidKeys reports whether every record kept its citation key, i.e. no
// duplicates were rejected during assembly.
func ValidKeys(f *File) bool {
	return len(f.duplicates) == 0
}
