package bib2json

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SortRecords reorders f.Records by flds, a comma-separated list of sort
// keys with an optional leading - for descending order, e.g. "type,-year".
// "type" and "key" compare the entry type and citation key; any other name
// is a field lookup, compared numerically when both values parse as
// integers. The default output order is source order; sorting is opt-in.
func SortRecords(f *File, flds string) error {
	if f == nil || f.RecordCount() == 0 {
		return fmt.Errorf("nothing to sort")
	}
	type sortKey struct {
		name string
		desc bool
	}
	var keys []sortKey
	for _, s := range strings.Split(flds, ",") {
		s = strings.TrimSpace(s)
		desc := strings.HasPrefix(s, "-")
		s = strings.TrimPrefix(s, "-")
		if s == "" {
			return fmt.Errorf("invalid sort spec %q", flds)
		}
		keys = append(keys, sortKey{name: strings.ToLower(s), desc: desc})
	}
	sort.SliceStable(f.Records, func(i, j int) bool {
		for _, k := range keys {
			cmp := compareValues(sortValue(f.Records[i], k.name), sortValue(f.Records[j], k.name))
			if cmp == 0 {
				continue
			}
			if k.desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return f.Records[i].order < f.Records[j].order
	})
	return nil
}

func sortValue(rec *Record, name string) string {
	switch name {
	case "type":
		return rec.typ
	case "key", "citekey":
		return rec.key
	}
	return rec.Field(name)
}

func compareValues(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
