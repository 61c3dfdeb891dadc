package bib2json

import "unsafe"

func ByteSlice2String(bs []byte) string {
	if len(bs) == 0 {
		return ""
	}
	return unsafe.String(unsafe.SliceData(bs), len(bs))
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// isNameByte reports whether b may appear in a bibtex name (entry type,
// citation key, field or macro name). Bytes >= 0x80 are UTF-8 continuations
// or starts and are all legal.
func isNameByte(b byte) bool {
	if isSpace(b) {
		return false
	}
	switch b {
	case '"', '#', '%', '\'', '(', ')', '{', '}', ',', '=', '@':
		return false
	}
	return true
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
