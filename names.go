package bib2json

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Person is one author or editor split into given and family parts.
type Person struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// ParsePersons splits a bibtex author/editor value on the word "and" at
// brace depth zero and decomposes each name. Handled forms: "Last, First",
// "Last, Suffix, First", "First von Last", and a fully braced corporate name
// ({ACME Inc.}) as a single family name. Markup inside the parts is left
// verbatim.
func ParsePersons(value string) []Person {
	var persons []Person
	for _, name := range splitAnd(value) {
		persons = append(persons, parsePerson(name))
	}
	return persons
}

func splitAnd(value string) []string {
	var parts []string
	depth, start, i := 0, 0, 0
	for i < len(value) {
		switch value[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && isSpace(value[i]) {
			j := i
			for j < len(value) && isSpace(value[j]) {
				j++
			}
			if j+3 <= len(value) && strings.EqualFold(value[j:j+3], "and") &&
				(j+3 == len(value) || isSpace(value[j+3])) {
				if s := strings.TrimSpace(value[start:i]); s != "" {
					parts = append(parts, s)
				}
				i = j + 3
				start = i
				continue
			}
		}
		i++
	}
	if s := strings.TrimSpace(value[start:]); s != "" {
		parts = append(parts, s)
	}
	return parts
}

func parsePerson(name string) Person {
	if parts := splitTop(name, ','); len(parts) > 1 {
		// "Last, First" or "Last, Suffix, First"
		var last []string
		for _, p := range parts[:len(parts)-1] {
			if p = strings.TrimSpace(p); p != "" {
				last = append(last, p)
			}
		}
		return Person{
			FirstName: strings.TrimSpace(parts[len(parts)-1]),
			LastName:  strings.Join(last, " "),
		}
	}
	words := fieldsTop(name)
	switch len(words) {
	case 0:
		return Person{}
	case 1:
		return Person{LastName: stripBraces(words[0])}
	}
	// "First von Last": the family part starts at the first lowercase
	// particle, or at the final word when there is none.
	split := len(words) - 1
	for i := 1; i < len(words)-1; i++ {
		if startsLower(words[i]) {
			split = i
			break
		}
	}
	return Person{
		FirstName: strings.Join(words[:split], " "),
		LastName:  strings.Join(words[split:], " "),
	}
}

// splitTop splits s on sep at brace depth zero.
func splitTop(s string, sep byte) []string {
	var parts []string
	depth, start := 0, 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// fieldsTop splits s on whitespace at brace depth zero.
func fieldsTop(s string) []string {
	var words []string
	depth, start := 0, -1
	for i := 0; i < len(s); i++ {
		b := s[i]
		switch b {
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
		if depth == 0 && isSpace(b) {
			if start >= 0 {
				words = append(words, s[start:i])
				start = -1
			}
		} else if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		words = append(words, s[start:])
	}
	return words
}

func stripBraces(s string) string {
	if len(s) >= 2 && s[0] == '{' && s[len(s)-1] == '}' {
		return s[1 : len(s)-1]
	}
	return s
}

func startsLower(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLower(r)
}
