package bib2json

import (
	"fmt"
	"strings"
)

// lexer scans bibtex source in a single left-to-right pass over an in-memory
// buffer. Group contents ({...}, "...") are scanned as opaque balanced spans;
// a backslash immediately before a delimiter escapes it. The parser drives
// the group scans because '{' is structural after an entry head but opaque in
// a field value.
type lexer struct {
	src  []byte
	name string // input name for error reporting
	pos  int    // byte offset of the next unread byte
	line int    // 1-based
}

func newLexer(src []byte, name string) *lexer {
	return &lexer{src: src, name: name, line: 1}
}

func (l *lexer) here() Pos { return Pos{Offset: l.pos, Line: l.line} }

func (l *lexer) errorf(at Pos, format string, args ...any) *ParseError {
	return &ParseError{File: l.name, Pos: at, Msg: fmt.Sprintf(format, args...)}
}

func (l *lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	if b == '\n' {
		l.line++
	}
	return b
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
		l.advance()
	}
}

func (l *lexer) scanName() string {
	start := l.pos
	for l.pos < len(l.src) && isNameByte(l.src[l.pos]) {
		l.pos++
	}
	return ByteSlice2String(l.src[start:l.pos])
}

// next returns the next token outside any group.
func (l *lexer) next() (Pos, Token, string, error) {
	l.skipSpace()
	at := l.here()
	if l.pos >= len(l.src) {
		return at, EOF, "", nil
	}
	b := l.src[l.pos]
	switch b {
	case '%':
		start := l.pos
		for l.pos < len(l.src) && l.src[l.pos] != '\n' {
			l.pos++
		}
		return at, LineComment, ByteSlice2String(l.src[start:l.pos]), nil
	case '@':
		l.advance()
		l.skipSpace()
		name := l.scanName()
		if name == "" {
			return at, Illegal, "@", nil
		}
		switch strings.ToLower(name) {
		case "string":
			return at, Abbrev, name, nil
		case "comment":
			return at, Comment, name, nil
		case "preamble":
			return at, Preamble, name, nil
		}
		return at, BibEntry, name, nil
	case '"':
		l.advance()
		lit, err := l.scanQuote(at)
		return at, QuoteString, lit, err
	case '{':
		l.advance()
		return at, LBrace, "{", nil
	case '}':
		l.advance()
		return at, RBrace, "}", nil
	case '(':
		l.advance()
		return at, LParen, "(", nil
	case ')':
		l.advance()
		return at, RParen, ")", nil
	case ',':
		l.advance()
		return at, Comma, ",", nil
	case '=':
		l.advance()
		return at, Assign, "=", nil
	case '#':
		l.advance()
		return at, Concat, "#", nil
	}
	if isNameByte(b) {
		name := l.scanName()
		if allDigits(name) {
			return at, Number, name, nil
		}
		return at, Ident, name, nil
	}
	l.advance()
	return at, Illegal, string(b), nil
}

// scanGroup consumes a balanced group whose opening delimiter has already
// been read, returning the raw contents without the outer delimiters.
// at is the position of the opening delimiter.
func (l *lexer) scanGroup(at Pos, open, close byte) (string, error) {
	start := l.pos
	depth := 1
	for l.pos < len(l.src) {
		b := l.advance()
		switch b {
		case '\\':
			if l.pos < len(l.src) {
				l.advance()
			}
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return ByteSlice2String(l.src[start : l.pos-1]), nil
			}
		}
	}
	return "", l.errorf(at, "unterminated %c group", open)
}

// scanQuote consumes a "-delimited group whose opening quote has already
// been read. Braces nest inside quotes and a quote at brace depth > 0 does
// not terminate the group.
func (l *lexer) scanQuote(at Pos) (string, error) {
	start := l.pos
	depth := 0
	for l.pos < len(l.src) {
		b := l.advance()
		switch b {
		case '\\':
			if l.pos < len(l.src) {
				l.advance()
			}
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return "", l.errorf(at, "unbalanced } in quoted value")
			}
			depth--
		case '"':
			if depth == 0 {
				return ByteSlice2String(l.src[start : l.pos-1]), nil
			}
		}
	}
	return "", l.errorf(at, "unterminated quoted value")
}
