package bib2json

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Parse parses bibtex/biblatex source provided as an io.Reader or a file
// name, assembles the document, and resolves crossref/xdata inheritance.
// Malformed entries are skipped and reported as error diagnostics on the
// returned File; the returned error is non-nil only for structural failures
// that invalidate the rest of the input (unterminated groups, truncated
// entries) or, under opts.Strict, when any error diagnostic was recorded.
func Parse(r io.Reader, fileName string, opts Options) (*File, error) {
	if r == nil {
		if fileName == "" {
			return nil, fmt.Errorf("nothing to parse")
		}
		f, err := os.Open(fileName)
		if err != nil {
			return nil, fmt.Errorf("can't process file %s: %w", fileName, err)
		}
		defer f.Close()
		r = f
	}
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("can't read %s: %w", fileName, err)
	}
	p := newParser(src, fileName, opts)
	if err := p.parse(); err != nil {
		return p.file, err
	}
	Resolve(p.file, opts)
	if opts.Strict {
		if n := p.file.errorCount(); n > 0 {
			return p.file, fmt.Errorf("%s: %d error(s) escalated in strict mode", fileName, n)
		}
	}
	return p.file, nil
}

type parser struct {
	lex    *lexer
	file   *File
	macros *MacroTable
	opts   Options

	// one-token pushback buffer
	buf struct {
		pos Pos
		tok Token
		lit string
		ok  bool
	}
}

func newParser(src []byte, fileName string, opts Options) *parser {
	return &parser{
		lex:    newLexer(src, fileName),
		file:   newFile(fileName),
		macros: NewMacroTable(),
		opts:   opts,
	}
}

func (p *parser) next() (Pos, Token, string, error) {
	if p.buf.ok {
		p.buf.ok = false
		return p.buf.pos, p.buf.tok, p.buf.lit, nil
	}
	return p.lex.next()
}

func (p *parser) pushback(pos Pos, tok Token, lit string) {
	p.buf.pos, p.buf.tok, p.buf.lit, p.buf.ok = pos, tok, lit, true
}

// syntaxError is an entry-local problem: the offending block is dropped and
// scanning resumes at the next top-level @.
type syntaxError struct {
	pos Pos
	key string
	msg string
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("invalid entry at %s: %s", e.pos, e.msg)
}

func (p *parser) parse() error {
	for {
		pos, tok, lit, err := p.next()
		if err != nil {
			return err
		}
		switch tok {
		case EOF:
			return nil
		case Abbrev:
			err = p.parseAbbrev(pos)
		case Comment, Preamble:
			err = p.skipBlock(pos)
		case BibEntry:
			err = p.parseRecord(pos, lit)
		case LBrace:
			// stray top-level group; junk, but must still balance
			_, err = p.lex.scanGroup(pos, '{', '}')
		default:
			// free text between entries is an implicit comment
		}
		if err != nil {
			var serr *syntaxError
			if !errors.As(err, &serr) {
				return err
			}
			p.file.errorf(serr.pos, serr.key, "%s", serr.msg)
			if err := p.resync(); err != nil {
				return err
			}
		}
	}
}

// expectOpen consumes the block-opening delimiter and returns the token that
// will close it.
func (p *parser) expectOpen() (Token, error) {
	pos, tok, lit, err := p.next()
	if err != nil {
		return Illegal, err
	}
	switch tok {
	case LBrace:
		return RBrace, nil
	case LParen:
		return RParen, nil
	}
	return Illegal, &syntaxError{pos: pos, msg: fmt.Sprintf("{ expected, got %q", lit)}
}

// parseAbbrev handles @string{name = value}, feeding the macro table.
// No record is emitted.
func (p *parser) parseAbbrev(at Pos) error {
	closer, err := p.expectOpen()
	if err != nil {
		return err
	}
	pos, tok, name, err := p.next()
	if err != nil {
		return err
	}
	if tok == EOF {
		return p.lex.errorf(at, "unterminated @string block")
	}
	if tok != Ident {
		return &syntaxError{pos: pos, msg: fmt.Sprintf("@string: macro name expected, got %s", tok)}
	}
	pos, tok, _, err = p.next()
	if err != nil {
		return err
	}
	if tok != Assign {
		return &syntaxError{pos: pos, key: name, msg: "@string: = missing after macro name"}
	}
	value, err := p.parseValue(at, name)
	if err != nil {
		return err
	}
	pos, tok, lit, err := p.next()
	if err != nil {
		return err
	}
	if tok == Comma {
		pos, tok, lit, err = p.next()
		if err != nil {
			return err
		}
	}
	if tok == EOF {
		return p.lex.errorf(at, "unterminated @string block")
	}
	if tok != closer {
		return &syntaxError{pos: pos, key: name, msg: fmt.Sprintf("@string: closing delimiter expected, got %q", lit)}
	}
	p.macros.Define(name, value)
	return nil
}

// skipBlock discards an @comment or @preamble block.
func (p *parser) skipBlock(at Pos) error {
	pos, tok, lit, err := p.next()
	if err != nil {
		return err
	}
	switch tok {
	case LBrace:
		_, err = p.lex.scanGroup(pos, '{', '}')
	case LParen:
		_, err = p.lex.scanGroup(pos, '(', ')')
	default:
		// naked @comment with no block; tolerated
		p.pushback(pos, tok, lit)
	}
	return err
}

// parseRecord parses @type{key, field = value, ...} into a Record and hands
// it to the document. The comma after a field is optional before the closing
// delimiter; here it is always optional.
func (p *parser) parseRecord(at Pos, typ string) error {
	closer, err := p.expectOpen()
	if err != nil {
		return err
	}
	pos, tok, lit, err := p.next()
	if err != nil {
		return err
	}
	var key string
	switch tok {
	case Ident, Number:
		key = lit
	case Comma:
		return &syntaxError{pos: pos, msg: fmt.Sprintf("@%s: empty citation key", typ)}
	case EOF:
		return p.lex.errorf(at, "unterminated @%s entry", typ)
	default:
		return &syntaxError{pos: pos, msg: fmt.Sprintf("@%s: citation key expected, got %q", typ, lit)}
	}
	rec := &Record{key: key, typ: strings.ToLower(typ), line: at.Line, pos: at}
	for {
		pos, tok, lit, err = p.next()
		if err != nil {
			return err
		}
		if tok == closer {
			break
		}
		switch tok {
		case Comma:
			continue
		case EOF:
			return p.lex.errorf(at, "unterminated @%s{%s entry", typ, key)
		case Ident, Number:
			// field name
		default:
			return &syntaxError{pos: pos, key: key, msg: fmt.Sprintf("field name expected, got %q", lit)}
		}
		name := strings.ToLower(lit)
		nameLine := pos.Line
		pos, tok, _, err = p.next()
		if err != nil {
			return err
		}
		if tok == EOF {
			return p.lex.errorf(at, "unterminated @%s{%s entry", typ, key)
		}
		if tok != Assign {
			return &syntaxError{pos: pos, key: key, msg: fmt.Sprintf("= missing after field %q", name)}
		}
		value, err := p.parseValue(at, key)
		if err != nil {
			return err
		}
		rec.setField(name, value, nameLine)
	}
	p.file.AddRecord(rec)
	return nil
}

// parseValue reads one right-hand side: segments joined by # with no
// separator. A segment is a brace group, a quoted group, a number, or a
// macro reference resolved against the table populated so far.
func (p *parser) parseValue(at Pos, key string) (string, error) {
	var sb strings.Builder
	for {
		pos, tok, lit, err := p.next()
		if err != nil {
			return "", err
		}
		switch tok {
		case LBrace:
			s, err := p.lex.scanGroup(pos, '{', '}')
			if err != nil {
				return "", err
			}
			sb.WriteString(s)
		case QuoteString, Number:
			sb.WriteString(lit)
		case Ident:
			if v, ok := p.macros.Resolve(lit); ok {
				sb.WriteString(v)
			} else {
				p.file.warnf(pos, key, "unresolved macro %q kept verbatim", lit)
				sb.WriteString(lit)
			}
		case EOF:
			return "", p.lex.errorf(at, "input ends inside a field value")
		default:
			return "", &syntaxError{pos: pos, key: key, msg: fmt.Sprintf("field value expected, got %q", lit)}
		}
		pos, tok, lit, err = p.next()
		if err != nil {
			return "", err
		}
		if tok != Concat {
			p.pushback(pos, tok, lit)
			return sb.String(), nil
		}
	}
}

// resync skips tokens after an entry-local error until the enclosing block
// closes or the next top-level @ command begins.
func (p *parser) resync() error {
	for {
		pos, tok, lit, err := p.next()
		if err != nil {
			return err
		}
		switch tok {
		case EOF, RBrace, RParen:
			return nil
		case LBrace:
			if _, err := p.lex.scanGroup(pos, '{', '}'); err != nil {
				return err
			}
		case Abbrev, Comment, Preamble, BibEntry:
			p.pushback(pos, tok, lit)
			return nil
		}
	}
}
