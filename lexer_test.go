package bib2json

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	lex := newLexer([]byte(src), "test.bib")
	var toks []Token
	for {
		_, tok, _, err := lex.next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok == EOF {
			return toks
		}
	}
}

func TestLexTokenSequence(t *testing.T) {
	// next() alone: brace groups are consumed by the parser via scanGroup,
	// so here {x} lexes as LBrace Ident RBrace
	toks := scanAll(t, `@article{k1, title = {x} # "y", year = 2001}`)
	want := []Token{
		BibEntry, LBrace, Ident, Comma,
		Ident, Assign, LBrace, Ident, RBrace, Concat, QuoteString, Comma,
		Ident, Assign, Number,
		RBrace, EOF,
	}
	assert.Equal(t, want, toks)
}

func TestLexCommands(t *testing.T) {
	lex := newLexer([]byte("@STRING @Comment @preamble @inBook"), "test.bib")
	for _, want := range []Token{Abbrev, Comment, Preamble, BibEntry} {
		_, tok, _, err := lex.next()
		require.NoError(t, err)
		assert.Equal(t, want, tok)
	}
	assert.True(t, Abbrev.IsCommand())
	assert.True(t, QuoteString.IsLiteral())
	assert.True(t, Concat.IsOperator())
	assert.Equal(t, "BibEntry", BibEntry.String())
}

func TestLexLineComment(t *testing.T) {
	lex := newLexer([]byte("% only a comment\nrest"), "test.bib")
	_, tok, lit, err := lex.next()
	require.NoError(t, err)
	assert.Equal(t, LineComment, tok)
	assert.Equal(t, "% only a comment", lit)
	_, tok, lit, err = lex.next()
	require.NoError(t, err)
	assert.Equal(t, Ident, tok)
	assert.Equal(t, "rest", lit)
}

func TestLexPositions(t *testing.T) {
	src := "\n\n  @misc{k,}"
	lex := newLexer([]byte(src), "test.bib")
	pos, tok, _, err := lex.next()
	require.NoError(t, err)
	assert.Equal(t, BibEntry, tok)
	assert.Equal(t, 3, pos.Line)
	assert.Equal(t, 4, pos.Offset)
}

func TestScanGroupNesting(t *testing.T) {
	lex := newLexer([]byte(`{a {b {c}} d} tail`), "test.bib")
	pos, tok, _, err := lex.next()
	require.NoError(t, err)
	require.Equal(t, LBrace, tok)
	got, err := lex.scanGroup(pos, '{', '}')
	require.NoError(t, err)
	assert.Equal(t, "a {b {c}} d", got)

	_, tok, lit, err := lex.next()
	require.NoError(t, err)
	assert.Equal(t, Ident, tok)
	assert.Equal(t, "tail", lit)
}

func TestScanGroupEscapes(t *testing.T) {
	lex := newLexer([]byte(`{a \} b \{ c}`), "test.bib")
	pos, _, _, err := lex.next()
	require.NoError(t, err)
	got, err := lex.scanGroup(pos, '{', '}')
	require.NoError(t, err)
	assert.Equal(t, `a \} b \{ c`, got)
}

func TestScanGroupUnterminated(t *testing.T) {
	lex := newLexer([]byte(`{never closed`), "test.bib")
	pos, _, _, err := lex.next()
	require.NoError(t, err)
	_, err = lex.scanGroup(pos, '{', '}')
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 0, perr.Pos.Offset)
}

func TestScanQuote(t *testing.T) {
	lex := newLexer([]byte(`"a {"b"} c" tail`), "test.bib")
	_, tok, lit, err := lex.next()
	require.NoError(t, err)
	assert.Equal(t, QuoteString, tok)
	assert.Equal(t, `a {"b"} c`, lit, "quote inside braces does not terminate")

	_, tok, lit, err = lex.next()
	require.NoError(t, err)
	assert.Equal(t, Ident, tok)
	assert.Equal(t, "tail", lit)
}

func TestScanQuoteUnbalancedBrace(t *testing.T) {
	lex := newLexer([]byte(`"oops}"`), "test.bib")
	_, _, _, err := lex.next()
	require.Error(t, err)
}
