package bib2json

import "strconv"

// Token is the set of lexical tokens for bibtex source.
type Token int

const (
	Illegal Token = iota
	EOF
	LineComment // % foo, outside any group

	// Commands: an @ marker plus its type name.
	commandBegin
	Abbrev   // @STRING, @string
	Comment  // @COMMENT, @comment
	Preamble // @PREAMBLE, @pReAmble
	BibEntry // @article, @book, etc
	commandEnd

	// Identifiers and basic literals.
	literalBegin
	Ident       // author, crossref, a macro name
	Number      // 2005
	BraceString // {abc}, outer braces stripped
	QuoteString // "abc", outer quotes stripped
	literalEnd

	// Operators and delimiters.
	operatorBegin
	Assign // =
	Concat // #
	Comma  // ,
	LBrace // {
	RBrace // }
	LParen // (
	RParen // )
	operatorEnd
)

var tokens = [...]string{
	Illegal:     "Illegal",
	EOF:         "EOF",
	LineComment: "LineComment",

	Abbrev:   "Abbrev",
	Comment:  "Comment",
	Preamble: "Preamble",
	BibEntry: "BibEntry",

	Ident:       "Ident",
	Number:      "Number",
	BraceString: "BraceString",
	QuoteString: "QuoteString",

	Assign: "Assign",
	Concat: "Concat",
	Comma:  "Comma",
	LBrace: "LBrace",
	RBrace: "RBrace",
	LParen: "LParen",
	RParen: "RParen",
}

func (tok Token) String() string {
	s := ""
	if 0 <= tok && tok < Token(len(tokens)) {
		s = tokens[tok]
	}
	if s == "" {
		s = "token(" + strconv.Itoa(int(tok)) + ")"
	}
	return s
}

// IsLiteral returns true for identifier and literal tokens.
func (tok Token) IsLiteral() bool {
	return literalBegin < tok && tok < literalEnd
}

// IsCommand returns true for @-command tokens.
func (tok Token) IsCommand() bool {
	return commandBegin < tok && tok < commandEnd
}

// IsOperator returns true for operator and delimiter tokens.
func (tok Token) IsOperator() bool {
	return operatorBegin < tok && tok < operatorEnd
}
