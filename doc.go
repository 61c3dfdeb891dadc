// Package bib2json parses BibTeX/BibLaTeX bibliography source text into a
// structured document and projects it to JSON.

// BNF
// Database     ::= (Junk '@' Entry)*
// Entry        ::= Record
//               |  Comment
//               |  String
//               |  Preamble
// Comment      ::= "comment" '{' .* '}'               -- discarded
// String       ::= "string" '{' Name '=' Value '}'    -- macro definition
// Preamble     ::= "preamble" '{' .* '}'              -- discarded
// Record       ::= Type '{' Key ',' Field* '}'
//               |  Type '(' Key ',' Field* ')'
// Type         ::= Name
// Key          ::= Name
// Field        ::= Name '=' Value (',' | &'}')
// Name         ::= [^\s\"#%'(){},=]+
// Value        ::= Segment ('#' Segment)*
// Segment      ::= [0-9]+                             -- number literal
//               |  Name                               -- macro reference
//               |  '"' ([^'"']|balanced braces)* '"'
//               |  '{' .* '}'                         -- balanced
package bib2json
