// Package irtext is the concrete syntax for serializing and
// re-parsing IR modules as text: a small line-oriented language
// (module/function/block/instruction) built the way the teacher's
// grammar package builds Kanso's own concrete syntax -- a stateful
// lexer.MustStateful lexer, a struct-tag grammar, and a
// participle.Parser assembled over both.
package irtext

import (
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes irtext source. Token classes mirror the teacher's
// grammar.KansoLexer (comments, identifiers, integers, punctuation)
// plus the two reference sigils this surface needs: %N for Value
// names and $N for Pointer names.
var Lexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Comment", `//[^\n]*`, nil},
		{"String", `"(\\.|[^"\\])*"`, nil},
		{"ValueRef", `%[0-9]+`, nil},
		{"PtrRef", `\$[0-9]+`, nil},
		{"HexLiteral", `0x[0-9a-fA-F]+`, nil},
		{"Integer", `[0-9]+`, nil},
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_]*`, nil},
		{"Arrow", `->`, nil},
		{"Punct", `[{}()\[\]<>:,;=]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
