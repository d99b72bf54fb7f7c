package quantity

import "github.com/alecthomas/participle/v2/lexer"

// quantityLexer tokenizes numbers with an optional unit, and (x, y, z) vectors.
var quantityLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Whitespace", Pattern: `\s+`},

	// Numbers, with optional exponent
	{Name: "Number", Pattern: `[-+]?(\d+\.?\d*|\.\d+)([eE][-+]?\d+)?`},

	// Units, including the micro sign and Greek mu
	{Name: "Unit", Pattern: `[a-zA-Zµμ]+`},

	// Punctuation
	{Name: "LParen", Pattern: `\(`},
	{Name: "RParen", Pattern: `\)`},
	{Name: "Comma", Pattern: `,`},
})
