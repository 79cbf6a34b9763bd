// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the two built-in vocabularies the engine ships: the meta
// vocabulary used to lex macro definitions and call-site headers, and a
// lax host vocabulary used to lex the source text a macro's arguments and
// branch bodies are drawn from.
package voc

// Meta returns the vocabulary for macro definition/call syntax: the
// defmacten_dec/defmacten_proc keywords, the parameter sigil, the grouping
// and separator symbols, the variadic ellipsis, and the two reserved
// Identifier/Number classes.
func Meta() *Vocabulary {
	return Build("meta", []Symbol{
		{Name: "Comment", Pattern: `#[^\n]*`, Ignorable: true},
		{Name: "DefDeclarative", Pattern: `defmacten_dec`},
		{Name: "DefProcedural", Pattern: `defmacten_proc`},
		{Name: "Arrow", Pattern: `=>`},
		{Name: "Ellipsis", Pattern: `\.\.\.`},
		{Name: "Dollar", Pattern: `\$`},
		{Name: "Star", Pattern: `\*`},
		{Name: "Bang", Pattern: `!`},
		{Name: "Pipe", Pattern: `\|`},
		{Name: "Underscore", Pattern: `_`},
		{Name: "Comma", Pattern: `,`},
		{Name: "LBrace", Pattern: `\{`},
		{Name: "RBrace", Pattern: `\}`},
		{Name: "LParen", Pattern: `\(`},
		{Name: "RParen", Pattern: `\)`},
		{Name: "LBracket", Pattern: `\[`},
		{Name: "RBracket", Pattern: `\]`},
		{Name: "Newline", Pattern: `\n`, Ignorable: true},
		{Name: "Tab", Pattern: `\t`, Ignorable: true},
		{Name: "Space", Pattern: ` `, Ignorable: true},
		{Name: "Number", Pattern: `\d+`},
		{Name: "Identifier", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		{Name: "Error", Pattern: `.`},
	})
}

// Host returns the lax vocabulary used to lex the host-language text a
// macro's arguments and definitions are embedded in. It shares the meta
// vocabulary's structural symbols (so call sites and balanced groups are
// recognized identically) and accepts Extra host-specific single-character
// symbols ahead of the identifier/number/error fallbacks, letting a driver
// extend it without forking the whole declaration list.
func Host(extra ...Symbol) *Vocabulary {
	symbols := []Symbol{
		{Name: "Comment", Pattern: `#[^\n]*`, Ignorable: true},
		{Name: "DefDeclarative", Pattern: `defmacten_dec`},
		{Name: "DefProcedural", Pattern: `defmacten_proc`},
		{Name: "Arrow", Pattern: `=>`},
		{Name: "Ellipsis", Pattern: `\.\.\.`},
		{Name: "Dollar", Pattern: `\$`},
		{Name: "Star", Pattern: `\*`},
		{Name: "Bang", Pattern: `!`},
		{Name: "Pipe", Pattern: `\|`},
		{Name: "Underscore", Pattern: `_`},
		{Name: "Comma", Pattern: `,`},
		{Name: "LBrace", Pattern: `\{`},
		{Name: "RBrace", Pattern: `\}`},
		{Name: "LParen", Pattern: `\(`},
		{Name: "RParen", Pattern: `\)`},
		{Name: "LBracket", Pattern: `\[`},
		{Name: "RBracket", Pattern: `\]`},
	}
	symbols = append(symbols, extra...)
	symbols = append(symbols,
		Symbol{Name: "Newline", Pattern: `\n`, Ignorable: true},
		Symbol{Name: "Tab", Pattern: `\t`, Ignorable: true},
		Symbol{Name: "Space", Pattern: ` `, Ignorable: true},
		Symbol{Name: "Number", Pattern: `\d+`},
		Symbol{Name: "Identifier", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
		Symbol{Name: "Error", Pattern: `.`},
	)
	return Build("host", symbols)
}
