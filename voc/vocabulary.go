// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the token-class vocabulary used to configure a Lexer: an ordered
// list of named patterns, built on participle's simple lexer the same way
// the scar dslLexer was, generalized so the engine can build more than one
// vocabulary (meta and host) from the same declaration shape.
package voc

import (
	plexer "github.com/alecthomas/participle/v2/lexer"

	"macten/token"
)

// Symbol declares one named token class: its regular-expression pattern,
// and whether it classifies as whitespace/comment noise the engine keeps as
// first-class tokens rather than discarding (Ignorable is informational
// only — it never causes a token to be dropped).
type Symbol struct {
	Name      string
	Pattern   string
	Ignorable bool
}

// Vocabulary is a compiled, ordered token-class declaration list, ready to
// drive a Lexer.
type Vocabulary struct {
	Name       string
	symbols    []Symbol
	kindByName map[string]token.Kind
	def        *plexer.StatefulDefinition
}

// Build compiles an ordered symbol list into a Vocabulary. Symbol order
// matters the same way it does in participle.MustSimple: earlier rules are
// tried first, so more specific patterns (keywords) must precede more
// general ones (identifiers).
func Build(name string, symbols []Symbol) *Vocabulary {
	rules := make([]plexer.SimpleRule, len(symbols))
	kindByName := make(map[string]token.Kind, len(symbols))
	for i, s := range symbols {
		rules[i] = plexer.SimpleRule{Name: s.Name, Pattern: s.Pattern}
		kindByName[s.Name] = kindFor(s.Name, i)
	}
	return &Vocabulary{
		Name:       name,
		symbols:    symbols,
		kindByName: kindByName,
		def:        plexer.MustSimple(rules),
	}
}

// wellKnown assigns a fixed Kind to every structural symbol name the meta
// and host vocabularies share, so declarative macro matching (which is
// written once against the meta vocabulary's Kind values) gets the same
// Kind back no matter which of the two vocabularies — or a Host extended
// with caller-supplied symbols — actually produced the token. Only names
// outside this table are assigned a Kind dynamically from their
// declaration position.
var wellKnown = map[string]token.Kind{
	"Number":         token.KindNumber,
	"Identifier":     token.KindIdentifier,
	"Error":          token.KindError,
	"Comment":        100,
	"DefDeclarative": 101,
	"DefProcedural":  102,
	"Arrow":          103,
	"Ellipsis":       104,
	"Dollar":         105,
	"Star":           106,
	"Bang":           107,
	"Pipe":           108,
	"Underscore":     109,
	"Comma":          110,
	"LBrace":         111,
	"RBrace":         112,
	"LParen":         113,
	"RParen":         114,
	"LBracket":       115,
	"RBracket":       116,
	"Newline":        117,
	"Tab":             118,
	"Space":           119,
}

// kindFor maps a symbol name to its Kind: a well-known structural name
// always maps to its fixed Kind regardless of where it sits in the
// vocabulary; any other name gets a Kind derived from its declaration
// index, offset clear of the well-known range.
func kindFor(name string, index int) token.Kind {
	if k, ok := wellKnown[name]; ok {
		return k
	}
	return token.Kind(1000 + index)
}

// Definition returns the compiled participle lexer definition backing this
// vocabulary, for use by the lex package.
func (v *Vocabulary) Definition() *plexer.StatefulDefinition { return v.def }

// KindOf returns the Kind assigned to the named symbol, and whether that
// name was declared in this vocabulary at all.
func (v *Vocabulary) KindOf(name string) (token.Kind, bool) {
	k, ok := v.kindByName[name]
	return k, ok
}

// NameOf returns the symbol name a given Kind was assigned to, if any.
func (v *Vocabulary) NameOf(k token.Kind) (string, bool) {
	for _, s := range v.symbols {
		if kindFor(s.Name, indexOf(v.symbols, s.Name)) == k {
			return s.Name, true
		}
	}
	return "", false
}

// Symbols returns the symbol declarations in vocabulary order.
func (v *Vocabulary) Symbols() []Symbol { return v.symbols }

func indexOf(symbols []Symbol, name string) int {
	for i, s := range symbols {
		if s.Name == name {
			return i
		}
	}
	return -1
}
