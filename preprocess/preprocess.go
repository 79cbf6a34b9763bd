// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the Preprocessor: strips macro definitions out of a source file
// and tidies up the call sites of macros it already knows about, leaving
// everything else untouched for the Expander to walk afterward.
package preprocess

import (
	"macten/expander"
	"macten/token"
	"macten/voc"
)

// Preprocessor removes defmacten_dec/defmacten_proc blocks from a token
// stream and collapses stray whitespace immediately inside a recognized
// call site's argument list.
type Preprocessor struct {
	vocabulary *voc.Vocabulary
	registries *expander.Registries
}

// New builds a Preprocessor reading source under v, consulting reg to
// decide which call sites are worth tidying.
func New(v *voc.Vocabulary, reg *expander.Registries) *Preprocessor {
	return &Preprocessor{vocabulary: v, registries: reg}
}

func (p *Preprocessor) kind(name string) token.Kind {
	k, _ := p.vocabulary.KindOf(name)
	return k
}

// SkipDefinition advances view past one defmacten_dec/defmacten_proc block:
// the keyword, the name, and the braced body (tracking nesting, so a brace
// inside a declarative branch's body doesn't end the skip early).
func (p *Preprocessor) SkipDefinition(view *token.View) {
	view.Pop() // defmacten_dec / defmacten_proc
	view.Skip(p.kind("Space"), p.kind("Tab"), p.kind("Newline"))
	view.Consume(token.KindIdentifier)
	view.Skip(p.kind("Space"), p.kind("Tab"), p.kind("Newline"))
	if view.Match(p.kind("LBrace")) {
		view.Between(p.kind("LBrace"), p.kind("RBrace"))
	}
}

// TidyCallSite copies a known macro's "name![args]" call site from view into
// target, collapsing runs of Space around commas and dropping Space
// immediately after '[' or before ']', while tracking bracket nesting so a
// nested call inside an argument is copied through untouched.
func (p *Preprocessor) TidyCallSite(view *token.View, target *token.Stream) {
	target.PushBack(view.Pop()) // name
	target.PushBack(view.Pop()) // !
	depth := 0
	for !view.IsAtEnd(0) {
		tok := view.Peek(0)
		switch tok.Kind {
		case p.kind("LBracket"):
			depth++
			target.PushBack(view.Pop())
			view.Skip(p.kind("Space"), p.kind("Tab"))
			continue
		case p.kind("RBracket"):
			depth--
			target.PushBack(view.Pop())
			if depth == 0 {
				return
			}
			continue
		case p.kind("Comma"):
			target.PushBack(view.Pop())
			view.Skip(p.kind("Space"), p.kind("Tab"))
			if !view.Match(p.kind("RBracket")) {
				target.PushBack(token.Token{Kind: p.kind("Space"), Lexeme: " ", Line: tok.Line})
			}
			continue
		case p.kind("Space"):
			// collapse a run of spaces down to a single one, unless it
			// directly precedes ']' or ',' — trailing/leading space around
			// those is dropped entirely.
			view.Skip(p.kind("Space"))
			if !view.Match(p.kind("RBracket"), p.kind("Comma")) {
				target.PushBack(token.Token{Kind: tok.Kind, Lexeme: " ", Line: tok.Line})
			}
			continue
		default:
			target.PushBack(view.Pop())
		}
	}
}

// Process walks view end to end: on a definition keyword it calls
// SkipDefinition, on a known macro's call site it calls TidyCallSite, and
// everything else is copied through verbatim. It returns the cleaned
// stream.
func (p *Preprocessor) Process(view *token.View) *token.Stream {
	var target token.Stream
	for !view.IsAtEnd(0) {
		switch {
		case view.Match(p.kind("DefDeclarative"), p.kind("DefProcedural")):
			p.SkipDefinition(view)
		case p.isKnownCallSite(view):
			p.TidyCallSite(view, &target)
		default:
			target.PushBack(view.Pop())
		}
	}
	return &target
}

func (p *Preprocessor) isKnownCallSite(view *token.View) bool {
	cur := view.Peek(0)
	if cur.Kind != token.KindIdentifier || !p.registries.HasMacro(cur.Lexeme) {
		return false
	}
	return view.Peek(1).Kind == p.kind("Bang") && view.Peek(2).Kind == p.kind("LBracket")
}
