// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the definition parser: a recursive descent over a meta-vocabulary
// token view that recognizes "defmacten_dec"/"defmacten_proc" blocks and
// populates an expander.Registries, using advance/check/match/consume-style
// helpers over a token.View cursor instead of the line-oriented helpers the
// scar compiler's BaseParser used.
package defparse

import (
	"macten/declmacro"
	"macten/diag"
	"macten/expander"
	"macten/procmacro"
	"macten/token"
	"macten/voc"
)

// Parser recognizes macro definition blocks and reports failures to a
// diag.Sink rather than aborting the whole pass, so one malformed
// definition doesn't prevent the rest of the file from being scanned.
type Parser struct {
	vocabulary *voc.Vocabulary
	sink       *diag.Sink
}

// New builds a Parser reading definitions under v, reporting failures to
// sink.
func New(v *voc.Vocabulary, sink *diag.Sink) *Parser {
	return &Parser{vocabulary: v, sink: sink}
}

func (p *Parser) kind(name string) token.Kind {
	k, _ := p.vocabulary.KindOf(name)
	return k
}

func (p *Parser) skipSpacing(view *token.View) {
	view.Skip(p.kind("Space"), p.kind("Tab"), p.kind("Newline"))
}

func (p *Parser) report(kind diag.Kind, line int, format string, args ...any) {
	p.sink.Add(diag.New(kind, line, format, args...))
}

// Parse scans view end to end, collecting every declarative and procedural
// definition it finds into a fresh Registries. Tokens that are not part of
// a recognized definition are skipped one at a time (this pass only cares
// about definitions; the Preprocessor is responsible for deciding what the
// rest of the file looks like once definitions are stripped).
func (p *Parser) Parse(view *token.View) *expander.Registries {
	reg := expander.NewRegistries()
	for !view.IsAtEnd(0) {
		switch {
		case view.Match(p.kind("DefDeclarative")):
			p.declarativeDefinition(view, reg)
		case view.Match(p.kind("DefProcedural")):
			p.proceduralDefinition(view, reg)
		default:
			view.Pop()
		}
	}
	return reg
}

// declarativeDefinition parses "defmacten_dec Name { (sig) => { body } ... }".
func (p *Parser) declarativeDefinition(view *token.View, reg *expander.Registries) {
	line := view.Peek(0).Line
	view.Pop() // defmacten_dec
	p.skipSpacing(view)
	nameTok, ok := view.Consume(token.KindIdentifier)
	if !ok {
		p.report(diag.ParseError, line, "expected a name after defmacten_dec")
		view.SkipUntil(p.kind("RBrace"))
		view.Consume(p.kind("RBrace"))
		return
	}
	p.skipSpacing(view)
	if _, ok := view.Consume(p.kind("LBrace")); !ok {
		p.report(diag.ParseError, nameTok.Line, "expected '{' to open the body of %q", nameTok.Lexeme)
		return
	}

	tmpl := &declmacro.Template{Name: nameTok.Lexeme}
	for {
		p.skipSpacing(view)
		view.Consume(p.kind("Pipe"))
		p.skipSpacing(view)
		if view.IsAtEnd(0) || view.Match(p.kind("RBrace")) {
			break
		}
		if !view.Match(p.kind("LParen")) {
			p.report(diag.ParseError, view.Peek(0).Line, "expected '(' to begin a branch signature in %q", nameTok.Lexeme)
			view.SkipUntil(p.kind("RBrace"))
			break
		}
		sigView, ok := view.Between(p.kind("LParen"), p.kind("RParen"))
		if !ok {
			p.report(diag.ParseError, view.Peek(0).Line, "unterminated branch signature in %q", nameTok.Lexeme)
			break
		}
		param := declmacro.Parse(sigView)

		p.skipSpacing(view)
		if _, ok := view.Consume(p.kind("Arrow")); !ok {
			p.report(diag.ParseError, view.Peek(0).Line, "expected '=>' after the signature in %q", nameTok.Lexeme)
			view.SkipUntil(p.kind("RBrace"))
			break
		}
		p.skipSpacing(view)
		if !view.Match(p.kind("LBrace")) {
			p.report(diag.ParseError, view.Peek(0).Line, "expected '{' to begin the body of a branch in %q", nameTok.Lexeme)
			view.SkipUntil(p.kind("RBrace"))
			break
		}
		bodyView, ok := view.Between(p.kind("LBrace"), p.kind("RBrace"))
		if !ok {
			p.report(diag.ParseError, view.Peek(0).Line, "unterminated branch body in %q", nameTok.Lexeme)
			break
		}
		body := stripBranchIndent(bodyView.Rest(), p.kind("Newline"), p.kind("Space"), p.kind("Tab"))
		body = collapsePlaceholders(body, p.kind("Dollar"))
		tmpl.Branches = append(tmpl.Branches, declmacro.Branch{Param: param, Body: body})
	}
	view.Consume(p.kind("RBrace"))
	reg.AddDeclarative(tmpl)
}

// stripBranchIndent removes up to two leading Space/Tab tokens following
// every Newline in a branch body, and trims one trailing Newline — the same
// cosmetic indentation the reference implementation's definition parser
// strips so a body written indented inside its enclosing braces doesn't
// reproduce that indentation in every expansion.
func stripBranchIndent(body []token.Token, newline, space, tab token.Kind) []token.Token {
	var out []token.Token
	i := 0
	for i < len(body) {
		out = append(out, body[i])
		if body[i].Kind == newline {
			i++
			stripped := 0
			for i < len(body) && stripped < 2 && (body[i].Kind == space || body[i].Kind == tab) {
				i++
				stripped++
			}
			continue
		}
		i++
	}
	if len(out) > 0 && out[len(out)-1].Kind == newline {
		out = out[:len(out)-1]
	}
	return out
}

// collapsePlaceholders merges every "$name" pair in a raw branch body into a
// single synthetic token of kind dollarKind carrying the name as its
// lexeme, the same shape declmacro.Parse builds for a signature's
// placeholders — Template.Apply substitutes by reading the name straight
// off that token, so the body must carry it the same way the pattern does.
func collapsePlaceholders(body []token.Token, dollarKind token.Kind) []token.Token {
	var out []token.Token
	for i := 0; i < len(body); i++ {
		tok := body[i]
		if tok.Kind == dollarKind && i+1 < len(body) && body[i+1].Kind == token.KindIdentifier {
			out = append(out, token.Token{Kind: dollarKind, Lexeme: body[i+1].Lexeme, Line: tok.Line, Source: tok.Source})
			i++
			continue
		}
		out = append(out, tok)
	}
	return out
}

// proceduralDefinition parses "defmacten_proc Name { rule { alt | alt } ... }".
func (p *Parser) proceduralDefinition(view *token.View, reg *expander.Registries) {
	line := view.Peek(0).Line
	view.Pop() // defmacten_proc
	p.skipSpacing(view)
	nameTok, ok := view.Consume(token.KindIdentifier)
	if !ok {
		p.report(diag.ParseError, line, "expected a name after defmacten_proc")
		return
	}
	p.skipSpacing(view)
	if _, ok := view.Consume(p.kind("LBrace")); !ok {
		p.report(diag.ParseError, nameTok.Line, "expected '{' to open the body of %q", nameTok.Lexeme)
		return
	}

	prof := &procmacro.Profile{Name: nameTok.Lexeme}
	for {
		p.skipSpacing(view)
		if view.IsAtEnd(0) || view.Match(p.kind("RBrace")) {
			break
		}
		ruleNameTok, ok := view.Consume(token.KindIdentifier)
		if !ok {
			p.report(diag.ParseError, view.Peek(0).Line, "expected a rule name in %q", nameTok.Lexeme)
			view.SkipUntil(p.kind("RBrace"))
			break
		}
		p.skipSpacing(view)
		if !view.Match(p.kind("LBrace")) {
			p.report(diag.ParseError, ruleNameTok.Line, "expected '{' to begin rule %q", ruleNameTok.Lexeme)
			view.SkipUntil(p.kind("RBrace"))
			break
		}
		ruleBody, ok := view.Between(p.kind("LBrace"), p.kind("RBrace"))
		if !ok {
			p.report(diag.ParseError, ruleNameTok.Line, "unterminated rule body %q", ruleNameTok.Lexeme)
			break
		}
		rule := prof.CreateRule(ruleNameTok.Lexeme)
		rule.Alternatives = p.parseAlternatives(ruleBody)
	}
	view.Consume(p.kind("RBrace"))
	for _, r := range prof.Rules {
		r.ComputeRecursive()
	}
	reg.AddProcedural(prof)
}

// parseAlternatives splits a rule body on top-level Pipe tokens and reads
// each side as an ordered sequence of symbols: the literal keywords "ident"
// and "number" bind the two built-in terminal classes, any other
// Identifier is a reference to another rule (possibly itself, possibly
// forward-declared), and any other token kind matches literally by its own
// lexeme.
func (p *Parser) parseAlternatives(view *token.View) []procmacro.Alternative {
	var alts []procmacro.Alternative
	var cur procmacro.Alternative
	for !view.IsAtEnd(0) {
		p.skipSpacing(view)
		if view.IsAtEnd(0) {
			break
		}
		if _, ok := view.Consume(p.kind("Pipe")); ok {
			alts = append(alts, cur)
			cur = procmacro.Alternative{}
			continue
		}
		tok := view.Pop()
		switch {
		case tok.Kind == token.KindIdentifier && tok.Lexeme == "ident":
			cur.Symbols = append(cur.Symbols, procmacro.Symbol{Kind: procmacro.Ident})
		case tok.Kind == token.KindIdentifier && tok.Lexeme == "number":
			cur.Symbols = append(cur.Symbols, procmacro.Symbol{Kind: procmacro.Number})
		case tok.Kind == token.KindIdentifier:
			cur.Symbols = append(cur.Symbols, procmacro.Symbol{Kind: procmacro.Ref, Text: tok.Lexeme})
		default:
			cur.Symbols = append(cur.Symbols, procmacro.Symbol{Kind: procmacro.Literal, Text: tok.Lexeme})
		}
	}
	alts = append(alts, cur)
	return alts
}
