// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains DeclarativeMacroParameter: a pattern signature a macro call-site
// must match, and the argument map it produces when it does.
package declmacro

import (
	"strings"

	"macten/token"
	"macten/voc"
)

// Mode classifies how a parameter's trailing portion binds arguments.
type Mode int

const (
	// Empty means the signature takes no arguments at all.
	Empty Mode = iota
	// Normal means every argument is bound one-to-one by name.
	Normal
	// Variadic means the signature ends in a $(...)* group: every
	// remaining argument, one per application of the template, is bound
	// under the group's container name.
	Variadic
)

// Parameter is one branch signature: a pattern of literal tokens and
// "$name" placeholders, parsed once from a meta-vocabulary token view.
type Parameter struct {
	Mode                  Mode
	Pattern               []token.Token // literal tokens and Dollar/Identifier pairs, as written
	ArgNames              []string      // names bound by non-variadic $placeholders, in order
	VariadicContainerName string        // the name bound by the $ placeholder inside the $(...) group
	VariadicPattern       []token.Token // the pattern inside $( ... ), replayed once per repetition
	VariadicDelimiter     *token.Token  // the literal token written between the group and its "*", if any
}

// Parse reads a parameter signature from view (positioned at the first
// token of the signature, stopping at RParen/Arrow) and returns the parsed
// Parameter.
func Parse(view *token.View) *Parameter {
	p := &Parameter{Mode: Empty}
	for !view.IsAtEnd(0) && !view.Match(metaKind("RParen"), metaKind("Arrow")) {
		tok := view.Peek(0)
		if tok.Kind == metaKind("Dollar") {
			view.Pop()
			if view.Match(metaKind("LParen")) {
				p.Mode = Variadic
				group, _ := view.Between(metaKind("LParen"), metaKind("RParen"))
				p.VariadicPattern = scanPatternTokens(group)
				for _, t := range p.VariadicPattern {
					if t.Kind == metaKind("Dollar") {
						p.VariadicContainerName = t.Lexeme
						break
					}
				}
				// Between the group's closing paren and its repetition
				// marker "*" a caller may write the delimiter the
				// repeated elements are written with, e.g. "$( $x ),*".
				skipSpacing(view)
				if !view.Match(metaKind("Star")) && !view.IsAtEnd(0) {
					d := view.Pop()
					p.VariadicDelimiter = &d
					skipSpacing(view)
				}
				view.Consume(metaKind("Star"))
				continue
			}
			if view.Match(metaKind("Identifier")) {
				name := view.Pop().Lexeme
				p.ArgNames = append(p.ArgNames, name)
				p.Pattern = append(p.Pattern, token.Token{Kind: metaKind("Dollar"), Lexeme: name})
				if p.Mode == Empty {
					p.Mode = Normal
				}
				continue
			}
		}
		if view.Match(metaKind("Space"), metaKind("Tab"), metaKind("Newline")) {
			view.Pop()
			continue
		}
		p.Pattern = append(p.Pattern, view.Pop())
	}
	return p
}

// scanPatternTokens reads every token of view into a pattern, collapsing
// each "$name" pair into a single Dollar-kind placeholder token the way
// Parse's top-level loop does, so a $(...) group's body can be replayed by
// the same matchOn/captureArgument machinery as a plain signature.
func scanPatternTokens(view *token.View) []token.Token {
	var out []token.Token
	for !view.IsAtEnd(0) {
		tok := view.Peek(0)
		if tok.Kind == metaKind("Dollar") {
			view.Pop()
			if view.Match(metaKind("Identifier")) {
				name := view.Pop().Lexeme
				out = append(out, token.Token{Kind: metaKind("Dollar"), Lexeme: name})
				continue
			}
			out = append(out, tok)
			continue
		}
		if view.Match(metaKind("Space"), metaKind("Tab"), metaKind("Newline")) {
			view.Pop()
			continue
		}
		out = append(out, view.Pop())
	}
	return out
}

// placeholder marks a Pattern entry produced from "$name": by construction
// its Kind is always the meta vocabulary's Dollar kind and its Lexeme holds
// the bound name.
func (p *Parameter) isPlaceholder(tok token.Token) bool {
	return tok.Kind == metaKind("Dollar")
}

// metaVocabulary is the single vocabulary every declarative pattern is
// parsed and matched under; declmacro never constructs its own vocabulary
// so that signature literals and call-site arguments always compare under
// the same symbol table.
var metaVocabulary = voc.Meta()

func metaKind(name string) token.Kind {
	k, _ := metaVocabulary.KindOf(name)
	return k
}

// IsParameterless reports whether this parameter takes no arguments.
func (p *Parameter) IsParameterless() bool { return p.Mode == Empty }

// Match reports whether view, positioned at the start of a macro call's
// argument list (already lexed under the meta vocabulary), satisfies this
// parameter's shape, without binding any values. It does not consume view.
func (p *Parameter) Match(view *token.View) bool {
	probe := token.NewView(view.Rest())
	return p.matchOn(probe)
}

func (p *Parameter) matchOn(probe *token.View) bool {
	switch p.Mode {
	case Empty:
		skipSpacing(probe)
		return probe.IsAtEnd(0)
	case Normal:
		for _, pt := range p.Pattern {
			skipSpacing(probe)
			if p.isPlaceholder(pt) {
				if !consumeArgument(probe) {
					return false
				}
				continue
			}
			cur := probe.Peek(0)
			if !literalMatches(pt, cur) {
				return false
			}
			probe.Pop()
		}
		skipSpacing(probe)
		return probe.IsAtEnd(0)
	case Variadic:
		return p.matchVariadicOn(probe)
	default:
		return false
	}
}

// MatchVariadic is Match specialized for Mode == Variadic, exported so
// callers that already know the mode can skip the dispatch.
func (p *Parameter) MatchVariadic(view *token.View) bool {
	probe := token.NewView(view.Rest())
	return p.matchVariadicOn(probe)
}

// matchVariadicOn requires at least one repetition of VariadicPattern, then
// replays it for as long as input remains, separated by VariadicDelimiter
// when one was captured.
func (p *Parameter) matchVariadicOn(probe *token.View) bool {
	if len(p.VariadicPattern) == 0 {
		return false
	}
	skipSpacing(probe)
	if probe.IsAtEnd(0) {
		return false
	}
	for !probe.IsAtEnd(0) {
		if !p.matchVariadicPatternOnce(probe) {
			return false
		}
		skipSpacing(probe)
		p.consumeDelimiter(probe)
		skipSpacing(probe)
	}
	return true
}

// matchVariadicPatternOnce matches one repetition of VariadicPattern
// against probe without binding anything.
func (p *Parameter) matchVariadicPatternOnce(probe *token.View) bool {
	for _, pt := range p.VariadicPattern {
		skipSpacing(probe)
		if p.isPlaceholder(pt) {
			if !consumeArgument(probe, p.delimiterStops()...) {
				return false
			}
			continue
		}
		cur := probe.Peek(0)
		if !literalMatches(pt, cur) {
			return false
		}
		probe.Pop()
	}
	return true
}

// replayVariadicPatternOnce is matchVariadicPatternOnce's binding
// counterpart: it captures the text bound by VariadicPattern's single
// placeholder instead of only checking the shape matches.
func (p *Parameter) replayVariadicPatternOnce(probe *token.View) (string, bool) {
	text := ""
	bound := false
	for _, pt := range p.VariadicPattern {
		skipSpacing(probe)
		if p.isPlaceholder(pt) {
			t, ok := captureArgument(probe, p.delimiterStops()...)
			if !ok {
				return "", false
			}
			text = t
			bound = true
			continue
		}
		cur := probe.Peek(0)
		if !literalMatches(pt, cur) {
			return "", false
		}
		probe.Pop()
	}
	if !bound {
		return "", false
	}
	return text, true
}

// delimiterStops returns VariadicDelimiter's Kind as a one-element stop-kind
// slice, or no elements at all if no delimiter was captured.
func (p *Parameter) delimiterStops() []token.Kind {
	if p.VariadicDelimiter == nil {
		return nil
	}
	return []token.Kind{p.VariadicDelimiter.Kind}
}

// consumeDelimiter pops one occurrence of VariadicDelimiter if it was
// captured and is present; it is a no-op otherwise.
func (p *Parameter) consumeDelimiter(probe *token.View) {
	if p.VariadicDelimiter == nil {
		return
	}
	probe.Consume(p.VariadicDelimiter.Kind)
}

// literalMatches compares a pattern literal token to an incoming token
// using lexical equality for Identifier/Number, and kind equality for
// everything else (so two different identifiers never falsely match a
// fixed keyword slot).
func literalMatches(pattern, incoming token.Token) bool {
	if pattern.Kind == token.KindIdentifier || pattern.Kind == token.KindNumber {
		return pattern.LexicallyEqual(incoming)
	}
	return pattern.Kind == incoming.Kind
}

// consumeArgument advances probe past one balanced argument: either a
// parenthesized group (kept as one argument) or a single token run up to
// the next Comma/RParen/stopKind/end.
func consumeArgument(probe *token.View, stopKinds ...token.Kind) bool {
	if probe.IsAtEnd(0) {
		return false
	}
	if probe.Match(metaKind("LParen")) {
		_, ok := probe.Between(metaKind("LParen"), metaKind("RParen"))
		return ok
	}
	stops := append([]token.Kind{metaKind("Comma"), metaKind("RParen")}, stopKinds...)
	consumed := false
	for !probe.IsAtEnd(0) && !probe.Match(stops...) {
		probe.Pop()
		consumed = true
	}
	return consumed
}

func skipSpacing(v *token.View) {
	v.Skip(metaKind("Space"), metaKind("Tab"), metaKind("Newline"))
}

// MapArgs walks view the same way Match does, but this time binds every
// placeholder and the variadic group's text into a name->text map. It
// returns ok=false on an arity mismatch (the same condition Match would
// have rejected).
func (p *Parameter) MapArgs(view *token.View) (map[string]string, bool) {
	probe := token.NewView(view.Rest())
	args := map[string]string{}
	switch p.Mode {
	case Empty:
		skipSpacing(probe)
		if !probe.IsAtEnd(0) {
			return nil, false
		}
		return args, true
	case Normal:
		for _, pt := range p.Pattern {
			skipSpacing(probe)
			if p.isPlaceholder(pt) {
				text, ok := captureArgument(probe)
				if !ok {
					return nil, false
				}
				args[pt.Lexeme] = text
				continue
			}
			cur := probe.Peek(0)
			if !literalMatches(pt, cur) {
				return nil, false
			}
			probe.Pop()
		}
		skipSpacing(probe)
		if !probe.IsAtEnd(0) {
			return nil, false
		}
		return args, true
	case Variadic:
		if p.VariadicContainerName == "" || len(p.VariadicPattern) == 0 {
			return nil, false
		}
		var items []string
		skipSpacing(probe)
		if probe.IsAtEnd(0) {
			return nil, false
		}
		for !probe.IsAtEnd(0) {
			text, ok := p.replayVariadicPatternOnce(probe)
			if !ok {
				return nil, false
			}
			items = append(items, text)
			skipSpacing(probe)
			p.consumeDelimiter(probe)
			skipSpacing(probe)
		}
		args[p.VariadicContainerName] = joinItems(items, p.delimiterText())
		return args, true
	default:
		return nil, false
	}
}

// delimiterText returns the literal delimiter written between repeated
// elements, or a comma if the signature captured none.
func (p *Parameter) delimiterText() string {
	if p.VariadicDelimiter == nil {
		return ","
	}
	return p.VariadicDelimiter.Lexeme
}

func captureArgument(probe *token.View, stopKinds ...token.Kind) (string, bool) {
	if probe.IsAtEnd(0) {
		return "", false
	}
	if probe.Match(metaKind("LParen")) {
		inner, ok := probe.Between(metaKind("LParen"), metaKind("RParen"))
		if !ok {
			return "", false
		}
		return renderTokens(inner.Rest()), true
	}
	stops := append([]token.Kind{metaKind("Comma"), metaKind("RParen")}, stopKinds...)
	var toks []token.Token
	for !probe.IsAtEnd(0) && !probe.Match(stops...) {
		toks = append(toks, probe.Pop())
	}
	if len(toks) == 0 {
		return "", false
	}
	return renderTokens(toks), true
}

// renderTokens concatenates toks' lexemes verbatim, exactly as they were
// written at the call site. Whitespace tokens are ordinary tokens here (the
// lexer never filters them), so no space is inserted or dropped beyond
// what the source text itself contained.
func renderTokens(toks []token.Token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.Lexeme)
	}
	return b.String()
}

func joinItems(items []string, delimiter string) string {
	return strings.Join(items, delimiter)
}
