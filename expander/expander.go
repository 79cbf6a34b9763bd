// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains Expander: the top-level recursive expansion loop. It walks a
// token view copying ordinary tokens straight through, and on recognizing a
// "name![args]" call site, dispatches to the matching declarative template
// or to a procedural macro's runner.
package expander

import (
	"strings"

	"macten/declmacro"
	"macten/diag"
	"macten/procmacro"
	"macten/token"
	"macten/voc"
)

// ProceduralRunner executes a procedural macro call end to end (generation
// plus host bridge invocation) and returns the host-vocabulary text to
// splice in its place. A nil ProceduralRunner leaves procedural call sites
// untouched, for passes (such as a dry Generate) that only need the
// declarative layer expanded and the procedural generator/bridge run
// separately afterward.
type ProceduralRunner interface {
	Run(profile *procmacro.Profile, argsText string) (string, error)
}

// Expander owns the registries populated by a Definition Parser and applies
// them to a token stream.
type Expander struct {
	Registries *Registries
	Vocabulary *voc.Vocabulary // the vocabulary argsView/target tokens are drawn from
	Runner     ProceduralRunner
	MaxDepth   int

	depth int
}

// New builds an Expander over reg, lexing call-site arguments under v.
// maxDepth <= 0 defaults to 256.
func New(reg *Registries, v *voc.Vocabulary, maxDepth int) *Expander {
	if maxDepth <= 0 {
		maxDepth = 256
	}
	return &Expander{Registries: reg, Vocabulary: v, MaxDepth: maxDepth}
}

func (e *Expander) kind(name string) token.Kind {
	k, _ := e.Vocabulary.KindOf(name)
	return k
}

// isMacroCall reports whether source, positioned at an Identifier, begins a
// "name![" call site this expander knows how to dispatch. name is the
// call's logical name after collapseIdentifier merges any Identifier/
// Underscore run a splitting vocabulary fragmented it into, and width is
// how many source tokens that name spans (so the caller pops exactly that
// many, not always one).
func (e *Expander) isMacroCall(source *token.View) (name string, width int, ok bool) {
	if source.Peek(0).Kind != token.KindIdentifier {
		return "", 0, false
	}
	name, width = e.collapseIdentifier(source)
	if !e.Registries.HasMacro(name) {
		return "", 0, false
	}
	if source.Peek(width).Kind != e.kind("Bang") || source.Peek(width+1).Kind != e.kind("LBracket") {
		return "", 0, false
	}
	return name, width, true
}

// collapseIdentifier merges an Identifier token at source's current
// position with any immediately following
// "(Underscore Identifier | Underscore+)*" run into one logical name,
// returning the merged lexeme and how many tokens it spans. Vocabularies
// whose Identifier pattern already swallows embedded underscores (the
// built-in meta and host vocabularies) never produce the separate
// Underscore tokens this loop looks for, so it is a no-op for them; it only
// matters for a host vocabulary that splits identifiers on "_".
func (e *Expander) collapseIdentifier(source *token.View) (string, int) {
	var b strings.Builder
	b.WriteString(source.Peek(0).Lexeme)
	n := 1
	for source.Peek(n).Kind == e.kind("Underscore") {
		run := 0
		for source.Peek(n+run).Kind == e.kind("Underscore") {
			run++
		}
		b.WriteString(strings.Repeat("_", run))
		n += run
		if source.Peek(n).Kind == token.KindIdentifier {
			b.WriteString(source.Peek(n).Lexeme)
			n++
			continue
		}
		break
	}
	return b.String(), n
}

// ApplyMacroRules walks source, appending to target either a token verbatim
// or the result of expanding a recognized macro call, recursing through
// DeclarativeTemplate.Apply via the Reexpander seam. It enforces MaxDepth so
// a macro whose own body keeps calling itself cannot recurse forever.
func (e *Expander) ApplyMacroRules(target *token.Stream, source *token.View) error {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > e.MaxDepth {
		return diag.New(diag.RecursionLimit, source.Peek(0).Line, "exceeded max expansion depth of %d", e.MaxDepth)
	}

	for !source.IsAtEnd(0) {
		if name, width, ok := e.isMacroCall(source); ok {
			line := source.Peek(0).Line
			for i := 0; i < width; i++ {
				source.Pop() // collapsed identifier
			}
			source.Pop() // bang
			argsView, inScope := source.Between(e.kind("LBracket"), e.kind("RBracket"))
			if !inScope {
				return diag.New(diag.ParseError, line, "unterminated call to %q", name)
			}
			if err := e.matchAndExecuteMacro(target, name, argsView, line); err != nil {
				return err
			}
			// preserve exactly one trailing newline, then skip further
			// blank runs, matching the call-site tidy-up the expander
			// performs inline rather than deferring entirely to the
			// preprocessor's tidy pass.
			if source.Match(e.kind("Newline")) {
				target.PushBack(source.Pop())
			}
			source.Skip(e.kind("Space"), e.kind("Tab"))
			continue
		}
		target.PushBack(source.Pop())
	}
	return nil
}

func (e *Expander) matchAndExecuteMacro(target *token.Stream, name string, argsView *token.View, line int) error {
	if tmpl, ok := e.Registries.Declarative[name]; ok {
		return e.applyDeclarative(target, tmpl, argsView, line)
	}
	if prof, ok := e.Registries.Procedural[name]; ok {
		return e.applyProcedural(target, prof, argsView, line)
	}
	return diag.New(diag.ParseError, line, "call to undeclared macro %q", name)
}

func (e *Expander) applyDeclarative(target *token.Stream, tmpl *declmacro.Template, argsView *token.View, line int) error {
	index, ok := tmpl.Match(argsView)
	if !ok {
		return diag.New(diag.MatchFailure, line, "no branch of %q matches the given arguments", tmpl.Name)
	}
	args, ok := tmpl.MapArgs(index, argsView)
	if !ok {
		return diag.New(diag.ArityMismatch, line, "argument count mismatch calling %q", tmpl.Name)
	}
	if err := tmpl.Apply(e, index, target, args); err != nil {
		return diag.New(diag.SubstitutionError, line, "%v", err)
	}
	return nil
}

func (e *Expander) applyProcedural(target *token.Stream, prof *procmacro.Profile, argsView *token.View, line int) error {
	if e.Runner == nil {
		// No bridge attached: leave the call site exactly as it was so a
		// later procedural-generation-and-bridge pass can still find and
		// execute it.
		target.PushBack(token.Token{Kind: token.KindIdentifier, Lexeme: prof.Name, Line: line})
		target.PushBack(token.Token{Kind: e.kind("Bang"), Lexeme: "!", Line: line})
		target.PushBack(token.Token{Kind: e.kind("LBracket"), Lexeme: "[", Line: line})
		target.Append(argsView.Rest()...)
		target.PushBack(token.Token{Kind: e.kind("RBracket"), Lexeme: "]", Line: line})
		return nil
	}
	text, err := e.Runner.Run(prof, renderArgs(argsView.Rest()))
	if err != nil {
		return diag.New(diag.BridgeFailure, line, "%v", err)
	}
	target.PushBack(token.Token{Kind: token.KindRaw, Lexeme: text, Line: line})
	return nil
}

func renderArgs(toks []token.Token) string {
	s := ""
	for _, t := range toks {
		s += t.Lexeme
	}
	return s
}

var _ declmacro.Reexpander = (*Expander)(nil)
