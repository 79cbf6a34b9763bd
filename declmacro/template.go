// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains DeclarativeTemplate: a named, ordered list of (parameter, body)
// branches, and the substitution+re-expansion step Apply performs when a
// branch matches a call site.
package declmacro

import (
	"fmt"
	"strings"

	"macten/token"
)

// Branch pairs one signature with the token body to emit when it matches.
type Branch struct {
	Param *Parameter
	Body  []token.Token
}

// Template is one "defmacten_dec Name { ... }" definition: its name and its
// ordered branch list, tried in declaration order.
type Template struct {
	Name     string
	Branches []Branch
}

// Reexpander is the single method Template.Apply needs from the top-level
// expansion loop. It is declared here, not imported from the expander
// package, so declmacro and expander can depend on each other's types
// without an import cycle: expander implements this interface structurally.
type Reexpander interface {
	ApplyMacroRules(target *token.Stream, source *token.View) error
}

// Match tries each branch's parameter against view in declaration order and
// returns the index of the first one that fits, or ok=false if none do.
func (t *Template) Match(view *token.View) (int, bool) {
	for i, b := range t.Branches {
		if b.Param.Match(view) {
			return i, true
		}
	}
	return 0, false
}

// MapArgs binds the arguments for the branch at index against view.
func (t *Template) MapArgs(index int, view *token.View) (map[string]string, bool) {
	if index < 0 || index >= len(t.Branches) {
		return nil, false
	}
	return t.Branches[index].Param.MapArgs(view)
}

// Apply substitutes args into the branch at index's body, forming a
// temporary token stream, then re-expands that whole temporary stream
// (rather than splicing only the nested macro calls it happens to contain)
// through env before appending the result to target. This is the "most
// recent draft" semantics: a substitution pass followed by one unconditional
// re-expansion pass over everything substitution produced, so a macro whose
// body text happens to form a further macro call after substitution still
// expands correctly, and no special case is needed to detect that it does.
func (t *Template) Apply(env Reexpander, index int, target *token.Stream, args map[string]string) error {
	if index < 0 || index >= len(t.Branches) {
		return fmt.Errorf("declmacro: branch index %d out of range for %q", index, t.Name)
	}
	branch := t.Branches[index]

	var temp token.Stream
	for _, tok := range branch.Body {
		if tok.Kind == metaKind("Dollar") {
			text, ok := args[tok.Lexeme]
			if !ok {
				return fmt.Errorf("declmacro: %q has no binding for $%s in %q", tok.Lexeme, tok.Lexeme, t.Name)
			}
			appendRendered(&temp, text, tok.Line, tok.Source)
			continue
		}
		temp.PushBack(tok)
	}

	return env.ApplyMacroRules(target, temp.View())
}

// appendRendered splits pre-rendered argument text on whitespace and commas
// into Identifier/Number/Comma tokens so a re-expansion pass sees structured
// tokens rather than one opaque blob; this matters when an argument's text
// is itself a further macro call the re-expansion pass must recognize.
func appendRendered(s *token.Stream, text string, line int, source string) {
	fields := splitArgumentText(text)
	for _, f := range fields {
		if f == "," {
			s.PushBack(token.Token{Kind: metaKind("Comma"), Lexeme: ",", Line: line, Source: source})
			continue
		}
		k := token.KindIdentifier
		if isNumeric(f) {
			k = token.KindNumber
		} else if sym, ok := symbolKind(f); ok {
			k = sym
		}
		s.PushBack(token.Token{Kind: k, Lexeme: f, Line: line, Source: source})
	}
}

func symbolKind(lexeme string) (token.Kind, bool) {
	switch lexeme {
	case "(":
		return metaKind("LParen"), true
	case ")":
		return metaKind("RParen"), true
	case "[":
		return metaKind("LBracket"), true
	case "]":
		return metaKind("RBracket"), true
	case "!":
		return metaKind("Bang"), true
	}
	return 0, false
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// splitArgumentText tokenizes rendered argument text on whitespace while
// keeping call-site punctuation (commas, parens, brackets, bang) as their
// own fields, so appendRendered can classify each field independently.
func splitArgumentText(text string) []string {
	var fields []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for _, r := range text {
		switch r {
		case ' ', '\t', '\n':
			flush()
		case ',', '(', ')', '[', ']', '!':
			flush()
			fields = append(fields, string(r))
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return fields
}
