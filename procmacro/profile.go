// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the data model for a procedural macro: a named grammar of rules,
// each a set of alternatives built from literal, ident, number and
// rule-reference symbols.
package procmacro

// SymbolKind classifies one element of an alternative.
type SymbolKind int

const (
	// Literal matches a single token whose lexeme equals Symbol.Text
	// exactly.
	Literal SymbolKind = iota
	// Ident matches any Identifier token.
	Ident
	// Number matches any Number token.
	Number
	// Ref matches by recursively invoking another rule of the same
	// profile, named by Symbol.Text.
	Ref
)

// Symbol is one element of an alternative sequence.
type Symbol struct {
	Kind SymbolKind
	Text string
}

// Alternative is one ordered sequence of symbols a rule may match.
type Alternative struct {
	Symbols []Symbol
}

// Rule is a named, ordered set of alternatives. Recursive is true when one
// of its alternatives references the rule's own name, computed once after
// parsing completes.
type Rule struct {
	Name         string
	Alternatives []Alternative
	Recursive    bool
}

// ComputeRecursive sets r.Recursive by scanning every alternative for a Ref
// symbol naming r itself.
func (r *Rule) ComputeRecursive() {
	for _, alt := range r.Alternatives {
		for _, sym := range alt.Symbols {
			if sym.Kind == Ref && sym.Text == r.Name {
				r.Recursive = true
				return
			}
		}
	}
}

// Profile is one "defmacten_proc Name { rule { alt | alt } ... }"
// definition: its name, its rules in declaration order, and which rule is
// the entry point (the last one declared, matching the original
// implementation's last_rule convention).
type Profile struct {
	Name     string
	Rules    []*Rule
	LastRule string
}

// CreateRule appends a new, empty rule named name and returns it, updating
// LastRule to track it as the profile's current entry point.
func (p *Profile) CreateRule(name string) *Rule {
	r := &Rule{Name: name}
	p.Rules = append(p.Rules, r)
	p.LastRule = name
	return r
}

// Rule looks up a rule by name.
func (p *Profile) Rule(name string) (*Rule, bool) {
	for _, r := range p.Rules {
		if r.Name == name {
			return r, true
		}
	}
	return nil, false
}
