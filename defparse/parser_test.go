package defparse

import (
	"testing"

	"macten/diag"
	"macten/lex"
	"macten/voc"
)

func TestParseDeclarativeDefinition(t *testing.T) {
	src := `defmacten_dec double {
	($x) => {
		$x plus $x
	}
}`
	s, err := lex.New(voc.Meta()).Lex("t", src)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	sink := &diag.Sink{}
	p := New(voc.Meta(), sink)
	reg := p.Parse(s.View())
	if !sink.Empty() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	tmpl, ok := reg.Declarative["double"]
	if !ok {
		t.Fatal("expected to find a 'double' declarative template")
	}
	if len(tmpl.Branches) != 1 {
		t.Fatalf("expected 1 branch, got %d", len(tmpl.Branches))
	}
	if len(tmpl.Branches[0].Param.ArgNames) != 1 || tmpl.Branches[0].Param.ArgNames[0] != "x" {
		t.Fatalf("unexpected arg names: %v", tmpl.Branches[0].Param.ArgNames)
	}
}

func TestParseProceduralDefinition(t *testing.T) {
	src := `defmacten_proc calc {
	term {
		number
	}
	sum {
		term plus sum | term
	}
}`
	s, err := lex.New(voc.Meta()).Lex("t", src)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	sink := &diag.Sink{}
	p := New(voc.Meta(), sink)
	reg := p.Parse(s.View())
	if !sink.Empty() {
		t.Fatalf("unexpected diagnostics: %v", sink.All())
	}
	prof, ok := reg.Procedural["calc"]
	if !ok {
		t.Fatal("expected to find a 'calc' procedural profile")
	}
	if len(prof.Rules) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(prof.Rules))
	}
	sum, ok := prof.Rule("sum")
	if !ok {
		t.Fatal("expected a 'sum' rule")
	}
	if !sum.Recursive {
		t.Fatal("expected 'sum' to be detected as recursive")
	}
	if prof.LastRule != "sum" {
		t.Fatalf("expected LastRule to be 'sum', got %q", prof.LastRule)
	}
}

func TestMalformedDefinitionReportsDiagnosticAndRecovers(t *testing.T) {
	src := `defmacten_dec broken {
	bad stuff here
}
defmacten_dec ok {
	() => {
		fine
	}
}`
	s, err := lex.New(voc.Meta()).Lex("t", src)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	sink := &diag.Sink{}
	p := New(voc.Meta(), sink)
	reg := p.Parse(s.View())
	if sink.Empty() {
		t.Fatal("expected a diagnostic for the malformed branch")
	}
	if _, ok := reg.Declarative["ok"]; !ok {
		t.Fatal("expected parsing to recover and still find the second definition")
	}
}
