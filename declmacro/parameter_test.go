package declmacro

import (
	"testing"

	"macten/lex"
	"macten/token"
	"macten/voc"
)

func lexMeta(t *testing.T, src string) *token.View {
	t.Helper()
	s, err := lex.New(voc.Meta()).Lex("t", src)
	if err != nil {
		t.Fatalf("lex %q: %v", src, err)
	}
	return s.View()
}

func TestParseEmptyParameter(t *testing.T) {
	v := lexMeta(t, ")")
	p := Parse(v)
	if !p.IsParameterless() {
		t.Fatalf("expected an empty signature, got mode %v", p.Mode)
	}
}

func TestParseNormalParameterAndMatch(t *testing.T) {
	sig := lexMeta(t, "$a, $b)")
	p := Parse(sig)
	if p.Mode != Normal {
		t.Fatalf("expected Normal mode, got %v", p.Mode)
	}
	if len(p.ArgNames) != 2 || p.ArgNames[0] != "a" || p.ArgNames[1] != "b" {
		t.Fatalf("unexpected arg names: %v", p.ArgNames)
	}

	call := lexMeta(t, "1, foo")
	if !p.Match(call) {
		t.Fatal("expected the call site to match the (a,b) signature")
	}
	args, ok := p.MapArgs(call)
	if !ok {
		t.Fatal("expected MapArgs to succeed")
	}
	if args["a"] != "1" || args["b"] != "foo" {
		t.Fatalf("unexpected bindings: %v", args)
	}
}

func TestNormalParameterArityMismatch(t *testing.T) {
	sig := lexMeta(t, "$a)")
	p := Parse(sig)
	call := lexMeta(t, "1, 2")
	if p.Match(call) {
		t.Fatal("expected arity mismatch to fail Match")
	}
}

func TestVariadicParameterMatchesEachElement(t *testing.T) {
	// The container name comes from the $ inside the group, not a name
	// trailing the repetition marker; ",*" between the group and the
	// marker is the delimiter repeated elements are written with.
	sig := lexMeta(t, "$( $x ),*)")
	p := Parse(sig)
	if p.Mode != Variadic {
		t.Fatalf("expected Variadic mode, got %v", p.Mode)
	}
	if p.VariadicContainerName != "x" {
		t.Fatalf("expected container name 'x', got %q", p.VariadicContainerName)
	}
	if p.VariadicDelimiter == nil || p.VariadicDelimiter.Lexeme != "," {
		t.Fatalf("expected a captured comma delimiter, got %v", p.VariadicDelimiter)
	}
	call := lexMeta(t, "1, 2, 3")
	if !p.Match(call) {
		t.Fatal("expected the variadic signature to match a comma list")
	}
	args, ok := p.MapArgs(call)
	if !ok {
		t.Fatal("expected MapArgs to succeed for a variadic parameter")
	}
	if args["x"] != "1,2,3" {
		t.Fatalf("unexpected variadic binding: %q", args["x"])
	}
}

func TestVariadicParameterRejectsEmptyInput(t *testing.T) {
	sig := lexMeta(t, "$( $x ),*)")
	p := Parse(sig)
	if p.Match(lexMeta(t, "")) {
		t.Fatal("expected an empty call site to fail a variadic signature")
	}
}

func TestParenthesizedArgumentIsOneArgument(t *testing.T) {
	sig := lexMeta(t, "$a)")
	p := Parse(sig)
	call := lexMeta(t, "(1, 2)")
	args, ok := p.MapArgs(call)
	if !ok {
		t.Fatal("expected a parenthesized group to bind as a single argument")
	}
	if args["a"] != "1, 2" {
		t.Fatalf("unexpected balanced-group binding: %q", args["a"])
	}
}

func TestLiteralPatternMustMatchExactly(t *testing.T) {
	sig := lexMeta(t, "foo, $a)")
	p := Parse(sig)
	if p.Match(lexMeta(t, "bar, 1")) {
		t.Fatal("expected a literal-keyword mismatch to fail")
	}
	if !p.Match(lexMeta(t, "foo, 1")) {
		t.Fatal("expected the literal keyword to match when present verbatim")
	}
}
