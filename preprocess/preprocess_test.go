package preprocess

import (
	"testing"

	"macten/declmacro"
	"macten/expander"
	"macten/lex"
	"macten/voc"
)

func TestProcessStripsDefinitions(t *testing.T) {
	src := `defmacten_dec foo {
	() => {
		bar
	}
}
baz qux`
	s, err := lex.New(voc.Meta()).Lex("t", src)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	reg := expander.NewRegistries()
	reg.AddDeclarative(&declmacro.Template{Name: "foo"})
	p := New(voc.Meta(), reg)
	out := p.Process(s.View())

	var text string
	for _, tk := range out.Tokens() {
		text += tk.Lexeme
	}
	if containsSubstring(text, "defmacten_dec") {
		t.Fatalf("expected the definition to be stripped, got %q", text)
	}
	if !containsSubstring(text, "baz") || !containsSubstring(text, "qux") {
		t.Fatalf("expected the trailing source to survive, got %q", text)
	}
}

func TestTidyCallSiteCollapsesSpaceAroundCommas(t *testing.T) {
	s, err := lex.New(voc.Meta()).Lex("t", `foo![1,   2,3]`)
	if err != nil {
		t.Fatalf("lex: %v", err)
	}
	reg := expander.NewRegistries()
	reg.AddDeclarative(&declmacro.Template{Name: "foo"})
	p := New(voc.Meta(), reg)
	out := p.Process(s.View())

	var text string
	for _, tk := range out.Tokens() {
		text += tk.Lexeme
	}
	want := "foo![1, 2, 3]"
	if text != want {
		t.Fatalf("expected tidied call site %q, got %q", want, text)
	}
}

func containsSubstring(haystack, needle string) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return true
		}
	}
	return false
}
