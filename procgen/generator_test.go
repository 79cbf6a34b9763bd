package procgen

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"

	"macten/procmacro"
)

func sampleProfile() *procmacro.Profile {
	p := &procmacro.Profile{Name: "calc"}
	term := p.CreateRule("term")
	term.Alternatives = []procmacro.Alternative{{Symbols: []procmacro.Symbol{{Kind: procmacro.Number}}}}
	term.ComputeRecursive()

	sum := p.CreateRule("sum")
	sum.Alternatives = []procmacro.Alternative{
		{Symbols: []procmacro.Symbol{{Kind: procmacro.Ref, Text: "term"}, {Kind: procmacro.Literal, Text: "+"}, {Kind: procmacro.Ref, Text: "sum"}}},
		{Symbols: []procmacro.Symbol{{Kind: procmacro.Ref, Text: "term"}}},
	}
	sum.ComputeRecursive()
	return p
}

func TestGenerateWritesExpectedFiles(t *testing.T) {
	dir := t.TempDir()
	g := New(dir)
	if err := g.Generate(sampleProfile()); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var got []string
	for _, e := range entries {
		got = append(got, e.Name())
	}
	sort.Strings(got)

	want := []string{"calc_handler.go", "calc_parser.go", "driver.go", "macten.go"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("artifact directory contents mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateNeverOverwritesExistingHandler(t *testing.T) {
	dir := t.TempDir()
	g := New(dir)
	profile := sampleProfile()
	if err := g.Generate(profile); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	handlerPath := filepath.Join(dir, "calc_handler.go")
	custom := "package main\n\nfunc handleCalc(n *Node) string { return \"custom\" }\n"
	if err := os.WriteFile(handlerPath, []byte(custom), 0o644); err != nil {
		t.Fatalf("seed custom handler: %v", err)
	}

	if err := g.Generate(profile); err != nil {
		t.Fatalf("second Generate: %v", err)
	}

	got, err := os.ReadFile(handlerPath)
	if err != nil {
		t.Fatalf("read handler: %v", err)
	}
	if diff := cmp.Diff(custom, string(got)); diff != "" {
		t.Fatalf("hand-edited handler was overwritten (-want +got):\n%s", diff)
	}
}

func TestRenderParserContainsRuleFunctions(t *testing.T) {
	g := New(t.TempDir())
	src := g.renderParser(sampleProfile())
	for _, want := range []string{"func parseTerm(c *Cursor)", "func parseSum(c *Cursor)", "func matchAlt0Sum(", "func matchAlt1Sum("} {
		if !containsSubstring(src, want) {
			t.Fatalf("expected generated parser to contain %q, got:\n%s", want, src)
		}
	}
}

func TestRenderDriverLoopsUntilInputExhausted(t *testing.T) {
	g := New(t.TempDir())
	src := g.renderDriver(sampleProfile())
	for _, want := range []string{"for !c.AtEnd() {", "out.WriteString(handleCalc(node))", "out.String()"} {
		if !containsSubstring(src, want) {
			t.Fatalf("expected generated driver to contain %q, got:\n%s", want, src)
		}
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
