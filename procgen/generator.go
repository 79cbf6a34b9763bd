// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the procedural macro generator: turns a parsed grammar profile
// into a self-contained Go source tree under an artifact directory, the way
// original_source/src/prod_macro_def.hpp's dump_rules/dump_driver turned a
// ProceduralMacroProfile into a Python module, retargeted to emit Go the
// Host Bridge can "go build" directly.
package procgen

import (
	"fmt"
	"os"
	"path/filepath"

	"macten/procmacro"
)

// Generator writes the parser, handler and driver files a procedural macro
// profile needs into a single artifact directory.
type Generator struct {
	// Dir is the artifact directory (typically ".macten") files are written
	// into.
	Dir string
}

// New builds a Generator targeting dir, which is created if missing.
func New(dir string) *Generator {
	return &Generator{Dir: dir}
}

// Generate writes <name>_parser.go (always overwritten), <name>_handler.go
// (only created if absent, so hand-written handler bodies survive a
// regeneration), driver.go (always overwritten, one shared entrypoint for
// whichever profile ran last) and macten.go (the runtime support library,
// copied once).
func (g *Generator) Generate(profile *procmacro.Profile) error {
	if err := os.MkdirAll(g.Dir, 0o755); err != nil {
		return fmt.Errorf("procgen: create artifact dir: %w", err)
	}
	if err := g.writeRuntimeOnce(); err != nil {
		return err
	}
	if err := g.writeFile(profile.Name+"_parser.go", g.renderParser(profile)); err != nil {
		return err
	}
	handlerPath := filepath.Join(g.Dir, profile.Name+"_handler.go")
	if _, err := os.Stat(handlerPath); os.IsNotExist(err) {
		if err := g.writeFile(profile.Name+"_handler.go", g.renderHandler(profile)); err != nil {
			return err
		}
	}
	if err := g.writeFile("driver.go", g.renderDriver(profile)); err != nil {
		return err
	}
	return nil
}

func (g *Generator) writeFile(name, content string) error {
	path := filepath.Join(g.Dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("procgen: write %s: %w", name, err)
	}
	return nil
}

func (g *Generator) writeRuntimeOnce() error {
	path := filepath.Join(g.Dir, "macten.go")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return g.writeFile("macten.go", runtimeSource)
}

// ruleFuncName is the generated Go function name for a rule, e.g.
// "sum" -> "parseSum".
func ruleFuncName(name string) string {
	if name == "" {
		return "parse"
	}
	return "parse" + capitalize(name)
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-('a'-'A')) + s[1:]
}

// renderParser emits one parse<Rule> function per rule in profile, each
// trying its alternatives in declaration order and backtracking (via
// Cursor.Mark/Reset) on failure, mirroring dump_rules' per-alternative
// "while True: t_input = input.deepcopy(); ..." retry shape without needing
// an explicit deep copy since Cursor.Reset rewinds in place.
func (g *Generator) renderParser(profile *procmacro.Profile) string {
	e := &Emitter{}
	e.Comment("AUTO GENERATED CODE, DO NOT EDIT")
	e.Writeln("package main")
	e.Writeln("")
	e.Section("Profile: " + profile.Name)
	for _, r := range profile.Rules {
		g.renderRule(e, profile, r)
	}
	return e.String()
}

func (g *Generator) renderRule(e *Emitter, profile *procmacro.Profile, r *procmacro.Rule) {
	fn := ruleFuncName(r.Name)
	e.Writeln(fmt.Sprintf("func %s(c *Cursor) (*Node, bool) {", fn))
	e.Inc()
	if r.Recursive {
		e.Comment(r.Name + " is left-recursive in its grammar; alternatives referencing")
		e.Comment("it back are tried after the non-recursive ones, per alternative order.")
	}
	for altIndex := range r.Alternatives {
		e.Writeln(fmt.Sprintf("if node, ok := %s(c); ok {", matchFuncName(r.Name, altIndex)))
		e.Inc()
		e.Writeln("return node, true")
		e.Dec()
		e.Writeln("}")
	}
	e.Writeln("return nil, false")
	e.Dec()
	e.Writeln("}")
	e.Writeln("")

	for altIndex, alt := range r.Alternatives {
		g.renderAlternative(e, r, altIndex, alt)
	}
}

func matchFuncName(rule string, index int) string {
	return fmt.Sprintf("matchAlt%d%s", index, capitalize(rule))
}

func (g *Generator) renderAlternative(e *Emitter, r *procmacro.Rule, index int, alt procmacro.Alternative) {
	e.Writeln(fmt.Sprintf("func %s(c *Cursor) (*Node, bool) {", matchFuncName(r.Name, index)))
	e.Inc()
	e.Writeln("mark := c.Mark()")
	e.Writeln(fmt.Sprintf("node := &Node{Rule: %q, Alt: %d}", r.Name, index))
	for i, sym := range alt.Symbols {
		switch sym.Kind {
		case procmacro.Literal:
			e.Writeln(fmt.Sprintf("if !c.Expect(%q) {", sym.Text))
			e.Inc()
			e.Writeln("c.Reset(mark)")
			e.Writeln("return nil, false")
			e.Dec()
			e.Writeln("}")
		case procmacro.Ident:
			e.Writeln(fmt.Sprintf("v%d, ok%d := c.Ident()", i, i))
			e.Writeln(fmt.Sprintf("if !ok%d {", i))
			e.Inc()
			e.Writeln("c.Reset(mark)")
			e.Writeln("return nil, false")
			e.Dec()
			e.Writeln("}")
			e.Writeln(fmt.Sprintf("node.Children = append(node.Children, &Node{Rule: \"ident\", Text: v%d})", i))
		case procmacro.Number:
			e.Writeln(fmt.Sprintf("v%d, ok%d := c.Number()", i, i))
			e.Writeln(fmt.Sprintf("if !ok%d {", i))
			e.Inc()
			e.Writeln("c.Reset(mark)")
			e.Writeln("return nil, false")
			e.Dec()
			e.Writeln("}")
			e.Writeln(fmt.Sprintf("node.Children = append(node.Children, &Node{Rule: \"number\", Text: v%d})", i))
		case procmacro.Ref:
			e.Writeln(fmt.Sprintf("child%d, ok%d := %s(c)", i, i, ruleFuncName(sym.Text)))
			e.Writeln(fmt.Sprintf("if !ok%d {", i))
			e.Inc()
			e.Writeln("c.Reset(mark)")
			e.Writeln("return nil, false")
			e.Dec()
			e.Writeln("}")
			e.Writeln(fmt.Sprintf("node.Children = append(node.Children, child%d)", i))
		}
	}
	e.Writeln("return node, true")
	e.Dec()
	e.Writeln("}")
	e.Writeln("")
}

// renderHandler emits a stub handler per rule's entrypoint, left for a
// human to fill in — never overwritten once it exists.
func (g *Generator) renderHandler(profile *procmacro.Profile) string {
	e := &Emitter{}
	e.Comment("Hand-edit this file: Generate will not overwrite it once present.")
	e.Writeln("package main")
	e.Writeln("")
	e.Section("Handler: " + profile.Name)
	e.Writeln(fmt.Sprintf("func handle%s(n *Node) string {", capitalize(profile.Name)))
	e.Inc()
	e.Comment("TODO: turn the parse tree for " + profile.Name + " into its expansion text.")
	e.Writeln("return PrintNode(n, 0)")
	e.Dec()
	e.Writeln("}")
	return e.String()
}

// renderDriver emits the shared entrypoint: read the input file named by
// argv, then iteratively apply the profile's entry rule (its last declared
// rule, matching last_rule in the reference dump_driver) to whatever input
// remains until none is left, handing each resulting tree to the handler
// and accumulating its text, so an argument list holding more than one
// top-level grammar element — "1, 2, 3" parsed one element at a time — is
// not silently truncated to its first element. The accumulated text is
// written to argv[2].
func (g *Generator) renderDriver(profile *procmacro.Profile) string {
	e := &Emitter{}
	e.Comment("AUTO GENERATED CODE, DO NOT EDIT")
	e.Writeln("package main")
	e.Writeln("")
	e.Writeln(`import (`)
	e.Inc()
	e.Writeln(`"fmt"`)
	e.Writeln(`"os"`)
	e.Writeln(`"strings"`)
	e.Dec()
	e.Writeln(")")
	e.Writeln("")
	e.Section("Driver")
	e.Writeln("func main() {")
	e.Inc()
	e.Writeln("if len(os.Args) < 3 {")
	e.Inc()
	e.Writeln(`fmt.Fprintln(os.Stderr, "usage: driver <input> <output>")`)
	e.Writeln("os.Exit(1)")
	e.Dec()
	e.Writeln("}")
	e.Writeln("raw, err := os.ReadFile(os.Args[1])")
	e.Writeln("if err != nil {")
	e.Inc()
	e.Writeln(`fmt.Fprintln(os.Stderr, err)`)
	e.Writeln("os.Exit(1)")
	e.Dec()
	e.Writeln("}")
	e.Writeln("c := NewCursor(string(raw))")
	e.Writeln("var out strings.Builder")
	entry := ruleFuncName(profile.LastRule)
	e.Writeln("for !c.AtEnd() {")
	e.Inc()
	e.Writeln(fmt.Sprintf("node, ok := %s(c)", entry))
	e.Writeln("if !ok {")
	e.Inc()
	e.Writeln(`fmt.Fprintln(os.Stderr, "something went wrong parsing the input")`)
	e.Writeln("os.Exit(1)")
	e.Dec()
	e.Writeln("}")
	e.Writeln(fmt.Sprintf("out.WriteString(handle%s(node))", capitalize(profile.Name)))
	e.Dec()
	e.Writeln("}")
	e.Writeln("if err := os.WriteFile(os.Args[2], []byte(out.String()), 0o644); err != nil {")
	e.Inc()
	e.Writeln(`fmt.Fprintln(os.Stderr, err)`)
	e.Writeln("os.Exit(1)")
	e.Dec()
	e.Writeln("}")
	e.Dec()
	e.Writeln("}")
	return e.String()
}
