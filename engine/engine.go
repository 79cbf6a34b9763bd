// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the Engine: the façade tying the Definition Parser, Preprocessor,
// Expander, Procedural Generator and Host Bridge together behind Generate,
// Run and Clean, grounded in main.cpp's handle_generate/handle_run/
// handle_clean and MactenWriter.generate_declarative_rules/process.
package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"macten/bridge"
	"macten/defparse"
	"macten/diag"
	"macten/expander"
	"macten/lex"
	"macten/preprocess"
	"macten/procgen"
	"macten/procmacro"
	"macten/token"
	"macten/voc"
)

func lexString(v *voc.Vocabulary, source, input string) (*token.Stream, error) {
	s, err := lex.New(v).Lex(source, input)
	if err != nil {
		return nil, fmt.Errorf("engine: lex source: %w", err)
	}
	return s, nil
}

// Engine runs the full macten pipeline against one Options configuration.
type Engine struct {
	Options    Options
	Vocabulary *voc.Vocabulary
}

// New builds an Engine over the host input language, filling in any unset
// Options fields with their defaults.
func New(opts Options) *Engine {
	return &Engine{Options: opts.withDefaults(), Vocabulary: voc.Host()}
}

// Generate parses every macro definition out of sourcePath and writes the
// procedural macro generator's artifacts (parser/handler/driver) into
// Options.ArtifactDir, without running the expansion pass — mirroring
// MactenWriter::generate_declarative_rules plus build_procedural_macro_files.
func (e *Engine) Generate(sourcePath string) (*diag.Sink, error) {
	view, err := e.lexFile(sourcePath)
	if err != nil {
		return nil, err
	}
	sink := &diag.Sink{}
	reg := defparse.New(e.Vocabulary, sink).Parse(view)

	if len(reg.Procedural) > 0 {
		gen := procgen.New(e.Options.ArtifactDir)
		for _, profile := range reg.Procedural {
			if err := gen.Generate(profile); err != nil {
				return sink, fmt.Errorf("engine: generate %s: %w", profile.Name, err)
			}
		}
	}
	return sink, nil
}

// Run processes sourcePath end to end: parse definitions, preprocess (strip
// definitions, tidy call sites), expand every macro call, and write the
// result to destPath. An empty destPath defaults to
// "<parent>/<stem>.macten<ext>", matching handle_run's default.
func (e *Engine) Run(sourcePath, destPath string) (*diag.Sink, error) {
	if destPath == "" {
		destPath = defaultDestPath(sourcePath)
	}

	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("engine: read source: %w", err)
	}

	sink := &diag.Sink{}
	parseStream, err := lexString(e.Vocabulary, sourcePath, string(raw))
	if err != nil {
		return nil, err
	}
	reg := defparse.New(e.Vocabulary, sink).Parse(parseStream.View())

	gen := procgen.New(e.Options.ArtifactDir)
	for _, profile := range reg.Procedural {
		if err := gen.Generate(profile); err != nil {
			return sink, fmt.Errorf("engine: generate %s: %w", profile.Name, err)
		}
	}

	preprocessStream, err := lexString(e.Vocabulary, sourcePath, string(raw))
	if err != nil {
		return nil, err
	}
	pre := preprocess.New(e.Vocabulary, reg)
	processed := pre.Process(preprocessStream.View())

	br := bridge.New(e.Options.ArtifactDir, e.Options.ToolchainCommands)
	exp := expander.New(reg, e.Vocabulary, e.Options.MaxDepth)
	exp.Runner = &macroRunner{gen: gen, bridge: br}

	var target token.Stream
	if err := exp.ApplyMacroRules(&target, processed.View()); err != nil {
		sink.Add(diag.New(diag.BridgeFailure, 0, "%v", err))
		return sink, err
	}

	if err := os.WriteFile(destPath, []byte(renderStream(&target)), 0o644); err != nil {
		return sink, fmt.Errorf("engine: write destination: %w", err)
	}
	return sink, nil
}

// Clean removes the artifact directory entirely.
func (e *Engine) Clean() error {
	return os.RemoveAll(e.Options.ArtifactDir)
}

func (e *Engine) lexFile(sourcePath string) (*token.View, error) {
	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("engine: read source: %w", err)
	}
	s, err := lexString(e.Vocabulary, sourcePath, string(raw))
	if err != nil {
		return nil, err
	}
	return s.View(), nil
}

func defaultDestPath(sourcePath string) string {
	dir := filepath.Dir(sourcePath)
	ext := filepath.Ext(sourcePath)
	stem := strings.TrimSuffix(filepath.Base(sourcePath), ext)
	return filepath.Join(dir, stem+".macten"+ext)
}

func renderStream(s *token.Stream) string {
	var b strings.Builder
	for _, tk := range s.Tokens() {
		b.WriteString(tk.Lexeme)
	}
	return b.String()
}

// macroRunner bridges the Expander's ProceduralRunner seam to the Procedural
// Generator and Host Bridge: it regenerates the calling profile's artifacts
// (since the shared driver.go targets whichever profile generated it last)
// and then builds and runs it.
type macroRunner struct {
	gen    *procgen.Generator
	bridge *bridge.Bridge
}

func (m *macroRunner) Run(profile *procmacro.Profile, argsText string) (string, error) {
	if err := m.gen.Generate(profile); err != nil {
		return "", err
	}
	return m.bridge.Run(argsText)
}
