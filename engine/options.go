// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains Options, the run-time configuration the CLI and Engine share:
// artifact directory, toolchain commands, and the recursion cap — plain
// struct fields with a constructor applying defaults, the same shape the
// meta package's flags-plus-constants configuration style follows.
package engine

// Options configures one Engine. Zero-value fields are filled in by New
// with the engine's defaults.
type Options struct {
	// ArtifactDir is where generated procedural macro sources and transport
	// files live. Defaults to ".macten".
	ArtifactDir string
	// ToolchainCommands are tried in order to build the generated driver.
	// Defaults to []string{"go"}.
	ToolchainCommands []string
	// MaxDepth caps recursive macro re-expansion. Defaults to 256.
	MaxDepth int
}

const (
	defaultArtifactDir = ".macten"
	defaultMaxDepth    = 256
)

// NewOptions returns Options with every unset field filled in with its
// default.
func NewOptions() Options {
	return Options{
		ArtifactDir:       defaultArtifactDir,
		ToolchainCommands: []string{"go"},
		MaxDepth:          defaultMaxDepth,
	}
}

func (o Options) withDefaults() Options {
	if o.ArtifactDir == "" {
		o.ArtifactDir = defaultArtifactDir
	}
	if len(o.ToolchainCommands) == 0 {
		o.ToolchainCommands = []string{"go"}
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = defaultMaxDepth
	}
	return o
}
