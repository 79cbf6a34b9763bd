// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the Host Bridge: builds a generated artifact directory with the
// host toolchain and runs the resulting binary against an input file,
// generalizing main.go's clang-then-gcc compile retry loop from "compile one
// C file" to "build one artifact directory with an ordered list of
// toolchain commands".
package bridge

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Bridge builds and runs the Go sources a Generator wrote into a single
// artifact directory.
type Bridge struct {
	// Dir is the artifact directory containing the generated driver.
	Dir string
	// ToolchainCommands are tried in order until one builds successfully.
	// Defaults to []string{"go"} when empty.
	ToolchainCommands []string
	Stdout            *os.File
	Stderr            *os.File
}

// New builds a Bridge targeting the generated sources under dir.
func New(dir string, toolchainCommands []string) *Bridge {
	if len(toolchainCommands) == 0 {
		toolchainCommands = []string{"go"}
	}
	return &Bridge{Dir: dir, ToolchainCommands: toolchainCommands, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Build compiles the artifact directory into a binary at binaryPath, trying
// each configured toolchain command in turn and stopping at the first that
// succeeds, exactly as main.go tried clang then gcc.
func (b *Bridge) Build(binaryPath string) error {
	var lastErr error
	for _, toolchain := range b.ToolchainCommands {
		cmd := exec.Command(toolchain, "build", "-o", binaryPath, b.Dir)
		cmd.Stdout = b.Stdout
		cmd.Stderr = b.Stderr
		fmt.Fprintf(b.Stderr, "trying to build with %s...\n", toolchain)
		if err := cmd.Run(); err == nil {
			fmt.Fprintf(b.Stderr, "built successfully with %s: %s\n", toolchain, binaryPath)
			return nil
		} else {
			lastErr = err
			fmt.Fprintf(b.Stderr, "%s failed: %v\n", toolchain, err)
		}
	}
	return fmt.Errorf("bridge: failed to build with any of %v: %w", b.ToolchainCommands, lastErr)
}

// Run builds the artifact directory, writes input to a transport file under
// Dir, invokes the resulting binary against it, and returns the contents of
// the transport output file.
func (b *Bridge) Run(input string) (string, error) {
	binaryPath := filepath.Join(b.Dir, "macten_driver")
	if err := b.Build(binaryPath); err != nil {
		return "", err
	}
	defer os.Remove(binaryPath)

	inPath := filepath.Join(b.Dir, "tmp.in")
	outPath := filepath.Join(b.Dir, "tmp.in.out")
	if err := os.WriteFile(inPath, []byte(input), 0o644); err != nil {
		return "", fmt.Errorf("bridge: write transport input: %w", err)
	}

	cmd := exec.Command(binaryPath, inPath, outPath)
	cmd.Stdout = b.Stdout
	cmd.Stderr = b.Stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("bridge: driver run failed: %w", err)
	}

	out, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("bridge: read transport output: %w", err)
	}
	return string(out), nil
}
