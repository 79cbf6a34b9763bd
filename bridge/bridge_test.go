package bridge

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestBuildTriesToolchainsInOrderAndStopsAtFirstSuccess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on /bin/true and /bin/false")
	}
	dir := t.TempDir()
	b := New(dir, []string{"/bin/false", "/bin/true"})
	b.Stdout = discard(t)
	b.Stderr = discard(t)

	binaryPath := filepath.Join(dir, "out")
	if err := b.Build(binaryPath); err != nil {
		t.Fatalf("expected the second toolchain to succeed, got: %v", err)
	}
}

func TestBuildFailsWhenEveryToolchainFails(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("relies on /bin/false")
	}
	dir := t.TempDir()
	b := New(dir, []string{"/bin/false"})
	b.Stdout = discard(t)
	b.Stderr = discard(t)

	if err := b.Build(filepath.Join(dir, "out")); err == nil {
		t.Fatal("expected Build to fail when every toolchain command fails")
	}
}

func TestNewDefaultsToolchainToGo(t *testing.T) {
	b := New(t.TempDir(), nil)
	if len(b.ToolchainCommands) != 1 || b.ToolchainCommands[0] != "go" {
		t.Fatalf("expected default toolchain [\"go\"], got %v", b.ToolchainCommands)
	}
}

func discard(t *testing.T) *os.File {
	t.Helper()
	f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("open devnull: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}
