// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains the macten CLI entrypoint: dispatches help/generate/run/clean,
// the same flat command-table shape main.cpp's main() used.
package main

import (
	"fmt"
	"os"

	"macten/diag"
	"macten/engine"
	"macten/meta"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Expected command, try 'help'")
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "help":
		meta.ShowUsage()
	case "generate":
		handleGenerate(args)
	case "run":
		handleRun(args)
	case "clean":
		handleClean()
	default:
		fmt.Fprintf(os.Stderr, "Invalid command: %q, try 'help'\n", command)
		os.Exit(1)
	}
}

func handleGenerate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Expected source path")
		os.Exit(1)
	}
	e := engine.New(engine.NewOptions())
	sink, err := e.Generate(args[0])
	reportDiagnostics(sink)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("Procedural macro files generated")
}

func handleRun(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Expected source path")
		os.Exit(1)
	}
	dest := ""
	if len(args) > 1 {
		dest = args[1]
	}
	e := engine.New(engine.NewOptions())
	sink, err := e.Run(args[0], dest)
	reportDiagnostics(sink)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to process macros:", err)
		os.Exit(1)
	}
	fmt.Println("Successfully processed macros")
}

func handleClean() {
	e := engine.New(engine.NewOptions())
	if err := e.Clean(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println("Removed macten files")
}

// reportDiagnostics prints every diagnostic a sink accumulated, instead of
// stopping at the first one, matching SPEC_FULL.md's CLI expansion.
func reportDiagnostics(sink *diag.Sink) {
	if sink == nil {
		return
	}
	for _, d := range sink.All() {
		fmt.Fprintln(os.Stderr, d.Error())
	}
}
