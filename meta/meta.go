// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Contains meta information and usage instructions for the macten CLI.

package meta

import (
	"flag"
	"fmt"
)

const Version = "v0.0.1"

func ShowUsage() {
	fmt.Println("Usage: help | generate <path> | run <path> [dest] | clean")
	flag.PrintDefaults()
	fmt.Printf("\nmacten %v - By Navid M (c) 2025", Version)
}
