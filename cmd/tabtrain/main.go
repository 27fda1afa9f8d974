// Package main is the entry point for the tabtrain CLI.
//
// Usage:
//
//	tabtrain [flags] <command> [args]
//
// Commands:
//
//	inspect  - Show the schema and batch layout of a tab-delimited training file
//	train    - Train a softmax classifier batch by batch and evaluate it
package main

import (
	"fmt"
	"os"

	"tabtrain/cmd/tabtrain/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
