// Package main is the entry point for the wstl notebook CLI.
// It exposes the whistle translation service magics as shell commands.
package main

import (
	"wstl/notebook/cmd"
)

func main() {
	cmd.Execute()
}
