package main

import (
	"os"

	"github.com/sandeepkv93/dayplanner/internal/cli"
)

func main() {
	// With no arguments the root command launches the planner TUI.
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
