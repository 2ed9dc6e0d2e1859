package main

import (
	"fmt"
	"os"

	"github.com/YA-androidapp/baserow/internal/interfaces/cli"
)

var Version = "dev" // Overridden by ldflags

func main() {
	rootCmd := cli.NewRootCommand(Version)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
