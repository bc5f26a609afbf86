// Command vb shows the VIDA dashboard in the terminal and exports it to
// files.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/vanderheijden86/vidaboard/pkg/config"
)

func main() {
	// .env must be in the environment before flags read their env defaults.
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	if err := Execute(os.Args[1:]); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
