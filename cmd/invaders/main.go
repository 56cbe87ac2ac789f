// Command invaders drives the 8080 core and arcade bus against a ROM
// image, either headless, under the interactive step debugger, or
// through the CP/M diagnostics patch shim.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "invaders",
		Short: "Intel 8080 / Space Invaders arcade core driver",
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newDebugCmd())
	rootCmd.AddCommand(newDiagCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
