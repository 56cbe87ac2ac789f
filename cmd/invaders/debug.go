package main

import (
	"github.com/spf13/cobra"

	"invaders/mem"
)

func newDebugCmd() *cobra.Command {
	var (
		romPath string
		loadAt  uint16
	)

	cmd := &cobra.Command{
		Use:   "debug",
		Short: "Load a ROM and step through it in an interactive TUI",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := mem.New()
			if err := b.LoadFileAt(romPath, loadAt); err != nil {
				return err
			}
			b.CPU.PC = loadAt
			return b.CPU.Debug()
		},
	}

	cmd.Flags().StringVar(&romPath, "rom", "", "path to the ROM image (required)")
	cmd.Flags().Uint16Var(&loadAt, "at", 0, "address to load the ROM at, and start execution from")
	cmd.MarkFlagRequired("rom")

	return cmd
}
