package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"invaders/diag"
	"invaders/mem"
)

func newDiagCmd() *cobra.Command {
	var (
		romPath string
		maxOps  int
	)

	cmd := &cobra.Command{
		Use:   "diag",
		Short: "Run a CP/M-hosted 8080 exerciser ROM with the diagnostics patch applied",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := mem.New()
			if err := b.LoadFileAt(romPath, 0x0100); err != nil {
				return err
			}
			diag.PatchCPM(b)
			b.CPU.PC = 0x0100

			for i := 0; i < maxOps; i++ {
				pc := b.CPU.PC
				if pc == 0x0000 {
					fmt.Println("warm boot reached: exerciser finished")
					return nil
				}
				b.TickCPU()
			}
			return fmt.Errorf("diag: exceeded %d instructions without reaching warm boot", maxOps)
		},
	}

	cmd.Flags().StringVar(&romPath, "rom", "", "path to the CP/M-hosted exerciser ROM (required)")
	cmd.Flags().IntVar(&maxOps, "max-ops", 50_000_000, "abort after this many instructions")
	cmd.MarkFlagRequired("rom")

	return cmd
}
