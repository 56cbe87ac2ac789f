package main

import (
	"fmt"
	"hash/crc32"
	"log"
	"os"

	"github.com/spf13/cobra"

	"invaders/cpu"
	"invaders/mem"
)

// cyclesPerHalfFrame approximates the real board's ~2MHz clock divided
// across two interrupts per 60Hz frame (RST 1 at mid-screen, RST 2 at
// V-blank): roughly 16,667 T-states per half.
const cyclesPerHalfFrame = 16667

func newRunCmd() *cobra.Command {
	var (
		romPath string
		loadAt  uint16
		frames  int
		trace   string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a ROM headless for a number of frames and report the framebuffer checksum",
		RunE: func(cmd *cobra.Command, args []string) error {
			b := mem.New()
			if err := b.LoadFileAt(romPath, loadAt); err != nil {
				return err
			}

			switch trace {
			case "instructions":
				b.CPU.Trace = cpu.TraceInstructions
				b.CPU.SetLogger(log.New(os.Stderr, "", log.Lshortfile))
			case "interrupts":
				b.CPU.Trace = cpu.TraceInterrupts
				b.CPU.SetLogger(log.New(os.Stderr, "", log.Lshortfile))
			case "", "none":
			default:
				return fmt.Errorf("unknown trace level %q", trace)
			}

			for i := 0; i < frames; i++ {
				b.RunFrame(cyclesPerHalfFrame)
			}

			sum := crc32.ChecksumIEEE(b.Framebuffer())
			fmt.Printf("ran %d frames, %d T-states, framebuffer crc32=%08x\n", frames, b.CPU.Cycles, sum)
			return nil
		},
	}

	cmd.Flags().StringVar(&romPath, "rom", "", "path to the ROM image (required)")
	cmd.Flags().Uint16Var(&loadAt, "at", 0, "address to load the ROM at")
	cmd.Flags().IntVar(&frames, "frames", 60, "number of video frames to run")
	cmd.Flags().StringVar(&trace, "trace", "none", "trace level: none, instructions, interrupts")
	cmd.MarkFlagRequired("rom")

	return cmd
}
