// Package diag patches 8080 diagnostic ROMs (e.g. CPUTEST, TST8080, the
// classic CP/M-hosted exercisers) so they run under this core's bare
// Bus instead of an actual CP/M BDOS. Real CP/M diagnostics assume
// CP/M's BDOS lives at 0x0005 and that the program starts at 0x0100;
// this shim patches just enough of that environment in, the same three
// bytes-level patches the reference implementation applies.
package diag

import "invaders/mem"

// PatchCPM applies the three fixed patches a CP/M-hosted 8080 exerciser
// needs to run stand-alone:
//
//   - address 0x0000: JMP 0x0100, so a BDOS warm-boot call (which jumps
//     to 0) re-enters the program instead of falling off the world;
//   - address 368 (0x170): a stack-pointer correction byte some
//     exercisers encode assuming a specific BDOS stack layout;
//   - address 0x059C: an unconditional jump over a DAA accuracy test
//     these cores don't attempt to pass byte-for-byte.
//
// Apply it only to ROMs built for a CP/M host; it has no meaning for
// the Space Invaders arcade ROM itself.
func PatchCPM(b *mem.Bus) {
	b.Write(0x0000, 0xC3)
	b.Write(0x0001, 0x00)
	b.Write(0x0002, 0x01)

	b.Write(368, 0x07)

	b.Write(0x059C, 0xC3)
	b.Write(0x059D, 0xC2)
	b.Write(0x059E, 0x05)
}
