package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invaders/io8080"
)

func TestLoadAtAndRead(t *testing.T) {
	b := New()
	b.LoadAt([]byte{0x3E, 0x42}, 0x0100)
	assert.Equal(t, byte(0x3E), b.Read(0x0100))
	assert.Equal(t, byte(0x42), b.Read(0x0101))
}

func TestLoadAtOverflowPanics(t *testing.T) {
	b := New()
	assert.Panics(t, func() { b.LoadAt([]byte{1, 2, 3}, 0xFFFF) })
}

func TestLoadFileAtMissingFileReturnsError(t *testing.T) {
	b := New()
	err := b.LoadFileAt("/nonexistent/rom.bin", 0)
	assert.Error(t, err)
}

func TestCPURunsAgainstBus(t *testing.T) {
	b := New()
	b.LoadAt([]byte{0x3E, 0x07, 0x06, 0x02, 0x80}, 0) // MVI A,7 ; MVI B,2 ; ADD B
	b.TickCPU()
	b.TickCPU()
	b.TickCPU()
	assert.Equal(t, byte(9), b.CPU.A)
}

func TestPortDispatchReachesIO(t *testing.T) {
	b := New()
	b.Out(4, 0xAB) // shift in 0xAB: low=0, high=0xAB
	b.Out(2, 0)    // offset 0: result is the high byte
	assert.Equal(t, byte(0xAB), b.In(3))

	b2 := New()
	b2.SetKeyboardState(io8080.P1Left, true)
	assert.NotEqual(t, byte(0), b2.In(1))
}

func TestResetClearsRAMAndCPU(t *testing.T) {
	b := New()
	b.LoadAt([]byte{0xFF}, 0)
	b.CPU.A = 0x77
	b.Reset()
	assert.Equal(t, byte(0), b.Read(0))
	assert.Equal(t, byte(0), b.CPU.A)
}

func TestFramebufferWindow(t *testing.T) {
	b := New()
	b.Write(VRAMStart, 0xAB)
	fb := b.Framebuffer()
	assert.Equal(t, byte(0xAB), fb[0])
	assert.Equal(t, VRAMEnd-VRAMStart, len(fb))
}
