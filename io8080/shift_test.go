package io8080

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftRegisterBasic(t *testing.T) {
	p := New()
	p.Out(4, 0xFF) // shift in 0xFF: low=0(old high), high=0xFF
	p.Out(4, 0x00) // shift in 0x00: low=0xFF, high=0x00
	p.Out(2, 0)    // offset 0 reads the high byte unshifted
	assert.Equal(t, byte(0x00), p.In(3))

	p2 := New()
	p2.Out(4, 0xFF) // low=0, high=0xFF
	p2.Out(2, 0)    // offset 0: result is the high byte, 0xFF
	assert.Equal(t, byte(0xFF), p2.In(3))
}

func TestShiftOffsetMasksTo3Bits(t *testing.T) {
	p := New()
	p.Out(2, 0xFF) // only low 3 bits should stick
	p.Out(4, 0xAA)
	// offset 7, same as offset (0xFF & 0x07) == 7
	want := p.In(3)

	p2 := New()
	p2.Out(2, 0x07)
	p2.Out(4, 0xAA)
	assert.Equal(t, want, p2.In(3))
}

func TestPort1FixedBitAndButtons(t *testing.T) {
	p := New()
	assert.Equal(t, byte(bitFixed3), p.In(1), "bit 3 must read 1 with nothing pressed")

	p.SetButton(P1Left, true)
	assert.True(t, p.In(1)&bitP1Left != 0)
	assert.True(t, p.In(1)&bitFixed3 != 0, "bit 3 must stay set regardless of button state")

	p.SetButton(P1Left, false)
	assert.False(t, p.In(1)&bitP1Left != 0)
}

func TestPort0IsConstant(t *testing.T) {
	p := New()
	assert.Equal(t, byte(0x01), p.In(0))
	p.Out(2, 3)
	p.SetButton(Coin, true)
	assert.Equal(t, byte(0x01), p.In(0))
}

func TestUnmappedPortReadsZero(t *testing.T) {
	p := New()
	assert.Equal(t, byte(0), p.In(5))
	assert.Equal(t, byte(0), p.In(6))
}

func TestResetClearsShiftRegister(t *testing.T) {
	p := New()
	p.Out(4, 0xFF)
	p.Out(2, 0)
	p.Reset()
	assert.Equal(t, byte(0), p.In(3))
}
