package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"invaders/mem"
)

func TestPatchCPMAppliesAllThreePatches(t *testing.T) {
	b := mem.New()
	PatchCPM(b)

	assert.Equal(t, byte(0xC3), b.Read(0x0000))
	assert.Equal(t, byte(0x00), b.Read(0x0001))
	assert.Equal(t, byte(0x01), b.Read(0x0002))

	assert.Equal(t, byte(0x07), b.Read(368))

	assert.Equal(t, byte(0xC3), b.Read(0x059C))
	assert.Equal(t, byte(0xC2), b.Read(0x059D))
	assert.Equal(t, byte(0x05), b.Read(0x059E))
}
