package cpu

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func litPixels(f *Framebuffer) (n int) {
	for _, cell := range f {
		if cell == PixelOn {
			n++
		}
	}
	return
}

func TestDraw_Glyph(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEMU(t)
	emu.V[0] = 10
	emu.V[1] = 5
	emu.I = FontStart // glyph 0: F0 90 90 90 F0

	assert.NoError(run(t, emu, 0xD015))
	assert.Equal(uint8(0), emu.V[flag])

	for col := 0; col < 8; col++ {
		assert.Equal(col < 4, emu.display.Lit(10+col, 5), "top row col %d", col)
		assert.Equal(col < 4, emu.display.Lit(10+col, 9), "bottom row col %d", col)
	}
	assert.True(emu.display.Lit(10, 7))
	assert.False(emu.display.Lit(11, 7))
	assert.True(emu.display.Lit(13, 7))
	assert.Equal(14, litPixels(&emu.display))
}

func TestDraw_DoubleXORRestores(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEMU(t)
	emu.V[3] = 20
	emu.V[4] = 12
	emu.I = FontStart + 8*FontGlyphSize

	// Pre-existing pixels outside and inside the sprite area.
	emu.display[0] = PixelOn
	emu.display[12*Width+23] = PixelOn
	before := emu.display

	assert.NoError(run(t, emu, 0xD345))
	assert.Equal(uint8(1), emu.V[flag])
	assert.NotEqual(before, emu.display)

	assert.NoError(run(t, emu, 0xD345))
	assert.Equal(uint8(1), emu.V[flag])
	assert.Equal(before, emu.display)
}

func TestDraw_Collision(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEMU(t)
	emu.I = 0x300
	emu.memory[0x300] = 0x80

	assert.NoError(run(t, emu, 0xD011))
	assert.Equal(uint8(0), emu.V[flag])
	assert.True(emu.display.Lit(0, 0))

	emu.V[0] = 1
	assert.NoError(run(t, emu, 0xD011))
	assert.Equal(uint8(0), emu.V[flag])
	assert.True(emu.display.Lit(1, 0))

	emu.V[0] = 0
	assert.NoError(run(t, emu, 0xD011))
	assert.Equal(uint8(1), emu.V[flag])
	assert.False(emu.display.Lit(0, 0))
	assert.True(emu.display.Lit(1, 0))
}

func TestDraw_OriginWraps(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEMU(t)
	emu.I = 0x300
	emu.memory[0x300] = 0x80
	emu.V[0] = Width + 2
	emu.V[1] = Height + 1

	assert.NoError(run(t, emu, 0xD011))
	assert.True(emu.display.Lit(2, 1))
	assert.Equal(1, litPixels(&emu.display))
}

func TestDraw_ClipsRightEdge(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEMU(t)
	emu.I = 0x300
	emu.memory[0x300] = 0xFF
	emu.memory[0x301] = 0xFF
	emu.V[0] = Width - 1
	emu.V[1] = 0

	assert.NoError(run(t, emu, 0xD012))
	assert.True(emu.display.Lit(Width-1, 0))
	assert.True(emu.display.Lit(Width-1, 1))
	for col := 0; col < 7; col++ {
		assert.False(emu.display.Lit(col, 0), "wrapped into col %d", col)
		assert.False(emu.display.Lit(col, 1), "wrapped into col %d", col)
		assert.False(emu.display.Lit(col, 2), "spilled into next row col %d", col)
	}
	assert.Equal(2, litPixels(&emu.display))
}

func TestDraw_ClipsBottomEdge(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEMU(t)
	emu.I = 0x300
	for i := 0; i < 4; i++ {
		emu.memory[0x300+i] = 0xC0
	}
	emu.V[0] = 5
	emu.V[1] = Height - 1

	assert.NoError(run(t, emu, 0xD014))
	assert.True(emu.display.Lit(5, Height-1))
	assert.True(emu.display.Lit(6, Height-1))
	for row := 0; row < 3; row++ {
		assert.False(emu.display.Lit(5, row), "wrapped into row %d", row)
	}
	assert.Equal(2, litPixels(&emu.display))
}

func TestDraw_ClipsCorner(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEMU(t)
	emu.I = 0x300
	emu.memory[0x300] = 0xFF
	emu.memory[0x301] = 0xFF
	emu.V[0] = Width - 1
	emu.V[1] = Height - 1

	assert.NoError(run(t, emu, 0xD012))
	assert.True(emu.display.Lit(Width-1, Height-1))
	assert.Equal(1, litPixels(&emu.display))
}

func TestDraw_FlagRegisterAsCoordinate(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEMU(t)
	emu.I = 0x300
	emu.memory[0x300] = 0x80
	emu.V[flag] = 9
	emu.V[1] = 3

	assert.NoError(run(t, emu, 0xDF11))
	assert.True(emu.display.Lit(9, 3))
	assert.Equal(uint8(0), emu.V[flag])
}

func TestDraw_SpriteOutOfMemory(t *testing.T) {
	assert := assert.New(t)

	emu := newTestEMU(t)
	emu.I = MemorySize - 2
	emu.V[flag] = 0x55

	err := run(t, emu, 0xD015)
	var me *MemoryError
	assert.True(errors.As(err, &me))
	assert.Equal(MemorySize-2, me.Addr)
	assert.Equal(uint8(0x55), emu.V[flag])
	assert.Equal(0, litPixels(&emu.display))
}
