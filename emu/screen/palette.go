package screen

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"chyp8/emu/cpu"

	"golang.org/x/image/colornames"
)

// Palette maps framebuffer cells to the two display colours.
type Palette struct {
	On  color.RGBA
	Off color.RGBA
}

var DefaultPalette = Palette{
	On:  colornames.White,
	Off: colornames.Black,
}

func (p Palette) Color(cell uint32) color.RGBA {
	if cell == cpu.PixelOn {
		return p.On
	}
	return p.Off
}

// ParseColor accepts "#rrggbb", "rrggbb" or an SVG colour name.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}

	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("colour %q: want #rrggbb or a colour name", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xFF}, nil
}

// ParsePalette builds a palette from the on and off colour strings.
func ParsePalette(on, off string) (Palette, error) {
	var (
		p   Palette
		err error
	)
	if p.On, err = ParseColor(on); err != nil {
		return p, err
	}
	if p.Off, err = ParseColor(off); err != nil {
		return p, err
	}
	return p, nil
}
