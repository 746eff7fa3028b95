package cpu

const (
	Width  = 64
	Height = 32

	PixelOn  uint32 = 0xFFFFFFFF
	PixelOff uint32 = 0
)

// Framebuffer holds one cell per pixel, row major.
type Framebuffer [Width * Height]uint32

func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// Lit reports whether the pixel at (x, y) is on. Coordinates outside the
// screen are never lit.
func (f *Framebuffer) Lit(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return f[y*Width+x] == PixelOn
}

// xor flips the cell at (x, y) and reports whether it was on before.
func (f *Framebuffer) xor(x, y int) (collided bool) {
	cell := &f[y*Width+x]
	collided = *cell == PixelOn
	*cell ^= PixelOn
	return
}
