package screen

import (
	"chyp8/emu/cpu"

	"github.com/faiface/pixel"
	"github.com/faiface/pixel/imdraw"
	"github.com/faiface/pixel/pixelgl"
)

const DefaultScale = 8

type Config struct {
	Title   string
	Scale   int
	Palette Palette
	KeyMap  KeyMap
}

type Window struct {
	*pixelgl.Window
	KeyMap  KeyMap
	Palette Palette
	scale   int
	imd     *imdraw.IMDraw
}

// New opens the emulator window. It must be called from the function passed
// to pixelgl.Run.
func New(cfg Config) (*Window, error) {
	if cfg.Scale <= 0 {
		cfg.Scale = DefaultScale
	}
	if cfg.Title == "" {
		cfg.Title = "Chyp8"
	}

	win, err := pixelgl.NewWindow(pixelgl.WindowConfig{
		Title:  cfg.Title,
		Bounds: pixel.R(0, 0, float64(cpu.Width*cfg.Scale), float64(cpu.Height*cfg.Scale)),
		VSync:  true,
	})
	if err != nil {
		return nil, err
	}

	return &Window{
		Window:  win,
		KeyMap:  cfg.KeyMap,
		Palette: cfg.Palette,
		scale:   cfg.Scale,
		imd:     imdraw.New(nil),
	}, nil
}

// Poll processes window events and returns the keypad state.
func (w *Window) Poll() cpu.Keypad {
	w.UpdateInput()
	return w.KeyMap.Poll(w.Window)
}

// Render draws the framebuffer and swaps buffers.
func (w *Window) Render(fb []uint32) {
	w.imd.Clear()
	w.imd.Color = w.Palette.Color(cpu.PixelOn)
	for _, r := range Rects(fb, w.scale) {
		w.imd.Push(r.Min, r.Max)
		w.imd.Rectangle(0)
	}

	w.Clear(w.Palette.Color(cpu.PixelOff))
	w.imd.Draw(w.Window)
	w.Update()
}

// Rects returns one screen rectangle per lit cell. Row 0 of the framebuffer
// is the top of the window, pixel's origin is bottom left.
func Rects(fb []uint32, scale int) []pixel.Rect {
	var rects []pixel.Rect
	s := float64(scale)
	for i, cell := range fb {
		if cell != cpu.PixelOn {
			continue
		}
		x := float64(i % cpu.Width)
		y := float64(cpu.Height - 1 - i/cpu.Width)
		rects = append(rects, pixel.R(x*s, y*s, (x+1)*s, (y+1)*s))
	}
	return rects
}
