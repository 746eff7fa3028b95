package screen

import (
	"fmt"
	"strconv"
	"strings"

	"chyp8/emu/cpu"

	"github.com/faiface/pixel/pixelgl"
)

// KeyMap assigns a keyboard button to each keypad slot.
type KeyMap [16]pixelgl.Button

// ButtonReader is satisfied by *pixelgl.Window.
type ButtonReader interface {
	Pressed(button pixelgl.Button) bool
}

// DefaultKeyMap lays the hex keypad over the left of a QWERTY keyboard:
//
//	1 2 3 C      1 2 3 4
//	4 5 6 D  <-  Q W E R
//	7 8 9 E      A S D F
//	A 0 B F      Z X C V
var DefaultKeyMap = KeyMap{
	0x1: pixelgl.Key1, 0x2: pixelgl.Key2, 0x3: pixelgl.Key3, 0xC: pixelgl.Key4,
	0x4: pixelgl.KeyQ, 0x5: pixelgl.KeyW, 0x6: pixelgl.KeyE, 0xD: pixelgl.KeyR,
	0x7: pixelgl.KeyA, 0x8: pixelgl.KeyS, 0x9: pixelgl.KeyD, 0xE: pixelgl.KeyF,
	0xA: pixelgl.KeyZ, 0x0: pixelgl.KeyX, 0xB: pixelgl.KeyC, 0xF: pixelgl.KeyV,
}

var buttonNames = func() map[string]pixelgl.Button {
	names := make(map[string]pixelgl.Button)
	for i := 0; i < 26; i++ {
		names[string(rune('A'+i))] = pixelgl.KeyA + pixelgl.Button(i)
	}
	for i := 0; i < 10; i++ {
		names[string(rune('0'+i))] = pixelgl.Key0 + pixelgl.Button(i)
	}
	for i := 0; i < 10; i++ {
		names["KP"+string(rune('0'+i))] = pixelgl.KeyKP0 + pixelgl.Button(i)
	}
	names["SPACE"] = pixelgl.KeySpace
	names["UP"] = pixelgl.KeyUp
	names["DOWN"] = pixelgl.KeyDown
	names["LEFT"] = pixelgl.KeyLeft
	names["RIGHT"] = pixelgl.KeyRight
	return names
}()

// ParseKeyMap overrides slots of DefaultKeyMap. Keys of overrides are hex
// slot numbers ("0".."f"), values are button names such as "Q" or "KP7".
func ParseKeyMap(overrides map[string]string) (KeyMap, error) {
	km := DefaultKeyMap
	for slot, name := range overrides {
		n, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(slot), "0x"), 16, 8)
		if err != nil || n >= uint64(len(km)) {
			return km, fmt.Errorf("keymap: bad keypad slot %q", slot)
		}
		button, ok := buttonNames[strings.ToUpper(strings.TrimSpace(name))]
		if !ok {
			return km, fmt.Errorf("keymap: unknown key %q for slot %s", name, slot)
		}
		km[n] = button
	}
	return km, nil
}

// Poll reads the pressed state of every mapped button.
func (km KeyMap) Poll(r ButtonReader) (keys cpu.Keypad) {
	for slot, button := range km {
		keys[slot] = r.Pressed(button)
	}
	return
}
