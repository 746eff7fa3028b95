package cpu

import (
	"fmt"
	"os"
)

// LoadROM reads filename and copies it into memory at 0x200.
func (emu *EMU) LoadROM(filename string) error {
	rom, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("read rom %s: %w", filename, err)
	}
	if err := emu.Load(rom); err != nil {
		return fmt.Errorf("load rom %s: %w", filename, err)
	}
	return nil
}

// Load copies rom into memory at 0x200 and resets the machine.
func (emu *EMU) Load(rom []byte) error {
	if len(rom) > maxRomSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrROMTooLarge, len(rom), maxRomSize)
	}
	emu.rom = append([]byte(nil), rom...)
	emu.Reset()
	return nil
}
