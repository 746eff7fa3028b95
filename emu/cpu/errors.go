package cpu

import (
	"errors"
	"fmt"
)

var (
	ErrStackOverflow  = errors.New("stack overflow")
	ErrStackUnderflow = errors.New("stack underflow")
	ErrROMTooLarge    = errors.New("rom too large")
)

// MemoryError reports an access outside the 4KB address space.
type MemoryError struct {
	Addr int
	Len  int
}

func (err *MemoryError) Error() string {
	if err.Len > 1 {
		return fmt.Sprintf("memory access 0x%04x+%d out of range", err.Addr, err.Len)
	}
	return fmt.Sprintf("memory access 0x%04x out of range", err.Addr)
}

// OpcodeError is returned for words that decode to no instruction.
type OpcodeError uint16

func (eo OpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%04x", uint16(eo))
}

func (eo OpcodeError) Is(err error) (ok bool) {
	_, ok = err.(OpcodeError)
	return
}

// FontError is returned when a font glyph is requested for a value above 0xF.
type FontError uint8

func (ef FontError) Error() string {
	return fmt.Sprintf("no font glyph for digit 0x%02x", uint8(ef))
}

// KeyError is returned when a register names a key outside the keypad.
type KeyError int

func (ek KeyError) Error() string {
	return fmt.Sprintf("key 0x%02x out of range", int(ek))
}

// ExecError carries the location of a failed instruction.
type ExecError struct {
	PC    uint16
	Word  uint16
	Op    Op
	Fetch bool
	Err   error
}

func (err *ExecError) Error() string {
	if err.Fetch {
		return fmt.Sprintf("fetch at 0x%04x: %v", err.PC, err.Err)
	}
	return fmt.Sprintf("0x%04x %04x %v: %v", err.PC, err.Word, err.Op, err.Err)
}

func (err *ExecError) Unwrap() error {
	return err.Err
}
