package cpu

import (
	"log/slog"
	"math/rand/v2"
)

const (
	// DefaultBatchSize is the number of instructions run per Cycle.
	DefaultBatchSize = 50

	flag = 0xF // VF doubles as carry, borrow and collision flag
)

// Keypad holds the pressed state of the sixteen hex keys.
type Keypad [16]bool

type EMU struct {
	opcode     Instruction
	memory     Memory
	V          [16]uint8
	I          uint16 //address register
	pc         uint16
	display    Framebuffer
	delayTimer uint8 //counts down once per cycle
	soundTimer uint8 //same as above
	stack      Stack
	keyState   Keypad //tells whether key is pressed or not
	waiting    bool   //blocked in LD Vx, K
	drawn      bool   //framebuffer changed since last Drawn call
	halted     bool   //pc left memory, only Reset or Load resumes
	rom        []byte

	batch  int
	random func() uint8
	log    *slog.Logger
}

type Option func(*EMU)

// WithBatchSize sets the number of instructions executed per Cycle.
func WithBatchSize(n int) Option {
	return func(emu *EMU) {
		if n > 0 {
			emu.batch = n
		}
	}
}

// WithRand replaces the source used by RND.
func WithRand(fn func() uint8) Option {
	return func(emu *EMU) {
		emu.random = fn
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(emu *EMU) {
		emu.log = log
	}
}

// NewEMU returns a machine in power-on state with the font table loaded.
func NewEMU(opts ...Option) *EMU {
	emu := &EMU{
		batch:  DefaultBatchSize,
		random: func() uint8 { return uint8(rand.UintN(256)) },
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(emu)
	}
	emu.Reset()
	return emu
}

// Reset restores power-on state. A loaded ROM is copied back into memory.
func (emu *EMU) Reset() {
	emu.opcode = Instruction{}
	emu.memory = Memory{}
	emu.V = [16]uint8{}
	emu.I = 0
	emu.pc = ProgramStart
	emu.display.Clear()
	emu.delayTimer = 0
	emu.soundTimer = 0
	emu.stack.Reset()
	emu.keyState = Keypad{}
	emu.waiting = false
	emu.halted = false
	emu.drawn = true

	emu.loadFont()
	copy(emu.memory[ProgramStart:], emu.rom)
}

func (emu *EMU) loadFont() {
	copy(emu.memory[FontStart:], FontSet[:])
}

func (emu *EMU) PC() uint16 {
	return emu.pc
}

func (emu *EMU) DelayTimer() uint8 {
	return emu.delayTimer
}

func (emu *EMU) SoundTimer() uint8 {
	return emu.soundTimer
}

// Waiting reports whether the machine is blocked on LD Vx, K.
func (emu *EMU) Waiting() bool {
	return emu.waiting
}

// Halted reports whether a fetch failed because the program counter left
// memory. A halted machine only ticks its timers.
func (emu *EMU) Halted() bool {
	return emu.halted
}

func (emu *EMU) Stack() *Stack {
	return &emu.stack
}

// Framebuffer returns the pixel cells. Callers must not write to it.
func (emu *EMU) Framebuffer() []uint32 {
	return emu.display[:]
}

func (emu *EMU) Display() *Framebuffer {
	return &emu.display
}

// Drawn reports whether the framebuffer changed since the previous call.
func (emu *EMU) Drawn() bool {
	drawn := emu.drawn
	emu.drawn = false
	return drawn
}

func (emu *EMU) SetKey(key int, pressed bool) error {
	if key < 0 || key >= len(emu.keyState) {
		return KeyError(key)
	}
	emu.keyState[key] = pressed
	return nil
}

// SetKeys replaces the whole keypad state. Call only between cycles.
func (emu *EMU) SetKeys(keys Keypad) {
	emu.keyState = keys
}

func (emu *EMU) Keys() Keypad {
	return emu.keyState
}
