package cpu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Cycle runs one batch of instructions and then ticks both timers. Errors
// do not stop the batch; they are returned joined once it completes. The
// batch ends early when the machine blocks waiting for a key or the program
// counter leaves memory. The failed fetch halts the machine, so it is
// returned once and later cycles run no instructions.
func (emu *EMU) Cycle() error {
	var errs []error

	for i := 0; i < emu.batch && !emu.halted; i++ {
		if err := emu.Step(); err != nil {
			errs = append(errs, err)
		}
		if emu.waiting {
			break
		}
	}

	emu.soundTimerHandler()
	emu.delayTimerHandler()

	return errors.Join(errs...)
}

// Step fetches, decodes and executes a single instruction.
func (emu *EMU) Step() error {
	pc := emu.pc
	word, err := emu.memory.Word(int(pc))
	if err != nil {
		emu.halted = true
		return &ExecError{PC: pc, Fetch: true, Err: err}
	}

	emu.opcode = Decode(word)
	emu.pc += 2

	if emu.log.Enabled(context.Background(), slog.LevelDebug) {
		emu.log.Debug(
			"exec",
			"pc", fmt.Sprintf("0x%04x", pc),
			"opcode", fmt.Sprintf("0x%04x", word),
			"instr", emu.opcode.String(),
		)
	}

	if err := emu.execute(emu.opcode); err != nil {
		return &ExecError{PC: pc, Word: word, Op: emu.opcode.Op, Err: err}
	}
	return nil
}

func (emu *EMU) soundTimerHandler() {
	if emu.soundTimer > 0 {
		emu.soundTimer--
	}
}

func (emu *EMU) delayTimerHandler() {
	if emu.delayTimer > 0 {
		emu.delayTimer--
	}
}
