// Package clock drives a machine from a frontend at a fixed cadence.
package clock

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"chyp8/emu/cpu"
)

// DefaultCadence is the minimum time between two cycles.
const DefaultCadence = 10 * time.Microsecond

type Machine interface {
	Cycle() error
	SetKeys(keys cpu.Keypad)
	Framebuffer() []uint32
	// Drawn reports whether the framebuffer changed since the previous call.
	Drawn() bool
}

type Frontend interface {
	Closed() bool
	Poll() cpu.Keypad
	Render(fb []uint32)
}

type Driver struct {
	Machine  Machine
	Frontend Frontend
	Cadence  time.Duration
	Now      func() time.Time
	Log      *slog.Logger

	last   time.Time
	cycles uint64
	faults uint64
}

func New(m Machine, f Frontend, cadence time.Duration) *Driver {
	if cadence <= 0 {
		cadence = DefaultCadence
	}
	return &Driver{
		Machine:  m,
		Frontend: f,
		Cadence:  cadence,
		Now:      time.Now,
		Log:      slog.Default(),
	}
}

// Run loops until the frontend closes or ctx is done. Both are a normal stop.
func (d *Driver) Run(ctx context.Context) error {
	d.Log.Info("running", "cadence", d.Cadence)
	for !d.Frontend.Closed() && ctx.Err() == nil {
		d.Tick()
	}
	d.Log.Info("stopped", "cycles", d.cycles, "faults", d.faults)
	return nil
}

// Tick polls input and, once the cadence has elapsed since the previous
// cycle, runs a cycle and renders the framebuffer if the cycle drew to it.
// It reports whether a cycle ran.
func (d *Driver) Tick() bool {
	keys := d.Frontend.Poll()

	now := d.Now()
	if !d.last.IsZero() && now.Sub(d.last) < d.Cadence {
		return false
	}
	d.last = now

	d.Machine.SetKeys(keys)
	d.report(d.Machine.Cycle())
	d.cycles++

	if d.Machine.Drawn() {
		d.Frontend.Render(d.Machine.Framebuffer())
	}
	return true
}

func (d *Driver) report(err error) {
	if err == nil {
		return
	}
	errs := []error{err}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs = joined.Unwrap()
	}
	for _, err := range errs {
		d.faults++
		attrs := []any{"err", err}
		var ee *cpu.ExecError
		if errors.As(err, &ee) {
			attrs = append(attrs,
				"pc", fmt.Sprintf("0x%04x", ee.PC),
				"opcode", fmt.Sprintf("0x%04x", ee.Word),
			)
		}
		d.Log.Warn("fault", attrs...)
	}
}

func (d *Driver) Cycles() uint64 {
	return d.cycles
}

func (d *Driver) Faults() uint64 {
	return d.faults
}
