package clock

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"chyp8/emu/cpu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMachine struct {
	cycles int
	keys   []cpu.Keypad
	err    error
	fb     []uint32
	idle   bool // Drawn reports false
}

func (m *fakeMachine) Cycle() error {
	m.cycles++
	return m.err
}

func (m *fakeMachine) SetKeys(keys cpu.Keypad) {
	m.keys = append(m.keys, keys)
}

func (m *fakeMachine) Framebuffer() []uint32 {
	return m.fb
}

func (m *fakeMachine) Drawn() bool {
	return !m.idle
}

type fakeFrontend struct {
	polls    int
	closeAt  int
	keys     cpu.Keypad
	rendered [][]uint32
}

func (f *fakeFrontend) Closed() bool {
	return f.closeAt > 0 && f.polls >= f.closeAt
}

func (f *fakeFrontend) Poll() cpu.Keypad {
	f.polls++
	return f.keys
}

func (f *fakeFrontend) Render(fb []uint32) {
	f.rendered = append(f.rendered, append([]uint32(nil), fb...))
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestDriver(m Machine, f Frontend, cadence time.Duration) (*Driver, *fakeClock) {
	clk := &fakeClock{now: time.Unix(1000, 0)}
	d := New(m, f, cadence)
	d.Now = clk.Now
	d.Log = slog.New(slog.NewTextHandler(io.Discard, nil))
	return d, clk
}

func TestTick_Cadence(t *testing.T) {
	assert := assert.New(t)

	m := &fakeMachine{fb: []uint32{cpu.PixelOn}}
	f := &fakeFrontend{}
	d, clk := newTestDriver(m, f, time.Millisecond)

	assert.True(d.Tick())
	assert.Equal(1, m.cycles)

	clk.Advance(500 * time.Microsecond)
	assert.False(d.Tick())
	assert.Equal(1, m.cycles)
	assert.Equal(2, f.polls)

	clk.Advance(500 * time.Microsecond)
	assert.True(d.Tick())
	assert.Equal(2, m.cycles)
	assert.Len(f.rendered, 2)
	assert.Equal([]uint32{cpu.PixelOn}, f.rendered[1])
	assert.Equal(uint64(2), d.Cycles())
}

func TestTick_KeysBetweenCycles(t *testing.T) {
	assert := assert.New(t)

	m := &fakeMachine{}
	f := &fakeFrontend{}
	d, clk := newTestDriver(m, f, time.Millisecond)

	f.keys[0x3] = true
	assert.True(d.Tick())

	f.keys[0x3] = false
	f.keys[0x7] = true
	clk.Advance(time.Millisecond)
	assert.True(d.Tick())

	require.Len(t, m.keys, 2)
	assert.True(m.keys[0][0x3])
	assert.False(m.keys[1][0x3])
	assert.True(m.keys[1][0x7])
}

func TestTick_ReportsFaults(t *testing.T) {
	assert := assert.New(t)

	var buf bytes.Buffer
	m := &fakeMachine{err: errors.Join(
		&cpu.ExecError{PC: 0x200, Word: 0x0123, Err: cpu.OpcodeError(0x0123)},
		&cpu.ExecError{PC: 0x202, Word: 0x00EE, Op: cpu.OpRET, Err: cpu.ErrStackUnderflow},
	)}
	d, _ := newTestDriver(m, &fakeFrontend{}, time.Millisecond)
	d.Log = slog.New(slog.NewTextHandler(&buf, nil))

	assert.True(d.Tick())
	assert.Equal(uint64(2), d.Faults())
	assert.Contains(buf.String(), "unknown opcode 0x0123")
	assert.Contains(buf.String(), "pc=0x0202")
	assert.Contains(buf.String(), "stack underflow")
}

func TestRun_UntilClosed(t *testing.T) {
	assert := assert.New(t)

	m := &fakeMachine{}
	f := &fakeFrontend{closeAt: 5}
	d, _ := newTestDriver(m, f, time.Millisecond)

	assert.NoError(d.Run(context.Background()))
	assert.Equal(5, f.polls)
	assert.Equal(1, m.cycles)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	m := &fakeMachine{}
	d, _ := newTestDriver(m, &fakeFrontend{}, 0)
	d.Log = slog.New(slog.NewTextHandler(&buf, nil))
	assert.Equal(t, DefaultCadence, d.Cadence)

	assert.NoError(t, d.Run(ctx))
	assert.Equal(t, 0, m.cycles)
	assert.Contains(t, buf.String(), "stopped")
}

func TestTick_SkipsRenderWhenUndrawn(t *testing.T) {
	assert := assert.New(t)

	m := &fakeMachine{idle: true}
	f := &fakeFrontend{}
	d, clk := newTestDriver(m, f, time.Millisecond)

	assert.True(d.Tick())
	clk.Advance(time.Millisecond)
	assert.True(d.Tick())
	assert.Equal(2, m.cycles)
	assert.Empty(f.rendered)

	m.idle = false
	clk.Advance(time.Millisecond)
	assert.True(d.Tick())
	assert.Len(f.rendered, 1)
}

func TestTick_Machine(t *testing.T) {
	assert := assert.New(t)

	emu := cpu.NewEMU()
	require.NoError(t, emu.Load([]byte{
		0x60, 0x01, // LD V0, 1
		0xF0, 0x29, // LD F, V0
		0xD1, 0x15, // DRW V1, V1, 5
		0x12, 0x06, // JP 0x206
	}))

	f := &fakeFrontend{}
	d, clk := newTestDriver(emu, f, time.Millisecond)

	assert.True(d.Tick())
	require.Len(t, f.rendered, 1)

	lit := 0
	for _, cell := range f.rendered[0] {
		if cell == cpu.PixelOn {
			lit++
		}
	}
	// glyph "1": 20 60 20 20 70
	assert.Equal(1+2+1+1+3, lit)
	assert.True(emu.Display().Lit(2, 0))
	assert.Equal(uint64(0), d.Faults())

	// The program now spins on JP without drawing.
	clk.Advance(time.Millisecond)
	assert.True(d.Tick())
	assert.Len(f.rendered, 1)
}

func TestRun_HaltedMachineReportsOnce(t *testing.T) {
	assert := assert.New(t)

	emu := cpu.NewEMU()
	require.NoError(t, emu.Load([]byte{
		0x60, 0xFF, // LD V0, 0xFF
		0xBF, 0xFF, // JP V0, 0xFFF
	}))

	f := &fakeFrontend{}
	d, clk := newTestDriver(emu, f, time.Millisecond)
	for i := 0; i < 5; i++ {
		assert.True(d.Tick())
		clk.Advance(time.Millisecond)
	}
	assert.True(emu.Halted())
	assert.Equal(uint64(5), d.Cycles())
	assert.Equal(uint64(1), d.Faults())
}
