package cpu

// execute runs one decoded instruction. The program counter already points
// past it. Guards run before any state is touched so a failed instruction
// leaves the machine as it found it.
func (emu *EMU) execute(ins Instruction) error {
	switch ins.Op {
	case OpCLS:
		emu.display.Clear()
		emu.drawn = true

	case OpRET:
		addr, err := emu.stack.Pop()
		if err != nil {
			return err
		}
		emu.pc = addr

	case OpJP:
		emu.pc = ins.Addr()

	case OpCALL:
		if err := emu.stack.Push(emu.pc); err != nil {
			return err
		}
		emu.pc = ins.Addr()

	case OpSEImm:
		x, kk := ins.XKK()
		emu.skipIf(emu.V[x] == kk)

	case OpSNEImm:
		x, kk := ins.XKK()
		emu.skipIf(emu.V[x] != kk)

	case OpSEReg:
		x, y := ins.XY()
		emu.skipIf(emu.V[x] == emu.V[y])

	case OpSNEReg:
		x, y := ins.XY()
		emu.skipIf(emu.V[x] != emu.V[y])

	case OpLDImm:
		x, kk := ins.XKK()
		emu.V[x] = kk

	case OpADDImm:
		x, kk := ins.XKK()
		emu.V[x] += kk

	case OpLDReg:
		x, y := ins.XY()
		emu.V[x] = emu.V[y]

	case OpOR:
		x, y := ins.XY()
		emu.V[x] |= emu.V[y]

	case OpAND:
		x, y := ins.XY()
		emu.V[x] &= emu.V[y]

	case OpXOR:
		x, y := ins.XY()
		emu.V[x] ^= emu.V[y]

	case OpADDReg:
		x, y := ins.XY()
		sum := uint16(emu.V[x]) + uint16(emu.V[y])
		emu.V[flag] = boolByte(sum > 0xFF)
		emu.V[x] = uint8(sum)

	case OpSUB:
		x, y := ins.XY()
		vx, vy := emu.V[x], emu.V[y]
		emu.V[flag] = boolByte(vx > vy)
		emu.V[x] = vx - vy

	case OpSUBN:
		x, y := ins.XY()
		vx, vy := emu.V[x], emu.V[y]
		emu.V[flag] = boolByte(vy > vx)
		emu.V[x] = vy - vx

	case OpSHR:
		x := ins.X()
		vx := emu.V[x]
		emu.V[flag] = vx & 0x01
		emu.V[x] = vx >> 1

	case OpSHL:
		x := ins.X()
		vx := emu.V[x]
		emu.V[flag] = vx >> 7
		emu.V[x] = vx << 1

	case OpLDI:
		emu.I = ins.Addr()

	case OpJPV0:
		emu.pc = ins.Addr() + uint16(emu.V[0])

	case OpRND:
		x, kk := ins.XKK()
		emu.V[x] = emu.random() & kk

	case OpDRW:
		return emu.draw(ins.XYN())

	case OpSKP:
		pressed, err := emu.keyIn(ins.X())
		if err != nil {
			return err
		}
		emu.skipIf(pressed)

	case OpSKNP:
		pressed, err := emu.keyIn(ins.X())
		if err != nil {
			return err
		}
		emu.skipIf(!pressed)

	case OpLDVxDT:
		emu.V[ins.X()] = emu.delayTimer

	case OpLDVxK:
		emu.waitKey(ins.X())

	case OpLDDTVx:
		emu.delayTimer = emu.V[ins.X()]

	case OpLDSTVx:
		emu.soundTimer = emu.V[ins.X()]

	case OpADDI:
		emu.I += uint16(emu.V[ins.X()])

	case OpLDF:
		addr, err := glyphAddr(emu.V[ins.X()])
		if err != nil {
			return err
		}
		emu.I = addr

	case OpLDB:
		dst, err := emu.memory.Span(int(emu.I), 3)
		if err != nil {
			return err
		}
		value := emu.V[ins.X()]
		dst[0] = value / 100
		dst[1] = value / 10 % 10
		dst[2] = value % 10

	case OpLDStore:
		x := int(ins.X())
		dst, err := emu.memory.Span(int(emu.I), x+1)
		if err != nil {
			return err
		}
		copy(dst, emu.V[:x+1])

	case OpLDLoad:
		x := int(ins.X())
		src, err := emu.memory.Span(int(emu.I), x+1)
		if err != nil {
			return err
		}
		copy(emu.V[:x+1], src)

	default:
		return OpcodeError(ins.Word)
	}

	return nil
}

func (emu *EMU) skipIf(cond bool) {
	if cond {
		emu.pc += 2
	}
}

func (emu *EMU) keyIn(x uint8) (bool, error) {
	key := int(emu.V[x])
	if key >= len(emu.keyState) {
		return false, KeyError(key)
	}
	return emu.keyState[key], nil
}

// waitKey stores the lowest pressed key in Vx. With no key down the
// program counter is rewound so the instruction runs again next cycle.
func (emu *EMU) waitKey(x uint8) {
	for key, pressed := range emu.keyState {
		if pressed {
			emu.V[x] = uint8(key)
			emu.waiting = false
			return
		}
	}
	emu.pc -= 2
	emu.waiting = true
}

// draw XORs an n-byte sprite from I onto the screen at (Vx, Vy). The origin
// wraps around the screen; pixels past the right or bottom edge are clipped.
func (emu *EMU) draw(x, y, n uint8) error {
	sprite, err := emu.memory.Span(int(emu.I), int(n))
	if err != nil {
		return err
	}

	originX := int(emu.V[x]) % Width
	originY := int(emu.V[y]) % Height

	emu.V[flag] = 0
	for row, bits := range sprite {
		py := originY + row
		if py >= Height {
			break
		}
		for col := 0; col < 8; col++ {
			px := originX + col
			if px >= Width {
				break
			}
			if bits&(0x80>>col) == 0 {
				continue
			}
			if emu.display.xor(px, py) {
				emu.V[flag] = 1
			}
		}
	}
	emu.drawn = true

	return nil
}

func boolByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
