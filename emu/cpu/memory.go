package cpu

const (
	MemorySize   = 0x1000
	ProgramStart = 0x200
	maxRomSize   = MemorySize - ProgramStart
)

// Memory is the flat 4KB address space. All accessors are bounds checked.
type Memory [MemorySize]uint8

func (m *Memory) Read(addr int) (uint8, error) {
	if addr < 0 || addr >= MemorySize {
		return 0, &MemoryError{Addr: addr}
	}
	return m[addr], nil
}

func (m *Memory) Write(addr int, value uint8) error {
	if addr < 0 || addr >= MemorySize {
		return &MemoryError{Addr: addr}
	}
	m[addr] = value
	return nil
}

// Span returns the n bytes starting at addr as a slice that aliases memory.
func (m *Memory) Span(addr, n int) ([]uint8, error) {
	if addr < 0 || n < 0 || addr+n > MemorySize {
		return nil, &MemoryError{Addr: addr, Len: n}
	}
	return m[addr : addr+n], nil
}

// Word reads the big-endian instruction word at addr.
func (m *Memory) Word(addr int) (uint16, error) {
	b, err := m.Span(addr, 2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}
