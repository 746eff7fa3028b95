package cpu

const (
	StackLimit = 16 // Maximum call depth
)

// Stack is the fixed-capacity return address stack.
type Stack struct {
	data [StackLimit]uint16
	sp   int
}

func (s *Stack) Push(addr uint16) error {
	if s.Full() {
		return ErrStackOverflow
	}
	s.data[s.sp] = addr
	s.sp++
	return nil
}

func (s *Stack) Pop() (addr uint16, err error) {
	if s.Empty() {
		return 0, ErrStackUnderflow
	}
	s.sp--
	return s.data[s.sp], nil
}

func (s *Stack) Peek() (addr uint16, ok bool) {
	if s.Empty() {
		return
	}
	return s.data[s.sp-1], true
}

func (s *Stack) Len() int {
	return s.sp
}

func (s *Stack) Empty() bool {
	return s.sp == 0
}

func (s *Stack) Full() bool {
	return s.sp == StackLimit
}

func (s *Stack) Reset() {
	*s = Stack{}
}
