package cpu

import (
	"strings"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Op identifies one instruction of the CHIP-8 set.
type Op uint8

const (
	OpUnknown Op = iota
	OpCLS        // 00E0
	OpRET        // 00EE
	OpJP         // 1nnn
	OpCALL       // 2nnn
	OpSEImm      // 3xkk
	OpSNEImm     // 4xkk
	OpSEReg      // 5xy0
	OpLDImm      // 6xkk
	OpADDImm     // 7xkk
	OpLDReg      // 8xy0
	OpOR         // 8xy1
	OpAND        // 8xy2
	OpXOR        // 8xy3
	OpADDReg     // 8xy4
	OpSUB        // 8xy5
	OpSHR        // 8xy6
	OpSUBN       // 8xy7
	OpSHL        // 8xyE
	OpSNEReg     // 9xy0
	OpLDI        // Annn
	OpJPV0       // Bnnn
	OpRND        // Cxkk
	OpDRW        // Dxyn
	OpSKP        // Ex9E
	OpSKNP       // ExA1
	OpLDVxDT     // Fx07
	OpLDVxK      // Fx0A
	OpLDDTVx     // Fx15
	OpLDSTVx     // Fx18
	OpADDI       // Fx1E
	OpLDF        // Fx29
	OpLDB        // Fx33
	OpLDStore    // Fx55
	OpLDLoad     // Fx65
	opCount
)

// opcode ties an Op to its instruction in the chip8 opcode table, the
// table value it matches and the operand form printed after the mnemonic.
type opcode struct {
	ins   *chip8.Instruction
	value uint16
	form  string
}

var opcodes = [opCount]opcode{
	OpCLS:     {chip8.Cls, 0x00E0, ""},
	OpRET:     {chip8.Ret, 0x00EE, ""},
	OpJP:      {chip8.Jp, 0x1000, "addr"},
	OpCALL:    {chip8.Call, 0x2000, "addr"},
	OpSEImm:   {chip8.Se, 0x3000, "Vx, byte"},
	OpSNEImm:  {chip8.Sne, 0x4000, "Vx, byte"},
	OpSEReg:   {chip8.Se, 0x5000, "Vx, Vy"},
	OpLDImm:   {chip8.Ld, 0x6000, "Vx, byte"},
	OpADDImm:  {chip8.Add, 0x7000, "Vx, byte"},
	OpLDReg:   {chip8.Ld, 0x8000, "Vx, Vy"},
	OpOR:      {chip8.Or, 0x8001, "Vx, Vy"},
	OpAND:     {chip8.And, 0x8002, "Vx, Vy"},
	OpXOR:     {chip8.Xor, 0x8003, "Vx, Vy"},
	OpADDReg:  {chip8.Add, 0x8004, "Vx, Vy"},
	OpSUB:     {chip8.Sub, 0x8005, "Vx, Vy"},
	OpSHR:     {chip8.Shr, 0x8006, "Vx"},
	OpSUBN:    {chip8.Subn, 0x8007, "Vx, Vy"},
	OpSHL:     {chip8.Shl, 0x800E, "Vx"},
	OpSNEReg:  {chip8.Sne, 0x9000, "Vx, Vy"},
	OpLDI:     {chip8.Ld, 0xA000, "I, addr"},
	OpJPV0:    {chip8.Jp, 0xB000, "V0, addr"},
	OpRND:     {chip8.Rnd, 0xC000, "Vx, byte"},
	OpDRW:     {chip8.Drw, 0xD000, "Vx, Vy, n"},
	OpSKP:     {chip8.Skp, 0xE09E, "Vx"},
	OpSKNP:    {chip8.Sknp, 0xE0A1, "Vx"},
	OpLDVxDT:  {chip8.Ld, 0xF007, "Vx, DT"},
	OpLDVxK:   {chip8.Ld, 0xF00A, "Vx, K"},
	OpLDDTVx:  {chip8.Ld, 0xF015, "DT, Vx"},
	OpLDSTVx:  {chip8.Ld, 0xF018, "ST, Vx"},
	OpADDI:    {chip8.Add, 0xF01E, "I, Vx"},
	OpLDF:     {chip8.Ld, 0xF029, "F, Vx"},
	OpLDB:     {chip8.Ld, 0xF033, "B, Vx"},
	OpLDStore: {chip8.Ld, 0xF055, "[I], Vx"},
	OpLDLoad:  {chip8.Ld, 0xF065, "Vx, [I]"},
}

// opByValue indexes opcodes by their table value.
var opByValue = func() map[uint16]Op {
	m := make(map[uint16]Op, opCount)
	for op := OpCLS; op < opCount; op++ {
		m[opcodes[op].value] = op
	}
	return m
}()

// String returns the upper cased chip8 mnemonic followed by the operand form.
func (op Op) String() string {
	if op == OpUnknown || op >= opCount {
		return "???"
	}
	oc := opcodes[op]
	name := strings.ToUpper(oc.ins.Name)
	if oc.form == "" {
		return name
	}
	return name + " " + oc.form
}

// Instruction is a decoded opcode word.
type Instruction struct {
	Op   Op
	Word uint16
}

// Decode maps any 16-bit word to exactly one instruction. The word is
// matched against the chip8 opcode table for its first nibble; entries
// without an Op here (SYS addr) and words that match nothing decode to
// OpUnknown.
func Decode(word uint16) Instruction {
	ins := Instruction{Word: word}
	for _, oc := range chip8.Opcodes[int(word>>12)] {
		if oc.Info.Mask&word != oc.Info.Value {
			continue
		}
		op, ok := opByValue[oc.Info.Value]
		if !ok || opcodes[op].ins != oc.Instruction {
			continue
		}
		ins.Op = op
		break
	}
	return ins
}

func (ins Instruction) String() string {
	return ins.Op.String()
}

// Addr returns the low 12 bits (nnn).
func (ins Instruction) Addr() uint16 {
	return ins.Word & 0x0FFF
}

func (ins Instruction) X() uint8 {
	return uint8(ins.Word>>8) & 0xF
}

func (ins Instruction) XKK() (x, kk uint8) {
	return ins.X(), uint8(ins.Word)
}

func (ins Instruction) XY() (x, y uint8) {
	return ins.X(), uint8(ins.Word>>4) & 0xF
}

func (ins Instruction) XYN() (x, y, n uint8) {
	x, y = ins.XY()
	return x, y, uint8(ins.Word) & 0xF
}

// Nibbles splits the word into its four 4-bit fields, most significant first.
func (ins Instruction) Nibbles() (n1, n2, n3, n4 uint8) {
	w := ins.Word
	return uint8(w >> 12), uint8(w>>8) & 0xF, uint8(w>>4) & 0xF, uint8(w) & 0xF
}
