// Package cpu implements the CHIP-8 virtual machine.
//
// The machine has 4KB of memory with the font table at 0x50 and programs
// loaded at 0x200, sixteen 8-bit registers V0-VF where VF is the flag
// register, a 16-bit address register I, a sixteen entry call stack, delay
// and sound timers, a sixteen key keypad and a 64x32 framebuffer.
//
// Cycle executes a fixed batch of instructions and then decrements the
// timers. Faults such as unknown opcodes, stack overflow or out of range
// memory access are returned as errors and never stop emulation.
package cpu
