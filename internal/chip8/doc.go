// Package chip8 implements the CHIP-8 virtual machine core.
//
// # Architecture Overview
//
// CHIP-8 is an interpreted programming language from the 1970s designed
// for simple games. A machine consists of 4KB of memory, sixteen 8-bit
// data registers V0-VF, a 16-bit index register I, a 16-entry call stack,
// two 60Hz countdown timers, a 64x32 monochrome framebuffer and a 16-key
// hex keypad. All instructions are 2 bytes, stored big-endian, and decode
// into one of 35 operation variants.
//
// # Memory Layout
//
//   - 0x000-0x1FF: reserved interpreter area; the font set lives at
//     FontStart (0x050)
//   - ProgramStart (0x200) - MaxAddress (0xFFF): program and data area
//
// # Clock Domains
//
// The machine exposes two independent entry points instead of running a
// loop of its own:
//
//  1. Machine.Step executes exactly one instruction. The driver calls it
//     at whatever instruction rate it wants.
//  2. Machine.TickTimers counts the delay and sound timers down by one.
//     The driver calls it at the fixed 60Hz timer rate.
//
// The only suspension point is the LD Vx, K instruction: it puts the
// machine into a key-wait state in which Step becomes a no-op until a key
// press arrives through Machine.PressKey.
//
// # Error Handling
//
// Structural failures (memory faults, stack overflow/underflow, unknown
// opcodes, oversized ROMs) surface as wrapped sentinel errors from Step
// and LoadROM. A failing instruction leaves the machine exactly as it was,
// with the program counter on the faulting instruction, so the caller can
// halt or skip without desynchronizing observers.
package chip8
