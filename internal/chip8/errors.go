package chip8

import "errors"

// Errors surfaced by the virtual machine. All of them are wrapped with
// address or opcode detail at the point of failure, so callers match them
// with errors.Is.
var (
	// ErrMemoryFault is returned for any memory access outside 0x000-0xFFF,
	// including block operations whose range crosses the end of memory.
	ErrMemoryFault = errors.New("memory access out of range")

	// ErrROMTooLarge is returned by LoadROM when the program does not fit
	// into the space between ProgramStart and the end of memory.
	ErrROMTooLarge = errors.New("ROM larger than program space")

	// ErrStackOverflow is returned when a CALL is executed with all stack
	// slots in use.
	ErrStackOverflow = errors.New("call stack overflow")

	// ErrStackUnderflow is returned when a RET is executed with an empty
	// call stack.
	ErrStackUnderflow = errors.New("call stack underflow")

	// ErrUnknownOpcode is returned when an instruction word matches none of
	// the defined operations. The caller decides whether to halt or skip.
	ErrUnknownOpcode = errors.New("unknown opcode")
)
