package chip8

import "fmt"

const (
	// NumRegisters is the number of general purpose data registers.
	NumRegisters = 16

	// StackDepth is the number of return addresses the call stack holds.
	StackDepth = 16

	// FlagRegister indexes VF, the register arithmetic, shift and draw
	// operations store their flag result in.
	FlagRegister = 0xF

	// instructionSize is the size of every instruction word in bytes.
	instructionSize = 2
)

// Registers holds the register file of the machine: the sixteen 8-bit data
// registers V0-VF, the 16-bit index register I, the program counter and the
// call stack.
//
// I is a full 16-bit register and is not masked on assignment; operations
// that use it as an address validate it against the memory range instead.
type Registers struct {
	V  [NumRegisters]byte
	I  uint16
	PC uint16

	stack [StackDepth]uint16
	sp    byte
}

// Reset restores the power-on register state with the program counter at
// ProgramStart.
func (r *Registers) Reset() {
	*r = Registers{PC: ProgramStart}
}

// StackSize returns the number of return addresses currently on the stack.
func (r *Registers) StackSize() int {
	return int(r.sp)
}

// push saves a return address on the call stack.
func (r *Registers) push(address uint16) error {
	if r.sp >= StackDepth {
		return fmt.Errorf("%w: %d frames in use", ErrStackOverflow, r.sp)
	}
	r.stack[r.sp] = address
	r.sp++
	return nil
}

// pop removes and returns the most recently saved return address.
func (r *Registers) pop() (uint16, error) {
	if r.sp == 0 {
		return 0, ErrStackUnderflow
	}
	r.sp--
	return r.stack[r.sp], nil
}
