package chip8

import "fmt"

// Op identifies one of the 35 operation variants of the instruction set.
type Op uint8

// The operation variants. Suffixes distinguish variants sharing a
// mnemonic: Byte operands are immediate kk values, Reg operands are data
// registers.
const (
	OpUnknown Op = iota

	OpSys  // 0nnn - ignored, machine language call on original hardware
	OpCls  // 00E0 - clear display
	OpRet  // 00EE - return from subroutine
	OpJp   // 1nnn - jump to nnn
	OpCall // 2nnn - call subroutine at nnn

	OpSeByte  // 3xkk - skip if Vx == kk
	OpSneByte // 4xkk - skip if Vx != kk
	OpSeReg   // 5xy0 - skip if Vx == Vy
	OpLdByte  // 6xkk - Vx = kk
	OpAddByte // 7xkk - Vx += kk, no carry flag

	OpLdReg  // 8xy0 - Vx = Vy
	OpOr     // 8xy1 - Vx |= Vy
	OpAnd    // 8xy2 - Vx &= Vy
	OpXor    // 8xy3 - Vx ^= Vy
	OpAddReg // 8xy4 - Vx += Vy, VF = carry
	OpSub    // 8xy5 - Vx -= Vy, VF = no borrow
	OpShr    // 8xy6 - VF = Vx & 1, Vx >>= 1
	OpSubn   // 8xy7 - Vx = Vy - Vx, VF = no borrow
	OpShl    // 8xyE - VF = Vx >> 7, Vx <<= 1
	OpSneReg // 9xy0 - skip if Vx != Vy

	OpLdI  // Annn - I = nnn
	OpJpV0 // Bnnn - jump to nnn + V0
	OpRnd  // Cxkk - Vx = random byte & kk
	OpDrw  // Dxyn - draw n-byte sprite at (Vx, Vy), VF = collision

	OpSkp  // Ex9E - skip if key Vx is pressed
	OpSknp // ExA1 - skip if key Vx is not pressed

	OpLdFromDelay // Fx07 - Vx = delay timer
	OpLdKey       // Fx0A - wait for key press, Vx = key
	OpLdDelay     // Fx15 - delay timer = Vx
	OpLdSound     // Fx18 - sound timer = Vx
	OpAddI        // Fx1E - I += Vx
	OpLdFont      // Fx29 - I = font sprite address for digit Vx
	OpLdBCD       // Fx33 - memory[I..I+2] = BCD of Vx
	OpStoreRegs   // Fx55 - memory[I..I+x] = V0..Vx
	OpLoadRegs    // Fx65 - V0..Vx = memory[I..I+x]
)

// Instruction is a decoded instruction word with all operand fields
// extracted. The field layout of a word is fixed:
//
//	x   bits 8-11, data register index
//	y   bits 4-7, data register index
//	n   bits 0-3, sprite height
//	kk  bits 0-7, immediate byte
//	nnn bits 0-11, address
type Instruction struct {
	Word uint16
	Op   Op

	X   byte
	Y   byte
	N   byte
	KK  byte
	NNN uint16
}

// Decode turns a 16-bit instruction word into an Instruction. A word
// matching none of the 35 defined variants fails with ErrUnknownOpcode;
// the returned Instruction still carries the raw word for diagnostics.
func Decode(word uint16) (Instruction, error) {
	in := Instruction{
		Word: word,
		X:    byte(word>>8) & 0x0F,
		Y:    byte(word>>4) & 0x0F,
		N:    byte(word) & 0x0F,
		KK:   byte(word),
		NNN:  word & 0x0FFF,
	}

	switch word >> 12 {
	case 0x0:
		switch word & 0x00FF {
		case 0xE0:
			in.Op = OpCls
		case 0xEE:
			in.Op = OpRet
		default:
			in.Op = OpSys
		}
	case 0x1:
		in.Op = OpJp
	case 0x2:
		in.Op = OpCall
	case 0x3:
		in.Op = OpSeByte
	case 0x4:
		in.Op = OpSneByte
	case 0x5:
		if in.N == 0 {
			in.Op = OpSeReg
		}
	case 0x6:
		in.Op = OpLdByte
	case 0x7:
		in.Op = OpAddByte
	case 0x8:
		switch in.N {
		case 0x0:
			in.Op = OpLdReg
		case 0x1:
			in.Op = OpOr
		case 0x2:
			in.Op = OpAnd
		case 0x3:
			in.Op = OpXor
		case 0x4:
			in.Op = OpAddReg
		case 0x5:
			in.Op = OpSub
		case 0x6:
			in.Op = OpShr
		case 0x7:
			in.Op = OpSubn
		case 0xE:
			in.Op = OpShl
		}
	case 0x9:
		if in.N == 0 {
			in.Op = OpSneReg
		}
	case 0xA:
		in.Op = OpLdI
	case 0xB:
		in.Op = OpJpV0
	case 0xC:
		in.Op = OpRnd
	case 0xD:
		in.Op = OpDrw
	case 0xE:
		switch word & 0x00FF {
		case 0x9E:
			in.Op = OpSkp
		case 0xA1:
			in.Op = OpSknp
		}
	case 0xF:
		switch word & 0x00FF {
		case 0x07:
			in.Op = OpLdFromDelay
		case 0x0A:
			in.Op = OpLdKey
		case 0x15:
			in.Op = OpLdDelay
		case 0x18:
			in.Op = OpLdSound
		case 0x1E:
			in.Op = OpAddI
		case 0x29:
			in.Op = OpLdFont
		case 0x33:
			in.Op = OpLdBCD
		case 0x55:
			in.Op = OpStoreRegs
		case 0x65:
			in.Op = OpLoadRegs
		}
	}

	if in.Op == OpUnknown {
		return in, fmt.Errorf("%w: %#04x", ErrUnknownOpcode, word)
	}
	return in, nil
}
