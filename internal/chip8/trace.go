package chip8

import (
	"fmt"

	chip8lib "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// String renders the instruction as conventional assembly, for trace
// logging and debug views. Mnemonics come from the retrogolib CHIP-8
// instruction definitions.
func (in Instruction) String() string {
	name := in.mnemonic()
	if params := in.params(); params != "" {
		return fmt.Sprintf("%s %s", name, params)
	}
	return name
}

// mnemonic returns the instruction name by matching the raw word against
// the retrogolib opcode table. Words the table does not know keep the
// catch-all SYS group name.
func (in Instruction) mnemonic() string {
	firstNibble := int(in.Word >> 12)
	for _, op := range chip8lib.Opcodes[firstNibble] {
		if op.Info.Mask&in.Word == op.Info.Value {
			return op.Instruction.Name
		}
	}
	return "sys"
}

// params formats the operand fields of the instruction according to its
// variant.
func (in Instruction) params() string {
	switch in.Op {
	case OpCls, OpRet:
		return ""
	case OpSys, OpJp, OpCall:
		return fmt.Sprintf("$%03X", in.NNN)
	case OpJpV0:
		return fmt.Sprintf("V0, $%03X", in.NNN)
	case OpSeByte, OpSneByte, OpLdByte, OpAddByte, OpRnd:
		return fmt.Sprintf("V%X, $%02X", in.X, in.KK)
	case OpSeReg, OpSneReg, OpLdReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpSubn:
		return fmt.Sprintf("V%X, V%X", in.X, in.Y)
	case OpShr, OpShl, OpSkp, OpSknp:
		return fmt.Sprintf("V%X", in.X)
	case OpLdI:
		return fmt.Sprintf("I, $%03X", in.NNN)
	case OpDrw:
		return fmt.Sprintf("V%X, V%X, $%X", in.X, in.Y, in.N)
	case OpLdFromDelay:
		return fmt.Sprintf("V%X, DT", in.X)
	case OpLdKey:
		return fmt.Sprintf("V%X, K", in.X)
	case OpLdDelay:
		return fmt.Sprintf("DT, V%X", in.X)
	case OpLdSound:
		return fmt.Sprintf("ST, V%X", in.X)
	case OpAddI:
		return fmt.Sprintf("I, V%X", in.X)
	case OpLdFont:
		return fmt.Sprintf("F, V%X", in.X)
	case OpLdBCD:
		return fmt.Sprintf("B, V%X", in.X)
	case OpStoreRegs:
		return fmt.Sprintf("[I], V%X", in.X)
	case OpLoadRegs:
		return fmt.Sprintf("V%X, [I]", in.X)
	}
	return fmt.Sprintf("$%04X", in.Word)
}
