package chip8

// execute runs one decoded instruction. The program counter has already
// been advanced past the instruction word; control flow operations
// overwrite it and skip operations advance it once more.
//
// Operations validate their operands before writing any state, so a
// failing instruction leaves the machine unchanged.
func (m *Machine) execute(in Instruction) error {
	switch in.Op {
	case OpSys:
		// machine language call on the original hardware, ignored

	case OpCls:
		m.display.Clear()

	case OpRet:
		address, err := m.regs.pop()
		if err != nil {
			return err
		}
		m.regs.PC = address

	case OpJp:
		m.regs.PC = in.NNN

	case OpCall:
		if err := m.regs.push(m.regs.PC); err != nil {
			return err
		}
		m.regs.PC = in.NNN

	case OpSeByte:
		m.skipIf(m.regs.V[in.X] == in.KK)

	case OpSneByte:
		m.skipIf(m.regs.V[in.X] != in.KK)

	case OpSeReg:
		m.skipIf(m.regs.V[in.X] == m.regs.V[in.Y])

	case OpLdByte:
		m.regs.V[in.X] = in.KK

	case OpAddByte:
		// 8-bit wraparound, the carry flag is not touched
		m.regs.V[in.X] += in.KK

	case OpLdReg:
		m.regs.V[in.X] = m.regs.V[in.Y]

	case OpOr:
		m.regs.V[in.X] |= m.regs.V[in.Y]

	case OpAnd:
		m.regs.V[in.X] &= m.regs.V[in.Y]

	case OpXor:
		m.regs.V[in.X] ^= m.regs.V[in.Y]

	case OpAddReg:
		sum := uint16(m.regs.V[in.X]) + uint16(m.regs.V[in.Y])
		m.regs.V[in.X] = byte(sum)
		m.setFlag(sum > 0xFF)

	case OpSub:
		x, y := m.regs.V[in.X], m.regs.V[in.Y]
		m.regs.V[in.X] = x - y
		m.setFlag(x >= y)

	case OpShr:
		lsb := m.regs.V[in.X] & 0x01
		m.regs.V[in.X] >>= 1
		m.regs.V[FlagRegister] = lsb

	case OpSubn:
		x, y := m.regs.V[in.X], m.regs.V[in.Y]
		m.regs.V[in.X] = y - x
		m.setFlag(y >= x)

	case OpShl:
		msb := m.regs.V[in.X] >> 7
		m.regs.V[in.X] <<= 1
		m.regs.V[FlagRegister] = msb

	case OpSneReg:
		m.skipIf(m.regs.V[in.X] != m.regs.V[in.Y])

	case OpLdI:
		m.regs.I = in.NNN

	case OpJpV0:
		m.regs.PC = in.NNN + uint16(m.regs.V[0])

	case OpRnd:
		m.regs.V[in.X] = m.rand() & in.KK

	case OpDrw:
		sprite, err := m.mem.ReadBlock(m.regs.I, uint16(in.N))
		if err != nil {
			return err
		}
		collision := m.display.DrawSprite(m.regs.V[in.X], m.regs.V[in.Y], sprite)
		m.setFlag(collision)

	case OpSkp:
		m.skipIf(m.keypad.Pressed(m.regs.V[in.X]))

	case OpSknp:
		m.skipIf(!m.keypad.Pressed(m.regs.V[in.X]))

	case OpLdFromDelay:
		m.regs.V[in.X] = m.timers.Delay()

	case OpLdKey:
		// Suspend until a key press is delivered. The program counter is
		// moved back onto this instruction; Step delivers the captured key
		// and re-advances it.
		m.regs.PC -= instructionSize
		m.keypad.await(in.X)

	case OpLdDelay:
		m.timers.SetDelay(m.regs.V[in.X])

	case OpLdSound:
		m.timers.SetSound(m.regs.V[in.X])

	case OpAddI:
		// no flag on overflow, I is validated when used as an address
		m.regs.I += uint16(m.regs.V[in.X])

	case OpLdFont:
		m.regs.I = m.mem.FontAddress(m.regs.V[in.X])

	case OpLdBCD:
		value := m.regs.V[in.X]
		bcd := []byte{value / 100 % 10, value / 10 % 10, value % 10}
		return m.mem.WriteBlock(m.regs.I, bcd)

	case OpStoreRegs:
		return m.mem.WriteBlock(m.regs.I, m.regs.V[:in.X+1])

	case OpLoadRegs:
		block, err := m.mem.ReadBlock(m.regs.I, uint16(in.X)+1)
		if err != nil {
			return err
		}
		copy(m.regs.V[:], block)
	}
	return nil
}

// skipIf advances the program counter over the next instruction when the
// condition holds.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.regs.PC += instructionSize
	}
}

// setFlag writes an operation's flag result into VF. Flag writes happen
// after the primary result is stored, so for flag operations targeting VF
// itself the flag wins.
func (m *Machine) setFlag(set bool) {
	if set {
		m.regs.V[FlagRegister] = 1
	} else {
		m.regs.V[FlagRegister] = 0
	}
}
