package chip8

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

// newTestMachine returns a machine with the given instruction words loaded
// as a program and a fixed RND source.
func newTestMachine(t *testing.T, words ...uint16) *Machine {
	t.Helper()

	m := New(Config{Rand: func() byte { return 0xAA }})
	rom := make([]byte, 0, len(words)*2)
	for _, word := range words {
		rom = append(rom, byte(word>>8), byte(word))
	}
	assert.NoError(t, m.LoadROM(rom))
	return m
}

func step(t *testing.T, m *Machine) Instruction {
	t.Helper()

	in, err := m.Step()
	assert.NoError(t, err)
	return in
}

func TestExecute_AddRegProperties(t *testing.T) {
	m := newTestMachine(t)
	in := Instruction{Op: OpAddReg, X: 0, Y: 1}

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			m.regs.V[0] = byte(a)
			m.regs.V[1] = byte(b)

			assert.NoError(t, m.execute(in))

			assert.Equal(t, byte(a+b), m.regs.V[0])
			wantCarry := byte(0)
			if a+b > 255 {
				wantCarry = 1
			}
			assert.Equal(t, wantCarry, m.regs.V[FlagRegister], "carry for %d + %d", a, b)
		}
	}
}

func TestExecute_SubProperties(t *testing.T) {
	m := newTestMachine(t)
	in := Instruction{Op: OpSub, X: 0, Y: 1}

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			m.regs.V[0] = byte(a)
			m.regs.V[1] = byte(b)

			assert.NoError(t, m.execute(in))

			assert.Equal(t, byte(a-b), m.regs.V[0])
			wantFlag := byte(0)
			if a >= b {
				wantFlag = 1
			}
			assert.Equal(t, wantFlag, m.regs.V[FlagRegister], "no-borrow for %d - %d", a, b)
		}
	}
}

func TestExecute_SubnProperties(t *testing.T) {
	m := newTestMachine(t)
	in := Instruction{Op: OpSubn, X: 0, Y: 1}

	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			m.regs.V[0] = byte(a)
			m.regs.V[1] = byte(b)

			assert.NoError(t, m.execute(in))

			assert.Equal(t, byte(b-a), m.regs.V[0])
			wantFlag := byte(0)
			if b >= a {
				wantFlag = 1
			}
			assert.Equal(t, wantFlag, m.regs.V[FlagRegister], "no-borrow for %d - %d", b, a)
		}
	}
}

func TestExecute_ShiftProperties(t *testing.T) {
	m := newTestMachine(t)

	for v := 0; v < 256; v++ {
		m.regs.V[3] = byte(v)
		assert.NoError(t, m.execute(Instruction{Op: OpShr, X: 3}))
		assert.Equal(t, byte(v)>>1, m.regs.V[3])
		assert.Equal(t, byte(v)&1, m.regs.V[FlagRegister], "LSB before shift of %#02x", v)

		m.regs.V[3] = byte(v)
		assert.NoError(t, m.execute(Instruction{Op: OpShl, X: 3}))
		assert.Equal(t, byte(v)<<1, m.regs.V[3])
		assert.Equal(t, byte(v)>>7, m.regs.V[FlagRegister], "MSB before shift of %#02x", v)
	}
}

// When a flag operation targets VF itself the flag overwrites the numeric
// result.
func TestExecute_FlagWinsOnVFDestination(t *testing.T) {
	m := newTestMachine(t)

	m.regs.V[FlagRegister] = 200
	m.regs.V[1] = 100
	assert.NoError(t, m.execute(Instruction{Op: OpAddReg, X: FlagRegister, Y: 1}))
	assert.Equal(t, byte(1), m.regs.V[FlagRegister], "carry flag, not the sum")

	m.regs.V[FlagRegister] = 0x81
	assert.NoError(t, m.execute(Instruction{Op: OpShr, X: FlagRegister}))
	assert.Equal(t, byte(1), m.regs.V[FlagRegister], "LSB, not the shifted value")

	m.regs.V[FlagRegister] = 0x81
	assert.NoError(t, m.execute(Instruction{Op: OpShl, X: FlagRegister}))
	assert.Equal(t, byte(1), m.regs.V[FlagRegister], "MSB, not the shifted value")
}

func TestExecute_AddByteWrapsWithoutCarry(t *testing.T) {
	m := newTestMachine(t)

	m.regs.V[2] = 0xFF
	m.regs.V[FlagRegister] = 0xAA
	assert.NoError(t, m.execute(Instruction{Op: OpAddByte, X: 2, KK: 0x03}))

	assert.Equal(t, byte(0x02), m.regs.V[2])
	assert.Equal(t, byte(0xAA), m.regs.V[FlagRegister], "VF untouched")
}

func TestExecute_Logic(t *testing.T) {
	tests := []struct {
		name string
		op   Op
		want byte
	}{
		{"or", OpOr, 0xCC | 0xAA},
		{"and", OpAnd, 0xCC & 0xAA},
		{"xor", OpXor, 0xCC ^ 0xAA},
		{"load", OpLdReg, 0xAA},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t)
			m.regs.V[0] = 0xCC
			m.regs.V[1] = 0xAA

			assert.NoError(t, m.execute(Instruction{Op: tt.op, X: 0, Y: 1}))
			assert.Equal(t, tt.want, m.regs.V[0])
		})
	}
}

func TestExecute_BCDProperty(t *testing.T) {
	m := newTestMachine(t)
	m.regs.I = 0x300

	for v := 0; v < 256; v++ {
		m.regs.V[5] = byte(v)
		assert.NoError(t, m.execute(Instruction{Op: OpLdBCD, X: 5}))

		digits, err := m.mem.ReadBlock(0x300, 3)
		assert.NoError(t, err)
		got := int(digits[0])*100 + int(digits[1])*10 + int(digits[2])
		assert.Equal(t, v, got)
		assert.Equal(t, uint16(0x300), m.regs.I, "I unchanged")
	}
}

func TestExecute_CallAndReturn(t *testing.T) {
	// 0x200: CALL 0x204
	// 0x202: anything, must not run before RET
	// 0x204: RET
	m := newTestMachine(t, 0x2204, 0x6011, 0x00EE)

	step(t, m)
	assert.Equal(t, uint16(0x204), m.PC(), "jumped to subroutine")
	assert.Equal(t, 1, m.regs.StackSize())

	step(t, m)
	assert.Equal(t, uint16(0x202), m.PC(), "returned past the CALL")
	assert.Equal(t, 0, m.regs.StackSize())

	step(t, m)
	assert.Equal(t, byte(0x11), m.regs.V[0])
}

func TestExecute_StackOverflow(t *testing.T) {
	// CALL 0x200: endless self-call, each pushes a frame
	m := newTestMachine(t, 0x2200)

	for i := 0; i < StackDepth; i++ {
		step(t, m)
	}
	assert.Equal(t, StackDepth, m.regs.StackSize())

	_, err := m.Step()
	assert.True(t, errors.Is(err, ErrStackOverflow))
	assert.Equal(t, uint16(0x200), m.PC(), "PC on the faulting instruction")
	assert.Equal(t, StackDepth, m.regs.StackSize())
}

func TestExecute_StackUnderflow(t *testing.T) {
	m := newTestMachine(t, 0x00EE)

	_, err := m.Step()
	assert.True(t, errors.Is(err, ErrStackUnderflow))
	assert.Equal(t, uint16(ProgramStart), m.PC())
}

func TestExecute_Skips(t *testing.T) {
	tests := []struct {
		name    string
		word    uint16
		setup   func(m *Machine)
		skipped bool
	}{
		{"SE byte equal", 0x3042, func(m *Machine) { m.regs.V[0] = 0x42 }, true},
		{"SE byte not equal", 0x3042, func(m *Machine) { m.regs.V[0] = 0x41 }, false},
		{"SNE byte equal", 0x4042, func(m *Machine) { m.regs.V[0] = 0x42 }, false},
		{"SNE byte not equal", 0x4042, func(m *Machine) { m.regs.V[0] = 0x41 }, true},
		{"SE registers equal", 0x5010, func(m *Machine) { m.regs.V[0], m.regs.V[1] = 7, 7 }, true},
		{"SE registers not equal", 0x5010, func(m *Machine) { m.regs.V[0], m.regs.V[1] = 7, 8 }, false},
		{"SNE registers equal", 0x9010, func(m *Machine) { m.regs.V[0], m.regs.V[1] = 7, 7 }, false},
		{"SNE registers not equal", 0x9010, func(m *Machine) { m.regs.V[0], m.regs.V[1] = 7, 8 }, true},
		{"SKP key pressed", 0xE09E, func(m *Machine) { m.regs.V[0] = 0x4; m.PressKey(0x4) }, true},
		{"SKP key not pressed", 0xE09E, func(m *Machine) { m.regs.V[0] = 0x4 }, false},
		{"SKNP key pressed", 0xE0A1, func(m *Machine) { m.regs.V[0] = 0x4; m.PressKey(0x4) }, false},
		{"SKNP key not pressed", 0xE0A1, func(m *Machine) { m.regs.V[0] = 0x4 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMachine(t, tt.word)
			tt.setup(m)

			step(t, m)

			want := uint16(ProgramStart + 2)
			if tt.skipped {
				want = ProgramStart + 4
			}
			assert.Equal(t, want, m.PC())
		})
	}
}

func TestExecute_Jumps(t *testing.T) {
	m := newTestMachine(t, 0x1234)
	step(t, m)
	assert.Equal(t, uint16(0x234), m.PC())

	m = newTestMachine(t, 0xB234)
	m.regs.V[0] = 0x10
	step(t, m)
	assert.Equal(t, uint16(0x244), m.PC())
}

func TestExecute_Rnd(t *testing.T) {
	// fixed random source returns 0xAA
	m := newTestMachine(t, 0xC00F)
	step(t, m)
	assert.Equal(t, byte(0x0A), m.regs.V[0])
}

func TestExecute_IndexRegister(t *testing.T) {
	m := newTestMachine(t, 0xA123, 0xF01E, 0xF01E)

	step(t, m)
	assert.Equal(t, uint16(0x123), m.regs.I)

	m.regs.V[0] = 0xFF
	m.regs.V[FlagRegister] = 0xAA
	step(t, m)
	assert.Equal(t, uint16(0x222), m.regs.I)
	assert.Equal(t, byte(0xAA), m.regs.V[FlagRegister], "ADD I does not touch VF")

	// I may grow past the address range, it only faults when used
	m.regs.I = 0xFFF0
	m.regs.V[0] = 0x20
	step(t, m)
	assert.Equal(t, uint16(0x0010), m.regs.I)
}

func TestExecute_FontAddress(t *testing.T) {
	m := newTestMachine(t, 0xF029)

	m.regs.V[0] = 0xA7 // only the low nibble selects the digit
	step(t, m)
	assert.Equal(t, uint16(FontStart+7*FontSpriteSize), m.regs.I)
}

func TestExecute_RegisterBlockCopies(t *testing.T) {
	m := newTestMachine(t, 0xF355, 0xF365)
	m.regs.I = 0x400
	m.regs.V[0], m.regs.V[1], m.regs.V[2], m.regs.V[3] = 0xDE, 0xAD, 0xBE, 0xEF
	m.regs.V[4] = 0x99

	step(t, m)
	block, err := m.mem.ReadBlock(0x400, 5)
	assert.NoError(t, err)
	assert.Equal(t, []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00}, block, "V4 not stored")
	assert.Equal(t, uint16(0x400), m.regs.I, "I unchanged")

	m.regs.V[0], m.regs.V[1], m.regs.V[2], m.regs.V[3] = 0, 0, 0, 0
	step(t, m)
	assert.Equal(t, byte(0xDE), m.regs.V[0])
	assert.Equal(t, byte(0xEF), m.regs.V[3])
	assert.Equal(t, byte(0x99), m.regs.V[4], "V4 not loaded")
	assert.Equal(t, uint16(0x400), m.regs.I, "I unchanged")
}

func TestExecute_RegisterBlockFault(t *testing.T) {
	m := newTestMachine(t, 0xF355)
	m.regs.I = 0xFFE
	m.regs.V[0], m.regs.V[3] = 0x11, 0x44

	_, err := m.Step()
	assert.True(t, errors.Is(err, ErrMemoryFault))
	assert.Equal(t, uint16(ProgramStart), m.PC(), "PC on the faulting instruction")

	// nothing was written
	value, err := m.mem.ReadByte(0xFFE)
	assert.NoError(t, err)
	assert.Equal(t, byte(0), value)
}

func TestExecute_Draw(t *testing.T) {
	// LD F, V0 / DRW V1, V2, 5 / DRW V1, V2, 5
	m := newTestMachine(t, 0xF029, 0xD125, 0xD125)
	m.regs.V[0] = 0x0
	m.regs.V[1] = 4
	m.regs.V[2] = 2

	step(t, m)
	step(t, m)
	assert.Equal(t, byte(0), m.regs.V[FlagRegister], "no collision on empty screen")
	assert.True(t, m.display.Pixel(4, 2), "top left of the glyph")
	assert.False(t, m.display.Pixel(5, 3), "hole of the 0 glyph")

	step(t, m)
	assert.Equal(t, byte(1), m.regs.V[FlagRegister], "second draw erases and collides")
	assert.Equal(t, Frame{}, m.display.Snapshot())
}

func TestExecute_DrawSpriteFault(t *testing.T) {
	m := newTestMachine(t, 0xD005)
	m.regs.I = 0xFFE

	_, err := m.Step()
	assert.True(t, errors.Is(err, ErrMemoryFault))
	assert.Equal(t, Frame{}, m.display.Snapshot(), "display untouched on fault")
	assert.Equal(t, uint16(ProgramStart), m.PC())
}

func TestExecute_ClearScreen(t *testing.T) {
	m := newTestMachine(t, 0x00E0)
	m.display.DrawSprite(0, 0, []byte{0xFF})

	step(t, m)
	assert.Equal(t, Frame{}, m.display.Snapshot())
	assert.Equal(t, uint16(ProgramStart+2), m.PC())
}

func TestExecute_TimerInstructions(t *testing.T) {
	// LD DT, V0 / LD ST, V1 / LD V2, DT
	m := newTestMachine(t, 0xF015, 0xF118, 0xF207)
	m.regs.V[0] = 60
	m.regs.V[1] = 30

	step(t, m)
	step(t, m)
	assert.Equal(t, byte(60), m.DelayTimer())
	assert.Equal(t, byte(30), m.SoundTimer())

	m.TickTimers()
	step(t, m)
	assert.Equal(t, byte(59), m.regs.V[2])
}

func TestExecute_SysIsIgnored(t *testing.T) {
	m := newTestMachine(t, 0x0ABC)
	want := m.Registers()

	in := step(t, m)
	assert.Equal(t, OpSys, in.Op)
	assert.Equal(t, uint16(ProgramStart+2), m.PC(), "PC advances normally")

	got := m.Registers()
	got.PC = want.PC
	assert.Equal(t, want, got, "no other state changed")
}

func TestExecute_UnknownOpcodeSurfaced(t *testing.T) {
	m := newTestMachine(t, 0xF0FF, 0x6042)

	_, err := m.Step()
	assert.True(t, errors.Is(err, ErrUnknownOpcode))
	assert.Equal(t, uint16(ProgramStart), m.PC(), "PC unchanged")

	// the driver may decide to skip the faulting instruction
	m.Skip()
	step(t, m)
	assert.Equal(t, byte(0x42), m.regs.V[0])
}
