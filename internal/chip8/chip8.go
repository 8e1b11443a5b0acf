package chip8

import "math/rand"

// Config adjusts machine construction.
type Config struct {
	// Rand is the byte source for the RND instruction. Tests substitute a
	// deterministic source to assert exact masked results.
	Rand func() byte
}

// DefaultConfig returns the configuration used for normal emulation, with
// RND backed by math/rand.
func DefaultConfig() Config {
	return Config{
		Rand: func() byte {
			return byte(rand.Intn(256))
		},
	}
}

// Machine is a complete CHIP-8 virtual machine: memory, register file,
// call stack, timers, framebuffer and keypad, mutated in place by
// instruction execution.
//
// The machine performs no waiting and no I/O of its own. A driver calls
// Step at its chosen instruction rate and TickTimers at the fixed 60Hz
// timer rate; renderers read frames via DisplaySnapshot, audio reads
// SoundTimer, and input feeds PressKey/ReleaseKey. Press and release may
// come from a different goroutine; everything else must be serialized by
// the driver.
type Machine struct {
	mem     *Memory
	regs    Registers
	timers  Timers
	display Display
	keypad  Keypad
	rand    func() byte
}

// New returns a machine in power-on state, ready for LoadROM.
func New(cfg Config) *Machine {
	randByte := cfg.Rand
	if randByte == nil {
		randByte = DefaultConfig().Rand
	}
	m := &Machine{
		mem:  NewMemory(),
		rand: randByte,
	}
	m.regs.Reset()
	return m
}

// LoadROM loads a program into the program area. The machine should be
// Reset before loading a second program.
func (m *Machine) LoadROM(rom []byte) error {
	return m.mem.LoadROM(rom)
}

// Reset restores the power-on state: cleared memory with the font set in
// place, zeroed registers and timers, empty display and keypad, program
// counter at ProgramStart.
func (m *Machine) Reset() {
	m.mem = NewMemory()
	m.regs.Reset()
	m.timers = Timers{}
	m.display.Clear()
	m.keypad.reset()
}

// Step fetches, decodes and executes exactly one instruction and returns
// it for tracing.
//
// While the machine is awaiting a key press, Step is a no-op that leaves
// the program counter and all registers unchanged. When a key press has
// been delivered via PressKey, the next Step stores the key into the
// target register, advances the program counter and returns to normal
// execution.
//
// A failing instruction is never partially applied: on error the program
// counter points at the faulting instruction and no other state has
// changed. Whether to halt, or to Skip the instruction and carry on, is
// the caller's policy.
func (m *Machine) Step() (Instruction, error) {
	if register, key, ok := m.keypad.takeCaptured(); ok {
		m.regs.V[register] = key
		m.regs.PC += instructionSize
		return Instruction{Op: OpLdKey, X: register}, nil
	}
	if m.keypad.Waiting() {
		return Instruction{}, nil
	}

	pc := m.regs.PC
	word, err := m.mem.ReadWord(pc)
	if err != nil {
		return Instruction{}, err
	}
	in, err := Decode(word)
	if err != nil {
		return in, err
	}

	m.regs.PC += instructionSize
	if err := m.execute(in); err != nil {
		m.regs.PC = pc
		return in, err
	}
	return in, nil
}

// Skip advances the program counter over the current instruction without
// executing it. Drivers use it to implement a skip-and-log fault policy.
func (m *Machine) Skip() {
	m.regs.PC += instructionSize
}

// TickTimers performs one 60Hz countdown step on the delay and sound
// timers. The timers keep counting down while the machine is awaiting a
// key press.
func (m *Machine) TickTimers() {
	m.timers.Tick()
}

// PressKey delivers a key-down event for a hex key (0x0-0xF). Safe to call
// from a different goroutine than the one stepping the machine.
func (m *Machine) PressKey(key byte) {
	m.keypad.Press(key)
}

// ReleaseKey delivers a key-up event for a hex key (0x0-0xF). Safe to call
// from a different goroutine than the one stepping the machine.
func (m *Machine) ReleaseKey(key byte) {
	m.keypad.Release(key)
}

// AwaitingKey reports whether execution is suspended on LD Vx, K.
func (m *Machine) AwaitingKey() bool {
	return m.keypad.Waiting()
}

// DisplaySnapshot returns a copy of the framebuffer for rendering.
func (m *Machine) DisplaySnapshot() Frame {
	return m.display.Snapshot()
}

// DelayTimer returns the current delay timer value.
func (m *Machine) DelayTimer() byte {
	return m.timers.Delay()
}

// SoundTimer returns the current sound timer value. Audio collaborators
// emit sound while it is above zero.
func (m *Machine) SoundTimer() byte {
	return m.timers.Sound()
}

// PC returns the current program counter, for trace output and debug
// views.
func (m *Machine) PC() uint16 {
	return m.regs.PC
}

// Registers returns a copy of the register file for debug views.
func (m *Machine) Registers() Registers {
	return m.regs
}
