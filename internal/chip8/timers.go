package chip8

// TimerRate is the rate in Hz at which the delay and sound timers count
// down. The driver is expected to call Machine.TickTimers at this rate,
// independently of the instruction clock.
const TimerRate = 60

// Timers holds the two independent 8-bit countdown timers. Both decrement
// by one per tick while above zero and floor at zero. The sound timer
// conventionally signals "emit sound" to an audio collaborator while it is
// above zero; neither timer affects instruction execution.
type Timers struct {
	delay byte
	sound byte
}

// Tick performs one 60Hz countdown step on both timers.
func (t *Timers) Tick() {
	if t.delay > 0 {
		t.delay--
	}
	if t.sound > 0 {
		t.sound--
	}
}

// Delay returns the current delay timer value.
func (t *Timers) Delay() byte {
	return t.delay
}

// SetDelay sets the delay timer.
func (t *Timers) SetDelay(value byte) {
	t.delay = value
}

// Sound returns the current sound timer value.
func (t *Timers) Sound() byte {
	return t.sound
}

// SetSound sets the sound timer.
func (t *Timers) SetSound(value byte) {
	t.sound = value
}
