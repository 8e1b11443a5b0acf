package chip8

import "sync"

// NumKeys is the number of keys on the hex keypad.
const NumKeys = 16

// Keypad tracks the state of the 16-key input surface and the key-wait
// mode entered by the LD Vx, K instruction.
//
// Press and Release are the only write path into the keypad from outside
// the machine and may be called from a different goroutine than the one
// stepping the CPU; they are the single synchronization point the machine
// needs.
type Keypad struct {
	mu   sync.Mutex
	keys [NumKeys]bool

	waiting  bool
	waitReg  byte
	captured byte
	hasKey   bool
}

// Press records a key-down event. If the machine is waiting for a key and
// no key has been captured yet, the press edge is captured for delivery on
// the next instruction step.
func (k *Keypad) Press(key byte) {
	key &= 0x0F
	k.mu.Lock()
	defer k.mu.Unlock()

	k.keys[key] = true
	if k.waiting && !k.hasKey {
		k.captured = key
		k.hasKey = true
	}
}

// Release records a key-up event. Releases never affect the wait state.
func (k *Keypad) Release(key byte) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys[key&0x0F] = false
}

// Pressed reports whether the given key is currently held down.
func (k *Keypad) Pressed(key byte) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.keys[key&0x0F]
}

// Waiting reports whether the keypad is in key-wait mode with no key
// captured yet.
func (k *Keypad) Waiting() bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.waiting && !k.hasKey
}

// await enters key-wait mode on behalf of LD Vx, K. The register receiving
// the captured key is remembered until delivery.
func (k *Keypad) await(register byte) {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.waiting = true
	k.hasKey = false
	k.waitReg = register
}

// takeCaptured consumes a captured key press and leaves key-wait mode. It
// returns the target register, the key value and whether a key was
// available.
func (k *Keypad) takeCaptured() (register, key byte, ok bool) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if !k.waiting || !k.hasKey {
		return 0, 0, false
	}
	k.waiting = false
	k.hasKey = false
	return k.waitReg, k.captured, true
}

// reset returns the keypad to its power-on state.
func (k *Keypad) reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.keys = [NumKeys]bool{}
	k.waiting = false
	k.hasKey = false
	k.waitReg = 0
}
