package invaders

// ShiftRegister is the sole stateful I/O peripheral of interest: a 16-bit
// shift register fed one byte at a time through port 4, read back through
// an offset window set through port 2.
type ShiftRegister struct {
	value  uint16
	offset byte // 3 bits, always in [0, 7]
}

// WriteOffset handles OUT port 2: only the low 3 bits of b are kept.
func (s *ShiftRegister) WriteOffset(b byte) {
	s.offset = b & 0x07
}

// WriteValue handles OUT port 4: b becomes the new high byte, the previous
// high byte becomes the new low byte.
func (s *ShiftRegister) WriteValue(b byte) {
	s.value = (s.value >> 8) | (uint16(b) << 8)
}

// Read handles IN port 3. Offset 0 yields the high byte of value; offset 7
// yields a byte spanning the high/low boundary.
func (s *ShiftRegister) Read() byte {
	return byte((s.value >> (8 - s.offset)) & 0xFF)
}

// P1 controller bits. Bit 3 is wired permanently high; the rest are set by
// the host's keyboard-state snapshot once per frame.
const (
	P1Coin  byte = 0x01
	P1Start byte = 0x04
	p1Fixed byte = 0x08
	P1Fire  byte = 0x10
	P1Left  byte = 0x20
	P1Right byte = 0x40
)

// InputLatch holds the OR of currently pressed P1 controller bits. Reset to
// its fixed-bit baseline once per frame, before polling.
type InputLatch struct {
	value byte
}

// NewInputLatch returns a latch at its frame-start baseline.
func NewInputLatch() *InputLatch {
	l := &InputLatch{}
	l.Reset()
	return l
}

// Reset restores the fixed, always-set bit and clears every key bit. Called
// once per frame before the host polls input.
func (l *InputLatch) Reset() {
	l.value = p1Fixed
}

// SetBit sets or clears one of the P1Coin/P1Start/P1Fire/P1Left/P1Right bits.
func (l *InputLatch) SetBit(mask byte, pressed bool) {
	if pressed {
		l.value |= mask
	} else {
		l.value &^= mask
	}
}

// Read handles IN port 1.
func (l *InputLatch) Read() byte {
	return l.value
}

// FixedLatch is a constant byte returned for ports whose value never
// changes at runtime: the P2 controller/DIP latch (port 2) and the
// dummy DIP-switch port (port 0). Second-player input and configurable DIP
// switches are both explicitly out of scope.
type FixedLatch byte

// Read handles an IN port backed by a constant.
func (f FixedLatch) Read() byte { return byte(f) }

// Fixed port values, per the cabinet's wiring and the ROM's startup checks.
const (
	DipSwitchValue byte = 0x8F
	P2LatchValue   byte = 0x00
)

// OutputSink accepts writes on a port with no further effect of its own: the
// sound triggers (ports 3, 5) and the watchdog kick (port 6). A later sound
// backend can subscribe to Last via a wrapping handler without changing this
// type.
type OutputSink struct {
	Last byte
}

// Write handles an OUT port backed by a sink.
func (s *OutputSink) Write(v byte) { s.Last = v }
