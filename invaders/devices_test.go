package invaders

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftRegisterOffsetWindow(t *testing.T) {
	s := &ShiftRegister{}

	s.WriteValue(0x00) // value = 0x0000
	s.WriteValue(0xFF) // value = 0xFF00

	s.WriteOffset(0x00)
	assert.Equal(t, byte(0xFF), s.Read())

	s.WriteOffset(0x07)
	// offset 7 spans the high/low boundary: bits [1..8] of value, i.e. the
	// top 7 bits of the low byte plus the lowest bit of the high byte.
	want := byte((uint16(0xFF00) >> (8 - 7)) & 0xFF)
	assert.Equal(t, want, s.Read())
}

func TestShiftRegisterOffsetMasksTo3Bits(t *testing.T) {
	s := &ShiftRegister{}
	s.WriteOffset(0xFF)
	assert.Equal(t, byte(0x07), s.offset)
}

func TestInputLatchFixedBitAlwaysSet(t *testing.T) {
	l := NewInputLatch()
	assert.Equal(t, p1Fixed, l.Read())

	l.SetBit(P1Fire, true)
	assert.Equal(t, p1Fixed|P1Fire, l.Read())

	l.Reset()
	assert.Equal(t, p1Fixed, l.Read())
}

func TestInputLatchSetAndClearBit(t *testing.T) {
	l := NewInputLatch()

	l.SetBit(P1Left, true)
	l.SetBit(P1Right, true)
	assert.Equal(t, p1Fixed|P1Left|P1Right, l.Read())

	l.SetBit(P1Left, false)
	assert.Equal(t, p1Fixed|P1Right, l.Read())
}

func TestOutputSinkRecordsLastWrite(t *testing.T) {
	s := &OutputSink{}
	s.Write(0x01)
	s.Write(0x04)
	assert.Equal(t, byte(0x04), s.Last)
}

func TestInterruptControllerAlternates(t *testing.T) {
	c := &InterruptController{}
	assert.Equal(t, RST1, c.Next())
	assert.Equal(t, RST2, c.Next())
	assert.Equal(t, RST1, c.Next())
}
