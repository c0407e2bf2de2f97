package invaders

import (
	"testing"

	"github.com/pkg/errors"
)

func newTestCPU() *CPU {
	bus := NewBus(PermissiveMode)
	return NewCPU(bus, nil)
}

// TestInrOverflow covers spec scenario 1: INR B wraps 0xFF to 0x00 and sets
// Z, P (even parity of 0) and A, clears S, and leaves C untouched.
func TestInrOverflow(t *testing.T) {
	cpu := newTestCPU()
	cpu.B = 0xFF
	cpu.Flags.set(FlagC, true) // carry must survive INR

	cpu.inr(0) // B

	tests := []struct {
		got, want interface{}
	}{
		{cpu.B, byte(0x00)},
		{cpu.Flags.has(FlagZ), true},
		{cpu.Flags.has(FlagP), true},
		{cpu.Flags.has(FlagA), true},
		{cpu.Flags.has(FlagC), true},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %v, want %v", tt.got, tt.want)
		}
	}
}

// TestDaaAfterAdd covers spec scenario 2: ADD B then DAA with A=0x99, B=0x01
// ends at A=0x00, Z=1, C=1 (the BCD rollover from 99 to 100).
func TestDaaAfterAdd(t *testing.T) {
	cpu := newTestCPU()
	cpu.A = 0x99
	cpu.B = 0x01

	cpu.addToA(cpu.B, 0)
	cpu.daa()

	tests := []struct {
		got, want interface{}
	}{
		{cpu.A, byte(0x00)},
		{cpu.Flags.has(FlagZ), true},
		{cpu.Flags.has(FlagC), true},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %v, want %v", tt.got, tt.want)
		}
	}
}

// TestCallRetRoundTrip covers spec scenario 3: CALL pushes the return
// address and jumps; RET pops it back, restoring PC and SP.
func TestCallRetRoundTrip(t *testing.T) {
	cpu := newTestCPU()
	cpu.SP = 0x2400
	cpu.PC = 0x0100
	cpu.writeByte(0x0100, 0xCD) // CALL
	cpu.writeWord(0x0101, 0x1000)
	cpu.writeByte(0x1000, 0xC9) // RET

	if err := cpu.Step(); err != nil {
		t.Fatalf("CALL: %v", err)
	}
	if cpu.PC != 0x1000 {
		t.Errorf("PC after CALL = %#04x, want 0x1000", cpu.PC)
	}
	if cpu.SP != 0x23FE {
		t.Errorf("SP after CALL = %#04x, want 0x23fe", cpu.SP)
	}
	if ret := cpu.readWord(cpu.SP); ret != 0x0103 {
		t.Errorf("pushed return address = %#04x, want 0x0103", ret)
	}

	if err := cpu.Step(); err != nil {
		t.Fatalf("RET: %v", err)
	}
	if cpu.PC != 0x0103 {
		t.Errorf("PC after RET = %#04x, want 0x0103", cpu.PC)
	}
	if cpu.SP != 0x2400 {
		t.Errorf("SP after RET = %#04x, want 0x2400", cpu.SP)
	}
}

// TestShiftDeviceSequence covers spec scenario 4: writing two values and then
// an offset to the shift device and reading it back through port 3.
func TestShiftDeviceSequence(t *testing.T) {
	s := &ShiftRegister{}

	s.WriteValue(0xAA) // value = 0xAA00
	s.WriteValue(0xFF) // value = 0xFFAA
	s.WriteOffset(0x02)

	got := s.Read()
	want := byte((uint16(0xFFAA) >> (8 - 2)) & 0xFF)
	if got != want {
		t.Errorf("got %#02x, want %#02x", got, want)
	}
}

// TestCpiEquality covers spec scenario 5: CPI against an equal value sets Z,
// clears C, and leaves A unmodified.
func TestCpiEquality(t *testing.T) {
	cpu := newTestCPU()
	cpu.A = 0x42

	cpu.aluOp(7, 0x42) // CMP with immediate 0x42

	tests := []struct {
		got, want interface{}
	}{
		{cpu.A, byte(0x42)},
		{cpu.Flags.has(FlagZ), true},
		{cpu.Flags.has(FlagC), false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %v, want %v", tt.got, tt.want)
		}
	}
}

// TestRstInjection covers spec scenario 6: injecting RST 1 pushes PC, jumps
// to 0x0008, and disables further interrupts.
func TestRstInjection(t *testing.T) {
	cpu := newTestCPU()
	cpu.SP = 0x2400
	cpu.PC = 0x1234
	cpu.InterruptsEnabled = true

	cpu.InjectInterrupt(RST1)

	tests := []struct {
		got, want interface{}
	}{
		{cpu.readByte(0x23FE), byte(0x34)},
		{cpu.readByte(0x23FF), byte(0x12)},
		{cpu.SP, uint16(0x23FE)},
		{cpu.PC, uint16(0x0008)},
		{cpu.InterruptsEnabled, false},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %v, want %v", tt.got, tt.want)
		}
	}
}

func TestInjectInterruptDroppedWhenDisabled(t *testing.T) {
	cpu := newTestCPU()
	cpu.PC = 0x1234
	cpu.InterruptsEnabled = false

	cpu.InjectInterrupt(RST1)

	if cpu.PC != 0x1234 {
		t.Errorf("PC = %#04x, want unchanged 0x1234", cpu.PC)
	}
}

func TestUnknownOpcode(t *testing.T) {
	cpu := newTestCPU()
	cpu.writeByte(0x0000, 0xDD) // undocumented duplicate, left unpopulated

	err := cpu.Step()
	if err == nil {
		t.Fatal("expected an error for opcode 0xDD")
	}
	var uoe *UnknownOpcodeError
	if !errors.As(err, &uoe) {
		t.Fatalf("error %v is not an *UnknownOpcodeError", err)
	}
	if uoe.Opcode != 0xDD {
		t.Errorf("Opcode = %#02x, want 0xdd", uoe.Opcode)
	}
	if !errors.Is(err, ErrUnknownOpcode) {
		t.Error("error does not match ErrUnknownOpcode")
	}
}

// TestStrictModeUnmappedPortIsFatal covers spec §7: an IN/OUT to an
// unmapped port is fatal in StrictMode, unlike PermissiveMode.
func TestStrictModeUnmappedPortIsFatal(t *testing.T) {
	bus := NewBus(StrictMode)
	cpu := NewCPU(bus, nil)
	cpu.writeByte(0x0000, 0xDB) // IN
	cpu.writeByte(0x0001, 0x2A) // port 42, unmapped

	err := cpu.Step()
	if err == nil {
		t.Fatal("expected an error for an unmapped port in StrictMode")
	}
	if !errors.Is(err, ErrInvalidReadPort) {
		t.Errorf("error %v does not match ErrInvalidReadPort", err)
	}
}

// TestPermissiveModeUnmappedPortIsNotFatal covers the PermissiveMode half
// of the same contract: Step succeeds and A reads back 0xFF.
func TestPermissiveModeUnmappedPortIsNotFatal(t *testing.T) {
	cpu := newTestCPU()
	cpu.writeByte(0x0000, 0xDB) // IN
	cpu.writeByte(0x0001, 0x2A) // port 42, unmapped

	if err := cpu.Step(); err != nil {
		t.Fatalf("unexpected error in PermissiveMode: %v", err)
	}
	if cpu.A != 0xFF {
		t.Errorf("A = %#02x, want 0xff", cpu.A)
	}
}

func TestPushPopPSW(t *testing.T) {
	cpu := newTestCPU()
	cpu.A = 0x3C
	cpu.Flags.SetByte(0xC3)
	cpu.SP = 0x2400

	cpu.execute(0xF5, 0) // PUSH PSW
	cpu.execute(0xC1, 0) // POP B, to capture exactly what was pushed

	if cpu.B != 0x3C {
		t.Errorf("pushed A byte = %#02x, want 0x3c", cpu.B)
	}
	if cpu.C != cpu.Flags.Byte() {
		t.Errorf("pushed flags byte = %#02x, want %#02x", cpu.C, cpu.Flags.Byte())
	}
}
