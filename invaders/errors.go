package invaders

import (
	"fmt"

	"github.com/pkg/errors"
)

// Sentinel error kinds. Callers compare with errors.Is; the wrapped value
// carries the offending opcode/port/size via UnknownOpcodeError etc.
var (
	ErrUnknownOpcode    = errors.New("unknown opcode")
	ErrInvalidReadPort  = errors.New("invalid read port")
	ErrInvalidWritePort = errors.New("invalid write port")
	ErrRomTooLarge      = errors.New("rom too large")
	ErrRomNotFound      = errors.New("rom not found")
)

// UnknownOpcodeError reports a fetched byte with no dispatch entry. Apart
// from a PortError in the bus's StrictMode, it is the only error Step can
// return; every other instruction is total.
type UnknownOpcodeError struct {
	Opcode byte
	PC     uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode %#02x at pc %#04x", e.Opcode, e.PC)
}

func (e *UnknownOpcodeError) Unwrap() error { return ErrUnknownOpcode }

// newUnknownOpcode wraps an UnknownOpcodeError with a stack trace for
// diagnostics, per the pack's convention of wrapping sentinels at the
// boundary where they're first detected.
func newUnknownOpcode(opcode byte, pc uint16) error {
	return errors.WithStack(&UnknownOpcodeError{Opcode: opcode, PC: pc})
}

// PortError reports an access to a port with no registered handler.
type PortError struct {
	Port  byte
	Write bool
}

func (e *PortError) Error() string {
	dir := "read"
	sentinel := ErrInvalidReadPort
	if e.Write {
		dir = "write"
		sentinel = ErrInvalidWritePort
	}
	return fmt.Sprintf("invalid %s port %#02x: %v", dir, e.Port, sentinel)
}

func (e *PortError) Unwrap() error {
	if e.Write {
		return ErrInvalidWritePort
	}
	return ErrInvalidReadPort
}

func newPortError(port byte, write bool) error {
	return errors.WithStack(&PortError{Port: port, Write: write})
}

// RomError reports a problem loading a ROM image before the CPU runs. Exactly
// one of Size (too-large) or Err (not-found / unreadable) is set.
type RomError struct {
	Path string
	Size int
	Err  error
}

func (e *RomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rom %q: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("rom %q: size %d exceeds 64KiB", e.Path, e.Size)
}

func (e *RomError) Unwrap() error {
	if e.Err != nil {
		return ErrRomNotFound
	}
	return ErrRomTooLarge
}
