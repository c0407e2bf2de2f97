package invaders

// LoadMode selects where a ROM image is placed in memory and what startup
// fixups are applied. The host is responsible for producing the raw bytes
// (file reading is outside the core's scope); LoadROM only performs the
// byte-copy and the mode-specific fixup.
type LoadMode int

const (
	// ModeInvaders loads at address 0, the cabinet's normal boot vector.
	ModeInvaders LoadMode = iota
	// ModeCPM loads at 0x100 (the CP/M-80 TPA convention) and stubs the
	// BDOS entry point at 0x0005 with a bare RET, so CP/M-targeted test
	// binaries that call through BDOS for console I/O return immediately
	// instead of jumping into unmapped memory.
	ModeCPM
)

const (
	cpmLoadAddr  uint16 = 0x0100
	cpmBDOSStub  uint16 = 0x0005
	cpmStubRET   byte   = 0xC9
	maxROMLength        = 0x10000 // 64 KiB
)

// LoadAddr returns the address a ROM loaded under mode starts at: 0 for
// ModeInvaders, 0x0100 for ModeCPM. Exposed so callers (the CLI's
// disassembly trace, the CP/M PC reset) don't have to duplicate the
// mode-to-address mapping LoadROM itself uses.
func LoadAddr(mode LoadMode) uint16 {
	if mode == ModeCPM {
		return cpmLoadAddr
	}
	return 0
}

// LoadROM copies data into mem at the address dictated by mode, after
// checking it fits the 64 KiB address space. path is used only to annotate
// the error message; the caller has already read the bytes. Returns a
// *RomError wrapping ErrRomTooLarge if it does not fit.
func LoadROM(mem *Memory, data []byte, mode LoadMode, path string) error {
	addr := LoadAddr(mode)

	if int(addr)+len(data) > maxROMLength {
		return &RomError{Path: path, Size: len(data)}
	}

	mem.Load(addr, data)

	if mode == ModeCPM {
		mem.WriteByte(cpmBDOSStub, cpmStubRET)
	}

	return nil
}
