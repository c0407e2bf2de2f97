package invaders

// Timing constants for the cabinet's 2 MHz CPU clock and 60 Hz, 224-line
// display, per the machine's documented frame budget.
const (
	CyclesPerFrame    = 33333
	ScanlinesPerFrame = 224
	CyclesPerScanline = CyclesPerFrame / ScanlinesPerFrame // 148, truncated

	midFrameScanline = 96  // RST 1 fires here
	endFrameScanline = 223 // RST 2 fires here
)

// Scheduler drives one Machine through the scanline-budgeted loop described
// by the cabinet: run CPU.Step until the current scanline's cycle budget is
// exhausted (carrying any overshoot into the next scanline via CPU.Cycles
// itself), injecting the two scheduled interrupts at their fixed scanlines,
// and rasterizing the frame's video RAM into a host-presentable surface once
// per pass.
type Scheduler struct {
	machine    *Machine
	rasterizer *Rasterizer
}

// NewScheduler returns a Scheduler driving m and rendering into r.
func NewScheduler(m *Machine, r *Rasterizer) *Scheduler {
	return &Scheduler{machine: m, rasterizer: r}
}

// RunFrame advances the machine through exactly one 224-scanline frame,
// rasterizing video RAM scanline by scanline and injecting RST 1 / RST 2 at
// their documented lines. Per scanline, it runs CPU.Step until cpu.Cycles
// reaches CyclesPerScanline, then subtracts CyclesPerScanline from it,
// carrying any overshoot (up to one instruction's cost) into the next
// scanline's budget; cpu.Cycles is reset to 0 at the end of the frame.
// Returns the first UnknownOpcodeError (or, in the bus's StrictMode,
// PortError) encountered, if any; the frame is still fully rasterized up to
// that point.
func (s *Scheduler) RunFrame() error {
	cpu := s.machine.CPU

	for line := 0; line < ScanlinesPerFrame; line++ {
		s.rasterizer.RasterizeLine(s.machine.Bus.Memory, line)

		switch line {
		case midFrameScanline:
			s.machine.Inject()
		case endFrameScanline:
			s.machine.Inject()
		}

		for cpu.Cycles < CyclesPerScanline {
			if err := cpu.Step(); err != nil {
				return err
			}
		}
		cpu.Cycles -= CyclesPerScanline
	}

	cpu.Cycles = 0
	s.rasterizer.Rotate()
	return nil
}
