package invaders

import "io"

// Machine wires a CPU, a Bus, the shift-register and input devices, and the
// interrupt controller together at the documented Space Invaders port
// assignments. It is the long-lived object the scene loop drives frame by
// frame.
type Machine struct {
	CPU     *CPU
	Bus     *Bus
	Shift   *ShiftRegister
	P1      *InputLatch
	sound1  *OutputSink
	sound2  *OutputSink
	watchdog *OutputSink
	Interrupt *InterruptController
}

// NewMachine constructs a Machine with a fresh CPU and Bus, registers the
// shift device, input latches and output sinks at their documented ports,
// and returns it ready to load a ROM into.
func NewMachine(mode PortMode, logOut io.Writer) *Machine {
	bus := NewBus(mode)
	cpu := NewCPU(bus, logOut)

	m := &Machine{
		CPU:       cpu,
		Bus:       bus,
		Shift:     &ShiftRegister{},
		P1:        NewInputLatch(),
		sound1:    &OutputSink{},
		sound2:    &OutputSink{},
		watchdog:  &OutputSink{},
		Interrupt: &InterruptController{},
	}

	bus.RegisterRead(0, func() byte { return DipSwitchValue })
	bus.RegisterRead(1, m.P1.Read)
	bus.RegisterRead(2, func() byte { return P2LatchValue })
	bus.RegisterRead(3, m.Shift.Read)

	bus.RegisterWrite(2, m.Shift.WriteOffset)
	bus.RegisterWrite(3, m.sound1.Write)
	bus.RegisterWrite(4, m.Shift.WriteValue)
	bus.RegisterWrite(5, m.sound2.Write)
	bus.RegisterWrite(6, m.watchdog.Write)

	return m
}

// Inject delivers the next scheduled interrupt (RST 1 or RST 2, alternating)
// if the CPU currently has interrupts enabled; otherwise it is dropped, per
// the interrupt controller's contract.
func (m *Machine) Inject() {
	m.CPU.InjectInterrupt(m.Interrupt.Next())
}
