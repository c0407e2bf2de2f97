package invaders

// InputSource is the host's keyboard-state snapshot, polled once at the
// start of every frame and folded into the P1 input latch. Implementations
// live outside this package (window/event handling is explicitly out of
// scope for the core).
type InputSource interface {
	// Pressed reports whether the control identified by mask (one of the
	// P1* bit constants) is currently held down.
	Pressed(mask byte) bool
}

// Presenter receives one paletted surface per completed frame. Window
// creation, scaling and blitting are the host's concern.
type Presenter interface {
	Present(surface *[FinalHeight][FinalWidth]RGB)
}

// Scene ties a Machine and Scheduler to a host's InputSource and Presenter,
// running frames back to back until Stop is called or the CPU hits an
// unknown opcode.
type Scene struct {
	machine   *Machine
	scheduler *Scheduler
	input     InputSource
	present   Presenter

	stopped bool
}

// NewScene returns a Scene ready to run, wiring host in and present out each
// frame through m and s.
func NewScene(m *Machine, s *Scheduler, in InputSource, present Presenter) *Scene {
	return &Scene{machine: m, scheduler: s, input: in, present: present}
}

// Stop requests that RunUntilStopped return after the current frame.
func (sc *Scene) Stop() { sc.stopped = true }

// RunOnce resets the P1 latch to its frame-start baseline, polls input into
// it, runs exactly one frame, and presents the resulting surface. Returns the first
// error the scheduler reports, typically an *UnknownOpcodeError.
func (sc *Scene) RunOnce() error {
	sc.pollInput()

	if err := sc.scheduler.RunFrame(); err != nil {
		return err
	}

	sc.present.Present(sc.scheduler.rasterizer.Surface())
	return nil
}

// RunUntilStopped runs frames back to back until Stop is called or a frame
// returns an error.
func (sc *Scene) RunUntilStopped() error {
	for !sc.stopped {
		if err := sc.RunOnce(); err != nil {
			return err
		}
	}
	return nil
}

func (sc *Scene) pollInput() {
	sc.machine.P1.Reset()
	for _, mask := range []byte{P1Coin, P1Start, P1Fire, P1Left, P1Right} {
		sc.machine.P1.SetBit(mask, sc.input.Pressed(mask))
	}
}
