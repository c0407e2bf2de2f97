package invaders

// interruptState is the single bit toggled by the interrupt controller
// between the two halves of a frame.
type interruptState bool

const (
	stateA interruptState = false
	stateB interruptState = true
)

// RST opcodes issued at the two scheduled interrupt points.
const (
	RST1 byte = 0xCF // RST 1: jump to 0x0008, mid-frame (scanline 96)
	RST2 byte = 0xD7 // RST 2: jump to 0x0010, end-of-frame (scanline 223)
)

// InterruptController alternates between RST 1 and RST 2 on successive
// calls to Next, standing in for the source's two-element deque (which was
// always refilled to the same two values every frame — a plain toggle).
type InterruptController struct {
	state interruptState
}

// Next returns the next RST opcode to inject and flips the toggle.
func (c *InterruptController) Next() byte {
	if c.state == stateA {
		c.state = stateB
		return RST1
	}
	c.state = stateA
	return RST2
}
