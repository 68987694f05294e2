package loop

// FrameSignal coalesces render requests into a one-slot channel. A request
// made while one is already pending is dropped.
type FrameSignal struct {
	ch chan struct{}
}

// NewFrameSignal creates an empty signal.
func NewFrameSignal() *FrameSignal {
	return &FrameSignal{ch: make(chan struct{}, 1)}
}

// RequestRender marks a frame as pending without blocking.
func (f *FrameSignal) RequestRender() {
	select {
	case f.ch <- struct{}{}:
	default:
	}
}

// C receives once per pending frame.
func (f *FrameSignal) C() <-chan struct{} { return f.ch }
