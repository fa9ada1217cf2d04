package sim

// FrameLoop is a cooperative scheduler holding at most one pending frame
// callback. The host runs it once per display refresh.
type FrameLoop struct {
	pending func()
	seq     uint64
}

// NewFrameLoop returns an empty loop.
func NewFrameLoop() *FrameLoop {
	return &FrameLoop{}
}

// Schedule makes fn the pending callback, replacing any other. The returned
// cancel func drops fn if it is still pending and is a no-op otherwise.
func (l *FrameLoop) Schedule(fn func()) (cancel func()) {
	l.seq++
	id := l.seq
	l.pending = fn
	return func() {
		if l.seq == id {
			l.pending = nil
		}
	}
}

// Pending reports whether a callback is waiting.
func (l *FrameLoop) Pending() bool { return l.pending != nil }

// RunFrame pops the pending callback and runs it. It reports whether a
// callback ran.
func (l *FrameLoop) RunFrame() bool {
	fn := l.pending
	if fn == nil {
		return false
	}
	l.pending = nil
	fn()
	return true
}
