package dome

// frameScheduler coalesces transform writes so at most one is pending per
// tick. A later request replaces an earlier one that has not run yet.
type frameScheduler struct {
	pending bool
	fn      func()
	applied int // writes executed since creation, for debug stats
}

func (f *frameScheduler) request(fn func()) {
	f.fn = fn
	f.pending = true
}

// flush runs the pending write, if any, and reports whether one ran.
func (f *frameScheduler) flush() bool {
	if !f.pending {
		return false
	}
	fn := f.fn
	f.pending = false
	f.fn = nil
	fn()
	f.applied++
	return true
}

func (f *frameScheduler) cancel() {
	f.pending = false
	f.fn = nil
}
