package dome

// HostStyle is the scroll-related state of the embedding page.
type HostStyle struct {
	Overflow    string
	TouchAction string
	ScrollX     float64
	ScrollY     float64
}

// ScrollHost is implemented by the page or view that embeds the gallery.
// While locked the gallery sets Overflow "hidden" and TouchAction "none"
// and expects the host to stop scrolling; unlocking restores the captured
// style exactly.
type ScrollHost interface {
	HostStyle() HostStyle
	SetHostStyle(HostStyle)
}

// ScrollLock suspends host scrolling while a tile is focused or a touch
// drag is in progress. Lock and Unlock are idempotent, and Unlock is a no-op
// while the enlarging flag is set.
type ScrollLock struct {
	host      ScrollHost
	locked    bool
	enlarging bool
	saved     HostStyle
}

// NewScrollLock creates a lock for host. A nil host tracks state only.
func NewScrollLock(host ScrollHost) *ScrollLock {
	return &ScrollLock{host: host}
}

// Lock captures the host style (once) and suspends scrolling.
func (l *ScrollLock) Lock() {
	if l.locked {
		return
	}
	l.locked = true
	if l.host == nil {
		return
	}
	l.saved = l.host.HostStyle()
	locked := l.saved
	locked.Overflow = "hidden"
	locked.TouchAction = "none"
	l.host.SetHostStyle(locked)
}

// Unlock restores the captured host style. It does nothing when the lock is
// not held or a tile is still enlarging.
func (l *ScrollLock) Unlock() {
	if !l.locked || l.enlarging {
		return
	}
	l.release()
}

// forceUnlock releases regardless of the enlarging flag. Used on teardown.
func (l *ScrollLock) forceUnlock() {
	l.enlarging = false
	if l.locked {
		l.release()
	}
}

func (l *ScrollLock) release() {
	l.locked = false
	if l.host != nil {
		l.host.SetHostStyle(l.saved)
	}
	l.saved = HostStyle{}
}

// SetEnlarging marks whether a focused tile is on screen.
func (l *ScrollLock) SetEnlarging(v bool) {
	l.enlarging = v
}

// Locked reports whether host scrolling is suspended.
func (l *ScrollLock) Locked() bool {
	return l.locked
}

// Enlarging reports whether the enlarging flag is set.
func (l *ScrollLock) Enlarging() bool {
	return l.enlarging
}
