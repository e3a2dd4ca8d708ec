package dome

import "testing"

type fakeHost struct {
	style HostStyle
	sets  int
}

func (h *fakeHost) HostStyle() HostStyle { return h.style }
func (h *fakeHost) SetHostStyle(s HostStyle) { h.style = s; h.sets++ }

func TestScrollLockRestoresStyle(t *testing.T) {
	orig := HostStyle{Overflow: "auto", TouchAction: "pan-y", ScrollX: 3, ScrollY: 420}
	host := &fakeHost{style: orig}
	l := NewScrollLock(host)

	l.Lock()
	if !l.Locked() {
		t.Fatal("expected locked")
	}
	if host.style.Overflow != "hidden" || host.style.TouchAction != "none" {
		t.Errorf("locked style = %+v", host.style)
	}
	if host.style.ScrollY != 420 {
		t.Errorf("scroll position should be kept, got %v", host.style.ScrollY)
	}

	l.Unlock()
	if l.Locked() {
		t.Fatal("expected unlocked")
	}
	if host.style != orig {
		t.Errorf("restored style = %+v, want %+v", host.style, orig)
	}
}

func TestScrollLockIdempotent(t *testing.T) {
	host := &fakeHost{style: HostStyle{Overflow: "auto"}}
	l := NewScrollLock(host)
	l.Lock()
	l.Lock()
	if host.sets != 1 {
		t.Errorf("double lock wrote host %d times", host.sets)
	}
	l.Unlock()
	l.Unlock()
	if host.sets != 2 {
		t.Errorf("double unlock wrote host %d times total", host.sets)
	}
	if host.style.Overflow != "auto" {
		t.Errorf("overflow = %q", host.style.Overflow)
	}
}

func TestScrollLockEnlargingBlocksUnlock(t *testing.T) {
	host := &fakeHost{style: HostStyle{Overflow: "auto"}}
	l := NewScrollLock(host)
	l.Lock()
	l.SetEnlarging(true)
	l.Unlock()
	if !l.Locked() {
		t.Fatal("unlock must be ignored while enlarging")
	}
	l.SetEnlarging(false)
	l.Unlock()
	if l.Locked() || host.style.Overflow != "auto" {
		t.Errorf("unlock after enlarging cleared: locked=%v style=%+v", l.Locked(), host.style)
	}
}

func TestScrollLockForceUnlock(t *testing.T) {
	host := &fakeHost{style: HostStyle{Overflow: "scroll"}}
	l := NewScrollLock(host)
	l.Lock()
	l.SetEnlarging(true)
	l.forceUnlock()
	if l.Locked() || l.Enlarging() {
		t.Error("forceUnlock should clear both flags")
	}
	if host.style.Overflow != "scroll" {
		t.Errorf("overflow = %q", host.style.Overflow)
	}
}

func TestScrollLockNilHost(t *testing.T) {
	l := NewScrollLock(nil)
	l.Lock()
	if !l.Locked() {
		t.Error("nil host should still track state")
	}
	l.Unlock()
	if l.Locked() {
		t.Error("expected unlocked")
	}
}
