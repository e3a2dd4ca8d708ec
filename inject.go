package dome

import "github.com/hajimehoshi/ebiten/v2"

// syntheticEvent represents a single injected pointer or key event.
// Screen coordinates are used, identical to real input.
type syntheticEvent struct {
	screenX, screenY float64
	pressed          bool
	pointer          PointerType
	key              ebiten.Key
	isKey            bool
}

// InjectPress queues a mouse press at the given screen coordinates.
// The event is consumed on the next Update.
func (g *Gallery) InjectPress(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{screenX: x, screenY: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (g *Gallery) InjectMove(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{screenX: x, screenY: y, pressed: true})
}

// InjectRelease queues a pointer release at the given screen coordinates.
func (g *Gallery) InjectRelease(x, y float64) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{screenX: x, screenY: y})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two frames.
func (g *Gallery) InjectClick(x, y float64) {
	g.InjectPress(x, y)
	g.InjectRelease(x, y)
}

// InjectDrag queues a full drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). Minimum frames is 2 (press + release).
func (g *Gallery) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	g.injectDrag(fromX, fromY, toX, toY, frames, PointerMouse)
}

// InjectTouchDrag is InjectDrag with touch semantics: the scroll lock is
// held for the gesture and taps use the wider touch tolerance.
func (g *Gallery) InjectTouchDrag(fromX, fromY, toX, toY float64, frames int) {
	g.injectDrag(fromX, fromY, toX, toY, frames, PointerTouch)
}

func (g *Gallery) injectDrag(fromX, fromY, toX, toY float64, frames int, pt PointerType) {
	if frames < 2 {
		frames = 2
	}
	g.injectQueue = append(g.injectQueue, syntheticEvent{screenX: fromX, screenY: fromY, pressed: true, pointer: pt})
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		g.injectQueue = append(g.injectQueue, syntheticEvent{
			screenX: fromX + (toX-fromX)*t,
			screenY: fromY + (toY-fromY)*t,
			pressed: true,
			pointer: pt,
		})
	}
	g.injectQueue = append(g.injectQueue, syntheticEvent{screenX: toX, screenY: toY, pointer: pt})
}

// InjectKey queues a key press.
func (g *Gallery) InjectKey(k ebiten.Key) {
	g.injectQueue = append(g.injectQueue, syntheticEvent{key: k, isKey: true})
}

// processInjectedInput pops one event from the inject queue and feeds it
// through the pointer machine. Returns true if an event was consumed (real
// input is skipped that frame).
func (g *Gallery) processInjectedInput() bool {
	if len(g.injectQueue) == 0 {
		return false
	}
	evt := g.injectQueue[0]
	copy(g.injectQueue, g.injectQueue[1:])
	g.injectQueue = g.injectQueue[:len(g.injectQueue)-1]

	if evt.isKey {
		g.handleKey(evt.key)
		return true
	}
	g.processPointer(evt.screenX, evt.screenY, evt.pressed, evt.pointer)
	return true
}
