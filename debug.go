package dome

import (
	"fmt"
	"os"
)

// debugLog prints per-frame render stats to stderr.
func (g *Gallery) debugLog(stats renderStats) {
	if !g.debug {
		return
	}
	c := g.ctrl
	_, _ = fmt.Fprintf(os.Stderr,
		"[dome] tiles: %d drawn | %d culled | draw calls: %d | draw: %v\n",
		stats.tilesDrawn, stats.tilesCulled, stats.drawCalls, stats.drawTime)
	_, _ = fmt.Fprintf(os.Stderr,
		"[dome] rotation: %.2f,%.2f | radius: %.1f | gesture: %s | focus: %s | transform writes: %d\n",
		c.rotation.X, c.rotation.Y, c.liveRadius, c.gesture, c.focus.phase, c.frames.applied)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("dome debug: %s on disposed node %q", op, n.Name))
	}
}
