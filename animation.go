package dome

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates several float64 fields of a Node together. Call
// Update(dt) each tick; values are written to the fields directly. When every
// tween finishes, Done is set and OnDone runs once. If the target node is
// disposed, the group stops without calling OnDone.
type TweenGroup struct {
	tweens []*gween.Tween
	fields []*float64
	target *Node

	// Delay holds off the first update by this many seconds.
	Delay float32
	// OnDone runs once, after the final values are written.
	OnDone func()
	// OnUpdate runs after each write, before OnDone.
	OnUpdate func()
	Done     bool
}

// Update advances all tweens by dt seconds.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}
	if g.Delay > 0 {
		g.Delay -= dt
		if g.Delay > 0 {
			return
		}
		dt = -g.Delay
		g.Delay = 0
	}

	allDone := true
	for i, tw := range g.tweens {
		val, finished := tw.Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if g.OnUpdate != nil {
		g.OnUpdate()
	}
	if allDone {
		g.Done = true
		if g.OnDone != nil {
			g.OnDone()
		}
	}
}

// Cancel stops the group where it is. OnDone does not run.
func (g *TweenGroup) Cancel() {
	g.Done = true
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens = append(g.tweens, gween.New(float32(*field), float32(to), duration, fn))
	g.fields = append(g.fields, field)
}

func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}

// enlargeEase approximates the overlay's cubic-bezier(0.2, 0.7, 0.2, 1) curve.
var enlargeEase ease.TweenFunc = ease.OutCubic

// TweenRect animates a screen-space node's translate, scale and alpha toward
// the given values and its Progress from 0 to 1.
func TweenRect(node *Node, tx, ty, sx, sy, alpha float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	d := seconds(duration)
	g := &TweenGroup{target: node}
	node.Progress = 0
	g.add(&node.TX, tx, d, fn)
	g.add(&node.TY, ty, d, fn)
	g.add(&node.SX, sx, d, fn)
	g.add(&node.SY, sy, d, fn)
	g.add(&node.Alpha, alpha, d, fn)
	g.add(&node.Progress, 1, d, fn)
	return g
}

// TweenAlpha animates node.Alpha to the target value.
func TweenAlpha(node *Node, to float64, duration time.Duration, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{target: node}
	g.add(&node.Alpha, to, seconds(duration), fn)
	return g
}
