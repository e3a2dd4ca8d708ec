package dome

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// NodeKind identifies what a node represents in the gallery tree.
type NodeKind uint8

const (
	NodeContainer NodeKind = iota // grouping only, no visual
	NodeSphere                    // carries the global rotation matrix
	NodeTile                      // one image quad on the sphere
	NodeReference                 // invisible probe used to measure a tile
	NodeBackdrop                  // dimmer behind the focused overlay
	NodeOverlay                   // the enlarged focused image
	NodeClosing                   // snapshot of the overlay animating back
)

func (k NodeKind) String() string {
	switch k {
	case NodeContainer:
		return "container"
	case NodeSphere:
		return "sphere"
	case NodeTile:
		return "tile"
	case NodeReference:
		return "reference"
	case NodeBackdrop:
		return "backdrop"
	case NodeOverlay:
		return "overlay"
	case NodeClosing:
		return "closing"
	}
	return "unknown"
}

// nodeIDCounter is a plain counter; the gallery is single-threaded.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is one element of the gallery tree. Sphere, tile and reference nodes
// live in 3D stage space and use Local. Backdrop, overlay and closing nodes
// live in screen space and use Rect plus the TX/TY/SX/SY transform.
type Node struct {
	ID   uint32
	Name string
	Kind NodeKind

	Parent   *Node
	children []*Node

	// 3D transform relative to the parent.
	Local mgl64.Mat4
	// Quad size in stage pixels (tile, reference).
	Width, Height float64
	// Index into the gallery's tile slice, -1 when not tied to a tile.
	TileIndex int

	// Layout rect in screen pixels and a top-left-origin translate and scale
	// applied on top of it (backdrop, overlay, closing).
	Rect           Rect
	TX, TY, SX, SY float64
	// Radius is the corner radius in layout pixels, before SX/SY apply.
	Radius float64
	// Progress runs 0→1 over an open or close transition.
	Progress float64

	Src     string
	Image   *ebiten.Image
	Color   Color
	Alpha   float64
	Visible bool

	UserData any

	disposed bool
}

// NewNode creates a node of the given kind with identity transforms.
func NewNode(name string, kind NodeKind) *Node {
	return &Node{
		ID:        nextNodeID(),
		Name:      name,
		Kind:      kind,
		Local:     mgl64.Ident4(),
		TileIndex: -1,
		SX:        1,
		SY:        1,
		Color:     ColorWhite,
		Alpha:     1,
		Visible:   true,
	}
}

// ScreenRect returns the node's layout rect with its 2D transform applied.
func (n *Node) ScreenRect() Rect {
	return applyRectTransform(n.Rect, n.TX, n.TY, n.SX, n.SY)
}

// ScreenRadius returns the corner radius as drawn on screen.
func (n *Node) ScreenRadius() float64 {
	return n.Radius * n.SX
}

// WorldMatrix returns the product of Local matrices from the root down to n.
func (n *Node) WorldMatrix() mgl64.Mat4 {
	if n.Parent == nil {
		return n.Local
	}
	return n.Parent.WorldMatrix().Mul4(n.Local)
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("dome: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("dome: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("dome: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for _, child := range n.children {
		child.Parent = nil
	}
	n.children = n.children[:0]
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// FindKind returns the first node of the given kind in depth-first order,
// starting with n itself, or nil.
func (n *Node) FindKind(kind NodeKind) *Node {
	if n.Kind == kind {
		return n
	}
	for _, c := range n.children {
		if f := c.FindKind(kind); f != nil {
			return f
		}
	}
	return nil
}

// CountKind returns how many nodes of the given kind the subtree holds.
func (n *Node) CountKind(kind NodeKind) int {
	count := 0
	if n.Kind == kind {
		count++
	}
	for _, c := range n.children {
		count += c.CountKind(kind)
	}
	return count
}

func (n *Node) String() string {
	return fmt.Sprintf("%s(%q #%d)", n.Kind, n.Name, n.ID)
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Images are not deallocated;
// they belong to the TextureCache.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.Image = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
