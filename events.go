package dome

// EventType identifies a gallery notification.
type EventType uint8

const (
	EventTileOpen   EventType = iota // focus accepted, overlay starts enlarging
	EventTileOpened                  // overlay reached its target rect
	EventTileClose                   // close accepted, overlay starts shrinking
	EventTileClosed                  // tile restored, focus released
	EventWarning                     // non-fatal configuration warning
)

func (t EventType) String() string {
	switch t {
	case EventTileOpen:
		return "tile-open"
	case EventTileOpened:
		return "tile-opened"
	case EventTileClose:
		return "tile-close"
	case EventTileClosed:
		return "tile-closed"
	case EventWarning:
		return "warning"
	}
	return "unknown"
}

// GalleryEvent carries notification data to an EventSink.
type GalleryEvent struct {
	Type      EventType
	TileIndex int // -1 for warnings
	Src       string
	Message   string
}

// EventSink is the interface for optional event forwarding, for example
// into an ECS world (see the ecs subpackage).
type EventSink interface {
	EmitEvent(event GalleryEvent)
}

func (c *AnimationController) emit(ev GalleryEvent) {
	if c.opts.Events == nil {
		return
	}
	c.opts.Events.EmitEvent(ev)
}

func (c *AnimationController) emitTile(typ EventType, index int) {
	if c.opts.Events == nil {
		return
	}
	var src string
	if index >= 0 && index < len(c.tiles) {
		src = c.tiles[index].Src
	}
	c.opts.Events.EmitEvent(GalleryEvent{Type: typ, TileIndex: index, Src: src})
}
