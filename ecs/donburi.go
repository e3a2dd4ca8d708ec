package ecs

import (
	"github.com/phanxgames/dome"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GalleryEventType is the Donburi event type for dome gallery events.
var GalleryEventType = events.NewEventType[dome.GalleryEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventSink backed by a Donburi world.
// Gallery events are published to GalleryEventType and can be consumed
// with events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) dome.EventSink {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event dome.GalleryEvent) {
	GalleryEventType.Publish(s.world, event)
}
