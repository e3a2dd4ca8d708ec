// Package ecs provides ECS adapters for dome's gallery events.
//
// The primary adapter is [NewDonburiStore], which bridges gallery events
// (tile open, opened, close, closed and configuration warnings) into a
// [Donburi] world as typed events. Subscribe to [GalleryEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	opts := dome.Options{Events: ecs.NewDonburiStore(world)}
//	gallery := dome.NewGallery(opts, dome.FileSource{Root: "photos"})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
