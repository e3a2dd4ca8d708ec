// Package dome is a 3D dome image gallery for [Ebitengine].
//
// Images are laid out as tiles on the inside of a sphere. Dragging spins
// the sphere, releasing with speed lets it coast, and clicking a tile
// enlarges it into a centered overlay that returns to its place on close.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	g := dome.NewGallery(dome.Options{
//		Images: dome.Images("a.jpg", "b.jpg", "c.jpg"),
//	}, dome.FileSource{Root: "photos"})
//	if err := g.Preload(context.Background(), 0); err != nil {
//		log.Print(err)
//	}
//	dome.Run(g, dome.RunConfig{Title: "Gallery", Width: 1280, Height: 720})
//
// [Gallery] implements [ebiten.Game], so it can also be embedded in an
// existing game loop by calling its Update, Draw and Layout methods.
//
// # Layout
//
// [BuildTiles] places Segments columns of five tiles each on the sphere and
// fills them from the image pool in cyclic order, separating adjacent
// repeats where it can. Images beyond the slot count are dropped with a
// warning.
//
// # Controller
//
// [AnimationController] holds all gallery state and has no ebiten input
// dependency: it takes drag events, open and close requests and a clock
// tick. Gallery feeds it from the mouse, touch and keyboard. Tests and
// custom front ends can drive it directly.
//
// Rotation is shared by every tile. Pitch is clamped to
// Options.MaxVerticalRotationDeg and yaw wraps into (-180, 180]. Only one
// focus transition runs at a time; requests that arrive while one is in
// flight are dropped.
//
// # Embedding
//
// A [ScrollHost] lets the gallery suspend scrolling of the surrounding view
// while a tile is focused or a touch drag is in progress. An [EventSink]
// receives open, close and warning notifications; the dome/ecs package
// forwards them into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package dome
