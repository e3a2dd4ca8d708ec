package dome

import (
	"fmt"
	"os"
)

const (
	// DefaultSegments is the default number of lattice columns.
	DefaultSegments = 35

	rowsPerColumn     = 5
	tileSpan          = 2   // lattice units covered by one tile on each axis
	firstColumnOffset = -37 // OffsetX of column 0
)

// Row offsets alternate by column parity so adjacent columns interlock.
var (
	evenColumnRows = [rowsPerColumn]int{-4, -2, 0, 2, 4}
	oddColumnRows  = [rowsPerColumn]int{-3, -1, 1, 3, 5}
)

// Tile is one slot of the sphere lattice with the image assigned to it.
// Offsets are fixed lattice coordinates and never depend on the image.
type Tile struct {
	OffsetX, OffsetY int
	SizeX, SizeY     int
	Src              string
	Alt              string
	FullSrc          string
}

// Item returns the image assigned to the tile.
func (t Tile) Item() ImageItem {
	return ImageItem{Src: t.Src, Alt: t.Alt, FullSrc: t.FullSrc}
}

// WarnFunc receives non-fatal configuration warnings.
type WarnFunc func(msg string)

func stderrWarn(msg string) {
	_, _ = fmt.Fprintf(os.Stderr, "[dome] warning: %s\n", msg)
}

// SlotCount returns the number of tiles a sphere of the given segment count holds.
func SlotCount(segments int) int {
	if segments <= 0 {
		return 0
	}
	return segments * rowsPerColumn
}

// lattice returns the empty slot grid in generation order: column by column,
// five rows each.
func lattice(segments int) []Tile {
	tiles := make([]Tile, 0, SlotCount(segments))
	for c := 0; c < segments; c++ {
		x := firstColumnOffset + c*tileSpan
		rows := evenColumnRows
		if c%2 != 0 {
			rows = oddColumnRows
		}
		for _, y := range rows {
			tiles = append(tiles, Tile{OffsetX: x, OffsetY: y, SizeX: tileSpan, SizeY: tileSpan})
		}
	}
	return tiles
}

// assignCyclic fills n slots from pool in order, wrapping around.
func assignCyclic(pool []ImageItem, n int) []ImageItem {
	used := make([]ImageItem, n)
	for i := range used {
		used[i] = pool[i%len(pool)]
	}
	return used
}

// separateAdjacent runs one forward pass: whenever slot i repeats slot i-1,
// it is swapped with the first later slot holding a different source.
// Pools with very few distinct images relative to the slot count can still
// end with repeats.
func separateAdjacent(used []ImageItem) {
	for i := 1; i < len(used); i++ {
		if used[i].Src != used[i-1].Src {
			continue
		}
		for j := i + 1; j < len(used); j++ {
			if used[j].Src != used[i].Src {
				used[i], used[j] = used[j], used[i]
				break
			}
		}
	}
}

// BuildTiles lays the image pool onto a sphere lattice of the given segment
// count. The result always holds SlotCount(segments) tiles. Images beyond
// the slot count are dropped and reported through warn (stderr when nil).
func BuildTiles(pool []ImageItem, segments int, warn WarnFunc) []Tile {
	tiles := lattice(segments)
	if len(tiles) == 0 || len(pool) == 0 {
		return tiles
	}
	if len(pool) > len(tiles) {
		if warn == nil {
			warn = stderrWarn
		}
		warn(fmt.Sprintf("%d images provided but only %d slots available; %d images will not be shown",
			len(pool), len(tiles), len(pool)-len(tiles)))
	}

	used := assignCyclic(pool, len(tiles))
	separateAdjacent(used)

	for i := range tiles {
		tiles[i].Src = used[i].Src
		tiles[i].Alt = used[i].Alt
		tiles[i].FullSrc = used[i].FullSrc
	}
	return tiles
}
