package volumes

import (
	"math"

	"github.com/aukilabs/brunnr/geom"
)

type heightCell struct {
	X int
	Z int
}

// HeightCache memoizes top-down height queries under quantized horizontal
// grid cells. It is owned by the sampler that fills it; it never invalidates
// itself. Callers must Clear it after any geometry change, results are only
// valid for the bounds captured when the first entry was stored.
type HeightCache struct {
	resolution int

	ready    bool
	origin   geom.Vector3f
	cellSize float32
	entries  map[heightCell]float32
}

func NewHeightCache(resolution int) *HeightCache {
	if resolution <= 0 {
		resolution = 1
	}
	return &HeightCache{
		resolution: resolution,
		entries:    make(map[heightCell]float32),
	}
}

// prepare captures the bounds the cell grid quantizes against. It runs once
// per cache lifetime; Clear resets it.
func (c *HeightCache) prepare(bounds geom.Bounds) {
	if c.ready {
		return
	}

	size := bounds.Size()
	cellSize := (float32)(math.Max((float64)(size.X), (float64)(size.Z))) / (float32)(c.resolution)
	if cellSize <= 0 {
		cellSize = 1
	}

	c.origin = bounds.Min
	c.cellSize = cellSize
	c.ready = true
}

func (c *HeightCache) cell(p geom.Vector3f) heightCell {
	return heightCell{
		X: (int)(math.Floor((float64)((p.X - c.origin.X) / c.cellSize))),
		Z: (int)(math.Floor((float64)((p.Z - c.origin.Z) / c.cellSize))),
	}
}

func (c *HeightCache) Lookup(p geom.Vector3f) (float32, bool) {
	if !c.ready {
		return 0, false
	}

	height, ok := c.entries[c.cell(p)]
	return height, ok
}

func (c *HeightCache) Store(p geom.Vector3f, height float32) {
	if !c.ready {
		return
	}

	c.entries[c.cell(p)] = height
}

// Clear drops all entries along with the captured bounds and cell size,
// forcing recomputation on next access.
func (c *HeightCache) Clear() {
	c.ready = false
	c.origin = geom.Vector3f{}
	c.cellSize = 0
	c.entries = make(map[heightCell]float32)
}

func (c *HeightCache) Len() int {
	return len(c.entries)
}
