package scene

import "github.com/aukilabs/brunnr/geom"

// AddRoom adds the six wall slabs enclosing the given inner volume. Walls
// grow outward by thickness, so the inner volume stays hollow. Authoring
// helpers like this are meant for test worlds and simple fixtures; openings
// are made by adding wall segments manually instead of a full slab.
func (s *Scene) AddRoom(name string, inner geom.Bounds, thickness float32) {
	min := inner.Min
	max := inner.Max
	t := thickness

	s.AddSolid(name+"/floor",
		geom.Vector3f{X: min.X - t, Y: min.Y - t, Z: min.Z - t},
		geom.Vector3f{X: max.X + t, Y: min.Y, Z: max.Z + t})
	s.AddSolid(name+"/ceiling",
		geom.Vector3f{X: min.X - t, Y: max.Y, Z: min.Z - t},
		geom.Vector3f{X: max.X + t, Y: max.Y + t, Z: max.Z + t})
	s.AddSolid(name+"/wall-west",
		geom.Vector3f{X: min.X - t, Y: min.Y, Z: min.Z - t},
		geom.Vector3f{X: min.X, Y: max.Y, Z: max.Z + t})
	s.AddSolid(name+"/wall-east",
		geom.Vector3f{X: max.X, Y: min.Y, Z: min.Z - t},
		geom.Vector3f{X: max.X + t, Y: max.Y, Z: max.Z + t})
	s.AddSolid(name+"/wall-south",
		geom.Vector3f{X: min.X, Y: min.Y, Z: min.Z - t},
		geom.Vector3f{X: max.X, Y: max.Y, Z: min.Z})
	s.AddSolid(name+"/wall-north",
		geom.Vector3f{X: min.X, Y: min.Y, Z: max.Z},
		geom.Vector3f{X: max.X, Y: max.Y, Z: max.Z + t})
}
