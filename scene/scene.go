// Package scene is a minimal static-collision backend built from axis-aligned
// box solids. It implements the bounds-provider and ray-query capabilities the
// volume detection core consumes, standing in for a full collision engine.
package scene

import (
	"math"

	"github.com/aukilabs/brunnr/geom"
)

// Solid is one axis-aligned collidable box.
type Solid struct {
	Name   string      `json:"name" yaml:"name"`
	Bounds geom.Bounds `json:"bounds" yaml:"bounds"`
}

type Scene struct {
	Name   string  `json:"name" yaml:"name"`
	Solids []Solid `json:"solids" yaml:"solids"`
}

func (s *Scene) AddSolid(name string, min geom.Vector3f, max geom.Vector3f) {
	s.Solids = append(s.Solids, Solid{
		Name:   name,
		Bounds: geom.NewBounds(min, max),
	})
}

// Bounds returns the union of all solid bounds. The second return is false
// when the scene holds no collidable geometry.
func (s *Scene) Bounds() (geom.Bounds, bool) {
	if len(s.Solids) == 0 {
		return geom.Bounds{}, false
	}

	bounds := s.Solids[0].Bounds
	for _, solid := range s.Solids[1:] {
		bounds = geom.Union(bounds, solid.Bounds)
	}
	return bounds, true
}

// Raycast returns the nearest surface hit along origin+dir within maxDist.
func (s *Scene) Raycast(origin geom.Vector3f, dir geom.Vector3f, maxDist float32) (geom.Hit, bool) {
	ray := geom.NewRay(origin, dir, maxDist)

	tMin := (float32)(math.Inf(1))
	var nearest geom.Hit
	found := false

	for i := range s.Solids {
		hit, t, normal := geom.IntersectBounds(ray, s.Solids[i].Bounds)
		if !hit || t >= tMin {
			continue
		}

		tMin = t
		found = true
		nearest = geom.Hit{
			Point:    ray.PointAt(t),
			Normal:   normal,
			Distance: t * maxDist,
		}
	}

	return nearest, found
}
