// Package volumes discovers enclosed volumes inside static collision
// geometry, extracts the openings connecting them, and computes how liquid
// drains between them. Classification is sampling-based: results are
// approximations of the geometry, not an exact mesh analysis.
package volumes

import "github.com/aukilabs/brunnr/geom"

// Collider is the collision capability the detection core consumes. It is
// the only contact point with the host's collision engine: a bounds provider
// and a nearest-hit ray query.
type Collider interface {
	// Bounds returns the union of world-space bounds of all collidable
	// geometry. The second return is false when there is none.
	Bounds() (geom.Bounds, bool)

	// Raycast returns the nearest surface hit from origin along dir within
	// maxDist. The second return is false when nothing is hit. Absence of a
	// hit is a normal outcome, not an error.
	Raycast(origin geom.Vector3f, dir geom.Vector3f, maxDist float32) (geom.Hit, bool)
}
