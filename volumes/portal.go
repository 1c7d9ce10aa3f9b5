package volumes

import (
	"math"

	"github.com/aukilabs/brunnr/geom"
	"github.com/google/uuid"
)

type PortalOrientation string

const (
	PortalHorizontal PortalOrientation = "horizontal"
	PortalVertical   PortalOrientation = "vertical"
	PortalMixed      PortalOrientation = "mixed"
)

// Portal pairs one registered opening with its owning space and an
// orientation classification, for consumption by rendering and physics
// collaborators. Portals are rebuilt from detection results on demand and
// hold no state of their own.
type Portal struct {
	ID          uuid.UUID         `json:"id"`
	Space       *EnclosedSpace    `json:"-"`
	Loop        *VertexLoop       `json:"loop"`
	Orientation PortalOrientation `json:"orientation"`
}

// BuildPortals creates one portal per registered opening across the given
// spaces.
func BuildPortals(spaces []*EnclosedSpace, verticalNormalDot float32) []*Portal {
	var portals []*Portal
	for _, space := range spaces {
		for _, loop := range space.Openings {
			portals = append(portals, &Portal{
				ID:          uuid.New(),
				Space:       space,
				Loop:        loop,
				Orientation: classifyLoop(loop, verticalNormalDot),
			})
		}
	}
	return portals
}

// classifyLoop derives the orientation from the loop normal. A loop whose
// per-edge normals disagree with the average beyond the vertical threshold
// is mixed.
func classifyLoop(loop *VertexLoop, verticalNormalDot float32) PortalOrientation {
	for i := range loop.Vertices {
		e1 := geom.Sub(loop.Vertices[(i+1)%len(loop.Vertices)], loop.Vertices[i])
		e2 := geom.Sub(loop.Vertices[(i+2)%len(loop.Vertices)], loop.Vertices[(i+1)%len(loop.Vertices)])
		edgeNormal := geom.Normalized(geom.Cross(e1, e2))

		if edgeNormal.Length() == 0 {
			continue
		}
		if math.Abs((float64)(edgeNormal.Dot(loop.Normal))) < (float64)(verticalNormalDot) {
			return PortalMixed
		}
	}

	if loop.IsVertical {
		return PortalVertical
	}
	return PortalHorizontal
}
