package volumes

import (
	"math"

	"github.com/aukilabs/brunnr/geom"
	"github.com/google/uuid"
)

// SampledPoint is one classified grid sample. It only lives for the duration
// of a detection pass.
type SampledPoint struct {
	Position geom.Vector3f
	Interior bool
}

// EnclosedSpace is one detected volume. Spaces are rebuilt from scratch on
// every detection pass; connectivity and drain paths are additionally
// cleared and rebuilt whenever connectivity analysis runs.
type EnclosedSpace struct {
	ID     uuid.UUID     `json:"id"`
	Bounds geom.Bounds   `json:"bounds"`
	Center geom.Vector3f `json:"center"`

	// Volume is the bounding-box volume, not an exact mesh volume.
	Volume float32 `json:"volume"`

	Openings []*VertexLoop `json:"openings"`

	// LowestPoint is the lowest floor height found by interior sampling.
	LowestPoint    float32 `json:"lowest_point"`
	LowestOpening  float32 `json:"lowest_opening"`
	HighestOpening float32 `json:"highest_opening"`

	WillDrain bool `json:"will_drain"`
	WillFill  bool `json:"will_fill"`

	ConnectedSpaces []*EnclosedSpace `json:"-"`
	DrainPath       []*EnclosedSpace `json:"-"`
}

func newEnclosedSpace(bounds geom.Bounds) *EnclosedSpace {
	return &EnclosedSpace{
		ID:          uuid.New(),
		Bounds:      bounds,
		Center:      bounds.Center(),
		Volume:      bounds.Volume(),
		LowestPoint: bounds.Min.Y,
	}
}

// refreshOpeningHeights rebuilds the opening height pair from the current
// opening list.
func (s *EnclosedSpace) refreshOpeningHeights() {
	s.LowestOpening = (float32)(math.Inf(1))
	s.HighestOpening = (float32)(math.Inf(-1))

	for _, loop := range s.Openings {
		if h := loop.MinHeight(); h < s.LowestOpening {
			s.LowestOpening = h
		}
		if h := loop.MaxHeight(); h > s.HighestOpening {
			s.HighestOpening = h
		}
	}
}

// IsConnectedTo reports whether other is in this space's connectivity list.
func (s *EnclosedSpace) IsConnectedTo(other *EnclosedSpace) bool {
	for _, c := range s.ConnectedSpaces {
		if c == other {
			return true
		}
	}
	return false
}
