package http

import (
	"net/http"
	"strconv"

	"github.com/aukilabs/brunnr/geom"
	"github.com/aukilabs/brunnr/volumes"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/segmentio/encoding/json"
)

// spaceSummary is the wire form of an enclosed space. Graph references are
// flattened to ids to keep the payload acyclic.
type spaceSummary struct {
	ID             string                `json:"id"`
	Bounds         geom.Bounds           `json:"bounds"`
	Center         geom.Vector3f         `json:"center"`
	Volume         float32               `json:"volume"`
	Openings       []*volumes.VertexLoop `json:"openings"`
	LowestPoint    float32               `json:"lowest_point"`
	LowestOpening  *float32              `json:"lowest_opening,omitempty"`
	HighestOpening *float32              `json:"highest_opening,omitempty"`
	WillDrain      bool                  `json:"will_drain"`
	WillFill       bool                  `json:"will_fill"`
	ConnectedIDs   []string              `json:"connected_ids"`
	DrainPathIDs   []string              `json:"drain_path_ids"`
}

type portalSummary struct {
	ID          string                    `json:"id"`
	SpaceID     string                    `json:"space_id"`
	Orientation volumes.PortalOrientation `json:"orientation"`
	Loop        *volumes.VertexLoop       `json:"loop"`
}

func summarizeSpace(space *volumes.EnclosedSpace) spaceSummary {
	summary := spaceSummary{
		ID:           space.ID.String(),
		Bounds:       space.Bounds,
		Center:       space.Center,
		Volume:       space.Volume,
		Openings:     space.Openings,
		LowestPoint:  space.LowestPoint,
		WillDrain:    space.WillDrain,
		WillFill:     space.WillFill,
		ConnectedIDs: make([]string, 0, len(space.ConnectedSpaces)),
		DrainPathIDs: make([]string, 0, len(space.DrainPath)),
	}

	// the opening heights are meaningless (infinite) on a sealed space
	if len(space.Openings) != 0 {
		lowest := space.LowestOpening
		highest := space.HighestOpening
		summary.LowestOpening = &lowest
		summary.HighestOpening = &highest
	}

	for _, c := range space.ConnectedSpaces {
		summary.ConnectedIDs = append(summary.ConnectedIDs, c.ID.String())
	}
	for _, p := range space.DrainPath {
		summary.DrainPathIDs = append(summary.DrainPathIDs, p.ID.String())
	}
	return summary
}

// HandleSpaces serves the spaces from the latest detection pass.
func HandleSpaces(session *volumes.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		spaces := session.Spaces()
		summaries := make([]spaceSummary, 0, len(spaces))
		for _, space := range spaces {
			summaries = append(summaries, summarizeSpace(space))
		}
		writeJSON(w, summaries)
	}
}

// HandlePortals serves the portals from the latest detection pass.
func HandlePortals(session *volumes.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		portals := session.Portals()
		summaries := make([]portalSummary, 0, len(portals))
		for _, portal := range portals {
			summaries = append(summaries, portalSummary{
				ID:          portal.ID.String(),
				SpaceID:     portal.Space.ID.String(),
				Orientation: portal.Orientation,
				Loop:        portal.Loop,
			})
		}
		writeJSON(w, summaries)
	}
}

// HandleDetect triggers a detection pass and serves its summary.
func HandleDetect(session *volumes.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		summary := session.Run(r.Context())
		writeJSON(w, summary)
	}
}

type heightResponse struct {
	Position geom.Vector3f `json:"position"`
	Height   float32       `json:"height"`
}

// HandleHeight serves a single surface height query at the position given by
// the x, y and z query parameters.
func HandleHeight(session *volumes.Session) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		position, err := parsePoint(query.Get("x"), query.Get("y"), query.Get("z"))
		if err != nil {
			logs.Warn(errors.New("parsing height query position failed").Wrap(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		writeJSON(w, heightResponse{
			Position: position,
			Height:   session.Sampler().SampleHeight(position),
		})
	}
}

func parsePoint(x, y, z string) (geom.Vector3f, error) {
	var p geom.Vector3f
	for _, c := range []struct {
		raw   string
		value *float32
	}{
		{x, &p.X},
		{y, &p.Y},
		{z, &p.Z},
	} {
		v, err := strconv.ParseFloat(c.raw, 32)
		if err != nil {
			return geom.Vector3f{}, errors.New("parsing coordinate failed").
				WithTag("raw", c.raw).
				Wrap(err)
		}
		*c.value = (float32)(v)
	}
	return p, nil
}

func writeJSON(w http.ResponseWriter, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		logs.Error(errors.New("encoding response failed").Wrap(err))
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
