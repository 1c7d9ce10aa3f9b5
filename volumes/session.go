package volumes

import (
	"context"
	"sync"
	"time"

	"github.com/aukilabs/brunnr/featureflag"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

// PassSummary describes one completed detection pass.
type PassSummary struct {
	Spaces     int           `json:"spaces"`
	Portals    int           `json:"portals"`
	Duration   time.Duration `json:"duration"`
	FinishedAt time.Time     `json:"finished_at"`
}

// Session owns one detection pipeline over one collider: the sampler and its
// height cache, the detector, the analyzer, and the latest results. A pass
// itself is single-threaded; the mutex only exists so concurrent readers of
// the results see complete sets.
type Session struct {
	collider Collider
	conf     Config

	sampler  *OccupancySampler
	detector *Detector
	analyzer *Analyzer

	mutex   sync.RWMutex
	spaces  []*EnclosedSpace
	portals []*Portal

	watchMutex sync.Mutex
	watchers   map[chan PassSummary]struct{}
}

func NewSession(collider Collider, conf Config, flags featureflag.FeatureFlag) *Session {
	sampler := NewOccupancySampler(collider, conf)
	analyzer := NewAnalyzer(collider, sampler, conf)

	return &Session{
		collider: collider,
		conf:     conf,
		sampler:  sampler,
		detector: NewDetector(collider, sampler, analyzer, conf, flags),
		analyzer: analyzer,
		watchers: make(map[chan PassSummary]struct{}),
	}
}

// Run performs a full detection pass: the height cache is cleared, spaces
// are detected with their openings, the connectivity graph and drain paths
// are rebuilt, and portals are derived. Previous results are replaced
// atomically. Repeated runs over unchanged geometry yield the same results.
func (s *Session) Run(ctx context.Context) PassSummary {
	start := time.Now()

	s.sampler.ClearHeightCache()

	spaces := s.detector.DetectEnclosedSpaces(ctx)
	s.analyzer.AnalyzeConnectivity(spaces)
	portals := BuildPortals(spaces, s.conf.VerticalNormalDot)

	s.mutex.Lock()
	s.spaces = spaces
	s.portals = portals
	s.mutex.Unlock()

	instrumentPass(start, len(spaces), len(portals))
	logs.WithTag("spaces", len(spaces)).
		WithTag("portals", len(portals)).
		WithTag("duration", time.Since(start)).
		Info("detection pass finished")

	summary := PassSummary{
		Spaces:     len(spaces),
		Portals:    len(portals),
		Duration:   time.Since(start),
		FinishedAt: time.Now(),
	}
	s.notify(summary)
	return summary
}

// Spaces returns the spaces from the latest pass.
func (s *Session) Spaces() []*EnclosedSpace {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	spaces := make([]*EnclosedSpace, len(s.spaces))
	copy(spaces, s.spaces)
	return spaces
}

// Portals returns the portals from the latest pass.
func (s *Session) Portals() []*Portal {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	portals := make([]*Portal, len(s.portals))
	copy(portals, s.portals)
	return portals
}

// Sampler exposes the session's occupancy sampler for callers that issue
// their own height queries.
func (s *Session) Sampler() *OccupancySampler {
	return s.sampler
}

// Watch registers a channel receiving a summary after each pass. Slow
// receivers miss summaries instead of blocking a pass.
func (s *Session) Watch() chan PassSummary {
	s.watchMutex.Lock()
	defer s.watchMutex.Unlock()

	ch := make(chan PassSummary, 1)
	s.watchers[ch] = struct{}{}
	return ch
}

func (s *Session) Unwatch(ch chan PassSummary) {
	s.watchMutex.Lock()
	defer s.watchMutex.Unlock()

	delete(s.watchers, ch)
	close(ch)
}

func (s *Session) notify(summary PassSummary) {
	s.watchMutex.Lock()
	defer s.watchMutex.Unlock()

	for ch := range s.watchers {
		select {
		case ch <- summary:
		default:
		}
	}
}
