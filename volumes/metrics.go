package volumes

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	rayPurposeLabel = "purpose"

	rayPurposeInterior     = "interior"
	rayPurposeHeight       = "height"
	rayPurposeOpening      = "opening"
	rayPurposeFloor        = "floor"
	rayPurposeConnectivity = "connectivity"
)

var (
	detectionPasses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brunnr_detection_passes",
		Help: "The number of completed detection passes.",
	})

	detectionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name: "brunnr_detection_duration_seconds",
		Help: "The time to run a full detection pass.",
	})

	detectedSpaces = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "brunnr_detected_spaces",
		Help: "The number of enclosed spaces found by the latest pass.",
	})

	detectedPortals = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "brunnr_detected_portals",
		Help: "The number of portals found by the latest pass.",
	})

	heightCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brunnr_height_cache_hits",
		Help: "The number of height queries answered from the cache.",
	})

	heightCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "brunnr_height_cache_misses",
		Help: "The number of height queries that required a ray cast.",
	})

	collisionRays = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "brunnr_collision_rays",
		Help: "The number of rays issued against the collision backend.",
	}, []string{
		rayPurposeLabel,
	})
)

func instrumentPass(start time.Time, spaces int, portals int) {
	detectionPasses.Inc()
	detectionDuration.Observe(time.Since(start).Seconds())
	detectedSpaces.Set((float64)(spaces))
	detectedPortals.Set((float64)(portals))
}

func instrumentRay(purpose string) {
	collisionRays.With(prometheus.Labels{rayPurposeLabel: purpose}).Inc()
}
