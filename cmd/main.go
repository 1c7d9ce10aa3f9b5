package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"reflect"
	"sync/atomic"
	"syscall"

	"github.com/aukilabs/brunnr/featureflag"
	brunnrhttp "github.com/aukilabs/brunnr/http"
	"github.com/aukilabs/brunnr/scene"
	"github.com/aukilabs/brunnr/volumes"
	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"golang.org/x/net/websocket"
)

var (
	// The Brunnr version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "brunnr_info",
		Help:        "Brunnr information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	Addr              string   `cli:""        env:"BRUNNR_ADDR"                help:"Listening address for API connections."`
	AdminAddr         string   `cli:""        env:"BRUNNR_ADMIN_ADDR"          help:"Admin listening address."`
	Scene             string   `cli:""        env:"BRUNNR_SCENE"               help:"Path to the YAML collision scene to analyze."`
	LogLevel          string   `cli:""        env:"BRUNNR_LOG_LEVEL"           help:"Log level (debug|info|warning|error)."`
	LogIndent         bool     `cli:""        env:"BRUNNR_LOG_INDENT"          help:"Indent logs."`
	DetectOnStart     bool     `cli:""        env:"BRUNNR_DETECT_ON_START"     help:"Run a detection pass at startup."`
	DetectionSamples  int      `cli:",hidden" env:"BRUNNR_DETECTION_SAMPLES"   help:"Per-axis grid sampling resolution."`
	OpeningRays       int      `cli:",hidden" env:"BRUNNR_OPENING_RAYS"        help:"Rays cast per space when extracting openings."`
	InteriorHitVotes  int      `cli:",hidden" env:"BRUNNR_INTERIOR_HIT_VOTES"  help:"Axis ray hits required to classify a point as interior."`
	VerticalNormalDot float64  `cli:",hidden" env:"BRUNNR_VERTICAL_NORMAL_DOT" help:"Dot threshold against up for vertical opening classification."`
	FeatureFlags      []string `cli:",hidden" env:"BRUNNR_FEATURE_FLAGS"       help:"Comma separated feature flags"`
	Version           bool     `cli:""        env:"-"                          help:"Show version."`
	Help              bool     `cli:""        env:"-"                          help:"Show help."`
}

func main() {
	defaults := volumes.DefaultConfig()

	conf := config{
		Addr:              ":4600",
		AdminAddr:         ":18290",
		LogLevel:          logs.InfoLevel.String(),
		DetectOnStart:     true,
		DetectionSamples:  defaults.DetectionSamples,
		OpeningRays:       defaults.OpeningRays,
		InteriorHitVotes:  defaults.InteriorHitVotes,
		VerticalNormalDot: (float64)(defaults.VerticalNormalDot),
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Starts the Brunnr volume analysis server.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	world := &scene.Scene{}
	if conf.Scene != "" {
		var err error
		world, err = scene.Load(conf.Scene)
		if err != nil {
			logs.Fatal(errors.New("loading scene failed").Wrap(err))
		}
	} else {
		logs.Warn("no scene configured, starting with empty geometry")
	}

	detectionConf := defaults
	detectionConf.DetectionSamples = conf.DetectionSamples
	detectionConf.OpeningRays = conf.OpeningRays
	detectionConf.InteriorHitVotes = conf.InteriorHitVotes
	detectionConf.VerticalNormalDot = (float32)(conf.VerticalNormalDot)

	session := volumes.NewSession(world, detectionConf, featureflag.New(conf.FeatureFlags))

	var ready atomic.Bool
	if conf.DetectOnStart {
		session.Run(ctx)
	}
	ready.Store(true)

	readinessCheck := func() bool {
		return ready.Load()
	}

	var service http.ServeMux
	service.Handle("/spaces", brunnrhttp.HandleWithCORS(brunnrhttp.HandleSpaces(session)))
	service.Handle("/portals", brunnrhttp.HandleWithCORS(brunnrhttp.HandlePortals(session)))
	service.Handle("/detect", brunnrhttp.HandleWithCORS(brunnrhttp.HandleDetect(session)))
	service.Handle("/height", brunnrhttp.HandleWithCORS(brunnrhttp.HandleHeight(session)))
	service.Handle("/health", brunnrhttp.HandleWithCORS(http.HandlerFunc(brunnrhttp.HandleHealthCheck)))
	service.Handle("/ready", brunnrhttp.HandleWithCORS(http.HandlerFunc(brunnrhttp.HandleReadyCheck(readinessCheck))))
	service.Handle("/version", brunnrhttp.HandleWithCORS(http.HandlerFunc(brunnrhttp.HandleVersion(version))))

	service.Handle("/watch", websocket.Server{
		Handler: func(conn *websocket.Conn) {
			defer conn.Close()

			ch := session.Watch()
			defer session.Unwatch(ch)

			for summary := range ch {
				body, err := json.Marshal(summary)
				if err != nil {
					logs.Warn(errors.New("encoding pass summary failed").Wrap(err))
					continue
				}
				if _, err := conn.Write(body); err != nil {
					return
				}
			}
		},
	})

	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", brunnrhttp.HandleHealthCheck)
	admin.HandleFunc("/ready", brunnrhttp.HandleReadyCheck(readinessCheck))
	admin.HandleFunc("/debug/pprof/", pprof.Index)
	admin.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	admin.HandleFunc("/debug/pprof/profile", pprof.Profile)
	admin.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	admin.HandleFunc("/debug/pprof/trace", pprof.Trace)
	admin.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	admin.Handle("/debug/pprof/heap", pprof.Handler("heap"))

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("scene", conf.Scene).
		WithTag("solids", len(world.Solids)).
		Info("starting brunnr server")

	brunnrhttp.ListenAndServe(ctx,
		&http.Server{Addr: conf.Addr, Handler: metrics.HTTPHandler(&service,
			brunnrhttp.MetricsPathFormatter)},
		&http.Server{Addr: conf.AdminAddr, Handler: &admin},
	)
}
