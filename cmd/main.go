package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/pprof"
	"net/url"
	"os"
	"reflect"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/events"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
	"github.com/skuggalabs/skuggi/featureflag"
	"github.com/skuggalabs/skuggi/fov"
	skuggihttp "github.com/skuggalabs/skuggi/http"
	"github.com/skuggalabs/skuggi/models"
	"github.com/skuggalabs/skuggi/report"
	"github.com/skuggalabs/skuggi/smoketest"
	swebsocket "github.com/skuggalabs/skuggi/websocket"
	"golang.org/x/net/websocket"
)

var (
	// The Skuggi version number. Set at build.
	version = "v0.3.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "skuggi_info",
		Help:        "Skuggi information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	Addr               string        `cli:""        env:"SKUGGI_ADDR"                 help:"Listening address for viewer connections."`
	AdminAddr          string        `cli:""        env:"SKUGGI_ADMIN_ADDR"           help:"Admin listening address."`
	PublicEndpoint     string        `cli:""        env:"SKUGGI_PUBLIC_ENDPOINT"      help:"The public endpoint where this Skuggi server is reachable."`
	AccessToken        string        `cli:""        env:"SKUGGI_ACCESS_TOKEN"         help:"The access token viewers must present. Empty disables the check."`
	LogLevel           string        `cli:""        env:"SKUGGI_LOG_LEVEL"            help:"Log level (debug|info|warning|error)."`
	LogIndent          bool          `cli:""        env:"SKUGGI_LOG_INDENT"           help:"Indent logs."`
	VolumeWidth        int           `cli:""        env:"SKUGGI_VOLUME_WIDTH"         help:"Occlusion volume size along x."`
	VolumeHeight       int           `cli:""        env:"SKUGGI_VOLUME_HEIGHT"        help:"Occlusion volume size along y."`
	VolumeDepth        int           `cli:""        env:"SKUGGI_VOLUME_DEPTH"         help:"Occlusion volume size along z."`
	MaxDepth           int           `cli:""        env:"SKUGGI_MAX_DEPTH"            help:"The maximum shadowcasting depth per sector."`
	ClientIdleTimeout  time.Duration `cli:",hidden" env:"SKUGGI_CLIENT_IDLE_TIMEOUT"  help:"Time until an idle client will be disconnected."`
	LogSummaryInterval time.Duration `cli:",hidden" env:"SKUGGI_LOG_SUMMARY_INTERVAL" help:"The duration between each log summary by connection."`
	ReportEndpoint     string        `cli:",hidden" env:"SKUGGI_REPORT_ENDPOINT"      help:"Endpoint to where pass reports are forwarded."`
	Events             eventsConfig  `cli:",hidden" env:"-"                           help:"Event pusher configuration."`
	FeatureFlags       []string      `cli:",hidden" env:"SKUGGI_FEATURE_FLAGS"        help:"Comma separated feature flags"`
	Version            bool          `cli:""        env:"-"                           help:"Show version."`
	Help               bool          `cli:""        env:"-"                           help:"Show help."`
}

type eventsConfig struct {
	Endpoint      string        `cli:",hidden" env:"SKUGGI_EVENTS_ENDPOINT"       help:"Endpoint to where events are pushed."`
	FlushInterval time.Duration `cli:",hidden" env:"SKUGGI_EVENTS_FLUSH_INTERVAL" help:"The duration between each event flush."`
	BatchSize     int           `cli:",hidden" env:"SKUGGI_EVENTS_BATCH_SIZE"     help:"The maximum number of events sent at once."`
	QueueSize     int           `cli:",hidden" env:"SKUGGI_EVENTS_QUEUE_SIZE"     help:"The size of the queue where events are stored."`
}

func main() {
	conf := config{
		Addr:               ":4000",
		AdminAddr:          ":18190",
		PublicEndpoint:     "http://localhost:4000",
		LogLevel:           logs.InfoLevel.String(),
		VolumeWidth:        128,
		VolumeHeight:       64,
		VolumeDepth:        128,
		MaxDepth:           fov.DefaultMaxDepth,
		ClientIdleTimeout:  time.Minute * 5,
		LogSummaryInterval: time.Minute,
		Events: eventsConfig{
			FlushInterval: events.DefaultFlushInterval,
			BatchSize:     events.DefaultBatchSize,
			QueueSize:     events.DefaultQueueSize,
		},
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Starts Skuggi visibility server.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	transport := metrics.HTTPTransport(http.DefaultTransport)

	if conf.Events.Endpoint != "" {
		eventsPusher := events.Pusher{
			Endpoint:      conf.Events.Endpoint,
			FlushInterval: conf.Events.FlushInterval,
			BatchSize:     conf.Events.BatchSize,
			QueueSize:     conf.Events.QueueSize,
			Transport:     transport,
		}
		go eventsPusher.Start()
		defer eventsPusher.Close()

		eventsLogger := events.Logger{
			Pusher:           &eventsPusher,
			SDKType:          "skuggi",
			SDKVersionFamily: version,
		}
		logs.SetLogger(eventsLogger.Log)
	}

	featureFlags := featureflag.New(conf.FeatureFlags)

	world, err := fov.NewWorld(
		models.NewVec3i(conf.VolumeWidth, conf.VolumeHeight, conf.VolumeDepth),
		conf.MaxDepth,
	)
	if err != nil {
		logs.Fatal(errors.New("creating occlusion world failed").Wrap(err))
	}
	featureFlags.IfSet(featureflag.FlagSweepLineDiff, func() {
		world.SweepDiff = true
	})

	passChan := make(chan report.Pass, 128)
	reportHandler := report.Handler{
		Endpoint:  conf.ReportEndpoint,
		PassChan:  passChan,
		Transport: transport,
	}
	reportHandler.HandlePasses(ctx)

	var service http.ServeMux

	service.Handle("/health", skuggihttp.HandleWithCORS(http.HandlerFunc(skuggihttp.HandleHealthCheck)))
	service.Handle("/version", skuggihttp.HandleWithCORS(skuggihttp.HandleVersion(version)))

	readinessCheck := func() bool {
		return world != nil
	}
	service.Handle("/ready", skuggihttp.HandleWithCORS(skuggihttp.HandleReadyCheck(readinessCheck)))

	featureFlags.IfNotSet(featureflag.FlagDisableSmokeTestHandler, func() {
		service.HandleFunc("/smoke-test", skuggihttp.VerifyAuthTokenHandler(conf.AccessToken,
			smoketest.HandleSmokeTest(ctx, smoketest.Options{
				Endpoint: conf.PublicEndpoint,
				SendResult: func(ctx context.Context, res smoketest.Results) error {
					logs.WithTag("status", res.Status).
						WithTag("occluded_cells", res.OccludedCells).
						WithTag("visible_cells", res.VisibleCells).
						WithTag("latency_millisec", res.LatencyMilliSec).
						WithTag("error", res.Error).
						Info("smoke test finished")
					return nil
				},
			})))
	})

	service.Handle("/", skuggihttp.HandleWithCORS(websocket.Server{
		Handshake: skuggihttp.VerifyAuthToken(conf.AccessToken),
		Handler: func(conn *websocket.Conn) {
			defer conn.Close()

			var h swebsocket.Handler = &swebsocket.ViewerHandler{
				ClientIdleTimeout: conf.ClientIdleTimeout,
				World:             world,
				FeatureFlags:      featureFlags,
				PassChan:          passChan,
			}
			h = swebsocket.HandlerWithLogs(h, conf.LogSummaryInterval)
			h = swebsocket.HandlerWithMetrics(h, conf.PublicEndpoint)
			defer h.Close()

			swebsocket.Handle(ctx, conn, h)
		},
	}))

	service.Handle("/ping", websocket.Server{
		Handler: func(ws *websocket.Conn) {
			defer ws.Close()
			io.Copy(ws, ws)
		},
	})

	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", skuggihttp.HandleHealthCheck)
	admin.HandleFunc("/debug/pprof/", pprof.Index)
	admin.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	admin.HandleFunc("/debug/pprof/profile", pprof.Profile)
	admin.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	admin.HandleFunc("/debug/pprof/trace", pprof.Trace)
	admin.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	admin.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	admin.Handle("/debug/pprof/threadcreate", pprof.Handler("threadcreate"))
	admin.Handle("/debug/pprof/block", pprof.Handler("block"))
	admin.HandleFunc("/ready", skuggihttp.HandleReadyCheck(readinessCheck))

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("endpoint", conf.PublicEndpoint).
		WithTag("volume_size", world.Size()).
		WithTag("max_depth", conf.MaxDepth).
		Info("starting skuggi server")

	skuggihttp.ListenAndServe(ctx,
		&http.Server{Addr: conf.Addr, Handler: metrics.HTTPHandler(&service,
			skuggihttp.MetricsPathFormatter)},
		&http.Server{Addr: conf.AdminAddr, Handler: &admin},
	)
}

func validateConfig(conf config) error {
	if _, err := url.ParseRequestURI(conf.PublicEndpoint); err != nil {
		return errors.New("invalid public endpoint").Wrap(err)
	}

	if conf.VolumeWidth <= 0 || conf.VolumeHeight <= 0 || conf.VolumeDepth <= 0 {
		return errors.New("invalid volume size").
			WithTag("width", conf.VolumeWidth).
			WithTag("height", conf.VolumeHeight).
			WithTag("depth", conf.VolumeDepth)
	}

	if conf.MaxDepth <= 0 {
		return errors.New("invalid max depth").
			WithTag("max_depth", conf.MaxDepth)
	}

	return nil
}
