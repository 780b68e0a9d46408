package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"barrage/server/arsenal/catalog"
	"barrage/server/arsenal/contract"
	"barrage/server/internal/config"
	servernet "barrage/server/internal/net"
	"barrage/server/internal/telemetry"
	"barrage/server/logging"
	loggingSinks "barrage/server/logging/sinks"
)

// Options carries the process-level knobs main passes down.
type Options struct {
	ConfigPath string
	ClientDir  string
	Logger     telemetry.Logger
}

// Run wires configuration, logging, the weapon catalog, and the lobby hub
// together, then serves HTTP until the listener fails or ctx is done.
func Run(ctx context.Context, opts Options) error {
	telemetryLogger := opts.Logger
	if telemetryLogger == nil {
		telemetryLogger = telemetry.WrapLogger(log.Default())
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return err
	}

	logConfig := logging.DefaultConfig()
	logConfig.EnabledSinks = cfg.Logging.Sinks
	logConfig.BufferSize = cfg.Logging.BufferSize
	logConfig.MinimumSeverity = parseSeverity(cfg.Logging.MinimumSeverity)
	logConfig.JSON.FilePath = cfg.Logging.JSONPath

	sinks := make([]logging.NamedSink, 0, 2)
	if logConfig.HasSink("console") {
		sinks = append(sinks, logging.NamedSink{
			Name: "console",
			Sink: loggingSinks.NewConsoleSink(os.Stdout, logConfig.Console),
		})
	}
	if logConfig.HasSink("json") && logConfig.JSON.FilePath != "" {
		jsonSink, err := loggingSinks.NewJSONSink(logConfig.JSON)
		if err != nil {
			return fmt.Errorf("failed to open json sink: %w", err)
		}
		sinks = append(sinks, logging.NamedSink{Name: "json", Sink: jsonSink})
	}

	router := logging.NewRouter(logConfig, logging.SystemClock{}, log.Default(), sinks)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if cerr := router.Close(closeCtx); cerr != nil {
			telemetryLogger.Printf("failed to close logging router: %v", cerr)
		}
	}()

	metrics := logging.NewMetrics()

	paths := cfg.Weapons
	if len(paths) == 0 {
		paths = catalog.DefaultPaths()
	}
	arsenal, err := catalog.Load(contract.DefaultRegistry(), paths...)
	if err != nil {
		return fmt.Errorf("failed to load weapon catalog: %w", err)
	}

	hub := servernet.NewHub(servernet.HubConfig{
		Physics:     cfg.Physics(),
		TickRate:    cfg.Server.TickRate,
		Heartbeat:   time.Duration(cfg.Server.HeartbeatSeconds) * time.Second,
		MaxPlayers:  cfg.Server.MaxPlayers,
		MaxWind:     cfg.World.MaxWind,
		TerrainSeed: cfg.World.TerrainSeed,
	}, arsenal, router, telemetry.WrapMetrics(metrics), telemetryLogger)

	stop := make(chan struct{})
	go hub.RunSimulation(stop)
	defer close(stop)

	handler := servernet.NewHTTPHandler(hub, servernet.HTTPHandlerConfig{
		ClientDir:      opts.ClientDir,
		AllowedOrigins: cfg.Server.AllowedOrigins(),
	})

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: handler}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	telemetryLogger.Printf("server listening on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

func parseSeverity(name string) logging.Severity {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return logging.SeverityDebug
	case "warn":
		return logging.SeverityWarn
	case "error":
		return logging.SeverityError
	default:
		return logging.SeverityInfo
	}
}
