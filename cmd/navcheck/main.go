// Command navcheck runs a scenario of path and line-of-sight queries against
// a map and writes a CSV report.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/udisondev/wasteland/internal/ai"
	"github.com/udisondev/wasteland/internal/config"
	"github.com/udisondev/wasteland/internal/data"
	"github.com/udisondev/wasteland/internal/db"
	"github.com/udisondev/wasteland/internal/game/nav"
	"github.com/udisondev/wasteland/internal/model"
	"github.com/udisondev/wasteland/internal/navmetrics"
	"github.com/udisondev/wasteland/internal/report"
)

const DefaultConfigPath = "config/navcheck.yaml"

// ErrChecksFailed is returned when at least one query missed its expectation.
var ErrChecksFailed = errors.New("navigation checks failed")

type options struct {
	configPath  string
	mapPath     string
	tilesetPath string
	mapID       string
	tilesetID   string
	scenario    string
	report      string
	workers     int
	serve       bool
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", config.ConfigPath(DefaultConfigPath), "config file")
	flag.StringVar(&opts.mapPath, "map", "", "map JSON file")
	flag.StringVar(&opts.tilesetPath, "tileset", "", "tileset JSON or YAML file")
	flag.StringVar(&opts.mapID, "map-id", "", "load the map from the database instead of -map")
	flag.StringVar(&opts.tilesetID, "tileset-id", "", "load the tileset from the database instead of -tileset")
	flag.StringVar(&opts.scenario, "scenario", "", "scenario YAML file (required)")
	flag.StringVar(&opts.report, "report", "", "CSV report path (overrides config)")
	flag.IntVar(&opts.workers, "workers", 0, "concurrent queries (overrides config)")
	flag.BoolVar(&opts.serve, "serve", false, "keep serving metrics after the run until interrupted")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx, opts); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options) error {
	if opts.scenario == "" {
		return fmt.Errorf("-scenario is required")
	}

	cfg, err := config.LoadNavCheck(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if opts.report != "" {
		cfg.Report = opts.report
	}
	if opts.workers > 0 {
		cfg.Workers = opts.workers
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))
	ai.EnableDebugLogging(logLevel == slog.LevelDebug)

	m, ts, err := loadWorld(ctx, cfg, opts)
	if err != nil {
		return err
	}
	if unknown := data.UnknownTiles(m, ts); len(unknown) > 0 {
		slog.Warn("map references tiles missing from tileset", "ids", unknown)
	}

	queries, err := data.LoadScenario(opts.scenario)
	if err != nil {
		return fmt.Errorf("loading scenario: %w", err)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	instrumented, err := navmetrics.Wrap(
		nav.ForMap(m, ts, nav.WithMaxIterations(cfg.Navigation.MaxIterations)),
		reg,
	)
	if err != nil {
		return err
	}

	slog.Info("navcheck starting",
		"queries", len(queries),
		"workers", cfg.Workers,
		"max_iterations", cfg.Navigation.MaxIterations)

	g, gctx := errgroup.WithContext(ctx)
	done := make(chan struct{})

	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		srv := &http.Server{
			Addr:              cfg.Metrics.Address,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		g.Go(func() error {
			slog.Info("serving metrics", "address", cfg.Metrics.Address)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			select {
			case <-gctx.Done():
			case <-done:
				if opts.serve {
					<-gctx.Done()
				}
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	var records []report.Record
	g.Go(func() error {
		defer close(done)
		var err error
		records, err = runQueries(gctx, instrumented, m, ts, queries, cfg.Workers)
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}

	if cfg.Report != "" {
		if err := report.WriteFile(cfg.Report, records); err != nil {
			return err
		}
		slog.Info("report written", "path", cfg.Report)
	}

	for _, r := range records {
		if !r.Passed {
			slog.Warn("check failed", "query", r.Query, "kind", r.Kind, "from", r.From, "to", r.To, "note", r.Note)
		}
	}

	summary := report.Summarize(records)
	slog.Info("navcheck finished", summary.LogArgs()...)
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d", ErrChecksFailed, summary.Failed, summary.Queries)
	}
	return nil
}

// loadWorld reads the map and tileset from files or, when ids are given, from the database.
func loadWorld(ctx context.Context, cfg config.NavCheck, opts options) (*model.Map, model.Tileset, error) {
	var database *db.DB
	if opts.mapID != "" || opts.tilesetID != "" {
		var err error
		database, err = db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, err
		}
		defer database.Close()
	}

	var m *model.Map
	switch {
	case opts.mapID != "":
		var err error
		m, err = database.Maps().Load(ctx, opts.mapID)
		if err != nil {
			return nil, nil, err
		}
		if m == nil {
			return nil, nil, fmt.Errorf("map %q not found", opts.mapID)
		}
	case opts.mapPath != "":
		var err error
		m, _, err = data.LoadMap(opts.mapPath)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("one of -map or -map-id is required")
	}

	var ts model.Tileset
	switch {
	case opts.tilesetID != "":
		var err error
		ts, err = database.Tilesets().Load(ctx, opts.tilesetID)
		if err != nil {
			return nil, nil, err
		}
		if ts == nil {
			return nil, nil, fmt.Errorf("tileset %q not found", opts.tilesetID)
		}
	case opts.tilesetPath != "":
		var err error
		ts, err = data.LoadTileset(opts.tilesetPath)
		if err != nil {
			return nil, nil, err
		}
	default:
		return nil, nil, fmt.Errorf("one of -tileset or -tileset-id is required")
	}

	return m, ts, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
