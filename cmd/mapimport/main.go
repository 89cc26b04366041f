// Command mapimport stores a map export and its tileset in PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/udisondev/wasteland/internal/config"
	"github.com/udisondev/wasteland/internal/data"
	"github.com/udisondev/wasteland/internal/db"
)

const DefaultConfigPath = "config/navcheck.yaml"

type options struct {
	configPath  string
	mapPath     string
	tilesetPath string
	mapID       string
	tilesetID   string
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", config.ConfigPath(DefaultConfigPath), "config file")
	flag.StringVar(&opts.mapPath, "map", "", "map JSON file (required)")
	flag.StringVar(&opts.tilesetPath, "tileset", "", "tileset JSON or YAML file (required)")
	flag.StringVar(&opts.mapID, "map-id", "", "map id (defaults to the id in the file, then the file name)")
	flag.StringVar(&opts.tilesetID, "tileset-id", "default", "tileset id")
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
	if opts.mapPath == "" || opts.tilesetPath == "" {
		return fmt.Errorf("-map and -tileset are required")
	}

	cfg, err := config.LoadNavCheck(opts.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	m, info, err := data.LoadMap(opts.mapPath)
	if err != nil {
		return err
	}
	ts, err := data.LoadTileset(opts.tilesetPath)
	if err != nil {
		return err
	}
	if unknown := data.UnknownTiles(m, ts); len(unknown) > 0 {
		slog.Warn("map references tiles missing from tileset", "ids", unknown)
	}

	mapID, name := mapIdentity(opts, info)

	if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database migrations applied")

	database, err := db.New(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer database.Close()

	changed, err := database.Tilesets().Save(ctx, opts.tilesetID, ts)
	if err != nil {
		return err
	}
	slog.Info("tileset imported", "id", opts.tilesetID, "tiles", len(ts), "changed", changed)

	changed, err = database.Maps().Save(ctx, mapID, name, m)
	if err != nil {
		return err
	}
	slog.Info("map imported",
		"id", mapID,
		"name", name,
		"levels", len(m.Levels),
		"changed", changed)
	return nil
}

// mapIdentity picks the stored id (-map-id, then the id in the file, then the
// file name) and the display name.
func mapIdentity(opts options, info data.MapInfo) (id, name string) {
	id = opts.mapID
	if id == "" {
		id = info.ID
	}
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(opts.mapPath), filepath.Ext(opts.mapPath))
	}
	name = info.Name
	if name == "" {
		name = id
	}
	return id, name
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
