package nav

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/udisondev/wasteland/internal/model"
)

// Validation errors. FindPath and HasLineOfSight log these and return their
// failure value instead of propagating them.
var (
	ErrNoOracle          = errors.New("passability oracle not configured")
	ErrMissingCapability = errors.New("passability oracle capability missing")
	ErrNoMap             = errors.New("map data missing")
	ErrNoLevels          = errors.New("map has no levels")
	ErrNoDimensions      = errors.New("map has no dimensions")
	ErrEmptyTileset      = errors.New("tileset is empty")
)

// Entity is the moving actor a path is requested for. May be nil.
type Entity interface {
	EntityID() string
}

// LineFunc rasterizes the segment from -> to into grid cells.
// The first cell must equal from, the last must equal to.
type LineFunc func(from, to model.Coord) []model.Coord

// Navigator answers path and sight queries over a map snapshot.
type Navigator interface {
	FindPath(start, end model.Coord, ent Entity, m *model.Map, ts model.Tileset) []model.Coord
	HasLineOfSight(start, end model.Coord, ts model.Tileset, m *model.Map) bool
}

// RouteFinder is implemented by navigators that report per-step costs.
type RouteFinder interface {
	FindRoute(start, end model.Coord, ent Entity, m *model.Map, ts model.Tileset) (Route, bool)
}

// Middleware decorates a Navigator (timing, metrics, tracing).
type Middleware func(Navigator) Navigator

// Chain applies middlewares so that the first one is the outermost.
func Chain(n Navigator, mws ...Middleware) Navigator {
	for i := len(mws) - 1; i >= 0; i-- {
		n = mws[i](n)
	}
	return n
}

// Engine is the navigation core: A* pathfinding and line-of-sight.
// Stateless between calls: safe for concurrent use over immutable snapshots.
type Engine struct {
	oracle        Oracle
	line          LineFunc
	maxIterations int
	logger        *slog.Logger
}

var (
	_ Navigator   = (*Engine)(nil)
	_ RouteFinder = (*Engine)(nil)
)

// Option configures an Engine.
type Option func(*Engine)

// WithLineFunc replaces the default 3D Bresenham rasterizer.
func WithLineFunc(fn LineFunc) Option {
	return func(e *Engine) { e.line = fn }
}

// WithMaxIterations sets the node-expansion cap. Non-positive values keep the default.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxIterations = n
		}
	}
}

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine creates an Engine backed by the given oracle.
func NewEngine(oracle Oracle, opts ...Option) *Engine {
	e := &Engine{
		oracle:        oracle,
		line:          Line3D,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ForMap creates an Engine whose oracle is derived from the map snapshot itself.
func ForMap(m *model.Map, ts model.Tileset, opts ...Option) *Engine {
	return NewEngine(NewGridOracle(m, ts), opts...)
}

func (e *Engine) log() *slog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return slog.Default()
}

// Validate checks the preconditions shared by FindPath and HasLineOfSight.
func (e *Engine) Validate(m *model.Map, ts model.Tileset) error {
	if e.oracle == nil {
		return ErrNoOracle
	}
	if r, ok := e.oracle.(capabilityReporter); ok {
		if missing := r.MissingCapabilities(); len(missing) > 0 {
			return fmt.Errorf("%w: %s", ErrMissingCapability, strings.Join(missing, ", "))
		}
	}
	if m == nil {
		return ErrNoMap
	}
	if len(m.Levels) == 0 {
		return ErrNoLevels
	}
	if m.Dimensions.Width <= 0 || m.Dimensions.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrNoDimensions, m.Dimensions.Width, m.Dimensions.Height)
	}
	if len(ts) == 0 {
		return ErrEmptyTileset
	}
	return nil
}
