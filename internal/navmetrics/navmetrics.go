// Package navmetrics instruments a nav.Navigator with Prometheus metrics.
//
// Metrics:
//   - wasteland_nav_findpath_duration_seconds: histogram
//   - wasteland_nav_findpath_total{result}: counter, result is found or none
//   - wasteland_nav_path_length: histogram of path nodes
//   - wasteland_nav_los_total{result}: counter, result is clear or blocked
package navmetrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/udisondev/wasteland/internal/game/nav"
	"github.com/udisondev/wasteland/internal/model"
)

const namespace = "wasteland_nav"

// Result label values.
const (
	ResultFound   = "found"
	ResultNone    = "none"
	ResultClear   = "clear"
	ResultBlocked = "blocked"
)

// Navigator decorates another Navigator and records every call.
type Navigator struct {
	next nav.Navigator

	findDuration prometheus.Histogram
	findTotal    *prometheus.CounterVec
	pathLength   prometheus.Histogram
	losTotal     *prometheus.CounterVec
}

var (
	_ nav.Navigator   = (*Navigator)(nil)
	_ nav.RouteFinder = (*Navigator)(nil)
)

// Wrap creates the decorator and registers its collectors in reg.
// A nil reg means prometheus.DefaultRegisterer.
func Wrap(next nav.Navigator, reg prometheus.Registerer) (*Navigator, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	n := &Navigator{
		next: next,
		findDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "findpath_duration_seconds",
			Help:      "Duration of FindPath calls.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.5, 1},
		}),
		findTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "findpath_total",
			Help:      "FindPath calls by result.",
		}, []string{"result"}),
		pathLength: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "path_length",
			Help:      "Number of nodes in found paths.",
			Buckets:   prometheus.ExponentialBuckets(2, 2, 10),
		}),
		losTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "los_total",
			Help:      "HasLineOfSight calls by result.",
		}, []string{"result"}),
	}

	for _, c := range []prometheus.Collector{n.findDuration, n.findTotal, n.pathLength, n.losTotal} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("registering nav metrics: %w", err)
		}
	}

	// Pre-create label series so they show up at zero.
	n.findTotal.WithLabelValues(ResultFound)
	n.findTotal.WithLabelValues(ResultNone)
	n.losTotal.WithLabelValues(ResultClear)
	n.losTotal.WithLabelValues(ResultBlocked)

	return n, nil
}

// Middleware returns a nav.Middleware that wraps with metrics registered in reg.
// Registration errors panic, like prometheus.MustRegister.
func Middleware(reg prometheus.Registerer) nav.Middleware {
	return func(next nav.Navigator) nav.Navigator {
		n, err := Wrap(next, reg)
		if err != nil {
			panic(err)
		}
		return n
	}
}

func (n *Navigator) FindPath(start, end model.Coord, ent nav.Entity, m *model.Map, ts model.Tileset) []model.Coord {
	began := time.Now()
	path := n.next.FindPath(start, end, ent, m, ts)
	n.observe(began, path)
	return path
}

// FindRoute delegates to the wrapped navigator when it reports costs.
// Otherwise the route carries the path only.
func (n *Navigator) FindRoute(start, end model.Coord, ent nav.Entity, m *model.Map, ts model.Tileset) (nav.Route, bool) {
	began := time.Now()
	rf, ok := n.next.(nav.RouteFinder)
	if !ok {
		path := n.next.FindPath(start, end, ent, m, ts)
		n.observe(began, path)
		return nav.Route{Path: path}, path != nil
	}

	route, found := rf.FindRoute(start, end, ent, m, ts)
	n.observe(began, route.Path)
	return route, found
}

func (n *Navigator) observe(began time.Time, path []model.Coord) {
	n.findDuration.Observe(time.Since(began).Seconds())
	if path == nil {
		n.findTotal.WithLabelValues(ResultNone).Inc()
		return
	}
	n.findTotal.WithLabelValues(ResultFound).Inc()
	n.pathLength.Observe(float64(len(path)))
}

func (n *Navigator) HasLineOfSight(start, end model.Coord, ts model.Tileset, m *model.Map) bool {
	ok := n.next.HasLineOfSight(start, end, ts, m)
	if ok {
		n.losTotal.WithLabelValues(ResultClear).Inc()
	} else {
		n.losTotal.WithLabelValues(ResultBlocked).Inc()
	}
	return ok
}
