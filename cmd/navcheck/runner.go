package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/wasteland/internal/data"
	"github.com/udisondev/wasteland/internal/game/nav"
	"github.com/udisondev/wasteland/internal/model"
	"github.com/udisondev/wasteland/internal/report"
)

type navigator interface {
	nav.Navigator
	nav.RouteFinder
}

// runQueries executes queries with at most workers in flight.
// Records keep the scenario order.
func runQueries(ctx context.Context, n navigator, m *model.Map, ts model.Tileset, queries []data.Query, workers int) ([]report.Record, error) {
	records := make([]report.Record, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	for i, q := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = runQuery(n, m, ts, q)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("running queries: %w", err)
	}
	return records, nil
}

func runQuery(n navigator, m *model.Map, ts model.Tileset, q data.Query) report.Record {
	rec := report.Record{
		Query: q.Name,
		Kind:  string(q.Kind),
		From:  q.From.String(),
		To:    q.To.String(),
	}

	began := time.Now()
	switch q.Kind {
	case data.KindLOS:
		rec.Found = n.HasLineOfSight(q.From, q.To, ts, m)
	default:
		route, ok := n.FindRoute(q.From, q.To, nil, m, ts)
		rec.Found = ok
		rec.Nodes = len(route.Path)
		rec.Cost = route.Total
	}
	rec.DurationUS = time.Since(began).Microseconds()

	check(q, &rec)
	return rec
}

// check compares a record against the query expectations and fills
// Passed and Note. Queries without expectations always pass.
func check(q data.Query, rec *report.Record) {
	var notes []string
	if q.ExpectFound != nil && *q.ExpectFound != rec.Found {
		notes = append(notes, fmt.Sprintf("expected found=%t", *q.ExpectFound))
	}
	if q.ExpectCost != nil {
		switch {
		case !rec.Found:
			notes = append(notes, fmt.Sprintf("expected cost %d, no path", *q.ExpectCost))
		case rec.Cost != *q.ExpectCost:
			notes = append(notes, fmt.Sprintf("expected cost %d, got %d", *q.ExpectCost, rec.Cost))
		}
	}

	rec.Passed = len(notes) == 0
	rec.Note = strings.Join(notes, "; ")
}
