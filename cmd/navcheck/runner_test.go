package main

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/wasteland/internal/data"
	"github.com/udisondev/wasteland/internal/game/nav"
	"github.com/udisondev/wasteland/internal/model"
	"github.com/udisondev/wasteland/internal/report"
	"github.com/udisondev/wasteland/internal/testutil"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

func TestRunQueries(t *testing.T) {
	m := testutil.BuildMap(t, map[int][]string{
		0: {"..#..", "....."},
	})
	ts := testutil.Tileset()
	engine := nav.ForMap(m, ts, nav.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))

	queries := []data.Query{
		{Name: "detour", Kind: data.KindPath, From: model.C(0, 0, 0), To: model.C(4, 0, 0), ExpectCost: intPtr(6)},
		{Name: "wrong cost", Kind: data.KindPath, From: model.C(0, 0, 0), To: model.C(4, 0, 0), ExpectCost: intPtr(4)},
		{Name: "wall blocks", Kind: data.KindLOS, From: model.C(0, 0, 0), To: model.C(4, 0, 0), ExpectFound: boolPtr(false)},
		{Name: "open row", Kind: data.KindLOS, From: model.C(0, 1, 0), To: model.C(4, 1, 0), ExpectFound: boolPtr(false)},
		{Name: "into wall", Kind: data.KindPath, From: model.C(0, 0, 0), To: model.C(2, 0, 0), ExpectCost: intPtr(3)},
		{Name: "no expectations", Kind: data.KindPath, From: model.C(0, 1, 0), To: model.C(1, 1, 0)},
	}

	records, err := runQueries(context.Background(), engine, m, ts, queries, 3)
	require.NoError(t, err)
	require.Len(t, records, len(queries))

	for i, q := range queries {
		assert.Equal(t, q.Name, records[i].Query, "order is kept")
	}

	detour := records[0]
	assert.True(t, detour.Passed)
	assert.True(t, detour.Found)
	assert.Equal(t, 7, detour.Nodes)
	assert.Equal(t, 6, detour.Cost)
	assert.Equal(t, "(0,0,0)", detour.From)
	assert.Equal(t, "path", detour.Kind)

	assert.False(t, records[1].Passed)
	assert.Equal(t, "expected cost 4, got 6", records[1].Note)

	assert.True(t, records[2].Passed)
	assert.False(t, records[2].Found)
	assert.Equal(t, "los", records[2].Kind)

	assert.False(t, records[3].Passed)
	assert.True(t, records[3].Found)
	assert.Equal(t, "expected found=false", records[3].Note)

	assert.False(t, records[4].Passed)
	assert.Equal(t, "expected cost 3, no path", records[4].Note)
	assert.Zero(t, records[4].Nodes)

	assert.True(t, records[5].Passed)
	assert.Empty(t, records[5].Note)
}

func TestRunQueriesCanceled(t *testing.T) {
	m := testutil.BuildMap(t, map[int][]string{0: {"..."}})
	ts := testutil.Tileset()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	queries := []data.Query{{Name: "q", Kind: data.KindPath, From: model.C(0, 0, 0), To: model.C(2, 0, 0)}}
	_, err := runQueries(ctx, nav.ForMap(m, ts), m, ts, queries, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name   string
		query  data.Query
		rec    report.Record
		passed bool
		note   string
	}{
		{"nothing expected", data.Query{}, report.Record{}, true, ""},
		{"found matches", data.Query{ExpectFound: boolPtr(true)}, report.Record{Found: true}, true, ""},
		{"cost matches", data.Query{ExpectCost: intPtr(5)}, report.Record{Found: true, Cost: 5}, true, ""},
		{
			"both miss",
			data.Query{ExpectFound: boolPtr(true), ExpectCost: intPtr(5)},
			report.Record{},
			false,
			"expected found=true; expected cost 5, no path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := tt.rec
			check(tt.query, &rec)
			assert.Equal(t, tt.passed, rec.Passed)
			assert.Equal(t, tt.note, rec.Note)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("warn"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("verbose"))
}
