package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/wasteland/internal/model"
)

// QueryKind selects which navigation call a scenario query runs.
type QueryKind string

const (
	KindPath QueryKind = "path"
	KindLOS  QueryKind = "los"
)

// Query is one navigation check from a scenario file.
type Query struct {
	Name string
	Kind QueryKind
	From model.Coord
	To   model.Coord

	// ExpectCost is the expected route cost (path queries only).
	ExpectCost *int
	// ExpectFound is whether a path or a line of sight is expected.
	ExpectFound *bool
}

type queryYAML struct {
	Name        string    `yaml:"name"`
	Kind        QueryKind `yaml:"kind"`
	From        []int     `yaml:"from"`
	To          []int     `yaml:"to"`
	ExpectCost  *int      `yaml:"expect_cost"`
	ExpectFound *bool     `yaml:"expect_found"`
}

// LoadScenario reads a YAML list of queries:
//
//	- name: corridor
//	  kind: path
//	  from: [1, 1, 0]
//	  to: [8, 1, 0]
//	  expect_cost: 7
func LoadScenario(path string) ([]Query, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}

	queries, err := ParseScenario(raw)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return queries, nil
}

// ParseScenario decodes scenario YAML.
func ParseScenario(raw []byte) ([]Query, error) {
	var items []queryYAML
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	queries := make([]Query, 0, len(items))
	for i, it := range items {
		q, err := it.toQuery()
		if err != nil {
			return nil, fmt.Errorf("query %d (%s): %w", i, it.Name, err)
		}
		if q.Name == "" {
			q.Name = fmt.Sprintf("%s-%d", q.Kind, i+1)
		}
		queries = append(queries, q)
	}
	return queries, nil
}

func (it queryYAML) toQuery() (Query, error) {
	kind := it.Kind
	if kind == "" {
		kind = KindPath
	}
	if kind != KindPath && kind != KindLOS {
		return Query{}, fmt.Errorf("unknown kind %q", it.Kind)
	}
	if kind == KindLOS && it.ExpectCost != nil {
		return Query{}, fmt.Errorf("expect_cost is only valid for path queries")
	}

	from, err := coordOf(it.From)
	if err != nil {
		return Query{}, fmt.Errorf("from: %w", err)
	}
	to, err := coordOf(it.To)
	if err != nil {
		return Query{}, fmt.Errorf("to: %w", err)
	}

	return Query{
		Name:        it.Name,
		Kind:        kind,
		From:        from,
		To:          to,
		ExpectCost:  it.ExpectCost,
		ExpectFound: it.ExpectFound,
	}, nil
}

func coordOf(v []int) (model.Coord, error) {
	if len(v) != 3 {
		return model.Coord{}, fmt.Errorf("want [x, y, z], got %d values", len(v))
	}
	return model.C(v[0], v[1], v[2]), nil
}
