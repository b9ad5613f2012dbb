package optim

import (
	"context"
	"math"
	"sync"

	"github.com/entropylost/fracture2d/internal/experiment"
)

// GridSearch enumerates the cartesian product of parameter ranges and
// evaluates every point with its own freshly built experiment.
type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

// Point is one evaluated grid cell.
type Point struct {
	Params map[string]float64
	Score  float64
	Err    error
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search runs the full grid, one goroutine per point; experiments own their
// worlds so points share nothing. It returns every point in enumeration
// order plus the parameters minimizing the named result metric. Points whose
// build or run failed carry the error and never win.
func (g *GridSearch) Search(
	ctx context.Context,
	buildExperiment func(params map[string]float64) (*experiment.Experiment, error),
	metricName string,
) ([]Point, map[string]float64, float64) {

	points := g.enumerate(0, make(map[string]float64), nil)

	var wg sync.WaitGroup
	for i := range points {
		wg.Add(1)
		go func(p *Point) {
			defer wg.Done()

			exp, err := buildExperiment(p.Params)
			if err != nil {
				p.Err = err
				return
			}
			result, err := exp.Run(ctx)
			if err != nil {
				p.Err = err
				return
			}
			p.Score = result.Metrics[metricName]
		}(&points[i])
	}
	wg.Wait()

	best := math.Inf(1)
	var bestParams map[string]float64
	for _, p := range points {
		if p.Err == nil && p.Score < best {
			best = p.Score
			bestParams = p.Params
		}
	}
	return points, bestParams, best
}

// enumerate expands the product depth-first, fixing one parameter per level,
// so the point order is stable across runs.
func (g *GridSearch) enumerate(depth int, current map[string]float64, acc []Point) []Point {
	if depth == len(g.paramNames) {
		params := make(map[string]float64, len(current))
		for k, v := range current {
			params[k] = v
		}
		return append(acc, Point{Params: params})
	}

	for _, val := range g.ranges[depth] {
		current[g.paramNames[depth]] = val
		acc = g.enumerate(depth+1, current, acc)
	}
	return acc
}
