package optim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/ballsim/internal/experiment"
)

// Builder turns one grid point into a ready experiment.
type Builder func(params map[string]float64) (*experiment.Experiment, error)

// GridSearch tries every combination of the given parameter values and
// keeps the one with the lowest metric.
type GridSearch struct {
	names  []string
	values [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{names: params, values: ranges}
}

// Search visits points with the last parameter varying fastest. Ties keep
// the earlier point. Negate a metric in the caller to maximize it. Failed
// points are skipped; if none succeeds the last error is returned.
func (g *GridSearch) Search(ctx context.Context, build Builder, metricName string) (map[string]float64, float64, error) {
	if len(g.names) != len(g.values) {
		return nil, 0, fmt.Errorf("%d params but %d ranges", len(g.names), len(g.values))
	}
	for i, vs := range g.values {
		if len(vs) == 0 {
			return nil, 0, fmt.Errorf("no values for %s", g.names[i])
		}
	}

	best := math.Inf(1)
	var bestPoint map[string]float64
	var lastErr error

	odometer := make([]int, len(g.names))
	for {
		if err := ctx.Err(); err != nil {
			return bestPoint, best, err
		}
		point := g.point(odometer)
		val, err := evaluate(ctx, build, point, metricName)
		switch {
		case err != nil:
			lastErr = err
		case val < best:
			best, bestPoint = val, point
		}
		if !g.next(odometer) {
			break
		}
	}

	if bestPoint == nil {
		return nil, 0, lastErr
	}
	return bestPoint, best, nil
}

func (g *GridSearch) point(odometer []int) map[string]float64 {
	p := make(map[string]float64, len(g.names))
	for i, name := range g.names {
		p[name] = g.values[i][odometer[i]]
	}
	return p
}

// next advances the odometer and reports false once it wraps around.
func (g *GridSearch) next(odometer []int) bool {
	for i := len(odometer) - 1; i >= 0; i-- {
		odometer[i]++
		if odometer[i] < len(g.values[i]) {
			return true
		}
		odometer[i] = 0
	}
	return false
}

func evaluate(ctx context.Context, build Builder, point map[string]float64, metricName string) (float64, error) {
	exp, err := build(point)
	if err != nil {
		return 0, err
	}
	run, err := exp.Run(ctx)
	if err != nil {
		return 0, err
	}
	val, ok := run.Metrics[metricName]
	if !ok {
		return 0, fmt.Errorf("metric %q not reported", metricName)
	}
	return val, nil
}
