package optim

import (
	"context"
	"errors"
	"testing"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/experiment"
)

// A single ball that hits the right wall once within 100 ticks, so only
// restitution changes its energy.
func wallConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Balls = []config.BallConfig{{X: 700, Y: 300, VX: 5, Radius: 20, Color: string(dynamo.Red)}}
	return cfg
}

func TestGridSearchFindsLowestEnergy(t *testing.T) {
	g := NewGridSearch(
		[]string{"damping", "restitution"},
		[][]float64{{0.9, 0.5}, {0.9, 0.5}},
	)
	best, val, err := g.Search(context.Background(), TuningExperiments(wallConfig(), "wall", 100, nil), "energy")
	if err != nil {
		t.Fatal(err)
	}
	if best["restitution"] != 0.5 {
		t.Errorf("expected restitution 0.5, got %v", best["restitution"])
	}
	if best["damping"] != 0.9 {
		t.Errorf("expected first damping on a tie, got %v", best["damping"])
	}
	if val <= 0 || val >= 12.5 {
		t.Errorf("expected mean energy below the initial 12.5, got %v", val)
	}
}

func TestGridSearchUnknownParam(t *testing.T) {
	g := NewGridSearch([]string{"gravity"}, [][]float64{{1, 2}})
	_, _, err := g.Search(context.Background(), TuningExperiments(wallConfig(), "wall", 10, nil), "energy")
	if !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestGridSearchMismatchedRanges(t *testing.T) {
	g := NewGridSearch([]string{"damping", "restitution"}, [][]float64{{0.5}})
	if _, _, err := g.Search(context.Background(), TuningExperiments(wallConfig(), "wall", 10, nil), "energy"); err == nil {
		t.Error("expected error for mismatched ranges")
	}
}

func TestGridSearchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	g := NewGridSearch([]string{"damping"}, [][]float64{{0.5, 0.9}})
	if _, _, err := g.Search(ctx, TuningExperiments(wallConfig(), "wall", 10, nil), "energy"); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestGridSearchVisitOrder(t *testing.T) {
	g := NewGridSearch([]string{"a", "b"}, [][]float64{{1, 2}, {10, 20, 30}})
	var seen []float64
	build := func(p map[string]float64) (*experiment.Experiment, error) {
		seen = append(seen, p["a"]*100+p["b"])
		return nil, errors.New("skip")
	}
	if _, _, err := g.Search(context.Background(), build, "energy"); err == nil || err.Error() != "skip" {
		t.Fatalf("expected last build error, got %v", err)
	}
	want := []float64{110, 120, 130, 210, 220, 230}
	if len(seen) != len(want) {
		t.Fatalf("visited %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Fatalf("visited %v, want %v", seen, want)
		}
	}
}

func TestGridSearchMissingMetric(t *testing.T) {
	g := NewGridSearch([]string{"damping"}, [][]float64{{0.9}})
	_, _, err := g.Search(context.Background(), TuningExperiments(wallConfig(), "wall", 5, nil), "gravity")
	if err == nil {
		t.Error("expected an error for a metric no run reports")
	}
}

func TestGridSearchEmptyRange(t *testing.T) {
	g := NewGridSearch([]string{"damping"}, [][]float64{{}})
	if _, _, err := g.Search(context.Background(), TuningExperiments(wallConfig(), "wall", 5, nil), "energy"); err == nil {
		t.Error("expected an error for a parameter with no values")
	}
}
