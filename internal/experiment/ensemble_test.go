package experiment

import (
	"context"
	"testing"

	"go.uber.org/goleak"

	"github.com/san-kum/ballsim/internal/config"
)

func TestEnsembleSeeds(t *testing.T) {
	defer goleak.VerifyNone(t)

	cfg, err := config.GetPreset("field")
	if err != nil {
		t.Fatal(err)
	}
	runs, err := NewEnsemble(Config{Name: "field", Ticks: 20, Sim: cfg}, 3, 10, nil).Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(runs))
	}
	for i, want := range []string{"field_seed10", "field_seed11", "field_seed12"} {
		if runs[i].Name != want {
			t.Errorf("run %d named %s, want %s", i, runs[i].Name, want)
		}
		if runs[i].Ticks != 20 {
			t.Errorf("run %d stopped at tick %d", i, runs[i].Ticks)
		}
	}
	a, b := runs[0].Frames[0].Balls, runs[1].Frames[0].Balls
	same := len(a) == len(b)
	for i := 0; same && i < len(a); i++ {
		same = a[i] == b[i]
	}
	if same {
		t.Error("different seeds produced the same starting population")
	}
	if cfg.Scene.Seed != 1 {
		t.Errorf("ensemble modified the caller's config seed to %d", cfg.Scene.Seed)
	}
}

func TestEnsembleError(t *testing.T) {
	defer goleak.VerifyNone(t)

	_, err := NewEnsemble(Config{Name: "bad", Ticks: -1}, 2, 0, nil).Run(context.Background())
	if err == nil {
		t.Error("expected setup error to surface")
	}
}
