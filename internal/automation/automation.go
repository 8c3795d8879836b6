package automation

import (
	"context"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/ballsim/internal/config"
	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/sim"
)

// Script is a scripted input sequence replayed against a headless session.
type Script struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Preset      string       `yaml:"preset"`
	Ticks       int          `yaml:"ticks"`
	Steps       []ScriptStep `yaml:"steps"`
}

// ScriptStep fires one input event before tick At is simulated.
type ScriptStep struct {
	At     int     `yaml:"at"`
	Action string  `yaml:"action"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Color  string  `yaml:"color"`
}

type Result struct {
	Ticks   int
	Balls   dynamo.Balls
	Metrics map[string]float64
}

// LoadScript loads a script from a YAML file
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var script Script
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, err
	}
	if err := script.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &script, nil
}

func (s *Script) Validate() error {
	for i, step := range s.Steps {
		if _, err := step.Event(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		if step.At < 0 {
			return fmt.Errorf("step %d: negative tick %d", i+1, step.At)
		}
	}
	return nil
}

func (st ScriptStep) Event() (sim.Event, error) {
	pos := dynamo.Vec2{X: st.X, Y: st.Y}
	switch st.Action {
	case "down":
		return sim.Event{Kind: sim.EventPointerDown, Pos: pos}, nil
	case "move":
		return sim.Event{Kind: sim.EventPointerMove, Pos: pos}, nil
	case "commit":
		if st.Color == "" {
			return sim.Event{}, fmt.Errorf("commit without color")
		}
		return sim.Event{Kind: sim.EventCommit, Color: dynamo.Color(st.Color)}, nil
	case "dismiss":
		return sim.Event{Kind: sim.EventDismiss}, nil
	}
	return sim.Event{}, fmt.Errorf("unknown action %q", st.Action)
}

// RunScript replays script against s. Ticks defaults to one past the last
// scripted step.
func RunScript(ctx context.Context, script *Script, s *sim.Session, log *zap.Logger) (*Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	steps := make([]ScriptStep, len(script.Steps))
	copy(steps, script.Steps)
	sort.SliceStable(steps, func(i, j int) bool { return steps[i].At < steps[j].At })

	ticks := script.Ticks
	if n := len(steps); n > 0 && steps[n-1].At >= ticks {
		ticks = steps[n-1].At + 1
	}

	next := 0
	for tick := 0; tick < ticks; tick++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		for next < len(steps) && steps[next].At == tick {
			ev, err := steps[next].Event()
			if err != nil {
				return nil, fmt.Errorf("step %d: %w", next+1, err)
			}
			log.Debug("script event", zap.Int("tick", tick), zap.Stringer("kind", ev.Kind))
			s.Apply(ev)
			next++
		}

		if err := s.Advance(1); err != nil {
			return nil, err
		}
	}

	return &Result{
		Ticks:   s.Tick(),
		Balls:   s.Snapshot(),
		Metrics: s.Metrics(),
	}, nil
}

// ParameterSweep runs a fresh session per value of one physics parameter.
type ParameterSweep struct {
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Ticks     int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, cfg *config.Config) ([]SweepResult, error) {
	if sweep.NumSteps < 2 {
		return nil, fmt.Errorf("sweep needs at least 2 steps, got %d", sweep.NumSteps)
	}
	results := make([]SweepResult, 0, sweep.NumSteps)
	paramStep := (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)

	for i := 0; i < sweep.NumSteps; i++ {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}

		paramVal := sweep.ParamMin + float64(i)*paramStep
		s, err := sim.NewFromConfig(cfg, nil)
		if err != nil {
			return results, err
		}
		if err := s.Tuning().SetParam(sweep.ParamName, paramVal); err != nil {
			return results, err
		}
		if err := s.Advance(sweep.Ticks); err != nil {
			return results, fmt.Errorf("%s=%.4f: %w", sweep.ParamName, paramVal, err)
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Metrics:    s.Metrics(),
		})
	}

	return results, nil
}
