package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/ballsim/internal/dynamo"
	"github.com/san-kum/ballsim/internal/storage"
)

func TestFFTImpulse(t *testing.T) {
	out := FFT([]float64{1, 0, 0, 0})
	for k, v := range out {
		if math.Abs(real(v)-1) > 1e-12 || math.Abs(imag(v)) > 1e-12 {
			t.Errorf("bin %d = %v, want 1", k, v)
		}
	}
}

func TestFFTConstantAndPadding(t *testing.T) {
	out := FFT([]float64{1, 1, 1})
	if len(out) != 4 {
		t.Fatalf("expected 3 samples to pad to 4, got %d", len(out))
	}
	if math.Abs(real(out[0])-3) > 1e-12 {
		t.Errorf("DC bin = %v, want 3", out[0])
	}
	if FFT(nil) != nil {
		t.Error("empty input should give no bins")
	}

	flat := FFT([]float64{2, 2, 2, 2, 2, 2, 2, 2})
	for k := 1; k < len(flat); k++ {
		if cmplxAbs(flat[k]) > 1e-9 {
			t.Errorf("bin %d of a constant = %v, want 0", k, flat[k])
		}
	}
}

func cmplxAbs(c complex128) float64 { return math.Hypot(real(c), imag(c)) }

func TestPowerSpectrumPads(t *testing.T) {
	if got := len(PowerSpectrum(make([]float64, 100))); got != 64 {
		t.Errorf("expected 64 bins for 100 samples, got %d", got)
	}
}

func TestDominantPeriod(t *testing.T) {
	series := make([]float64, 256)
	for i := range series {
		series[i] = 300 + 50*math.Sin(2*math.Pi*float64(i)/32)
	}
	if got := DominantPeriod(series, 1); got != 32 {
		t.Errorf("expected period 32, got %v", got)
	}
	if got := DominantPeriod(series, 2); got != 64 {
		t.Errorf("expected period 64 at every=2, got %v", got)
	}
	if got := DominantPeriod(make([]float64, 64), 1); got != 0 {
		t.Errorf("flat series should have no period, got %v", got)
	}
	if got := DominantPeriod([]float64{1, 2}, 1); got != 0 {
		t.Errorf("short series should have no period, got %v", got)
	}
}

func frames() []storage.Frame {
	out := make([]storage.Frame, 0, 5)
	for i := 0; i < 5; i++ {
		f := float64(i)
		out = append(out, storage.Frame{Tick: i, Balls: dynamo.Balls{
			{Pos: dynamo.Vec2{X: 100 + f, Y: 200 - f}, Vel: dynamo.Vec2{X: 3, Y: 4}, Radius: 10},
		}})
	}
	return out
}

func TestSeries(t *testing.T) {
	xs, err := Series(frames(), 0, FieldX)
	if err != nil {
		t.Fatal(err)
	}
	if len(xs) != 5 || xs[4] != 104 {
		t.Errorf("unexpected x series %v", xs)
	}
	speeds, _ := Series(frames(), 0, FieldSpeed)
	if speeds[0] != 5 {
		t.Errorf("expected speed 5, got %v", speeds[0])
	}
	if _, err := Series(frames(), 1, FieldX); err == nil {
		t.Error("expected out of range error")
	}
	if _, err := Series(frames(), 0, "z"); err == nil {
		t.Error("expected unknown field error")
	}
}

func TestBallPortrait(t *testing.T) {
	p, err := BallPortrait(frames(), 0, FieldX, FieldY)
	if err != nil {
		t.Fatal(err)
	}
	if !p.ScreenY {
		t.Error("x/y portrait should use screen orientation")
	}
	art := PhasePortraitToASCII(p, 20, 10)
	lines := strings.Split(strings.TrimSuffix(art, "\n"), "\n")
	if len(lines) != 10 {
		t.Fatalf("expected 10 lines, got %d", len(lines))
	}
	if n := strings.Count(art, "•"); n != 5 {
		t.Errorf("expected 5 points, got %d", n)
	}
	// Screen orientation puts the first point (largest y) at the bottom.
	if !strings.Contains(lines[len(lines)-2], "•") && !strings.Contains(lines[len(lines)-1], "•") {
		t.Error("expected the lowest row to hold a point")
	}

	vp, _ := BallPortrait(frames(), 0, FieldX, FieldVX)
	if vp.ScreenY {
		t.Error("phase portrait should use math orientation")
	}
	if PhasePortraitToASCII(nil, 10, 10) != "" {
		t.Error("nil portrait should render empty")
	}
}
