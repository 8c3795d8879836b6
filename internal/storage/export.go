package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/ballsim/internal/dynamo"
)

// FrameRecorder is a dynamo.Observer that keeps a copy of the population
// every Every ticks.
type FrameRecorder struct {
	Every  int
	Frames []Frame
}

func NewFrameRecorder(every int) *FrameRecorder {
	if every <= 0 {
		every = 1
	}
	return &FrameRecorder{Every: every}
}

func (r *FrameRecorder) OnStep(balls dynamo.Balls, tick int) {
	if tick%r.Every != 0 {
		return
	}
	r.Frames = append(r.Frames, Frame{Tick: tick, Balls: balls.Clone()})
}

type ExportData struct {
	Meta   *RunMetadata `json:"meta"`
	Frames []Frame      `json:"frames"`
}

// ExportJSON writes a stored run as a single JSON document to w.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ExportData{Meta: meta, Frames: frames})
}

func (s *Store) ExportJSONFile(path, runID string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return s.ExportJSON(f, runID)
}
