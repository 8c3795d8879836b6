package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/ballsim/internal/dynamo"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{"tick", "ball", "x", "y", "vx", "vy", "radius", "color"}

// Store keeps one directory per run under baseDir.
type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Frame is the population as it was after Tick.
type Frame struct {
	Tick  int          `json:"tick"`
	Balls dynamo.Balls `json:"balls"`
}

// Run is everything a headless session produced.
type Run struct {
	Name    string             `json:"name"`
	Bounds  dynamo.Bounds      `json:"bounds"`
	Tuning  map[string]float64 `json:"tuning"`
	Ticks   int                `json:"ticks"`
	Frames  []Frame            `json:"frames"`
	Metrics map[string]float64 `json:"metrics"`
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Width     float64            `json:"width"`
	Height    float64            `json:"height"`
	Balls     int                `json:"balls"`
	Ticks     int                `json:"ticks"`
	Frames    int                `json:"frames"`
	Tuning    map[string]float64 `json:"tuning"`
	Metrics   map[string]float64 `json:"metrics"`
}

func (s *Store) Save(run *Run) (string, error) {
	now := s.now()
	runID := fmt.Sprintf("%s_%s_%s", run.Name, now.Format("20060102-150405"), uuid.NewString()[:8])
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	balls := 0
	if len(run.Frames) > 0 {
		balls = len(run.Frames[0].Balls)
	}
	meta := RunMetadata{
		ID:        runID,
		Name:      run.Name,
		Timestamp: now,
		Width:     run.Bounds.Width,
		Height:    run.Bounds.Height,
		Balls:     balls,
		Ticks:     run.Ticks,
		Frames:    len(run.Frames),
		Tuning:    run.Tuning,
		Metrics:   run.Metrics,
	}
	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), run.Frames); err != nil {
		return "", fmt.Errorf("write frames: %w", err)
	}
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Frames are stored long-form, one row per ball per frame.
func writeFrames(path string, frames []Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(framesHeader); err != nil {
		return err
	}
	ff := func(v float64) string { return strconv.FormatFloat(v, 'f', 6, 64) }
	for _, fr := range frames {
		for i, b := range fr.Balls {
			row := []string{
				strconv.Itoa(fr.Tick), strconv.Itoa(i),
				ff(b.Pos.X), ff(b.Pos.Y), ff(b.Vel.X), ff(b.Vel.Y), ff(b.Radius),
				string(b.Color),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

// List returns every readable run, oldest first. Directories without
// metadata are skipped.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}
	return &meta, nil
}

// LoadFrames reads the stored frames back in tick order.
func (s *Store) LoadFrames(runID string) ([]Frame, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(framesHeader)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}

	frames := make([]Frame, 0)
	for i, rec := range records {
		if i == 0 {
			continue
		}
		tick, err := strconv.Atoi(rec[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", runID, i+1, err)
		}
		vals := make([]float64, 5)
		for j := range vals {
			if vals[j], err = strconv.ParseFloat(rec[2+j], 64); err != nil {
				return nil, fmt.Errorf("%s line %d: %w", runID, i+1, err)
			}
		}
		if len(frames) == 0 || frames[len(frames)-1].Tick != tick {
			frames = append(frames, Frame{Tick: tick})
		}
		last := &frames[len(frames)-1]
		last.Balls = append(last.Balls, dynamo.Ball{
			Pos:    dynamo.Vec2{X: vals[0], Y: vals[1]},
			Vel:    dynamo.Vec2{X: vals[2], Y: vals[3]},
			Radius: vals[4],
			Color:  dynamo.Color(rec[7]),
		})
	}
	return frames, nil
}
