// Package storage persists runs as a directory per run holding
// metadata.json and frames.csv.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/gravsim/internal/body"
	"github.com/san-kum/gravsim/internal/config"
	"github.com/san-kum/gravsim/internal/force"
	"github.com/san-kum/gravsim/internal/physics"
	"github.com/san-kum/gravsim/internal/sim"
)

const (
	metadataFile = "metadata.json"
	framesFile   = "frames.csv"
)

var framesHeader = []string{"time", "body", "mass", "radius", "color", "x", "y", "vx", "vy"}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Scenario    string             `json:"scenario"`
	Model       physics.Name       `json:"model"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        uint64             `json:"seed"`
	Bodies      int                `json:"bodies"`
	G           float64            `json:"g"`
	Dt          float64            `json:"dt"`
	Softening   float64            `json:"softening"`
	Steps       int                `json:"steps"`
	StepsTaken  int                `json:"steps_taken"`
	ModelParams force.Params       `json:"model_params"`
	Metrics     map[string]float64 `json:"metrics"`
}

// NewRunMetadata describes a finished run of cfg under model.
func NewRunMetadata(cfg *config.Config, model physics.Name, params force.Params, result *sim.Result) RunMetadata {
	meta := RunMetadata{
		Scenario:    cfg.Scenario,
		Model:       model,
		Timestamp:   time.Now(),
		Seed:        cfg.Seed,
		Dt:          cfg.Dt,
		G:           cfg.G,
		Softening:   cfg.Softening,
		Steps:       cfg.Steps,
		ModelParams: params,
	}
	if result != nil {
		meta.StepsTaken = result.StepsTaken
		meta.Metrics = result.Metrics
		if len(result.Frames) > 0 {
			meta.Bodies = len(result.Frames[0])
		}
	}
	return meta
}

// Save writes meta and the frames of result into a new run directory
// and returns its id.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Scenario, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	if err := writeMetadata(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeFrames(filepath.Join(runDir, framesFile), result); err != nil {
		return "", err
	}
	return runID, nil
}

func writeMetadata(path string, meta RunMetadata) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func writeFrames(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(framesHeader); err != nil {
		return err
	}

	if result != nil {
		for i, frame := range result.Frames {
			t := formatFloat(result.Times[i])
			for j, st := range frame {
				row := []string{
					t,
					strconv.Itoa(j),
					formatFloat(st.Mass),
					formatFloat(st.Radius),
					st.Color,
					formatFloat(st.X),
					formatFloat(st.Y),
					formatFloat(st.VX),
					formatFloat(st.VY),
				}
				if err := w.Write(row); err != nil {
					return err
				}
			}
		}
	}

	w.Flush()
	return w.Error()
}

// formatFloat keeps full precision so a reload reproduces the frames.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// List returns the metadata of every readable run, oldest first.
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

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads the recorded frames of a run and their times.
func (s *Store) LoadFrames(runID string) ([]sim.Frame, []float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, framesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(framesHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	frames := make([]sim.Frame, 0)
	times := make([]float64, 0)

	for i := 1; i < len(records); i++ {
		record := records[i]

		idx, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, nil, fmt.Errorf("%s line %d: body index: %w", framesFile, i+1, err)
		}

		var vals [7]float64
		for k, col := range []int{0, 2, 3, 5, 6, 7, 8} {
			vals[k], err = strconv.ParseFloat(record[col], 64)
			if err != nil {
				return nil, nil, fmt.Errorf("%s line %d: %s: %w", framesFile, i+1, framesHeader[col], err)
			}
		}

		if idx == 0 {
			frames = append(frames, sim.Frame{})
			times = append(times, vals[0])
		}
		if len(frames) == 0 {
			return nil, nil, fmt.Errorf("%s line %d: frame does not start at body 0", framesFile, i+1)
		}

		last := len(frames) - 1
		frames[last] = append(frames[last], body.State{
			Mass:   vals[1],
			Radius: vals[2],
			Color:  record[4],
			X:      vals[3],
			Y:      vals[4],
			VX:     vals[5],
			VY:     vals[6],
		})
	}

	return frames, times, nil
}

type exportFrame struct {
	Time   float64      `json:"time"`
	Bodies []body.State `json:"bodies"`
}

type exportDoc struct {
	Metadata *RunMetadata  `json:"metadata"`
	Frames   []exportFrame `json:"frames"`
}

// ExportJSON writes a run's metadata and frames as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	frames, times, err := s.LoadFrames(runID)
	if err != nil {
		return err
	}

	doc := exportDoc{Metadata: meta, Frames: make([]exportFrame, len(frames))}
	for i, f := range frames {
		doc.Frames[i] = exportFrame{Time: times[i], Bodies: f}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
