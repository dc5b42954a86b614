package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/san-kum/isocontour/internal/config"
	"github.com/san-kum/isocontour/internal/sim"
)

const (
	metadataFile = "metadata.json"
	configFile   = "config.yaml"
	framesFile   = "frames.csv"
	contourFile  = "contour.csv"
)

// Store keeps one directory per run under baseDir.
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
	Source      string             `json:"source"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Resolution  int                `json:"resolution"`
	Isolevel    float64            `json:"isolevel"`
	Interpolate bool               `json:"interpolate"`
	Dt          float64            `json:"dt"`
	Steps       int                `json:"steps"`
	Segments    int                `json:"segments"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes the run's metadata, configuration, per-frame stats and final
// contour, and returns the new run ID.
func (s *Store) Save(cfg *config.Config, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", cfg.Source, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		Source:      cfg.Source,
		Timestamp:   now,
		Seed:        cfg.Seed,
		Width:       cfg.Width,
		Height:      cfg.Height,
		Resolution:  cfg.Resolution,
		Isolevel:    cfg.Isolevel,
		Interpolate: cfg.Interpolate,
		Dt:          cfg.Dt,
		Steps:       result.StepsTaken,
		Segments:    len(result.Contour) / 2,
		Metrics:     result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, framesFile), FrameRecords(result.Frames)); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, contourFile), PointRecords(result.Contour)); err != nil {
		return "", err
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

func writeCSV(path string, records any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gocsv.Marshal(records, f); err != nil {
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// List returns the metadata of every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
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
		return runs[i].Timestamp.After(runs[j].Timestamp)
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

// LoadConfig returns the configuration the run was made with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

func (s *Store) LoadFrames(runID string) ([]FrameRecord, error) {
	var records []FrameRecord
	if err := readCSV(filepath.Join(s.baseDir, runID, framesFile), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Store) LoadContour(runID string) ([]PointRecord, error) {
	var records []PointRecord
	if err := readCSV(filepath.Join(s.baseDir, runID, contourFile), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func readCSV(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := gocsv.UnmarshalFile(f, out); err != nil {
		return fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	return nil
}
