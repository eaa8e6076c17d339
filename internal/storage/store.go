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

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/sim"
)

const (
	metadataFile = "metadata.json"
	seriesFile   = "probe.csv"
	contoursFile = "contours.json"
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
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	Duration  float64            `json:"duration"`
	XMax      float64            `json:"x_max"`
	YMax      float64            `json:"y_max"`
	NX        int                `json:"nx"`
	NY        int                `json:"ny"`
	Frames    int                `json:"frames"`
	Charges   []dynamo.Charge    `json:"charges"`
	Levels    []float64          `json:"levels"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes the run's metadata, its per-frame series and the contours
// traced at the end of the run. contours may be nil.
func (s *Store) Save(cfg *config.Config, result *sim.Result, contours []dynamo.Polyline) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Name, time.Now().UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Name:      cfg.Name,
		Timestamp: time.Now(),
		Dt:        cfg.Dt,
		Duration:  cfg.Duration,
		XMax:      cfg.Domain.XMax,
		YMax:      cfg.Domain.YMax,
		NX:        cfg.Domain.NX,
		NY:        cfg.Domain.NY,
		Frames:    len(result.Times),
		Charges:   result.FinalCharges(),
		Levels:    cfg.Levels,
		Metrics:   result.Metrics,
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeSeries(filepath.Join(runDir, seriesFile), result); err != nil {
		return "", err
	}
	if contours == nil {
		contours = []dynamo.Polyline{}
	}
	if err := writeJSON(filepath.Join(runDir, contoursFile), contours); err != nil {
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

// writeSeries writes one row per frame: the time followed by every series
// in name order. Short series are padded with empty cells.
func writeSeries(path string, result *sim.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	names := make([]string, 0, len(result.Series))
	for name := range result.Series {
		names = append(names, name)
	}
	sort.Strings(names)

	w := csv.NewWriter(f)
	if err := w.Write(append([]string{"time"}, names...)); err != nil {
		return err
	}

	for i, t := range result.Times {
		row := []string{strconv.FormatFloat(t, 'g', -1, 64)}
		for _, name := range names {
			s := result.Series[name]
			if i < len(s) {
				row = append(row, strconv.FormatFloat(s[i], 'g', -1, 64))
			} else {
				row = append(row, "")
			}
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

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
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}

	return &meta, nil
}

// LoadSeries reads probe.csv back into the frame times and named series.
// Empty cells end a series.
func (s *Store) LoadSeries(runID string) ([]float64, map[string][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, seriesFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	series := make(map[string][]float64)
	if len(records) < 1 {
		return []float64{}, series, nil
	}
	header := records[0]

	times := make([]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) == 0 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		times = append(times, t)

		for j := 1; j < len(record) && j < len(header); j++ {
			if record[j] == "" {
				continue
			}
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			series[header[j]] = append(series[header[j]], val)
		}
	}

	return times, series, nil
}

func (s *Store) LoadContours(runID string) ([]dynamo.Polyline, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, contoursFile))
	if err != nil {
		return nil, err
	}

	var contours []dynamo.Polyline
	if err := json.Unmarshal(data, &contours); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return contours, nil
}
