package export

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/maxwell/internal/config"
	"github.com/san-kum/maxwell/internal/dynamo"
	"github.com/san-kum/maxwell/internal/sim"
)

type ExportData struct {
	Name     string               `json:"name"`
	Dt       float64              `json:"dt"`
	Duration float64              `json:"duration"`
	Steps    int                  `json:"steps"`
	Times    []float64            `json:"times"`
	Charges  [][]dynamo.Charge    `json:"charges"`
	Series   map[string][]float64 `json:"series"`
	Metrics  map[string]float64   `json:"metrics"`
	Contours []dynamo.Polyline    `json:"contours,omitempty"`
}

func NewExportData(cfg *config.Config, result *sim.Result, contours []dynamo.Polyline) ExportData {
	return ExportData{
		Name:     cfg.Name,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Steps:    result.StepsTaken,
		Times:    result.Times,
		Charges:  result.Charges,
		Series:   result.Series,
		Metrics:  result.Metrics,
		Contours: contours,
	}
}

func WriteJSON(w io.Writer, data ExportData) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// ExportJSON writes data to path, or to stdout when path is "-".
func ExportJSON(path string, data ExportData) error {
	if path == "-" {
		return WriteJSON(os.Stdout, data)
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, data)
}
