package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/entropylost/fracture2d/internal/config"
	"github.com/entropylost/fracture2d/internal/sim"
)

type ExportData struct {
	Scene    string             `json:"scene"`
	Dt       float64            `json:"dt"`
	FPS      float64            `json:"fps"`
	Substeps int                `json:"substeps_per_frame"`
	Frames   int                `json:"frames"`
	Times    []float64          `json:"times"`
	Damage   []float64          `json:"damage"`
	Broken   []int              `json:"broken"`
	Kinetic  []float64          `json:"kinetic"`
	Metrics  map[string]float64 `json:"metrics"`
}

func ExportJSON(path string, cfg *config.Config, dt float64, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeJSON(file, cfg, dt, result)
}

func ExportJSONStdout(cfg *config.Config, dt float64, result *sim.Result) error {
	return writeJSON(os.Stdout, cfg, dt, result)
}

func ExportCSV(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return writeCSV(file, result)
}

func ExportCSVStdout(result *sim.Result) error {
	return writeCSV(os.Stdout, result)
}

func writeJSON(w io.Writer, cfg *config.Config, dt float64, result *sim.Result) error {
	data := ExportData{
		Scene:    cfg.Scene,
		Dt:       dt,
		FPS:      cfg.FPS,
		Substeps: cfg.Substeps,
		Frames:   result.Frames,
		Times:    result.Times,
		Damage:   result.Damage,
		Broken:   result.Broken,
		Kinetic:  result.Kinetic,
		Metrics:  result.Metrics,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeCSV(w io.Writer, result *sim.Result) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"time", "damage", "broken", "kinetic"}); err != nil {
		return err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Damage[i], 'f', 6, 64),
			strconv.Itoa(result.Broken[i]),
			strconv.FormatFloat(result.Kinetic[i], 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
