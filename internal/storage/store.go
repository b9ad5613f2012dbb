package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/entropylost/fracture2d/internal/config"
	"github.com/entropylost/fracture2d/internal/sim"
)

// Store keeps one directory per run under baseDir, each holding
// metadata.json and the scalar series as series.csv. Particle state is
// never persisted.
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
	Scene     string             `json:"scene"`
	Timestamp time.Time          `json:"timestamp"`
	Dt        float64            `json:"dt"`
	FPS       float64            `json:"fps"`
	Substeps  int                `json:"substeps_per_frame"`
	Frames    int                `json:"frames"`
	Radius    float64            `json:"radius"`
	Stiffness float64            `json:"stiffness"`
	Strength  float64            `json:"strength_factor"`
	Diverged  bool               `json:"diverged"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Series is the per-frame scalar history of a saved run.
type Series struct {
	Times   []float64
	Damage  []float64
	Broken  []int
	Kinetic []float64
}

// Save writes a run directory named after the scene and returns its id.
// Frames records how many frames actually completed, which is fewer than
// configured when the run diverged.
func (s *Store) Save(cfg *config.Config, dt float64, result *sim.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", cfg.Scene, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:        runID,
		Scene:     cfg.Scene,
		Timestamp: time.Now(),
		Dt:        dt,
		FPS:       cfg.FPS,
		Substeps:  cfg.Substeps,
		Frames:    result.Frames,
		Radius:    cfg.Material.Radius,
		Stiffness: cfg.Material.Stiffness,
		Strength:  cfg.Material.StrengthFactor,
		Diverged:  result.Diverged(),
		Metrics:   result.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "series.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write([]string{"time", "damage", "broken", "kinetic"}); err != nil {
		return "", err
	}
	for i := range result.Times {
		row := []string{
			strconv.FormatFloat(result.Times[i], 'f', 6, 64),
			strconv.FormatFloat(result.Damage[i], 'f', 6, 64),
			strconv.Itoa(result.Broken[i]),
			strconv.FormatFloat(result.Kinetic[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
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

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

func (s *Store) LoadSeries(runID string) (*Series, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "series.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	series := &Series{}
	if len(records) < 2 {
		return series, nil
	}

	for _, record := range records[1:] {
		if len(record) != 4 {
			continue
		}

		t, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		damage, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		broken, err := strconv.Atoi(record[2])
		if err != nil {
			continue
		}
		kinetic, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			continue
		}

		series.Times = append(series.Times, t)
		series.Damage = append(series.Damage, damage)
		series.Broken = append(series.Broken, broken)
		series.Kinetic = append(series.Kinetic, kinetic)
	}

	return series, nil
}
