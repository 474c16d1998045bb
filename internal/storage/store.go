package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/gravbench/internal/engine"
)

// Store persists finished runs under a base directory, one subdirectory per
// run holding metadata.json and samples.csv.
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
	ID             string        `json:"id"`
	Timestamp      time.Time     `json:"timestamp"`
	Params         engine.Params `json:"params"`
	Score          int64         `json:"score"`
	PeakPopulation int           `json:"peak_population"`
	AverageFPS     float64       `json:"average_fps"`
	Interactions   int64         `json:"interactions"`
	Samples        int           `json:"samples"`
}

func (s *Store) Save(params engine.Params, results *engine.Results) (string, error) {
	runID := fmt.Sprintf("run_%d", time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:             runID,
		Timestamp:      time.Now(),
		Params:         params,
		Score:          results.Score,
		PeakPopulation: results.PeakPopulation,
		AverageFPS:     results.AverageFPS,
		Interactions:   results.Interactions,
		Samples:        len(results.History),
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

	csvFile, err := os.Create(filepath.Join(runDir, "samples.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"elapsed_seconds", "fps", "population"}); err != nil {
		return "", err
	}
	for _, sample := range results.History {
		row := []string{
			strconv.FormatFloat(sample.Elapsed, 'f', 6, 64),
			strconv.FormatFloat(sample.FPS, 'f', 3, 64),
			strconv.Itoa(sample.Population),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
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

func (s *Store) LoadSamples(runID string) ([]engine.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "samples.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	if len(records) < 2 {
		return []engine.Sample{}, nil
	}

	samples := make([]engine.Sample, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 3 {
			continue
		}
		elapsed, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		fps, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			continue
		}
		pop, err := strconv.Atoi(record[2])
		if err != nil {
			continue
		}
		samples = append(samples, engine.Sample{Elapsed: elapsed, FPS: fps, Population: pop})
	}

	return samples, nil
}

type ExportData struct {
	RunMetadata
	History []engine.Sample `json:"history"`
}

// ExportJSON writes a full run (metadata plus history) through enc.
func (s *Store) ExportJSON(runID string, enc *json.Encoder) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	samples, err := s.LoadSamples(runID)
	if err != nil {
		return err
	}
	return enc.Encode(ExportData{RunMetadata: *meta, History: samples})
}
