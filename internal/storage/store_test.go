package storage

import (
	"testing"

	"github.com/san-kum/gravbench/internal/engine"
)

func testResults() *engine.Results {
	return &engine.Results{
		Score:          7,
		PeakPopulation: 12000,
		AverageFPS:     31.5,
		Interactions:   123456789,
		History: []engine.Sample{
			{Elapsed: 0.5, FPS: 60, Population: 2500},
			{Elapsed: 1.0, FPS: 42.5, Population: 3500},
		},
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	runID, err := st.Save(engine.DefaultParams(), testResults())
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if meta.Score != 7 {
		t.Errorf("score = %d, want 7", meta.Score)
	}
	if meta.PeakPopulation != 12000 {
		t.Errorf("peak population = %d, want 12000", meta.PeakPopulation)
	}
	if meta.Samples != 2 {
		t.Errorf("samples = %d, want 2", meta.Samples)
	}
	if meta.Params.InitialPopulation != engine.DefaultInitialPopulation {
		t.Errorf("params not preserved: %+v", meta.Params)
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		t.Fatalf("load samples: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if samples[1].FPS != 42.5 || samples[1].Population != 3500 {
		t.Errorf("sample mismatch: %+v", samples[1])
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(t.TempDir() + "/missing")
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected no runs, got %d", len(runs))
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save(engine.DefaultParams(), testResults()); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].AverageFPS != 31.5 {
		t.Errorf("average fps = %v, want 31.5", runs[0].AverageFPS)
	}
}
