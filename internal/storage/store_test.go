package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/kinetype/internal/physics"
	"github.com/san-kum/kinetype/internal/session"
)

func testFrames(n int) []session.Frame {
	frames := make([]session.Frame, 0, n)
	for i := 1; i <= n; i++ {
		f := session.Frame{
			Index:  i,
			Time:   float64(i) * session.TickSeconds,
			Width:  800,
			Height: 600,
			Letters: []physics.Letter{
				{Char: 'J', X: float64(i), Y: 300, VX: 1, Active: true},
				{Char: 'a', X: 140, Y: 300 - float64(i), Grabbed: true},
			},
		}
		if i == 2 {
			f.Impacts = []physics.Impact{{X: 10, Y: 552, Intensity: 0.75}}
		}
		frames = append(frames, f)
	}
	return frames
}

func record(t *testing.T, stride int, frames []session.Frame) *Recorder {
	t.Helper()
	rec, err := NewRecorder(stride)
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}
	for _, f := range frames {
		rec.OnTick(f)
	}
	return rec
}

func TestRecorderStride(t *testing.T) {
	rec := record(t, 2, testFrames(5))

	if rec.Ticks() != 5 {
		t.Errorf("expected 5 ticks, got %d", rec.Ticks())
	}
	// ticks 2 and 4, two letters each
	if len(rec.Rows()) != 4 {
		t.Errorf("expected 4 rows, got %d", len(rec.Rows()))
	}
	if len(rec.Impacts()) != 1 {
		t.Errorf("expected 1 impact, got %d", len(rec.Impacts()))
	}

	if _, err := NewRecorder(0); !errors.Is(err, ErrInvalidStride) {
		t.Errorf("expected ErrInvalidStride, got %v", err)
	}
}

func TestStoreSaveLoad(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	rec := record(t, 1, testFrames(3))
	runID, err := st.Save(RunMetadata{
		Text:    "Jake Kaplan",
		Preset:  "bouncy",
		Seed:    42,
		Metrics: map[string]float64{"impacts": 1},
	}, rec)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if runID == "" {
		t.Error("expected non-empty run id")
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if meta.Text != "Jake Kaplan" {
		t.Errorf("expected text 'Jake Kaplan', got '%s'", meta.Text)
	}
	if meta.Seed != 42 || meta.Preset != "bouncy" {
		t.Errorf("unexpected metadata %+v", meta)
	}
	if meta.Ticks != 3 || meta.Stride != 1 || meta.Letters != 2 || meta.ImpactCount != 1 {
		t.Errorf("unexpected recorder fields %+v", meta)
	}
	if meta.Width != 800 || meta.Height != 600 {
		t.Errorf("expected 800x600, got %vx%v", meta.Width, meta.Height)
	}
	if meta.Metrics["impacts"] != 1 {
		t.Errorf("expected impacts 1, got %f", meta.Metrics["impacts"])
	}

	track, err := st.LoadTrack(runID, 0)
	if err != nil {
		t.Fatalf("load track failed: %v", err)
	}
	if len(track) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(track))
	}
	for i, row := range track {
		if row.Tick != i+1 || row.X != float64(i+1) || row.Char != "J" || !row.Active {
			t.Errorf("row %d = %+v", i, row)
		}
	}

	track, err = st.LoadTrack(runID, 1)
	if err != nil {
		t.Fatalf("load track failed: %v", err)
	}
	if !track[0].Grabbed || track[2].Y != 297 {
		t.Errorf("unexpected second track %+v", track)
	}

	if _, err := st.LoadTrack(runID, 2); !errors.Is(err, ErrLetterIndex) {
		t.Errorf("expected ErrLetterIndex, got %v", err)
	}

	impacts, err := st.LoadImpacts(runID)
	if err != nil {
		t.Fatalf("load impacts failed: %v", err)
	}
	if len(impacts) != 1 || impacts[0].Tick != 2 || impacts[0].Intensity != 0.75 {
		t.Errorf("unexpected impacts %+v", impacts)
	}
}

func TestStoreList(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	rec := record(t, 1, testFrames(1))
	first, err := st.Save(RunMetadata{Text: "Jake Kaplan"}, rec)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(RunMetadata{Text: "Jake Kaplan"}, rec)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Errorf("run ids collide: %s", first)
	}

	// a stray directory without metadata is skipped
	if err := os.Mkdir(filepath.Join(tmpDir, "junk"), 0755); err != nil {
		t.Fatal(err)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())

	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadImpacts("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
	if err := st.ExportJSON(&bytes.Buffer{}, "nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("expected ErrRunNotFound, got %v", err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)

	runID, err := st.Save(RunMetadata{}, record(t, 1, testFrames(1)))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	runDir := filepath.Join(tmpDir, runID)
	for _, name := range []string{"metadata.json", "letters.csv", "impacts.csv"} {
		if _, err := os.Stat(filepath.Join(runDir, name)); os.IsNotExist(err) {
			t.Errorf("%s not created", name)
		}
	}
}

func TestExportJSON(t *testing.T) {
	st := New(t.TempDir())
	runID, err := st.Save(RunMetadata{Text: "Jake Kaplan", Seed: 7}, record(t, 1, testFrames(2)))
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	var buf bytes.Buffer
	if err := st.ExportJSON(&buf, runID); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.ID != runID || data.Seed != 7 {
		t.Errorf("unexpected metadata %+v", data.RunMetadata)
	}
	if len(data.Rows) != 4 {
		t.Errorf("expected 4 rows, got %d", len(data.Rows))
	}
	if len(data.Impacts) != 1 {
		t.Errorf("expected 1 impact, got %d", len(data.Impacts))
	}
}
