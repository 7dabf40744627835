package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

const (
	metadataFile = "metadata.json"
	lettersFile  = "letters.csv"
	impactsFile  = "impacts.csv"
)

var (
	letterHeader = []string{"tick", "time", "letter", "char", "x", "y", "rotation", "vx", "vy", "restlessness", "active", "grabbed"}
	impactHeader = []string{"tick", "x", "y", "intensity"}
)

type Store struct {
	baseDir string
	logger  *log.Logger
}

type Option func(*Store)

func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

func New(baseDir string, opts ...Option) *Store {
	s := &Store{baseDir: baseDir, logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID          string             `json:"id"`
	Text        string             `json:"text"`
	Preset      string             `json:"preset,omitempty"`
	Script      string             `json:"script,omitempty"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Ticks       int                `json:"ticks"`
	Stride      int                `json:"stride"`
	Width       float64            `json:"width"`
	Height      float64            `json:"height"`
	Letters     int                `json:"letters"`
	ImpactCount int                `json:"impact_count"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes a recorded run under a new directory and returns its ID. The
// caller fills the descriptive fields of meta; ID, Timestamp, tick counts and
// viewport come from the recorder.
func (s *Store) Save(meta RunMetadata, rec *Recorder) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	now := time.Now()
	runID, runDir, err := s.newRunDir(meta.Text, now)
	if err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	meta.Ticks = rec.Ticks()
	meta.Stride = rec.Stride()
	meta.Width, meta.Height = rec.width, rec.height
	meta.Letters = rec.letters
	meta.ImpactCount = len(rec.impacts)
	if meta.Metrics == nil {
		meta.Metrics = map[string]float64{}
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, lettersFile), letterHeader, len(rec.rows), func(i int) []string {
		r := rec.rows[i]
		return []string{
			strconv.Itoa(r.Tick),
			formatFloat(r.Time),
			strconv.Itoa(r.Letter),
			r.Char,
			formatFloat(r.X),
			formatFloat(r.Y),
			formatFloat(r.Rotation),
			formatFloat(r.VX),
			formatFloat(r.VY),
			formatFloat(r.Restlessness),
			strconv.FormatBool(r.Active),
			strconv.FormatBool(r.Grabbed),
		}
	}); err != nil {
		return "", err
	}
	if err := writeCSV(filepath.Join(runDir, impactsFile), impactHeader, len(rec.impacts), func(i int) []string {
		im := rec.impacts[i]
		return []string{
			strconv.Itoa(im.Tick),
			formatFloat(im.X),
			formatFloat(im.Y),
			formatFloat(im.Intensity),
		}
	}); err != nil {
		return "", err
	}

	s.logger.Debug("run saved", "id", runID, "rows", len(rec.rows), "impacts", len(rec.impacts))
	return runID, nil
}

func (s *Store) newRunDir(text string, now time.Time) (string, string, error) {
	prefix := strings.ToLower(strings.Join(strings.Fields(text), "-"))
	if prefix == "" {
		prefix = "run"
	}
	base := fmt.Sprintf("%s_%d", prefix, now.Unix())

	runID := base
	for n := 2; ; n++ {
		runDir := filepath.Join(s.baseDir, runID)
		err := os.Mkdir(runDir, 0755)
		if err == nil {
			return runID, runDir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
		runID = fmt.Sprintf("%s_%d", base, n)
	}
}

// List returns every readable run, oldest first.
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
			s.logger.Warn("skipping run", "dir", entry.Name(), "err", err)
			continue
		}

		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("%s: %w", runID, err)
	}

	return &meta, nil
}

// LoadTrack returns the recorded rows of a single letter in tick order.
func (s *Store) LoadTrack(runID string, letter int) ([]TrackRow, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}
	if letter < 0 || letter >= meta.Letters {
		return nil, fmt.Errorf("%w: %d (run has %d letters)", ErrLetterIndex, letter, meta.Letters)
	}

	records, err := readCSV(filepath.Join(s.baseDir, runID, lettersFile))
	if err != nil {
		return nil, err
	}

	track := make([]TrackRow, 0)
	for _, record := range records {
		row, ok := parseTrackRow(record)
		if !ok {
			s.logger.Warn("skipping malformed row", "run", runID, "file", lettersFile)
			continue
		}
		if row.Letter == letter {
			track = append(track, row)
		}
	}
	return track, nil
}

func (s *Store) loadRows(runID string) ([]TrackRow, error) {
	records, err := readCSV(filepath.Join(s.baseDir, runID, lettersFile))
	if err != nil {
		return nil, err
	}

	rows := make([]TrackRow, 0, len(records))
	for _, record := range records {
		if row, ok := parseTrackRow(record); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (s *Store) LoadImpacts(runID string) ([]ImpactRow, error) {
	if _, err := s.Load(runID); err != nil {
		return nil, err
	}

	records, err := readCSV(filepath.Join(s.baseDir, runID, impactsFile))
	if err != nil {
		return nil, err
	}

	impacts := make([]ImpactRow, 0, len(records))
	for _, record := range records {
		if len(record) < 4 {
			continue
		}
		tick, err := strconv.Atoi(record[0])
		if err != nil {
			continue
		}
		vals, ok := parseFloats(record[1:4])
		if !ok {
			s.logger.Warn("skipping malformed row", "run", runID, "file", impactsFile)
			continue
		}
		impacts = append(impacts, ImpactRow{Tick: tick, X: vals[0], Y: vals[1], Intensity: vals[2]})
	}
	return impacts, nil
}

func parseTrackRow(record []string) (TrackRow, bool) {
	if len(record) < len(letterHeader) {
		return TrackRow{}, false
	}
	tick, err1 := strconv.Atoi(record[0])
	letter, err2 := strconv.Atoi(record[2])
	active, err3 := strconv.ParseBool(record[10])
	grabbed, err4 := strconv.ParseBool(record[11])
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return TrackRow{}, false
	}

	t, ok := parseFloats(record[1:2])
	if !ok {
		return TrackRow{}, false
	}
	vals, ok := parseFloats(record[4:10])
	if !ok {
		return TrackRow{}, false
	}

	return TrackRow{
		Tick:         tick,
		Time:         t[0],
		Letter:       letter,
		Char:         record[3],
		X:            vals[0],
		Y:            vals[1],
		Rotation:     vals[2],
		VX:           vals[3],
		VY:           vals[4],
		Restlessness: vals[5],
		Active:       active,
		Grabbed:      grabbed,
	}, true
}

func parseFloats(fields []string) ([]float64, bool) {
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
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

func writeCSV(path string, header []string, n int, row func(i int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		if err := w.Write(row(i)); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// readCSV returns the data records, without the header.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}
