package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	RunMetadata
	Rows    []TrackRow  `json:"rows"`
	Impacts []ImpactRow `json:"impacts"`
}

// ExportJSON writes a saved run, metadata and all rows, as one JSON document.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	rows, err := s.loadRows(runID)
	if err != nil {
		return err
	}
	impacts, err := s.LoadImpacts(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		RunMetadata: *meta,
		Rows:        rows,
		Impacts:     impacts,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
