package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Stage output file names under the data directory
const (
	ExtractedTimelineFile = "extracted_timeline.json"
	EnrichedPlacesFile    = "detailed_places.json"
	PlaceStatisticsFile   = "place_statistics.json"
	MinimalPlacesFile     = "places_minimal.json"
	TemporalPlacesFile    = "places_temporal.json"
	ClusterStatisticsFile = "cluster_statistics.json"
)

// Store 管理各阶段的输出文件（扁平 JSON）
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the absolute location of a named artifact
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}

// Exists reports whether a named artifact is present
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// WriteJSON serializes v to the named artifact. The write goes through a
// temp file and rename so a crash never leaves a half-written artifact.
func (s *Store) WriteJSON(name string, v interface{}) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}
	defer os.Remove(tmp.Name())

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush %s: %w", name, err)
	}

	if err := os.Rename(tmp.Name(), s.Path(name)); err != nil {
		return fmt.Errorf("failed to finalize %s: %w", name, err)
	}
	return nil
}

// ReadJSON deserializes the named artifact into v
func (s *Store) ReadJSON(name string, v interface{}) error {
	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}
