package models

import (
	"encoding/json"
	"fmt"
)

// TypeCount is one (category, frequency) pair.
// Serialized as a two-element array ["cafe", 12] to match the report format.
type TypeCount struct {
	Type  string
	Count int
}

// MarshalJSON encodes the pair as [type, count]
func (t TypeCount) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{t.Type, t.Count})
}

// UnmarshalJSON decodes a [type, count] pair
func (t *TypeCount) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &t.Type); err != nil {
		return fmt.Errorf("failed to decode type: %w", err)
	}
	if err := json.Unmarshal(raw[1], &t.Count); err != nil {
		return fmt.Errorf("failed to decode count: %w", err)
	}
	return nil
}

// ClusterStats 单个聚类的统计信息
type ClusterStats struct {
	Size             int         `json:"size"`
	Center           [2]float64  `json:"center"` // [lat, lng]
	CommonTypes      []TypeCount `json:"commonTypes"`
	AvgRating        *float64    `json:"avgRating"`
	DispersionMeters float64     `json:"dispersionMeters"`
}

// ClusterReport is the cluster-stage output artifact
type ClusterReport struct {
	TotalClusters  int                     `json:"totalClusters"`
	NoisePoints    int                     `json:"noisePoints"`
	ExcludedPoints int                     `json:"excludedPoints"`
	ClusterStats   map[string]ClusterStats `json:"clusterStats"`
}
