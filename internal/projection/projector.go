package projection

import (
	"github.com/jengzang/placewalk-go/internal/models"
)

// Projection profiles
const (
	ProfileMinimal  = "minimal"
	ProfileTemporal = "temporal"
)

// Metadata describes one projection artifact
type Metadata struct {
	RunID       string `json:"runId,omitempty"`
	Profile     string `json:"profile"`
	TotalPlaces int    `json:"totalPlaces"`
	ProjectedAt string `json:"projectedAt"`
}

// MinimalRecord keeps only the identity fields of the candidate record
type MinimalRecord struct {
	PlaceID  *string        `json:"placeId"`
	Location *models.LatLng `json:"location"`
}

// MinimalDetails keeps the fields needed for geographic analysis
type MinimalDetails struct {
	Name       *string        `json:"name"`
	Location   *models.LatLng `json:"location"`
	Types      []string       `json:"types"`
	Rating     *float64       `json:"rating"`
	PriceLevel *int           `json:"priceLevel"`
}

// MinimalPlace is one record of the minimal view
type MinimalPlace struct {
	Record  MinimalRecord  `json:"record"`
	Details MinimalDetails `json:"details"`
}

// MinimalArtifact is the minimal-view output file
type MinimalArtifact struct {
	Metadata Metadata       `json:"metadata"`
	Places   []MinimalPlace `json:"places"`
}

// TemporalRecord adds visit timing and drops nothing else from the identity
type TemporalRecord struct {
	PlaceID        *string        `json:"placeId"`
	Location       *models.LatLng `json:"location"`
	VisitStartTime *string        `json:"visitStartTime"`
	VisitEndTime   *string        `json:"visitEndTime"`
}

// TemporalDetails is MinimalDetails without the price level
type TemporalDetails struct {
	Name     *string        `json:"name"`
	Location *models.LatLng `json:"location"`
	Types    []string       `json:"types"`
	Rating   *float64       `json:"rating"`
}

// TemporalPlace is one record of the temporal view
type TemporalPlace struct {
	Record  TemporalRecord  `json:"record"`
	Details TemporalDetails `json:"details"`
}

// TemporalArtifact is the temporal-view output file
type TemporalArtifact struct {
	Metadata Metadata        `json:"metadata"`
	Places   []TemporalPlace `json:"places"`
}

// Minimal projects the enriched set into the minimal view. The projection is
// total and 1:1 — missing source fields become null, records are never
// filtered or reordered.
func Minimal(enriched []models.EnrichedPlace) []MinimalPlace {
	out := make([]MinimalPlace, 0, len(enriched))
	for i := range enriched {
		p := &enriched[i]
		out = append(out, MinimalPlace{
			Record: MinimalRecord{
				PlaceID:  nilIfEmpty(p.Record.PlaceID),
				Location: p.Record.Location,
			},
			Details: MinimalDetails{
				Name:       p.Details.Name,
				Location:   p.Details.Location,
				Types:      p.Details.Types,
				Rating:     p.Details.Rating,
				PriceLevel: p.Details.PriceLevel,
			},
		})
	}
	return out
}

// Temporal projects the enriched set into the temporal view
func Temporal(enriched []models.EnrichedPlace) []TemporalPlace {
	out := make([]TemporalPlace, 0, len(enriched))
	for i := range enriched {
		p := &enriched[i]
		out = append(out, TemporalPlace{
			Record: TemporalRecord{
				PlaceID:        nilIfEmpty(p.Record.PlaceID),
				Location:       p.Record.Location,
				VisitStartTime: nilIfEmpty(p.Record.VisitStartTime),
				VisitEndTime:   nilIfEmpty(p.Record.VisitEndTime),
			},
			Details: TemporalDetails{
				Name:     p.Details.Name,
				Location: p.Details.Location,
				Types:    p.Details.Types,
				Rating:   p.Details.Rating,
			},
		})
	}
	return out
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
