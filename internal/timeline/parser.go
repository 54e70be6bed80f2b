package timeline

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jengzang/placewalk-go/internal/models"
)

// Raw export shapes. Every field is optional; absent values stay nil.
type rawSegment struct {
	StartTime                         string       `json:"startTime"`
	EndTime                           string       `json:"endTime"`
	StartTimeTimezoneUtcOffsetMinutes *int         `json:"startTimeTimezoneUtcOffsetMinutes"`
	Visit                             *rawVisit    `json:"visit"`
	Activity                          *rawActivity `json:"activity"`
}

type rawVisit struct {
	HierarchyLevel *int          `json:"hierarchyLevel"`
	Probability    *float64      `json:"probability"`
	TopCandidate   *rawCandidate `json:"topCandidate"`
}

type rawCandidate struct {
	PlaceID       string       `json:"placeId"`
	SemanticType  string       `json:"semanticType"`
	Name          string       `json:"name"`
	Categories    []string     `json:"categories"`
	PlaceLocation *rawLocation `json:"placeLocation"`
}

type rawActivity struct {
	DistanceMeters *float64              `json:"distanceMeters"`
	TopCandidate   *rawActivityCandidate `json:"topCandidate"`
	Start          *rawLocation          `json:"start"`
	End            *rawLocation          `json:"end"`
}

type rawActivityCandidate struct {
	Type        string   `json:"type"`
	Probability *float64 `json:"probability"`
}

type rawLocation struct {
	LatLng string `json:"latLng"`
}

// Extraction is the normalized result of one parse pass
type Extraction struct {
	Visits        []models.Visit
	Activities    []models.Activity
	TotalSegments int
	BadLocations  int
}

// Parse extracts normalized visit and activity records from a timeline export.
// Segments are decoded one at a time off the semanticSegments array; segments
// carrying neither payload are counted and skipped.
func Parse(r io.Reader) (*Extraction, error) {
	dec := json.NewDecoder(r)
	if err := seekSegments(dec); err != nil {
		return nil, err
	}

	ext := &Extraction{}
	for dec.More() {
		var seg rawSegment
		if err := dec.Decode(&seg); err != nil {
			return nil, fmt.Errorf("failed to decode segment %d: %w", ext.TotalSegments, err)
		}
		ext.TotalSegments++

		switch {
		case seg.Visit != nil:
			ext.Visits = append(ext.Visits, ext.normalizeVisit(&seg))
		case seg.Activity != nil:
			ext.Activities = append(ext.Activities, ext.normalizeActivity(&seg))
		}
	}

	return ext, nil
}

// seekSegments advances the decoder to the start of the semanticSegments array
func seekSegments(dec *json.Decoder) error {
	if _, err := dec.Token(); err != nil { // opening brace
		return fmt.Errorf("failed to read export: %w", err)
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return fmt.Errorf("export has no semanticSegments array")
		}
		if err != nil {
			return fmt.Errorf("failed to read export: %w", err)
		}

		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("export has no semanticSegments array")
		}
		if key == "semanticSegments" {
			tok, err = dec.Token() // opening bracket
			if err != nil {
				return fmt.Errorf("failed to read semanticSegments: %w", err)
			}
			if delim, ok := tok.(json.Delim); !ok || delim != '[' {
				return fmt.Errorf("semanticSegments is not an array")
			}
			return nil
		}

		// Skip the value of an unrelated key
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return fmt.Errorf("failed to skip export field %q: %w", key, err)
		}
	}
}

func (e *Extraction) normalizeVisit(seg *rawSegment) models.Visit {
	v := models.Visit{
		StartTime:             seg.StartTime,
		EndTime:               seg.EndTime,
		TimezoneOffsetMinutes: seg.StartTimeTimezoneUtcOffsetMinutes,
		Probability:           seg.Visit.Probability,
		HierarchyLevel:        seg.Visit.HierarchyLevel,
	}

	if tc := seg.Visit.TopCandidate; tc != nil {
		if tc.PlaceID != "" {
			v.PlaceID = &tc.PlaceID
		}
		if tc.SemanticType != "" {
			v.SemanticType = &tc.SemanticType
		}
		v.Name = tc.Name
		v.Categories = tc.Categories
		v.Location = e.parseLocation(tc.PlaceLocation)
	}

	return v
}

func (e *Extraction) normalizeActivity(seg *rawSegment) models.Activity {
	a := models.Activity{
		StartTime:             seg.StartTime,
		EndTime:               seg.EndTime,
		TimezoneOffsetMinutes: seg.StartTimeTimezoneUtcOffsetMinutes,
		DistanceMeters:        seg.Activity.DistanceMeters,
	}

	if tc := seg.Activity.TopCandidate; tc != nil {
		if tc.Type != "" {
			a.Type = &tc.Type
		}
		a.Probability = tc.Probability
	}
	a.StartLocation = e.parseLocation(seg.Activity.Start)
	a.EndLocation = e.parseLocation(seg.Activity.End)

	return a
}

// parseLocation parses a raw latLng string, counting unparsable values
func (e *Extraction) parseLocation(loc *rawLocation) *models.LatLng {
	if loc == nil || loc.LatLng == "" {
		return nil
	}
	ll, err := ParseLatLng(loc.LatLng)
	if err != nil {
		e.BadLocations++
		return nil
	}
	return ll
}

// ParseLatLng parses the export's coordinate literal, e.g. "22.5431°, 114.0579°".
// The degree sign is optional so that exports with plain numeric pairs still parse.
func ParseLatLng(s string) (*models.LatLng, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return nil, fmt.Errorf("malformed latLng %q", s)
	}

	lat, err := parseDegrees(parts[0])
	if err != nil {
		return nil, fmt.Errorf("malformed latLng %q: %w", s, err)
	}
	lng, err := parseDegrees(parts[1])
	if err != nil {
		return nil, fmt.Errorf("malformed latLng %q: %w", s, err)
	}

	return &models.LatLng{Lat: lat, Lng: lng}, nil
}

func parseDegrees(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "°")
	s = strings.TrimSpace(s)
	return strconv.ParseFloat(s, 64)
}

// Candidates derives the deduplicated enrichment queue from visit records.
// Visits without a placeId are dropped; the first occurrence of each placeId
// wins and input order is preserved.
func Candidates(visits []models.Visit) []models.PlaceRecord {
	seen := make(map[string]bool)
	var records []models.PlaceRecord

	for _, v := range visits {
		if !v.HasPlaceID() || seen[*v.PlaceID] {
			continue
		}
		seen[*v.PlaceID] = true

		records = append(records, models.PlaceRecord{
			PlaceID:        *v.PlaceID,
			Location:       v.Location,
			Name:           v.Name,
			Categories:     v.Categories,
			VisitStartTime: v.StartTime,
			VisitEndTime:   v.EndTime,
		})
	}

	return records
}
