package models

// LatLng represents a WGS84 coordinate pair
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Visit represents a normalized visit record extracted from one timeline segment
type Visit struct {
	// Temporal info
	StartTime             string `json:"startTime,omitempty"`
	EndTime               string `json:"endTime,omitempty"`
	TimezoneOffsetMinutes *int   `json:"timezoneOffsetMinutes,omitempty"`

	// Top candidate place
	PlaceID        *string  `json:"placeId"`
	SemanticType   *string  `json:"semanticType"`
	Probability    *float64 `json:"probability"`
	HierarchyLevel *int     `json:"hierarchyLevel"`
	Location       *LatLng  `json:"location"`
	Name           string   `json:"name,omitempty"`
	Categories     []string `json:"categories,omitempty"`
}

// Activity represents a normalized movement record extracted from one timeline segment
type Activity struct {
	StartTime             string `json:"startTime,omitempty"`
	EndTime               string `json:"endTime,omitempty"`
	TimezoneOffsetMinutes *int   `json:"timezoneOffsetMinutes,omitempty"`

	Type           *string  `json:"type"`
	Probability    *float64 `json:"probability"`
	DistanceMeters *float64 `json:"distanceMeters"`
	StartLocation  *LatLng  `json:"startLocation"`
	EndLocation    *LatLng  `json:"endLocation"`
}

// HasPlaceID returns true if the visit carries a usable place identifier
func (v *Visit) HasPlaceID() bool {
	return v.PlaceID != nil && *v.PlaceID != ""
}
