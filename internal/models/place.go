package models

// PlaceRecord 候选地点（按 placeId 去重后等待详情查询）
type PlaceRecord struct {
	PlaceID    string   `json:"placeId"`
	Location   *LatLng  `json:"location"`
	Name       string   `json:"name,omitempty"`
	Categories []string `json:"categories,omitempty"`

	// Timing of the first visit that produced this record
	VisitStartTime string `json:"visitStartTime,omitempty"`
	VisitEndTime   string `json:"visitEndTime,omitempty"`
}

// Review holds the trimmed fields of a single place review
type Review struct {
	Rating                  *float64 `json:"rating"`
	Time                    *int64   `json:"time"`
	RelativeTimeDescription *string  `json:"relativeTimeDescription"`
}

// OpeningPeriod is one open/close span from the lookup service
type OpeningPeriod struct {
	Open  *DayTime `json:"open,omitempty"`
	Close *DayTime `json:"close,omitempty"`
}

// DayTime is a day-of-week plus "HHMM" time as returned by the lookup service
type DayTime struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

// PlaceDetails holds the fields returned by the external place lookup service
type PlaceDetails struct {
	PlaceID          string          `json:"placeId,omitempty"`
	Name             *string         `json:"name"`
	FormattedAddress *string         `json:"formattedAddress"`
	Location         *LatLng         `json:"location"`
	Types            []string        `json:"types"`
	Rating           *float64        `json:"rating"` // 1~5
	UserRatingsTotal *int            `json:"userRatingsTotal"`
	PriceLevel       *int            `json:"priceLevel"`
	BusinessStatus   *string         `json:"businessStatus"`
	OpeningPeriods   []OpeningPeriod `json:"openingPeriods,omitempty"`
	UTCOffset        *int            `json:"utcOffset"`
	Reviews          []Review        `json:"reviews,omitempty"`
}

// EnrichedPlace pairs a candidate record with its fetched details.
// Immutable after creation; a placeId is enriched at most once per run.
type EnrichedPlace struct {
	Record    PlaceRecord  `json:"record"`
	Details   PlaceDetails `json:"details"`
	FetchTime string       `json:"fetchTime"`
}

// HasCoordinates returns true if the fetched geometry carries both coordinates
func (p *EnrichedPlace) HasCoordinates() bool {
	return p.Details.Location != nil
}
