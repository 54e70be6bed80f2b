package models

// ExtractionMetadata describes one timeline extraction run
type ExtractionMetadata struct {
	RunID               string `json:"runId"`
	TotalSegments       int    `json:"totalSegments"`
	TotalVisits         int    `json:"totalVisits"`
	TotalActivities     int    `json:"totalActivities"`
	ExtractionTimestamp string `json:"extractionTimestamp"`
}

// ExtractionArtifact is the extract-stage output file
type ExtractionArtifact struct {
	Metadata   ExtractionMetadata `json:"metadata"`
	Visits     []Visit            `json:"visits"`
	Activities []Activity         `json:"activities"`
}

// EnrichmentMetadata describes enrichment progress for checkpoints and final output
type EnrichmentMetadata struct {
	RunID              string  `json:"runId,omitempty"`
	TotalProcessed     int     `json:"totalProcessed"`
	TotalCost          float64 `json:"totalCost"`
	LastUpdate         string  `json:"lastUpdate"`
	TotalAvailable     int     `json:"totalAvailable"`
	ProcessingComplete bool    `json:"processingComplete"`
}

// EnrichmentArtifact is the enrich-stage output file (and the checkpoint file shape)
type EnrichmentArtifact struct {
	Metadata EnrichmentMetadata `json:"metadata"`
	Places   []EnrichedPlace    `json:"places"`
}

// RatingStats summarizes ratings across all enriched places
type RatingStats struct {
	Average      float64        `json:"average"`
	Count        int            `json:"count"`
	Distribution map[string]int `json:"distribution"` // "1".."5" buckets
}

// PlaceStatistics is the summary artifact written after enrichment
type PlaceStatistics struct {
	CommonTypes            []TypeCount    `json:"commonTypes"`
	RatingStats            RatingStats    `json:"ratingStats"`
	PriceLevelDistribution map[string]int `json:"priceLevelDistribution"`
}
