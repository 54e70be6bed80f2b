package projection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/placewalk-go/internal/models"
)

func sampleEnriched() []models.EnrichedPlace {
	name := "Corner Cafe"
	rating := 4.4
	price := 2
	addr := "1 Test St"
	return []models.EnrichedPlace{
		{
			Record: models.PlaceRecord{
				PlaceID:        "ChIJaaa",
				Location:       &models.LatLng{Lat: 22.54, Lng: 114.05},
				VisitStartTime: "2024-03-01T08:30:00+08:00",
				VisitEndTime:   "2024-03-01T09:15:00+08:00",
			},
			Details: models.PlaceDetails{
				Name:             &name,
				FormattedAddress: &addr,
				Location:         &models.LatLng{Lat: 22.5401, Lng: 114.0502},
				Types:            []string{"cafe", "food"},
				Rating:           &rating,
				PriceLevel:       &price,
			},
			FetchTime: "2024-03-02T00:00:00Z",
		},
		{
			// Sparse record: every optional field absent
			Record: models.PlaceRecord{PlaceID: "ChIJbbb"},
		},
	}
}

func TestMinimal(t *testing.T) {
	views := Minimal(sampleEnriched())
	require.Len(t, views, 2)

	v := views[0]
	assert.Equal(t, "ChIJaaa", *v.Record.PlaceID)
	assert.Equal(t, "Corner Cafe", *v.Details.Name)
	assert.Equal(t, []string{"cafe", "food"}, v.Details.Types)
	assert.InDelta(t, 4.4, *v.Details.Rating, 1e-9)
	assert.Equal(t, 2, *v.Details.PriceLevel)
	assert.InDelta(t, 114.0502, v.Details.Location.Lng, 1e-9)

	// Missing source fields project to null, never error
	sparse := views[1]
	assert.Equal(t, "ChIJbbb", *sparse.Record.PlaceID)
	assert.Nil(t, sparse.Record.Location)
	assert.Nil(t, sparse.Details.Name)
	assert.Nil(t, sparse.Details.Rating)
	assert.Nil(t, sparse.Details.PriceLevel)
}

func TestTemporal(t *testing.T) {
	views := Temporal(sampleEnriched())
	require.Len(t, views, 2)

	v := views[0]
	assert.Equal(t, "2024-03-01T08:30:00+08:00", *v.Record.VisitStartTime)
	assert.Equal(t, "2024-03-01T09:15:00+08:00", *v.Record.VisitEndTime)
	assert.Equal(t, "Corner Cafe", *v.Details.Name)
	assert.InDelta(t, 4.4, *v.Details.Rating, 1e-9)

	sparse := views[1]
	assert.Nil(t, sparse.Record.VisitStartTime)
	assert.Nil(t, sparse.Details.Name)
}

func TestProjectionPreservesOrderAndCount(t *testing.T) {
	enriched := make([]models.EnrichedPlace, 10)
	for i := range enriched {
		enriched[i].Record.PlaceID = string(rune('a' + i))
	}

	views := Minimal(enriched)
	require.Len(t, views, len(enriched))
	for i, v := range views {
		assert.Equal(t, enriched[i].Record.PlaceID, *v.Record.PlaceID)
	}
}

func TestProjectionIdempotent(t *testing.T) {
	once := Minimal(sampleEnriched())

	// Rebuild enriched records from the view and project again
	rebuilt := make([]models.EnrichedPlace, len(once))
	for i, v := range once {
		if v.Record.PlaceID != nil {
			rebuilt[i].Record.PlaceID = *v.Record.PlaceID
		}
		rebuilt[i].Record.Location = v.Record.Location
		rebuilt[i].Details.Name = v.Details.Name
		rebuilt[i].Details.Location = v.Details.Location
		rebuilt[i].Details.Types = v.Details.Types
		rebuilt[i].Details.Rating = v.Details.Rating
		rebuilt[i].Details.PriceLevel = v.Details.PriceLevel
	}

	twice := Minimal(rebuilt)
	assert.Equal(t, once, twice)
}

func TestMinimalEmptyInput(t *testing.T) {
	views := Minimal(nil)
	assert.NotNil(t, views)
	assert.Empty(t, views)
}
