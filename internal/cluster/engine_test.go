package cluster

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jengzang/placewalk-go/internal/models"
)

func place(lat, lng float64, types []string, rating *float64) models.EnrichedPlace {
	return models.EnrichedPlace{
		Details: models.PlaceDetails{
			Location: &models.LatLng{Lat: lat, Lng: lng},
			Types:    types,
			Rating:   rating,
		},
	}
}

func ratingPtr(v float64) *float64 { return &v }

func TestAnalyzeScenario(t *testing.T) {
	enriched := []models.EnrichedPlace{
		place(0, 0, []string{"cafe"}, ratingPtr(4.0)),
		place(0, 0.001, []string{"cafe", "food"}, ratingPtr(5.0)),
		place(0, 0.002, []string{"park"}, nil),
		place(5, 5, nil, nil),
		place(5, 5.001, nil, nil),
		place(9, 9, nil, nil),
	}

	res := Analyze(enriched, Options{RadiusKm: 1.0, MinPoints: 3})

	assert.Equal(t, 1, res.Report.TotalClusters)
	assert.Equal(t, 3, res.Report.NoisePoints)
	assert.Zero(t, res.Report.ExcludedPoints)

	cs, ok := res.Report.ClusterStats["0"]
	require.True(t, ok)
	assert.Equal(t, 3, cs.Size)
	assert.InDelta(t, 0.0, cs.Center[0], 1e-9)
	assert.InDelta(t, 0.001, cs.Center[1], 1e-9)

	// cafe twice, then food/park tied at one, first-seen order breaking the tie
	require.Len(t, cs.CommonTypes, 3)
	assert.Equal(t, models.TypeCount{Type: "cafe", Count: 2}, cs.CommonTypes[0])
	assert.Equal(t, models.TypeCount{Type: "food", Count: 1}, cs.CommonTypes[1])
	assert.Equal(t, models.TypeCount{Type: "park", Count: 1}, cs.CommonTypes[2])

	require.NotNil(t, cs.AvgRating)
	assert.InDelta(t, 4.5, *cs.AvgRating, 1e-9)
	assert.Greater(t, cs.DispersionMeters, 0.0)
}

func TestAnalyzeExcludesMissingGeometry(t *testing.T) {
	enriched := []models.EnrichedPlace{
		place(0, 0, nil, nil),
		{Details: models.PlaceDetails{}}, // no geometry
		place(0, 0.001, nil, nil),
		place(0, 0.002, nil, nil),
	}

	res := Analyze(enriched, Options{RadiusKm: 1.0, MinPoints: 3})

	assert.Equal(t, 1, res.Report.ExcludedPoints)
	assert.Len(t, res.Points, 3)
	assert.Equal(t, []int{0, 2, 3}, res.Indices)
	assert.Equal(t, 1, res.Report.TotalClusters)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	res := Analyze(nil, Options{RadiusKm: 1.0, MinPoints: 3})

	assert.Zero(t, res.Report.TotalClusters)
	assert.Zero(t, res.Report.NoisePoints)
	assert.Empty(t, res.Report.ClusterStats)
}

func TestAnalyzeNoRatedMembers(t *testing.T) {
	enriched := []models.EnrichedPlace{
		place(0, 0, nil, nil),
		place(0, 0.001, nil, nil),
		place(0, 0.002, nil, nil),
	}

	res := Analyze(enriched, Options{RadiusKm: 1.0, MinPoints: 3})
	cs := res.Report.ClusterStats["0"]
	assert.Nil(t, cs.AvgRating)

	// avgRating serializes as JSON null
	data, err := json.Marshal(cs)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"avgRating":null`)
}

func TestReportSerializationShape(t *testing.T) {
	enriched := []models.EnrichedPlace{
		place(0, 0, []string{"cafe"}, ratingPtr(4.0)),
		place(0, 0.001, []string{"cafe"}, ratingPtr(4.0)),
		place(0, 0.002, []string{"bar"}, nil),
	}

	res := Analyze(enriched, Options{RadiusKm: 1.0, MinPoints: 3})
	data, err := json.Marshal(res.Report)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.EqualValues(t, 1, decoded["totalClusters"])

	// commonTypes is a list of [type, count] pairs
	statsMap := decoded["clusterStats"].(map[string]interface{})
	first := statsMap["0"].(map[string]interface{})
	pairs := first["commonTypes"].([]interface{})
	pair := pairs[0].([]interface{})
	assert.Equal(t, "cafe", pair[0])
	assert.EqualValues(t, 2, pair[1])
}
