package cluster

import (
	"log"
	"strconv"

	"github.com/jengzang/placewalk-go/internal/models"
	"github.com/jengzang/placewalk-go/internal/spatial"
	"github.com/jengzang/placewalk-go/internal/stats"
)

// Options are the density-clustering parameters
type Options struct {
	RadiusKm  float64
	MinPoints int
}

// Result pairs per-point labels with the aggregated report.
// Indices refers back into the enriched slice for each clustered point.
type Result struct {
	Points  []spatial.Point
	Indices []int
	Labels  []int
	Report  *models.ClusterReport
}

// Analyze clusters the enriched coordinates and computes per-cluster
// statistics. Places without fetched geometry are excluded and counted.
// The whole result is recomputed on every call.
func Analyze(enriched []models.EnrichedPlace, opts Options) *Result {
	var points []spatial.Point
	var indices []int
	excluded := 0

	for i := range enriched {
		if !enriched[i].HasCoordinates() {
			excluded++
			continue
		}
		loc := enriched[i].Details.Location
		points = append(points, spatial.Point{Lat: loc.Lat, Lng: loc.Lng})
		indices = append(indices, i)
	}

	labels := spatial.DBSCAN(points, opts.RadiusKm, opts.MinPoints)
	totalClusters, noise := spatial.CountLabels(labels)

	log.Printf("[Cluster] %d points clustered into %d clusters (%d noise, %d excluded)",
		len(points), totalClusters, noise, excluded)

	report := &models.ClusterReport{
		TotalClusters:  totalClusters,
		NoisePoints:    noise,
		ExcludedPoints: excluded,
		ClusterStats:   make(map[string]models.ClusterStats, totalClusters),
	}

	for label := 0; label < totalClusters; label++ {
		report.ClusterStats[strconv.Itoa(label)] = clusterStats(enriched, points, indices, labels, label)
	}

	return &Result{
		Points:  points,
		Indices: indices,
		Labels:  labels,
		Report:  report,
	}
}

// clusterStats aggregates one cluster's members
func clusterStats(enriched []models.EnrichedPlace, points []spatial.Point, indices, labels []int, label int) models.ClusterStats {
	var members []spatial.Point
	types := stats.NewCounter()
	var ratings []float64

	for i, l := range labels {
		if l != label {
			continue
		}
		members = append(members, points[i])

		details := &enriched[indices[i]].Details
		types.AddAll(details.Types)
		if details.Rating != nil {
			ratings = append(ratings, *details.Rating)
		}
	}

	center := spatial.Centroid(members)
	cs := models.ClusterStats{
		Size:             len(members),
		Center:           [2]float64{center.Lat, center.Lng},
		CommonTypes:      []models.TypeCount{},
		DispersionMeters: spatial.RadiusOfGyration(members),
	}

	for _, e := range types.MostCommon(3) {
		cs.CommonTypes = append(cs.CommonTypes, models.TypeCount{Type: e.Key, Count: e.Count})
	}

	if len(ratings) > 0 {
		avg := stats.Mean(ratings)
		cs.AvgRating = &avg
	}

	return cs
}
