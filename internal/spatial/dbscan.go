package spatial

// DBSCAN label sentinels
const (
	// LabelNoise marks a point not reachable from any core point
	LabelNoise = -1
	// labelNone marks a point not yet examined
	labelNone = -2
)

// DBSCAN runs density-based clustering over points in planar (lat, lng) degree
// space. radiusKm is converted to degrees with the fixed KmPerDegree factor.
// Returns one label per input point: a cluster id >= 0 or LabelNoise.
//
// Neighborhood distance is plain Euclidean distance in degrees, so results
// degrade away from the equator. That approximation is deliberate and matches
// the downstream report consumers.
func DBSCAN(points []Point, radiusKm float64, minPoints int) []int {
	labels := make([]int, len(points))
	for i := range labels {
		labels[i] = labelNone
	}

	eps := radiusKm / KmPerDegree
	epsSquared := eps * eps
	nextLabel := 0

	for i := range points {
		if labels[i] != labelNone {
			continue
		}

		neighbors := regionQuery(points, i, epsSquared)
		if len(neighbors) < minPoints {
			// Tentative noise; may be absorbed by a later expansion
			labels[i] = LabelNoise
			continue
		}

		labels[i] = nextLabel
		expandCluster(points, labels, neighbors, nextLabel, epsSquared, minPoints)
		nextLabel++
	}

	return labels
}

// expandCluster grows one cluster from a core point's neighborhood, FIFO order.
// Noise points reached here become border members but are never expanded.
func expandCluster(points []Point, labels []int, seeds []int, label int, epsSquared float64, minPoints int) {
	queue := append([]int(nil), seeds...)

	for head := 0; head < len(queue); head++ {
		q := queue[head]

		if labels[q] == LabelNoise {
			labels[q] = label
			continue
		}
		if labels[q] != labelNone {
			continue
		}

		labels[q] = label
		neighbors := regionQuery(points, q, epsSquared)
		if len(neighbors) >= minPoints {
			queue = append(queue, neighbors...)
		}
	}
}

// regionQuery returns the indices of all points within eps of points[idx],
// including idx itself.
func regionQuery(points []Point, idx int, epsSquared float64) []int {
	var neighbors []int
	p := points[idx]
	for i, q := range points {
		dLat := p.Lat - q.Lat
		dLng := p.Lng - q.Lng
		if dLat*dLat+dLng*dLng <= epsSquared {
			neighbors = append(neighbors, i)
		}
	}
	return neighbors
}

// CountLabels returns the number of distinct clusters and the noise count
func CountLabels(labels []int) (clusters int, noise int) {
	seen := make(map[int]bool)
	for _, l := range labels {
		if l == LabelNoise {
			noise++
			continue
		}
		seen[l] = true
	}
	return len(seen), noise
}
