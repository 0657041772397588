package solve

import "math"

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// TourLength returns the total length of the closed tour over cities,
// including the edge from the last city back to the first.
// Tours with fewer than two stops have no edges and length 0.
func TourLength(tour []int, cities []Point) float64 {
	if len(tour) <= 1 {
		return 0.0
	}

	var total float64
	for i := range tour {
		a := cities[tour[i]]
		b := cities[tour[(i+1)%len(tour)]]
		total += Distance(a, b)
	}
	return total
}
