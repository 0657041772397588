package solve

import "math"

// NearestNeighborTour builds a tour that begins at start and always steps
// to the closest city not yet visited. The scan over unvisited cities runs
// in ascending index order with a strict comparison, so distance ties break
// to the lowest city index and the result is reproducible. Runs in O(n²).
func NearestNeighborTour(cities []Point, start int) []int {
	n := len(cities)
	if n == 0 {
		return []int{}
	}

	tour := make([]int, 0, n)
	tour = append(tour, start)

	visited := make([]bool, n)
	visited[start] = true

	current := start
	for len(tour) < n {
		next := -1
		best := math.Inf(1)
		for j := 0; j < n; j++ {
			if visited[j] {
				continue
			}
			if d := Distance(cities[current], cities[j]); d < best {
				best = d
				next = j
			}
		}

		tour = append(tour, next)
		visited[next] = true
		current = next
	}

	return tour
}
