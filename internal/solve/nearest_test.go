package solve

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertPermutation checks that tour visits every city index exactly once.
func assertPermutation(t *testing.T, tour []int, n int) {
	t.Helper()

	require.Len(t, tour, n)
	sorted := append([]int(nil), tour...)
	sort.Ints(sorted)
	for i, v := range sorted {
		require.Equal(t, i, v, "tour is not a permutation of 0..n-1")
	}
}

func TestNearestNeighborTourEmpty(t *testing.T) {
	tour := NearestNeighborTour(nil, 0)
	assert.Empty(t, tour)
}

func TestNearestNeighborTourSingle(t *testing.T) {
	tour := NearestNeighborTour([]Point{{1, 2}}, 0)
	assert.Equal(t, []int{0}, tour)
}

func TestNearestNeighborTourLine(t *testing.T) {
	// Cities on a line: greedy from the left end walks it in order.
	cities := []Point{{0, 0}, {1, 0}, {2, 0}, {3, 0}}

	tour := NearestNeighborTour(cities, 0)
	assert.Equal(t, []int{0, 1, 2, 3}, tour)

	// From the middle the walk goes to the closer side first.
	tour = NearestNeighborTour(cities, 2)
	assert.Equal(t, []int{2, 1, 0, 3}, tour)
}

func TestNearestNeighborTourStartsAtStart(t *testing.T) {
	cities := []Point{{0, 0}, {5, 1}, {2, 8}, {7, 7}, {3, 3}}

	for start := range cities {
		tour := NearestNeighborTour(cities, start)
		assertPermutation(t, tour, len(cities))
		assert.Equal(t, start, tour[0])
	}
}

func TestNearestNeighborTourTieBreaksToLowestIndex(t *testing.T) {
	// Cities 1 and 2 are equidistant from 0; the lower index must win.
	cities := []Point{{0, 0}, {0, 1}, {1, 0}}
	tour := NearestNeighborTour(cities, 0)
	assert.Equal(t, []int{0, 1, 2}, tour)

	// Duplicate coordinates are distinct cities and still tie-break by index.
	cities = []Point{{0, 0}, {1, 1}, {1, 1}, {2, 0}}
	tour = NearestNeighborTour(cities, 0)
	assert.Equal(t, []int{0, 1, 2, 3}, tour)
}

func TestNearestNeighborTourUnitSquare(t *testing.T) {
	cities := []Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	// From any corner the greedy walk traces the perimeter.
	for start := range cities {
		tour := NearestNeighborTour(cities, start)
		assertPermutation(t, tour, 4)
		assert.Equal(t, 4.0, TourLength(tour, cities))
	}
}
