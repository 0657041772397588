package solve

// TwoOpt improves a tour by reversing segments whose reversal shortens the
// total length. Each pass scans all candidate segment pairs and applies an
// improving move as soon as it is found, so later candidates in the same
// pass are judged against the already-improved tour. Passes repeat until
// one applies no move, which leaves the tour at a local 2-opt optimum.
//
// Segment boundaries never include position 0 or the closing edge back to
// the first city, so that edge is never exchanged with interior edges. The
// returned tour visits the same cities and is never longer than the input.
//
// A full pass checks O(n²) candidates and recomputes the length of each,
// so a pass is O(n³) in this direct form. Acceptable at interactive sizes.
func TwoOpt(route []int, cities []Point) []int {
	best := make([]int, len(route))
	copy(best, route)
	bestLength := TourLength(best, cities)

	improved := true
	for improved {
		improved = false
		for i := 1; i < len(best)-2; i++ {
			for j := i + 1; j < len(best)-1; j++ {
				if j-i == 1 {
					continue // reversing a single city changes nothing
				}

				candidate := reverseSegment(best, i, j)
				length := TourLength(candidate, cities)
				if length < bestLength {
					best = candidate
					bestLength = length
					improved = true
				}
			}
		}
	}

	return best
}

// reverseSegment returns a copy of route with positions [i, j) reversed.
func reverseSegment(route []int, i, j int) []int {
	out := make([]int, len(route))
	copy(out, route)
	for lo, hi := i, j-1; lo < hi; lo, hi = lo+1, hi-1 {
		out[lo], out[hi] = out[hi], out[lo]
	}
	return out
}
