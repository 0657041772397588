package solve

import (
	"math/rand"

	"golang.org/x/sync/errgroup"
)

const (
	defaultStarts = 5
	defaultSeed   = 1
)

// Option configures a Solver.
type Option func(*Solver)

// WithStarts bounds the number of nearest-neighbor starts tried per solve.
// Values below one are ignored.
func WithStarts(n int) Option {
	return func(s *Solver) {
		if n >= 1 {
			s.starts = n
		}
	}
}

// WithSeed seeds the start-selection shuffle. The same seed over the same
// cities selects the same starts, making the whole solve deterministic.
func WithSeed(seed int64) Option {
	return func(s *Solver) {
		s.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand supplies the random source used to pick start cities. It takes
// precedence over WithSeed. The source is only consumed once per solve.
func WithRand(rng *rand.Rand) Option {
	return func(s *Solver) {
		if rng != nil {
			s.rng = rng
		}
	}
}

// WithWorkers runs up to w starts concurrently. Values below two keep the
// solve sequential. The reduction over results is done in start order either
// way, so the winning tour does not depend on goroutine scheduling.
func WithWorkers(w int) Option {
	return func(s *Solver) {
		if w >= 1 {
			s.workers = w
		}
	}
}

// WithProgress registers fn to be called after each completed start, in
// start order. fn must not retain the tours it is handed across calls.
func WithProgress(fn func(Progress)) Option {
	return func(s *Solver) {
		s.progress = fn
	}
}

// Solver runs multi-start nearest-neighbor construction with 2-opt
// improvement and keeps the shortest tour. The zero value is not usable;
// create one with New.
type Solver struct {
	starts   int
	workers  int
	rng      *rand.Rand
	progress func(Progress)
}

// New creates a Solver. Without options it tries up to five starts
// sequentially, selected by a fixed default seed.
func New(opts ...Option) *Solver {
	s := &Solver{
		starts:  defaultStarts,
		workers: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(defaultSeed))
	}
	return s
}

// Solve computes a short closed tour over cities. The city slice is only
// read. Fewer than two cities yield the trivial tour with length 0.
//
// Randomness decides only which start cities are tried; construction and
// improvement are deterministic given a start.
func (s *Solver) Solve(cities []Point) Result {
	n := len(cities)
	if n <= 1 {
		tour := make([]int, n)
		for i := range tour {
			tour[i] = i
		}
		return Result{Tour: tour, Length: 0.0}
	}

	k := s.starts
	if k > n {
		k = n
	}
	starts := s.rng.Perm(n)[:k]

	candidates := make([]Candidate, k)
	best := -1

	// reduce folds candidate idx into the running best and reports it.
	// Called in start order; the strict comparison keeps the first of a tie.
	reduce := func(idx int) {
		if best < 0 || candidates[idx].Length < candidates[best].Length {
			best = idx
		}
		if s.progress != nil {
			s.progress(Progress{
				StartIndex: idx,
				Starts:     k,
				Start:      candidates[idx].Start,
				Length:     candidates[idx].Length,
				BestLength: candidates[best].Length,
			})
		}
	}

	if s.workers > 1 {
		// Starts are independent, so they fan out over a bounded pool.
		// Each result lands in its start-order slot and the reduction runs
		// afterwards, so the winner matches the sequential path exactly.
		var g errgroup.Group
		g.SetLimit(s.workers)
		for idx, start := range starts {
			idx, start := idx, start
			g.Go(func() error {
				candidates[idx] = runStart(cities, start)
				return nil
			})
		}
		_ = g.Wait() // runStart cannot fail
		for idx := range candidates {
			reduce(idx)
		}
	} else {
		for idx, start := range starts {
			candidates[idx] = runStart(cities, start)
			reduce(idx)
		}
	}

	return Result{
		Tour:       candidates[best].Tour,
		Length:     candidates[best].Length,
		Start:      candidates[best].Start,
		Candidates: candidates,
	}
}

// runStart executes one construction+improvement run from a single start.
func runStart(cities []Point, start int) Candidate {
	tour := NearestNeighborTour(cities, start)
	tour = TwoOpt(tour, cities)
	return Candidate{
		Start:  start,
		Tour:   tour,
		Length: TourLength(tour, cities),
	}
}
