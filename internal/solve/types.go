package solve

// Point is a city location in the plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Candidate records the outcome of a single start of the multi-start search.
type Candidate struct {
	Start  int     `json:"start"`
	Tour   []int   `json:"tour"`
	Length float64 `json:"length"`
}

// Result holds the best tour found by a solve.
type Result struct {
	Tour       []int       `json:"tour"`
	Length     float64     `json:"length"`
	Start      int         `json:"start"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Progress describes one completed start during a solve.
type Progress struct {
	StartIndex int     `json:"startIndex"` // position in the start order, 0-based
	Starts     int     `json:"starts"`     // total starts in this solve
	Start      int     `json:"start"`      // start city of the completed run
	Length     float64 `json:"length"`     // improved tour length for this start
	BestLength float64 `json:"bestLength"` // best length seen so far, this start included
}
