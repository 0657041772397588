package store

import (
	"fmt"
	"sort"
	"time"

	"github.com/v3lip/tspsolve/internal/solve"
)

// SolveConfig holds the solver settings used for a recorded solve.
type SolveConfig struct {
	Starts  int   `json:"starts"`
	Seed    int64 `json:"seed"`
	Workers int   `json:"workers,omitempty"`
}

// Record is a persisted solve outcome: the instance, the winning tour, and
// enough context to reproduce the run. Serialized to record.json.
type Record struct {
	// ID is the unique identifier for this solve
	ID string `json:"id"`

	// Instance names the source of the cities (file stem or job name)
	Instance string `json:"instance,omitempty"`

	// Cities is the point set that was solved, in input order
	Cities []solve.Point `json:"cities"`

	// Tour is the best visiting order found, a permutation of 0..len(Cities)-1
	Tour []int `json:"tour"`

	// Length is the cyclic Euclidean length of Tour
	Length float64 `json:"length"`

	// Start is the start city of the winning nearest-neighbor run
	Start int `json:"start"`

	// StartsTried is how many restarts the solver ran
	StartsTried int `json:"startsTried"`

	// ElapsedSeconds is the wall-clock solve duration
	ElapsedSeconds float64 `json:"elapsedSeconds"`

	// Timestamp records when this record was created
	Timestamp time.Time `json:"timestamp"`

	// Config holds the solver configuration used for this run
	Config SolveConfig `json:"config"`
}

// RecordInfo is record metadata without the city and tour payloads, used
// for listings.
type RecordInfo struct {
	ID        string    `json:"id"`
	Instance  string    `json:"instance,omitempty"`
	Cities    int       `json:"cities"`
	Length    float64   `json:"length"`
	Timestamp time.Time `json:"timestamp"`
}

// NewRecord builds a record from solver output.
func NewRecord(id, instance string, cities []solve.Point, res solve.Result, elapsed time.Duration, config SolveConfig) *Record {
	return &Record{
		ID:             id,
		Instance:       instance,
		Cities:         cities,
		Tour:           res.Tour,
		Length:         res.Length,
		Start:          res.Start,
		StartsTried:    len(res.Candidates),
		ElapsedSeconds: elapsed.Seconds(),
		Timestamp:      time.Now(),
		Config:         config,
	}
}

// ToInfo converts a full Record to RecordInfo.
func (r *Record) ToInfo() RecordInfo {
	return RecordInfo{
		ID:        r.ID,
		Instance:  r.Instance,
		Cities:    len(r.Cities),
		Length:    r.Length,
		Timestamp: r.Timestamp,
	}
}

// Validate checks the record for internal consistency, including that the
// tour is a permutation of the city indices.
func (r *Record) Validate() error {
	if r.ID == "" {
		return &ValidationError{Field: "ID", Reason: "cannot be empty"}
	}
	if r.Length < 0 {
		return &ValidationError{Field: "Length", Reason: "cannot be negative"}
	}
	if r.Timestamp.IsZero() {
		return &ValidationError{Field: "Timestamp", Reason: "cannot be zero"}
	}
	if len(r.Tour) != len(r.Cities) {
		return &ValidationError{
			Field:  "Tour",
			Reason: fmt.Sprintf("length mismatch: %d stops for %d cities", len(r.Tour), len(r.Cities)),
		}
	}
	sorted := append([]int(nil), r.Tour...)
	sort.Ints(sorted)
	for i, v := range sorted {
		if v != i {
			return &ValidationError{Field: "Tour", Reason: "not a permutation of the city indices"}
		}
	}
	return nil
}

// ValidationError represents a record validation error.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + " " + e.Reason
}
