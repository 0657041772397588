package instance

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/v3lip/tspsolve/internal/solve"
)

// Instance is a named, ordered set of cities. City identity is positional:
// duplicate coordinates are legal and stay distinct cities.
type Instance struct {
	Name   string        `json:"name,omitempty"`
	Points []solve.Point `json:"points"`
}

// Load reads an instance from path. Files ending in .csv are parsed as one
// "x,y" pair per line; everything else is parsed as JSON. Coordinates must
// be finite.
func Load(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read instance: %w", err)
	}

	var inst *Instance
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		inst, err = parseCSV(data)
	} else {
		inst, err = parseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}

	if inst.Name == "" {
		inst.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	if err := ValidatePoints(inst.Points); err != nil {
		return nil, fmt.Errorf("invalid instance %s: %w", filepath.Base(path), err)
	}
	return inst, nil
}

// Save writes the instance as indented JSON using a temp file + rename so a
// crash mid-write cannot leave a truncated file behind.
func Save(path string, inst *Instance) error {
	if inst == nil {
		return fmt.Errorf("instance cannot be nil")
	}
	if err := ValidatePoints(inst.Points); err != nil {
		return fmt.Errorf("invalid instance: %w", err)
	}

	data, err := json.MarshalIndent(inst, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize instance: %w", err)
	}
	data = append(data, '\n')

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp instance file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename instance file: %w", err)
	}
	return nil
}

// Random generates n cities uniformly over a width x height canvas from a
// deterministic seed.
func Random(n int, width, height float64, seed int64) *Instance {
	rng := rand.New(rand.NewSource(seed))
	points := make([]solve.Point, n)
	for i := range points {
		points[i] = solve.Point{
			X: rng.Float64() * width,
			Y: rng.Float64() * height,
		}
	}
	return &Instance{
		Name:   fmt.Sprintf("random-%d", n),
		Points: points,
	}
}

// ValidatePoints rejects coordinates the solver cannot handle. The solver
// itself assumes finite inputs, so the check runs at the boundary.
func ValidatePoints(points []solve.Point) error {
	for i, p := range points {
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) ||
			math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("point %d has non-finite coordinates (%v, %v)", i, p.X, p.Y)
		}
	}
	return nil
}

func parseJSON(data []byte) (*Instance, error) {
	var inst Instance
	if err := json.Unmarshal(data, &inst); err == nil && inst.Points != nil {
		return &inst, nil
	}

	// Also accept a bare array of points.
	var points []solve.Point
	if err := json.Unmarshal(data, &points); err != nil {
		return nil, fmt.Errorf("expected an instance object or a point array: %w", err)
	}
	return &Instance{Points: points}, nil
}

func parseCSV(data []byte) (*Instance, error) {
	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	points := make([]solve.Point, 0, len(records))
	for i, record := range records {
		if len(record) != 2 {
			return nil, fmt.Errorf("line %d: expected 2 fields, got %d", i+1, len(record))
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad x coordinate: %w", i+1, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: bad y coordinate: %w", i+1, err)
		}
		points = append(points, solve.Point{X: x, Y: y})
	}
	return &Instance{Points: points}, nil
}
