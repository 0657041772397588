package instance

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/v3lip/tspsolve/internal/solve"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cities.json")

	inst := &Instance{
		Name:   "triangle",
		Points: []solve.Point{{X: 0, Y: 0}, {X: 3, Y: 0}, {X: 0, Y: 4}},
	}

	if err := Save(path, inst); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Name != "triangle" {
		t.Errorf("Expected name triangle, got %s", loaded.Name)
	}
	if len(loaded.Points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(loaded.Points))
	}
	if loaded.Points[1].X != 3 || loaded.Points[2].Y != 4 {
		t.Errorf("Points not preserved: %v", loaded.Points)
	}
}

func TestLoadBareArray(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "points.json")

	data := `[{"x": 1, "y": 2}, {"x": 3, "y": 4}]`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	inst, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(inst.Points) != 2 {
		t.Fatalf("Expected 2 points, got %d", len(inst.Points))
	}
	if inst.Name != "points" {
		t.Errorf("Name should default to the file stem, got %s", inst.Name)
	}
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "grid.csv")

	data := "0,0\n1.5, 2.5\n-3,4\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	inst, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if len(inst.Points) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(inst.Points))
	}
	if inst.Points[1].X != 1.5 || inst.Points[1].Y != 2.5 {
		t.Errorf("CSV point parsed wrong: %v", inst.Points[1])
	}
	if inst.Points[2].X != -3 {
		t.Errorf("Negative coordinate lost: %v", inst.Points[2])
	}
}

func TestLoadRejectsBadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")

	if err := os.WriteFile(path, []byte("1,2,3\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for a 3-field csv line")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestValidatePoints(t *testing.T) {
	good := []solve.Point{{X: 1, Y: 2}, {X: -5, Y: 0}}
	if err := ValidatePoints(good); err != nil {
		t.Errorf("Finite points should validate, got %v", err)
	}

	bad := []solve.Point{{X: 1, Y: math.NaN()}}
	if err := ValidatePoints(bad); err == nil {
		t.Error("NaN coordinate should be rejected")
	}

	bad = []solve.Point{{X: math.Inf(1), Y: 0}}
	if err := ValidatePoints(bad); err == nil {
		t.Error("Infinite coordinate should be rejected")
	}
}

func TestRandomDeterministic(t *testing.T) {
	a := Random(10, 800, 600, 42)
	b := Random(10, 800, 600, 42)

	if len(a.Points) != 10 {
		t.Fatalf("Expected 10 points, got %d", len(a.Points))
	}

	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("Same seed should generate same points, differ at %d", i)
		}
		if a.Points[i].X < 0 || a.Points[i].X >= 800 ||
			a.Points[i].Y < 0 || a.Points[i].Y >= 600 {
			t.Errorf("Point %d outside canvas: %v", i, a.Points[i])
		}
	}

	c := Random(10, 800, 600, 43)
	same := true
	for i := range a.Points {
		if a.Points[i] != c.Points[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("Different seeds should generate different points")
	}
}
