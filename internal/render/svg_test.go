package render

import (
	"strings"
	"testing"

	"github.com/v3lip/tspsolve/internal/solve"
)

func TestSVGSquareTour(t *testing.T) {
	cities := []solve.Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	out := string(SVG(cities, []int{0, 1, 2, 3}, Options{}))

	if !strings.HasPrefix(out, "<svg ") {
		t.Fatalf("Output is not an SVG document: %.60s", out)
	}
	if !strings.Contains(out, "<polygon ") {
		t.Error("Tour should render as a closed polygon")
	}
	if got := strings.Count(out, "<circle "); got != 4 {
		t.Errorf("Expected 4 city dots, got %d", got)
	}
	if !strings.Contains(out, "</svg>") {
		t.Error("Document is not closed")
	}
}

func TestSVGNoTour(t *testing.T) {
	cities := []solve.Point{{X: 5, Y: 5}, {X: 10, Y: 10}}
	out := string(SVG(cities, nil, Options{}))

	if strings.Contains(out, "<polygon ") {
		t.Error("No tour means no polygon")
	}
	if got := strings.Count(out, "<circle "); got != 2 {
		t.Errorf("Expected 2 city dots, got %d", got)
	}
}

func TestSVGSingleCity(t *testing.T) {
	out := string(SVG([]solve.Point{{X: 42, Y: 42}}, []int{0}, Options{Width: 100, Height: 100}))

	// A lone city sits at the canvas center.
	if !strings.Contains(out, `cx="50.00" cy="50.00"`) {
		t.Errorf("Single city should center on the canvas:\n%s", out)
	}
}

func TestSVGEmpty(t *testing.T) {
	out := string(SVG(nil, nil, Options{}))

	if !strings.HasPrefix(out, "<svg ") || !strings.Contains(out, "</svg>") {
		t.Errorf("Empty instance should still be a valid document:\n%s", out)
	}
	if strings.Contains(out, "<circle ") {
		t.Error("No cities means no dots")
	}
}

func TestSVGCustomSize(t *testing.T) {
	out := string(SVG([]solve.Point{{X: 0, Y: 0}, {X: 1, Y: 1}}, nil, Options{Width: 320, Height: 240}))

	if !strings.Contains(out, `width="320" height="240"`) {
		t.Errorf("Canvas size not honored:\n%.120s", out)
	}
}
