package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/v3lip/tspsolve/internal/solve"
)

// Options control SVG rendering.
type Options struct {
	Width      float64 // canvas width in px (default 800)
	Height     float64 // canvas height in px (default 600)
	Margin     float64 // padding around the fitted drawing (default 20)
	CityRadius float64 // dot radius in px (default 6)
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = 800
	}
	if o.Height <= 0 {
		o.Height = 600
	}
	if o.Margin <= 0 {
		o.Margin = 20
	}
	if o.CityRadius <= 0 {
		o.CityRadius = 6
	}
	return o
}

// SVG renders cities and a closed tour as an SVG document. The drawing is
// scaled to fit the canvas; the tour polygon closes back to its first city.
// An empty or singleton tour renders dots only.
func SVG(cities []solve.Point, tour []int, opts Options) []byte {
	opts = opts.withDefaults()

	var b strings.Builder
	fmt.Fprintf(&b,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="0 0 %g %g">`+"\n",
		opts.Width, opts.Height, opts.Width, opts.Height)
	b.WriteString(`<rect width="100%" height="100%" fill="white"/>` + "\n")

	project := fitTransform(cities, opts)

	if len(tour) >= 2 {
		b.WriteString(`<polygon fill="none" stroke="black" stroke-width="2" points="`)
		for i, idx := range tour {
			x, y := project(cities[idx])
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%.2f,%.2f", x, y)
		}
		b.WriteString(`"/>` + "\n")
	}

	for _, p := range cities {
		x, y := project(p)
		fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="%g" fill="black"/>`+"\n",
			x, y, opts.CityRadius)
	}

	b.WriteString("</svg>\n")
	return []byte(b.String())
}

// fitTransform maps city coordinates into the canvas, preserving aspect
// ratio. Degenerate extents (a single city, or all cities collinear on an
// axis) collapse to the canvas center along that axis.
func fitTransform(cities []solve.Point, opts Options) func(solve.Point) (float64, float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range cities {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}

	spanX := maxX - minX
	spanY := maxY - minY
	innerW := opts.Width - 2*opts.Margin
	innerH := opts.Height - 2*opts.Margin

	scale := 1.0
	if spanX > 0 || spanY > 0 {
		scale = math.Inf(1)
		if spanX > 0 {
			scale = math.Min(scale, innerW/spanX)
		}
		if spanY > 0 {
			scale = math.Min(scale, innerH/spanY)
		}
	}

	return func(p solve.Point) (float64, float64) {
		x := opts.Width / 2
		y := opts.Height / 2
		if spanX > 0 {
			x = opts.Margin + (innerW-spanX*scale)/2 + (p.X-minX)*scale
		}
		if spanY > 0 {
			y = opts.Margin + (innerH-spanY*scale)/2 + (p.Y-minY)*scale
		}
		return x, y
	}
}
