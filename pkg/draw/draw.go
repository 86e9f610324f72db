// Package draw renders one realized picture of a configuration as an
// SVG drawing: points as labeled dots, lines clipped to the viewport,
// circles as-is. It exists for eyeballing discovered configurations;
// the analysis pipeline never depends on it.
package draw

import (
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/AnonymousPurplePotato/geogen/pkg/analytic"
	"github.com/AnonymousPurplePotato/geogen/pkg/term"
)

const (
	canvasWidth  = 800
	canvasHeight = 600
	margin       = 40.0
	pointRadius  = 4
)

// SVG writes the drawing of cfg's realization in pic to w.
func SVG(w io.Writer, cfg *term.Configuration, pic PictureView) {
	view := newViewport(cfg, pic)

	canvas := svg.New(w)
	canvas.Start(canvasWidth, canvasHeight)
	canvas.Rect(0, 0, canvasWidth, canvasHeight, "fill:white")

	// Lines and circles under the points.
	for _, o := range cfg.Objects() {
		v, ok := pic.Get(o)
		if !ok {
			continue
		}
		switch v := v.(type) {
		case analytic.Line:
			view.drawLine(canvas, v)
		case analytic.Circle:
			view.drawCircle(canvas, v)
		}
	}
	for _, o := range cfg.Objects() {
		v, ok := pic.Get(o)
		if !ok {
			continue
		}
		if p, isPoint := v.(analytic.Point); isPoint {
			view.drawPoint(canvas, p, cfg.NameOf(o))
		}
	}
	canvas.End()
}

// PictureView is the read surface the drawer needs from a picture.
type PictureView interface {
	Get(o *term.Object) (analytic.Object, bool)
}

// viewport maps picture coordinates onto the canvas, preserving aspect
// ratio.
type viewport struct {
	minX, minY, scale float64
}

func newViewport(cfg *term.Configuration, pic PictureView) *viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	for _, o := range cfg.Objects() {
		v, ok := pic.Get(o)
		if !ok {
			continue
		}
		switch v := v.(type) {
		case analytic.Point:
			grow(v.X, v.Y)
		case analytic.Circle:
			grow(v.Center.X-v.R, v.Center.Y-v.R)
			grow(v.Center.X+v.R, v.Center.Y+v.R)
		}
	}
	if math.IsInf(minX, 1) {
		minX, minY, maxX, maxY = -1, -1, 1, 1
	}
	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	scale := math.Min((canvasWidth-2*margin)/spanX, (canvasHeight-2*margin)/spanY)
	return &viewport{minX: minX, minY: minY, scale: scale}
}

func (v *viewport) project(p analytic.Point) (int, int) {
	x := margin + (p.X-v.minX)*v.scale
	// SVG y grows downward.
	y := float64(canvasHeight) - margin - (p.Y-v.minY)*v.scale
	return int(math.Round(x)), int(math.Round(y))
}

func (v *viewport) drawPoint(canvas *svg.SVG, p analytic.Point, label string) {
	x, y := v.project(p)
	canvas.Circle(x, y, pointRadius, "fill:black")
	canvas.Text(x+6, y-6, label, "font-family:serif;font-size:14px")
}

func (v *viewport) drawCircle(canvas *svg.SVG, c analytic.Circle) {
	x, y := v.project(c.Center)
	canvas.Circle(x, y, int(math.Round(c.R*v.scale)), "fill:none;stroke:black;stroke-width:1")
}

// drawLine clips the infinite line against a box slightly larger than
// the drawn objects and renders the chord.
func (v *viewport) drawLine(canvas *svg.SVG, l analytic.Line) {
	// Walk the box corners in picture coordinates.
	loX := v.minX - margin/v.scale
	hiX := v.minX + (canvasWidth-margin)/v.scale
	loY := v.minY - margin/v.scale
	hiY := v.minY + (canvasHeight-margin)/v.scale

	type pt struct{ x, y float64 }
	var hits []pt
	add := func(x, y float64) {
		if x >= loX-1e-9 && x <= hiX+1e-9 && y >= loY-1e-9 && y <= hiY+1e-9 {
			hits = append(hits, pt{x, y})
		}
	}
	// Intersections with the four box edges.
	if l.B != 0 {
		add(loX, -(l.C+l.A*loX)/l.B)
		add(hiX, -(l.C+l.A*hiX)/l.B)
	}
	if l.A != 0 {
		add(-(l.C+l.B*loY)/l.A, loY)
		add(-(l.C+l.B*hiY)/l.A, hiY)
	}
	if len(hits) < 2 {
		return
	}
	x1, y1 := v.project(analytic.Point{X: hits[0].x, Y: hits[0].y})
	x2, y2 := v.project(analytic.Point{X: hits[len(hits)-1].x, Y: hits[len(hits)-1].y})
	canvas.Line(x1, y1, x2, y2, "stroke:black;stroke-width:1")
}
