package export

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/chazu/brep/pkg/topo"
)

// SVGOptions controls the plot produced by WriteSVG.
type SVGOptions struct {
	Width, Height int
	Margin        int
	VertexRadius  int
	OriginRadius  int
	// Half-edges are drawn beside their edge, shifted sideways by Lateral
	// and shortened at both ends by Inset, so the two uses stay apart.
	Lateral float64
	Inset   float64
	Labels  bool
}

// DefaultSVGOptions returns an 800x800 plot.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Width:        800,
		Height:       800,
		Margin:       40,
		VertexRadius: 10,
		OriginRadius: 5,
		Lateral:      5,
		Inset:        20,
		Labels:       true,
	}
}

const (
	vertexStyle     = "fill:#44f"
	halfEdgeStyle   = "stroke:#000;stroke-width:1"
	originStyle     = "fill:#f44"
	solitaryStyle   = "fill:none;stroke:#f44;stroke-width:2"
	labelStyle      = "font-family:monospace;font-size:10px;fill:#333"
	backgroundStyle = "fill:#fff"
)

type point2 struct{ x, y float64 }

// WriteSVG plots the x/y projection of the body: vertices as dots and each
// half-edge as an arrow from its origin toward the origin of its successor.
// Vertices with fewer than two coordinates are skipped, together with every
// half-edge touching them.
func WriteSVG(w io.Writer, b *topo.Body, opts SVGOptions) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("export: invalid canvas size %dx%d", opts.Width, opts.Height)
	}

	pos := make(map[topo.VertexID]point2)
	for _, v := range b.Vertices() {
		p, err := b.Coordinate(v)
		if err != nil || p.Dim() < 2 {
			continue
		}
		pos[v] = point2{p[0], p[1]}
	}
	project := fit(pos, opts)

	canvas := svg.New(w)
	canvas.Start(opts.Width, opts.Height)
	canvas.Title(b.Name())
	canvas.Rect(0, 0, opts.Width, opts.Height, backgroundStyle)

	canvas.Gid("halfedges")
	for _, h := range b.HalfEdges() {
		o, err := b.Origin(h)
		if err != nil {
			continue
		}
		from, ok := pos[o]
		if !ok {
			continue
		}
		a := project(from)
		if solo, _ := b.IsSolitary(h); solo {
			canvas.Circle(round(a.x), round(a.y), opts.VertexRadius+opts.OriginRadius, solitaryStyle)
			continue
		}
		next, err := b.Next(h)
		if err != nil {
			continue
		}
		d, err := b.Origin(next)
		if err != nil {
			continue
		}
		to, ok := pos[d]
		if !ok {
			continue
		}
		s, e, ok := offsetSegment(a, project(to), opts.Lateral, opts.Inset)
		if !ok {
			continue
		}
		canvas.Line(round(s.x), round(s.y), round(e.x), round(e.y), halfEdgeStyle)
		canvas.Circle(round(s.x), round(s.y), opts.OriginRadius, originStyle)
		if opts.Labels {
			mid := point2{(s.x + e.x) / 2, (s.y + e.y) / 2}
			canvas.Text(round(mid.x), round(mid.y), b.HalfEdgeName(h), labelStyle)
		}
	}
	canvas.Gend()

	canvas.Gid("vertices")
	for _, v := range b.Vertices() {
		p, ok := pos[v]
		if !ok {
			continue
		}
		c := project(p)
		canvas.Circle(round(c.x), round(c.y), opts.VertexRadius, vertexStyle)
		if opts.Labels {
			canvas.Text(round(c.x)+opts.VertexRadius+2, round(c.y)-opts.VertexRadius, b.VertexName(v), labelStyle)
		}
	}
	canvas.Gend()

	canvas.End()
	return nil
}

// fit maps model coordinates onto the canvas with a uniform scale, y up.
func fit(pos map[topo.VertexID]point2, opts SVGOptions) func(point2) point2 {
	if len(pos) == 0 {
		return func(p point2) point2 { return p }
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pos {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	innerW := float64(opts.Width - 2*opts.Margin)
	innerH := float64(opts.Height - 2*opts.Margin)
	spanX, spanY := maxX-minX, maxY-minY
	scale := 1.0
	switch {
	case spanX > 0 && spanY > 0:
		scale = math.Min(innerW/spanX, innerH/spanY)
	case spanX > 0:
		scale = innerW / spanX
	case spanY > 0:
		scale = innerH / spanY
	}
	m := float64(opts.Margin)
	h := float64(opts.Height)
	return func(p point2) point2 {
		return point2{
			x: m + (p.x-minX)*scale,
			y: h - m - (p.y-minY)*scale,
		}
	}
}

// offsetSegment shifts the segment a-b to its left by lat and pulls both
// ends in by inset. Short segments get a proportionally smaller inset.
func offsetSegment(a, b point2, lat, inset float64) (point2, point2, bool) {
	dx, dy := b.x-a.x, b.y-a.y
	n := math.Hypot(dx, dy)
	if n == 0 {
		return a, b, false
	}
	dx, dy = dx/n, dy/n
	if inset > n/4 {
		inset = n / 4
	}
	ox, oy := -dy*lat, dx*lat
	return point2{a.x + ox + dx*inset, a.y + oy + dy*inset},
		point2{b.x + ox - dx*inset, b.y + oy - dy*inset}, true
}

func round(f float64) int { return int(math.Round(f)) }
