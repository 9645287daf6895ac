// Package export renders a topo.Body for inspection. Both projections are
// read-only and never fail on a structurally broken body; dangling references
// are simply left out.
package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/samber/lo"

	"github.com/chazu/brep/pkg/topo"
)

// Edge labels used in the DOT output.
const (
	LabelNext      = "next"
	LabelPrevious  = "previous"
	LabelIncident  = "incident"
	LabelOuterLoop = "outer-loop"
	LabelRing      = "ring"
	LabelMate      = "mate"
	LabelLoop      = "loop"
	LabelOrigin    = "origin"
)

// WriteDOT writes the body as a Graphviz digraph. Faces, loops and vertices
// are grouped into rank=same subgraphs; half-edges float between them.
func WriteDOT(w io.Writer, b *topo.Body) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "digraph %q {\n", b.Name())
	sb.WriteString("\tnode [shape=box fontname=\"monospace\"]\n")

	rank := func(title string, names []string) {
		if len(names) == 0 {
			return
		}
		quoted := lo.Map(names, func(n string, _ int) string { return fmt.Sprintf("%q", n) })
		fmt.Fprintf(&sb, "\tsubgraph %s { rank=same; %s }\n", title, strings.Join(quoted, "; "))
	}
	rank("faces", lo.Map(b.Faces(), func(f topo.FaceID, _ int) string { return b.FaceName(f) }))
	rank("loops", lo.Map(b.Loops(), func(l topo.LoopID, _ int) string { return b.LoopName(l) }))
	rank("vertices", lo.Map(b.Vertices(), func(v topo.VertexID, _ int) string { return b.VertexName(v) }))

	arc := func(from, to, label string) {
		if from == "" || to == "" {
			return
		}
		fmt.Fprintf(&sb, "\t%q -> %q [label=%q]\n", from, to, label)
	}

	for _, f := range b.Faces() {
		name := b.FaceName(f)
		if outer, err := b.OuterLoop(f); err == nil {
			arc(name, b.LoopName(outer), LabelOuterLoop)
		}
		rings, _ := b.Rings(f)
		for _, r := range rings {
			arc(name, b.LoopName(r), LabelRing)
		}
	}

	for _, v := range b.Vertices() {
		if h, err := b.VertexHalfEdge(v); err == nil {
			arc(b.VertexName(v), b.HalfEdgeName(h), LabelIncident)
		}
	}

	for _, h := range b.HalfEdges() {
		name := b.HalfEdgeName(h)
		if next, err := b.Next(h); err == nil {
			arc(name, b.HalfEdgeName(next), LabelNext)
		}
		if prev, err := b.Prev(h); err == nil {
			arc(name, b.HalfEdgeName(prev), LabelPrevious)
		}
		if solo, err := b.IsSolitary(h); err == nil && !solo {
			if m, err := b.Mate(h); err == nil {
				arc(name, b.HalfEdgeName(m), LabelMate)
			}
		}
		if l, err := b.LoopOf(h); err == nil {
			arc(name, b.LoopName(l), LabelLoop)
		}
		if o, err := b.Origin(h); err == nil {
			arc(name, b.VertexName(o), LabelOrigin)
		}
	}

	sb.WriteString("}\n")
	_, err := io.WriteString(w, sb.String())
	return err
}
