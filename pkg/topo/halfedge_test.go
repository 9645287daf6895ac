package topo

import (
	"errors"
	"testing"
)

func TestWalkIsRestartable(t *testing.T) {
	b, f, _ := chain(t, 4)
	outer, _ := b.OuterLoop(f)
	start, _ := b.LoopHalfEdge(outer)

	collect := func() []HalfEdgeID {
		var out []HalfEdgeID
		for i, h := range b.Walk(start) {
			if i != len(out) {
				t.Fatalf("position %d out of order, want %d", i, len(out))
			}
			out = append(out, h)
		}
		return out
	}
	first, second := collect(), collect()
	if len(first) != 6 {
		t.Fatalf("walk yielded %d half-edges, want 6", len(first))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("second walk differs at %d", i)
		}
	}
	if first[0] != start {
		t.Error("walk must start at the given half-edge")
	}
}

func TestWalkEarlyBreak(t *testing.T) {
	b, f, _ := chain(t, 4)
	outer, _ := b.OuterLoop(f)
	start, _ := b.LoopHalfEdge(outer)

	n := 0
	for range b.Walk(start) {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("visited %d, want 2", n)
	}
}

func TestWalkDeadStart(t *testing.T) {
	b, _, _ := chain(t, 2)
	for range b.Walk(HalfEdgeID{}) {
		t.Fatal("walk from zero handle yielded a value")
	}
}

func TestPreviousInLoopMatchesPrev(t *testing.T) {
	b, _ := cube(t)
	for _, h := range b.HalfEdges() {
		got, err := b.PreviousInLoop(h)
		if err != nil {
			t.Fatalf("PreviousInLoop(%s): %v", b.HalfEdgeName(h), err)
		}
		want, _ := b.Prev(h)
		if got != want {
			t.Errorf("PreviousInLoop(%s) = %s, Prev = %s",
				b.HalfEdgeName(h), b.HalfEdgeName(got), b.HalfEdgeName(want))
		}
	}
}

func TestMate(t *testing.T) {
	b, _, vs := chain(t, 2)
	e, _ := b.FindEdge(vs[0], vs[1])
	plus, minus, _ := b.EdgeUses(e)

	if m, err := b.Mate(plus); err != nil || m != minus {
		t.Errorf("Mate(plus) = %v, %v", m, err)
	}
	if m, err := b.Mate(minus); err != nil || m != plus {
		t.Errorf("Mate(minus) = %v, %v", m, err)
	}

	r := MVFS(nil, Point{0})
	h, _ := r.Body.VertexHalfEdge(r.Vertex)
	if _, err := r.Body.Mate(h); !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("Mate on solitary: err = %v, want ErrInvariantViolation", err)
	}
}

func TestFindHalfEdge(t *testing.T) {
	b, f, vs := chain(t, 3)

	tests := []struct {
		name    string
		from    VertexID
		to      []VertexID
		wantErr bool
	}{
		{"origin only", vs[1], nil, false},
		{"directed", vs[1], []VertexID{vs[2]}, false},
		{"reverse", vs[2], []VertexID{vs[1]}, false},
		{"not adjacent", vs[0], []VertexID{vs[2]}, true},
		{"too many", vs[0], []VertexID{vs[1], vs[2]}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := b.FindHalfEdge(f, tt.from, tt.to...)
			if tt.wantErr {
				if !errors.Is(err, ErrPreconditionFailed) {
					t.Errorf("err = %v, want precondition failure", err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if o, _ := b.Origin(h); o != tt.from {
				t.Error("half-edge does not start at from")
			}
			if len(tt.to) == 1 {
				next, _ := b.Next(h)
				if o, _ := b.Origin(next); o != tt.to[0] {
					t.Error("half-edge does not end at to")
				}
			}
		})
	}
}

func TestLoopVertices(t *testing.T) {
	b, f, vs := chain(t, 3)
	outer, _ := b.OuterLoop(f)
	got, err := b.LoopVertices(outer)
	if err != nil {
		t.Fatal(err)
	}
	counts := map[VertexID]int{}
	for _, v := range got {
		counts[v]++
	}
	// An open chain visits its ends once and its middle twice.
	if counts[vs[0]] != 1 || counts[vs[1]] != 2 || counts[vs[2]] != 1 {
		t.Errorf("vertex visits = %v", counts)
	}
}

func TestSurfaceAndLookup(t *testing.T) {
	b, f, _, _ := square(t)
	if err := b.SetSurface(f, "plane z=0"); err != nil {
		t.Fatal(err)
	}
	if s, _ := b.Surface(f); s != "plane z=0" {
		t.Errorf("surface = %v", s)
	}
	if got, ok := b.LookupFace("F1"); !ok || got != f {
		t.Error("LookupFace(F1) did not find the first face")
	}
	if _, ok := b.LookupVertex("V99"); ok {
		t.Error("LookupVertex found a name that was never allocated")
	}
	if e, ok := b.LookupEdge("E4"); !ok || b.EdgeName(e) != "E4" {
		t.Error("LookupEdge(E4) failed")
	}
}

func TestCheckDimensions(t *testing.T) {
	if err := CheckDimensions(Point{0, 0}, Point{1, 1}); err != nil {
		t.Errorf("same dimension: %v", err)
	}
	err := CheckDimensions(Point{0, 0}, Point{1, 1, 1})
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("mixed dimension: err = %v, want ErrShapeMismatch", err)
	}
	if CheckDimensions() != nil {
		t.Error("no points should be fine")
	}
}
