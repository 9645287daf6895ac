package engine

import (
	"fmt"
	"strconv"
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"

	"github.com/chazu/brep/pkg/topo"
)

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpPoint wraps a topo.Point.
type sexpPoint struct {
	p topo.Point
}

func (p *sexpPoint) SexpString(ps *zygo.PrintState) string {
	parts := make([]string, len(p.p))
	for i, c := range p.p {
		parts[i] = strconv.FormatFloat(c, 'g', -1, 64)
	}
	return "(vec " + strings.Join(parts, " ") + ")"
}
func (p *sexpPoint) Type() *zygo.RegisteredType { return nil }

// sexpRef wraps an entity handle together with its identifier, so scripts
// can print it and builtins can tell vertices from faces.
type sexpRef[ID comparable] struct {
	kind string
	id   ID
	name string
}

func (r *sexpRef[ID]) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(%s %q)", r.kind, r.name)
}
func (r *sexpRef[ID]) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

// session is the state shared by the builtins of one evaluation: a fresh
// allocator, so identifiers restart at 1, and the body built so far.
type session struct {
	ids  *topo.IDAllocator
	body *topo.Body
}

func newSession() *session {
	return &session{ids: topo.NewIDAllocator()}
}

func (s *session) requireBody(op string) (*topo.Body, error) {
	if s.body == nil || s.body.IsEmpty() {
		return nil, fmt.Errorf("%s: no body, call mvfs first", op)
	}
	return s.body, nil
}

func (s *session) vertexRef(id topo.VertexID) *sexpRef[topo.VertexID] {
	return &sexpRef[topo.VertexID]{kind: "vertex", id: id, name: s.body.VertexName(id)}
}

func (s *session) edgeRef(id topo.EdgeID) *sexpRef[topo.EdgeID] {
	return &sexpRef[topo.EdgeID]{kind: "edge", id: id, name: s.body.EdgeName(id)}
}

func (s *session) faceRef(id topo.FaceID) *sexpRef[topo.FaceID] {
	return &sexpRef[topo.FaceID]{kind: "face", id: id, name: s.body.FaceName(id)}
}

func (s *session) loopRef(id topo.LoopID) *sexpRef[topo.LoopID] {
	return &sexpRef[topo.LoopID]{kind: "loop", id: id, name: s.body.LoopName(id)}
}

func (s *session) vertexArg(x zygo.Sexp) (topo.VertexID, error) {
	return refArg(x, "vertex", s.body.LookupVertex)
}

func (s *session) edgeArg(x zygo.Sexp) (topo.EdgeID, error) {
	return refArg(x, "edge", s.body.LookupEdge)
}

func (s *session) faceArg(x zygo.Sexp) (topo.FaceID, error) {
	return refArg(x, "face", s.body.LookupFace)
}

func (s *session) loopArg(x zygo.Sexp) (topo.LoopID, error) {
	return refArg(x, "loop", s.body.LookupLoop)
}

// refArg accepts either a handle returned by an earlier builtin or the
// entity's identifier as a string.
func refArg[ID comparable](x zygo.Sexp, kind string, lookup func(string) (ID, bool)) (ID, error) {
	var zero ID
	switch v := x.(type) {
	case *sexpRef[ID]:
		return v.id, nil
	case *zygo.SexpStr:
		if id, ok := lookup(v.S); ok {
			return id, nil
		}
		return zero, fmt.Errorf("no %s named %q", kind, v.S)
	}
	return zero, fmt.Errorf("expected %s, got %T (%s)", kind, x, x.SexpString(nil))
}

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	return strings.CutPrefix(str.S, kwPrefix)
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			// Keyword at end with no value, treat as flag with nil.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// point returns the positional argument at i, or the :at keyword when
// there are not enough positional arguments.
func (a kwArgs) point(i int) (topo.Point, error) {
	if i < len(a.positional) {
		return toPoint(a.positional[i])
	}
	if v, ok := a.kw["at"]; ok {
		return toPoint(v)
	}
	return nil, fmt.Errorf("missing point")
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_face) and plain strings ("face").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	name, _ := strings.CutPrefix(str.S, kwPrefix)
	return name, nil
}

// toPoint accepts a (vec ...) value or a list/array of numbers.
func toPoint(s zygo.Sexp) (topo.Point, error) {
	if p, ok := s.(*sexpPoint); ok {
		return p.p, nil
	}
	items, err := sexpListToSlice(s)
	if err != nil {
		return nil, fmt.Errorf("expected point: %w", err)
	}
	return toNumbers(items)
}

func toNumbers(items []zygo.Sexp) (topo.Point, error) {
	p := make(topo.Point, len(items))
	for i, it := range items {
		f, err := toFloat64(it)
		if err != nil {
			return nil, fmt.Errorf("component %d: %w", i, err)
		}
		p[i] = f
	}
	return p, nil
}

// sexpListToSlice converts a SexpPair (Lisp list) or SexpArray to a Go slice.
func sexpListToSlice(s zygo.Sexp) ([]zygo.Sexp, error) {
	switch v := s.(type) {
	case *zygo.SexpPair:
		return zygo.ListToArray(v)
	case *zygo.SexpArray:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return nil, nil
		}
	}
	return nil, fmt.Errorf("expected list or array, got %T", s)
}

func wantArgs(op string, args []zygo.Sexp, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s requires exactly %d arguments, got %d", op, n, len(args))
	}
	return nil
}

func sexpInt(n int) zygo.Sexp {
	return &zygo.SexpInt{Val: int64(n)}
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the brep builtins into a zygomys environment.
// The builtins operate on the session's body, building it during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals and
// kebab-case names (loop-length, outer-loop) match the underscore names
// registered here.
func registerBuiltins(env *zygo.Zlisp, s *session) {

	// -----------------------------------------------------------------------
	// (vec 1 2) (vec 1 2 3 4)
	// -----------------------------------------------------------------------
	env.AddFunction("vec", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) == 0 {
			return zygo.SexpNull, fmt.Errorf("vec requires at least one component")
		}
		p, err := toNumbers(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec: %w", err)
		}
		return &sexpPoint{p: p}, nil
	})

	// -----------------------------------------------------------------------
	// (vec3 1 2 3)
	// -----------------------------------------------------------------------
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("vec3", args, 3); err != nil {
			return zygo.SexpNull, err
		}
		p, err := toNumbers(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: %w", err)
		}
		return &sexpPoint{p: p}, nil
	})

	// -----------------------------------------------------------------------
	// (mvfs (vec3 0 0 0)) -> vertex; the face is (face "F1")
	// -----------------------------------------------------------------------
	env.AddFunction("mvfs", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if s.body != nil && !s.body.IsEmpty() {
			return zygo.SexpNull, fmt.Errorf("mvfs: body %s already exists", s.body.Name())
		}
		p, err := parseArgs(args).point(0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mvfs: %w", err)
		}
		res := topo.MVFS(s.ids, p)
		s.body = res.Body
		return s.vertexRef(res.Vertex), nil
	})

	// -----------------------------------------------------------------------
	// (kvfs)
	// -----------------------------------------------------------------------
	env.AddFunction("kvfs", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		b, err := s.requireBody("kvfs")
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := b.KVFS(); err != nil {
			return zygo.SexpNull, fmt.Errorf("kvfs: %w", err)
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (mev f v (vec3 1 0 0)) or (mev f v :at (vec3 1 0 0)) -> new vertex
	// -----------------------------------------------------------------------
	env.AddFunction("mev", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		b, err := s.requireBody("mev")
		if err != nil {
			return zygo.SexpNull, err
		}
		pa := parseArgs(args)
		if len(pa.positional) < 2 {
			return zygo.SexpNull, fmt.Errorf("mev requires a face, a vertex and a point")
		}
		f, err := s.faceArg(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mev: face: %w", err)
		}
		v, err := s.vertexArg(pa.positional[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mev: vertex: %w", err)
		}
		p, err := pa.point(2)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mev: %w", err)
		}
		res, err := b.MEV(f, v, p)
		if err != nil {
			return zygo.SexpNull, err
		}
		return s.vertexRef(res.Vertex), nil
	})

	// -----------------------------------------------------------------------
	// (kev e v)
	// -----------------------------------------------------------------------
	env.AddFunction("kev", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		b, err := s.requireBody("kev")
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := wantArgs("kev", args, 2); err != nil {
			return zygo.SexpNull, err
		}
		e, err := s.edgeArg(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("kev: edge: %w", err)
		}
		v, err := s.vertexArg(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("kev: vertex: %w", err)
		}
		return zygo.SexpNull, b.KEV(e, v)
	})

	// -----------------------------------------------------------------------
	// (mef f v1 v2) -> new face
	// -----------------------------------------------------------------------
	env.AddFunction("mef", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		b, err := s.requireBody("mef")
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := wantArgs("mef", args, 3); err != nil {
			return zygo.SexpNull, err
		}
		f, err := s.faceArg(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mef: face: %w", err)
		}
		v1, err := s.vertexArg(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mef: v1: %w", err)
		}
		v2, err := s.vertexArg(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mef: v2: %w", err)
		}
		res, err := b.MEF(f, v1, v2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return s.faceRef(res.Face), nil
	})

	// -----------------------------------------------------------------------
	// (kef e f)
	// -----------------------------------------------------------------------
	env.AddFunction("kef", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		b, err := s.requireBody("kef")
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := wantArgs("kef", args, 2); err != nil {
			return zygo.SexpNull, err
		}
		e, err := s.edgeArg(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("kef: edge: %w", err)
		}
		f, err := s.faceArg(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("kef: face: %w", err)
		}
		return zygo.SexpNull, b.KEF(e, f)
	})

	// -----------------------------------------------------------------------
	// (kemr f v1 v2) -> new ring
	// -----------------------------------------------------------------------
	env.AddFunction("kemr", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		b, err := s.requireBody("kemr")
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := wantArgs("kemr", args, 3); err != nil {
			return zygo.SexpNull, err
		}
		f, err := s.faceArg(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("kemr: face: %w", err)
		}
		v1, err := s.vertexArg(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("kemr: v1: %w", err)
		}
		v2, err := s.vertexArg(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("kemr: v2: %w", err)
		}
		ring, err := b.KEMR(f, v1, v2)
		if err != nil {
			return zygo.SexpNull, err
		}
		return s.loopRef(ring), nil
	})

	// -----------------------------------------------------------------------
	// (mekr f v1 v2 ring) -> new edge
	// -----------------------------------------------------------------------
	env.AddFunction("mekr", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		b, err := s.requireBody("mekr")
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := wantArgs("mekr", args, 4); err != nil {
			return zygo.SexpNull, err
		}
		f, err := s.faceArg(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mekr: face: %w", err)
		}
		v1, err := s.vertexArg(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mekr: v1: %w", err)
		}
		v2, err := s.vertexArg(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mekr: v2: %w", err)
		}
		ring, err := s.loopArg(args[3])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mekr: ring: %w", err)
		}
		e, err := b.MEKR(f, v1, v2, ring)
		if err != nil {
			return zygo.SexpNull, err
		}
		return s.edgeRef(e), nil
	})

	// -----------------------------------------------------------------------
	// (polygon (vec 0 0) (vec 1 0) (vec 1 1)) -> face closed by the last edge
	// -----------------------------------------------------------------------
	env.AddFunction("polygon", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if s.body != nil && !s.body.IsEmpty() {
			return zygo.SexpNull, fmt.Errorf("polygon: body %s already exists", s.body.Name())
		}
		pts := make([]topo.Point, len(args))
		for i, a := range args {
			p, err := toPoint(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("polygon: point %d: %w", i, err)
			}
			pts[i] = p
		}
		res, err := topo.Polygon(s.ids, pts)
		if err != nil {
			return zygo.SexpNull, err
		}
		s.body = res.Body
		return s.faceRef(res.Closing.Face), nil
	})

	// -----------------------------------------------------------------------
	// (vertex-at (vec3 1 0 0)) -> vertex, or nil when no vertex is there
	// -----------------------------------------------------------------------
	env.AddFunction("vertex_at", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		b, err := s.requireBody("vertex-at")
		if err != nil {
			return zygo.SexpNull, err
		}
		p, err := parseArgs(args).point(0)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vertex-at: %w", err)
		}
		v, ok := b.FindVertexAt(p)
		if !ok {
			return zygo.SexpNull, nil
		}
		return s.vertexRef(v), nil
	})

	// -----------------------------------------------------------------------
	// Lookups: (vertex "V1") (face "F1") (loop "L2")
	//          (edge "E3") or (edge v1 v2)
	//          (pick :face "F2")
	// -----------------------------------------------------------------------
	lookup := func(kind string, x zygo.Sexp) (zygo.Sexp, error) {
		if _, err := s.requireBody(kind); err != nil {
			return zygo.SexpNull, err
		}
		switch kind {
		case "vertex":
			id, err := s.vertexArg(x)
			if err != nil {
				return zygo.SexpNull, err
			}
			return s.vertexRef(id), nil
		case "edge":
			id, err := s.edgeArg(x)
			if err != nil {
				return zygo.SexpNull, err
			}
			return s.edgeRef(id), nil
		case "face":
			id, err := s.faceArg(x)
			if err != nil {
				return zygo.SexpNull, err
			}
			return s.faceRef(id), nil
		case "loop":
			id, err := s.loopArg(x)
			if err != nil {
				return zygo.SexpNull, err
			}
			return s.loopRef(id), nil
		}
		return zygo.SexpNull, fmt.Errorf("unknown entity kind %q, expected vertex, edge, face or loop", kind)
	}

	for _, kind := range []string{"vertex", "face", "loop"} {
		env.AddFunction(kind, func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
			if err := wantArgs(kind, args, 1); err != nil {
				return zygo.SexpNull, err
			}
			return lookup(kind, args[0])
		})
	}

	env.AddFunction("edge", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		switch len(args) {
		case 1:
			return lookup("edge", args[0])
		case 2:
			b, err := s.requireBody("edge")
			if err != nil {
				return zygo.SexpNull, err
			}
			v1, err := s.vertexArg(args[0])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("edge: v1: %w", err)
			}
			v2, err := s.vertexArg(args[1])
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("edge: v2: %w", err)
			}
			e, ok := b.FindEdge(v1, v2)
			if !ok {
				return zygo.SexpNull, fmt.Errorf("edge: no edge between %s and %s",
					b.VertexName(v1), b.VertexName(v2))
			}
			return s.edgeRef(e), nil
		}
		return zygo.SexpNull, fmt.Errorf("edge requires a name or two vertices, got %d arguments", len(args))
	})

	env.AddFunction("pick", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if err := wantArgs("pick", args, 2); err != nil {
			return zygo.SexpNull, err
		}
		kind, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pick: kind: %w", err)
		}
		if _, err := toString(args[1]); err != nil {
			return zygo.SexpNull, fmt.Errorf("pick: name: %w", err)
		}
		return lookup(kind, args[1])
	})

	// -----------------------------------------------------------------------
	// Queries
	// -----------------------------------------------------------------------

	// (degree v)
	env.AddFunction("degree", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		b, err := s.requireBody("degree")
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := wantArgs("degree", args, 1); err != nil {
			return zygo.SexpNull, err
		}
		v, err := s.vertexArg(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("degree: %w", err)
		}
		n, err := b.Degree(v)
		if err != nil {
			return zygo.SexpNull, err
		}
		return sexpInt(n), nil
	})

	// (loop-length l); registered as loop_length, see preprocessSource.
	env.AddFunction("loop_length", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		b, err := s.requireBody("loop-length")
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := wantArgs("loop-length", args, 1); err != nil {
			return zygo.SexpNull, err
		}
		l, err := s.loopArg(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("loop-length: %w", err)
		}
		n, err := b.LoopLength(l)
		if err != nil {
			return zygo.SexpNull, err
		}
		return sexpInt(n), nil
	})

	// (outer-loop f)
	env.AddFunction("outer_loop", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		b, err := s.requireBody("outer-loop")
		if err != nil {
			return zygo.SexpNull, err
		}
		if err := wantArgs("outer-loop", args, 1); err != nil {
			return zygo.SexpNull, err
		}
		f, err := s.faceArg(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("outer-loop: %w", err)
		}
		l, err := b.OuterLoop(f)
		if err != nil {
			return zygo.SexpNull, err
		}
		return s.loopRef(l), nil
	})

	// (validate) -> number of structural findings, 0 when consistent
	env.AddFunction("validate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		b, err := s.requireBody("validate")
		if err != nil {
			return zygo.SexpNull, err
		}
		return sexpInt(len(b.Validate())), nil
	})
}
