package topo

import "fmt"

// handle is a generational index into an arena. The zero handle never refers
// to a live slot because generations start at 1.
type handle struct {
	index uint32
	gen   uint32
}

// IsZero reports whether the handle is the "none" value.
func (h handle) IsZero() bool { return h.gen == 0 }

func (h handle) format(kind string) string {
	if h.IsZero() {
		return kind + "(none)"
	}
	return fmt.Sprintf("%s(%d:%d)", kind, h.index, h.gen)
}

type slot[T any] struct {
	gen  uint32
	live bool
	val  T
}

// arena owns the records of one entity kind. Slots are heap-allocated so
// pointers returned by get stay valid across later allocations. Released
// slots are recycled with a bumped generation, which invalidates old handles.
type arena[T any] struct {
	slots []*slot[T]
	free  []uint32
	live  int
}

func (a *arena[T]) alloc(v T) handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, &slot[T]{})
	}
	s := a.slots[idx]
	s.gen++
	s.live = true
	s.val = v
	a.live++
	return handle{index: idx, gen: s.gen}
}

func (a *arena[T]) get(h handle) (*T, bool) {
	if h.gen == 0 || int(h.index) >= len(a.slots) {
		return nil, false
	}
	s := a.slots[h.index]
	if !s.live || s.gen != h.gen {
		return nil, false
	}
	return &s.val, true
}

func (a *arena[T]) release(h handle) bool {
	if _, ok := a.get(h); !ok {
		return false
	}
	s := a.slots[h.index]
	var zero T
	s.val = zero
	s.live = false
	s.gen++
	a.free = append(a.free, h.index)
	a.live--
	return true
}

// handles lists live handles in slot order.
func (a *arena[T]) handles() []handle {
	out := make([]handle, 0, a.live)
	for i, s := range a.slots {
		if s.live {
			out = append(out, handle{index: uint32(i), gen: s.gen})
		}
	}
	return out
}

func (a *arena[T]) clear() {
	for _, h := range a.handles() {
		a.release(h)
	}
}

func (a *arena[T]) len() int { return a.live }
