package topo

import "strconv"

// Category selects which counter an identifier is drawn from.
type Category string

const (
	CategoryBody     Category = "B"
	CategoryVertex   Category = "V"
	CategoryEdge     Category = "E"
	CategoryHalfEdge Category = "HE"
	CategoryLoop     Category = "L"
	CategoryFace     Category = "F"
)

// AllCategories lists every category in a stable order.
var AllCategories = []Category{
	CategoryBody, CategoryVertex, CategoryEdge, CategoryHalfEdge, CategoryLoop, CategoryFace,
}

// IDAllocator mints human-readable entity names such as "V3" or "HE12".
// Counters are per category, start at 1, and are never reused until Reset.
//
// An allocator is handed to MVFS and kept by the resulting Body. Share one
// allocator between bodies to get globally unique names, or give each test its
// own for deterministic output. It is not safe for concurrent use.
type IDAllocator struct {
	counters map[Category]uint64
}

// NewIDAllocator returns an allocator with all counters at zero.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{counters: make(map[Category]uint64)}
}

// Allocate returns the next name in category c.
func (a *IDAllocator) Allocate(c Category) string {
	if a.counters == nil {
		a.counters = make(map[Category]uint64)
	}
	a.counters[c]++
	return string(c) + strconv.FormatUint(a.counters[c], 10)
}

// Reset re-initializes the named counters, or all of them when called with
// no arguments.
func (a *IDAllocator) Reset(cats ...Category) {
	if len(cats) == 0 {
		clear(a.counters)
		return
	}
	for _, c := range cats {
		delete(a.counters, c)
	}
}
