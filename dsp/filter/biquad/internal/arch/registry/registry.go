package registry

import (
	"cmp"
	"slices"
	"sync"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// Coefficients are biquad transfer coefficients (a0 normalized to 1).
type Coefficients struct {
	B0, B1, B2 float64
	A1, A2     float64
}

// ProcessBlockFn filters buf in-place through one Direct Form II biquad
// section with delay state (v1, v2) and returns the updated state.
type ProcessBlockFn func(c Coefficients, v1, v2 float64, buf []float64) (newV1, newV2 float64)

// Entry is one registered biquad kernel implementation.
type Entry struct {
	Name         string
	SIMDLevel    cpu.SIMDLevel
	Priority     int
	ProcessBlock ProcessBlockFn
}

// Registry holds kernel implementations ordered by descending priority.
// Arch packages register from their init functions; lookups afterwards
// are read-only.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
}

// Global is the default biquad kernel registry.
var Global = &Registry{}

// Register adds an implementation. Entries with equal priority keep
// their registration order.
func (r *Registry) Register(entry Entry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	slices.SortStableFunc(r.entries, func(a, b Entry) int {
		return cmp.Compare(b.Priority, a.Priority)
	})
}

// Lookup returns a copy of the highest-priority implementation supported
// by features, or nil when nothing fits.
func (r *Registry) Lookup(features cpu.Features) *Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.entries {
		if cpu.Supports(features, r.entries[i].SIMDLevel) {
			entry := r.entries[i]
			return &entry
		}
	}

	return nil
}

// ListEntries returns the registered entries, highest priority first.
func (r *Registry) ListEntries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.entries)
}

// Reset clears all entries. Intended for tests.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = nil
}
