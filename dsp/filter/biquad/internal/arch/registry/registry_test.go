package registry

import (
	"testing"

	"github.com/cwbudde/algo-vecmath/cpu"
)

// newTestRegistry registers three tiers out of priority order on purpose.
func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	reg := &Registry{}
	reg.Register(Entry{Name: "sse2", SIMDLevel: cpu.SIMDSSE2, Priority: 10})
	reg.Register(Entry{Name: "generic", SIMDLevel: cpu.SIMDNone, Priority: 0})
	reg.Register(Entry{Name: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20})
	return reg
}

func TestLookup_PicksBestSupported(t *testing.T) {
	reg := newTestRegistry(t)

	tests := []struct {
		name     string
		features cpu.Features
		want     string
	}{
		{"all levels", cpu.Features{HasSSE2: true, HasAVX2: true}, "avx2"},
		{"sse2 only", cpu.Features{HasSSE2: true}, "sse2"},
		{"no simd", cpu.Features{}, "generic"},
		{"forced generic", cpu.Features{HasSSE2: true, HasAVX2: true, ForceGeneric: true}, "generic"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entry := reg.Lookup(tc.features)
			if entry == nil {
				t.Fatal("Lookup returned nil")
			}
			if entry.Name != tc.want {
				t.Fatalf("got %q, want %q", entry.Name, tc.want)
			}
		})
	}
}

func TestLookup_NoFallbackRegistered(t *testing.T) {
	reg := &Registry{}
	reg.Register(Entry{Name: "avx2", SIMDLevel: cpu.SIMDAVX2, Priority: 20})

	if entry := reg.Lookup(cpu.Features{}); entry != nil {
		t.Fatalf("expected nil without a generic fallback, got %q", entry.Name)
	}
}

func TestRegister_EqualPriorityKeepsOrder(t *testing.T) {
	reg := &Registry{}
	reg.Register(Entry{Name: "first", SIMDLevel: cpu.SIMDNone, Priority: 5})
	reg.Register(Entry{Name: "second", SIMDLevel: cpu.SIMDNone, Priority: 5})

	entry := reg.Lookup(cpu.Features{})
	if entry == nil || entry.Name != "first" {
		t.Fatalf("ties should keep registration order, got %#v", entry)
	}
}

func TestListEntries_SortedByPriority(t *testing.T) {
	reg := newTestRegistry(t)

	got := reg.ListEntries()
	want := []string{"avx2", "sse2", "generic"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i, name := range want {
		if got[i].Name != name {
			t.Errorf("entry %d: got %q, want %q", i, got[i].Name, name)
		}
	}
}

func TestReset_EmptiesRegistry(t *testing.T) {
	reg := newTestRegistry(t)
	reg.Reset()

	if entries := reg.ListEntries(); len(entries) != 0 {
		t.Fatalf("registry not empty after reset: %v", entries)
	}
	if entry := reg.Lookup(cpu.Features{}); entry != nil {
		t.Fatalf("Lookup after reset returned %q", entry.Name)
	}
}
