package iir

import (
	"errors"
	"math"
	"math/cmplx"
	"strings"
	"testing"

	"github.com/cwbudde/algo-filter/dsp/filter/biquad"
	"github.com/cwbudde/algo-filter/dsp/filter/design"
	"github.com/cwbudde/algo-filter/dsp/filter/response"
	"github.com/cwbudde/algo-filter/internal/testutil"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func newDirect(t *testing.T, b, a []float64) *Filter {
	t.Helper()

	f, err := NewDirect(b, a)
	if err != nil {
		t.Fatalf("NewDirect(%v, %v) failed: %v", b, a, err)
	}

	return f
}

func newSOS(t *testing.T, b, a []float64) *Filter {
	t.Helper()

	f, err := NewSOS(b, a)
	if err != nil {
		t.Fatalf("NewSOS failed: %v", err)
	}

	return f
}

func TestNewDirect_Validation(t *testing.T) {
	if _, err := NewDirect(nil, []float64{1}); !errors.Is(err, ErrNoCoefficients) {
		t.Errorf("empty b: err = %v, want ErrNoCoefficients", err)
	}

	if _, err := NewDirect([]float64{1}, nil); !errors.Is(err, ErrNoCoefficients) {
		t.Errorf("empty a: err = %v, want ErrNoCoefficients", err)
	}

	if _, err := NewDirect([]float64{1}, []float64{0, 1}); !errors.Is(err, ErrZeroLeadingCoefficient) {
		t.Errorf("a0 == 0: err = %v, want ErrZeroLeadingCoefficient", err)
	}
}

func TestNewDirect_Normalizes(t *testing.T) {
	bin := []float64{2, 4}
	ain := []float64{2, 1}
	f := newDirect(t, bin, ain)

	b, a := f.Coefficients()
	testutil.RequireSliceNearlyEqual(t, b, []float64{1, 2}, eps)
	testutil.RequireSliceNearlyEqual(t, a, []float64{1, 0.5}, eps)

	// The inputs must have been copied.
	bin[0] = 999
	ain[0] = 999

	b, a = f.Coefficients()
	if b[0] != 1 || a[0] != 1 {
		t.Errorf("filter aliased its input slices: b=%v a=%v", b, a)
	}
}

func TestNewSOS_Validation(t *testing.T) {
	if _, err := NewSOS(nil, nil); !errors.Is(err, ErrNoCoefficients) {
		t.Errorf("empty: err = %v, want ErrNoCoefficients", err)
	}

	if _, err := NewSOS([]float64{1, 0, 0}, []float64{1, 0, 0, 1, 0, 0}); !errors.Is(err, ErrSectionLayout) {
		t.Errorf("length mismatch: err = %v, want ErrSectionLayout", err)
	}

	if _, err := NewSOS([]float64{1, 0, 0, 1}, []float64{1, 0, 0, 1}); !errors.Is(err, ErrSectionLayout) {
		t.Errorf("not triples: err = %v, want ErrSectionLayout", err)
	}

	_, err := NewSOS([]float64{1, 0, 0}, []float64{0, 1, 0})
	if !errors.Is(err, biquad.ErrZeroLeadingCoefficient) {
		t.Errorf("section a0 == 0: err = %v, want biquad.ErrZeroLeadingCoefficient", err)
	}
}

func TestForm(t *testing.T) {
	d := newDirect(t, []float64{1}, []float64{1})
	if d.Form() != FormDirect || d.Form().String() != "direct" {
		t.Errorf("direct: Form() = %v (%q)", d.Form(), d.Form().String())
	}

	s := newSOS(t, []float64{1, 0, 0}, []float64{1, 0, 0})
	if s.Form() != FormSOS || s.Form().String() != "sos" {
		t.Errorf("sos: Form() = %v (%q)", s.Form(), s.Form().String())
	}

	if got := Form(99).String(); got != "Form(99)" {
		t.Errorf("unknown form: String() = %q", got)
	}
}

func TestLen_SOS(t *testing.T) {
	for nsos := 1; nsos <= 4; nsos++ {
		b := make([]float64, 0, 3*nsos)
		a := make([]float64, 0, 3*nsos)
		for range nsos {
			b = append(b, 1, 0, 0)
			a = append(a, 1, 0, 0)
		}

		f := newSOS(t, b, a)
		if f.Len() != 2*nsos {
			t.Errorf("nsos=%d: Len = %d, want %d", nsos, f.Len(), 2*nsos)
		}

		if f.Order() != 2*nsos-1 {
			t.Errorf("nsos=%d: Order = %d, want %d", nsos, f.Order(), 2*nsos-1)
		}
	}
}

func TestLen_Direct(t *testing.T) {
	f := newDirect(t, []float64{1, 0, 0.5}, []float64{1, -0.2})
	if f.Len() != 3 || f.Order() != 2 {
		t.Errorf("Len = %d, Order = %d, want 3, 2", f.Len(), f.Order())
	}

	f = newDirect(t, []float64{1}, []float64{1, 0, 0, 0, 0.1})
	if f.Len() != 5 {
		t.Errorf("Len = %d, want 5", f.Len())
	}
}

func TestProcessSample_FIRSpecialCase(t *testing.T) {
	// With a trivial denominator the direct form degenerates to an FIR
	// filter: the impulse response equals the numerator.
	b := []float64{0.25, 0.5, 0.25}
	f := newDirect(t, b, []float64{1})

	in := testutil.Impulse(8, 0)
	for i, x := range in {
		want := 0.0
		if i < len(b) {
			want = b[i]
		}

		if y := f.ProcessSample(x); !almostEqual(y, want, eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, want)
		}
	}
}

func TestProcessSample_MovingAverage(t *testing.T) {
	f := newDirect(t, []float64{0.5, 0.5}, []float64{1})

	in := []float64{1, 1, 0, 0}
	want := []float64{0.5, 1.0, 0.5, 0.0}

	for i, x := range in {
		if y := f.ProcessSample(x); !almostEqual(y, want[i], eps) {
			t.Errorf("sample %d: got %v, want %v", i, y, want[i])
		}
	}
}

func TestProcessSample_IdentityPassthrough(t *testing.T) {
	in := testutil.DeterministicNoise(1, 1, 64)

	d := newDirect(t, []float64{1}, []float64{1})
	s := newSOS(t, []float64{1, 0, 0}, []float64{1, 0, 0})

	for i, x := range in {
		if y := d.ProcessSample(x); y != x {
			t.Fatalf("direct sample %d: got %v, want %v", i, y, x)
		}

		if y := s.ProcessSample(x); y != x {
			t.Fatalf("sos sample %d: got %v, want %v", i, y, x)
		}
	}
}

func TestReset_NoResidualState(t *testing.T) {
	filters := []*Filter{
		newDirect(t, []float64{0.2, 0.3, 0.1}, []float64{1, -0.5, 0.25}),
		newSOS(t, []float64{0.2, 0.3, 0.1, 1, 0.5, 0}, []float64{1, -0.5, 0.25, 1, 0.1, 0.2}),
	}

	in := testutil.DeterministicNoise(7, 1, 100)

	for _, f := range filters {
		for _, x := range in {
			f.ProcessSample(x)
		}

		f.Reset()

		for i := range 20 {
			if y := f.ProcessSample(0); y != 0 {
				t.Errorf("%v form: sample %d after Reset: got %v, want 0", f.Form(), i, y)
			}
		}
	}
}

// shiftDirect is a reference direct form that moves its whole state
// window one slot per sample instead of rotating a ring.
type shiftDirect struct {
	b, a, v []float64
}

func newShiftDirect(b, a []float64) *shiftDirect {
	bn := make([]float64, len(b))
	for i, v := range b {
		bn[i] = v / a[0]
	}

	an := make([]float64, len(a))
	for i, v := range a {
		an[i] = v / a[0]
	}

	return &shiftDirect{b: bn, a: an, v: make([]float64, max(len(b), len(a)))}
}

func (d *shiftDirect) processSample(x float64) float64 {
	copy(d.v[1:], d.v[:len(d.v)-1])

	v0 := x
	for i := 1; i < len(d.a); i++ {
		v0 -= d.a[i] * d.v[i]
	}

	d.v[0] = v0

	var y float64
	for i, bc := range d.b {
		y += bc * d.v[i]
	}

	return y
}

func TestDirect_MatchesShiftReference(t *testing.T) {
	cases := []struct {
		name string
		b, a []float64
	}{
		{"third order", []float64{0.3, -0.2, 0.4, 0.1}, []float64{2, 0.6, -0.2, 0.4}},
		{"short numerator", []float64{1, 0.5}, []float64{1, -0.4, 0.1, 0.05}},
		{"short denominator", []float64{0.2, 0.1, 0.3, -0.1, 0.05}, []float64{1, -0.5}},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			f := newDirect(t, tt.b, tt.a)
			ref := newShiftDirect(tt.b, tt.a)

			for i, x := range testutil.DeterministicNoise(5, 1, 300) {
				want := ref.processSample(x)
				if got := f.ProcessSample(x); got != want {
					t.Fatalf("sample %d: ring %v vs shift %v", i, got, want)
				}
			}
		})
	}
}

func TestDirectMatchesSOS_SingleBiquad(t *testing.T) {
	b := []float64{0.2, 0.3, 0.1}
	a := []float64{1, -0.5, 0.25}

	d := newDirect(t, b, a)
	s := newSOS(t, b, a)

	for i, x := range testutil.DeterministicNoise(42, 1, 256) {
		yd := d.ProcessSample(x)

		ys := s.ProcessSample(x)
		if !almostEqual(yd, ys, eps) {
			t.Fatalf("sample %d: direct %v vs sos %v", i, yd, ys)
		}
	}
}

func TestDirectMatchesSOS_DesignedFilter(t *testing.T) {
	b, a, err := design.Design(design.Butterworth, design.Lowpass, design.FormatTF, 4, 0.1, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	B, A, err := design.Design(design.Butterworth, design.Lowpass, design.FormatSOS, 4, 0.1, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	d := newDirect(t, b, a)
	s := newSOS(t, B, A)

	// The factorizations round differently, so allow a little slack.
	for i, x := range testutil.DeterministicNoise(42, 1, 512) {
		yd := d.ProcessSample(x)

		ys := s.ProcessSample(x)
		if !almostEqual(yd, ys, 1e-9) {
			t.Fatalf("sample %d: direct %v vs sos %v", i, yd, ys)
		}
	}
}

func TestProcessBlock_MatchesSample(t *testing.T) {
	build := []func(t *testing.T) *Filter{
		func(t *testing.T) *Filter {
			t.Helper()
			return newDirect(t, []float64{0.2, 0.3, 0.1, 0.05}, []float64{1, -0.4, 0.1})
		},
		func(t *testing.T) *Filter {
			t.Helper()
			return newSOS(t, []float64{0.2, 0.3, 0.1, 1, 0.5, 0.2}, []float64{1, -0.4, 0.1, 1, 0.3, 0.1})
		},
	}

	in := testutil.DeterministicNoise(3, 1, 97)

	for _, mk := range build {
		ref := mk(t)
		blk := mk(t)

		want := make([]float64, len(in))
		for i, x := range in {
			want[i] = ref.ProcessSample(x)
		}

		got := make([]float64, len(in))
		copy(got, in)
		blk.ProcessBlock(got)

		testutil.RequireSliceNearlyEqual(t, got, want, eps)
	}
}

func TestProcessBlockTo(t *testing.T) {
	f := newSOS(t, []float64{0.2, 0.3, 0.1}, []float64{1, -0.5, 0.25})
	ref := newSOS(t, []float64{0.2, 0.3, 0.1}, []float64{1, -0.5, 0.25})

	src := testutil.DeterministicNoise(11, 1, 64)
	orig := make([]float64, len(src))
	copy(orig, src)

	want := make([]float64, len(src))
	for i, x := range src {
		want[i] = ref.ProcessSample(x)
	}

	dst := make([]float64, len(src))
	f.ProcessBlockTo(dst, src)

	testutil.RequireSliceNearlyEqual(t, dst, want, eps)
	testutil.RequireSliceNearlyEqual(t, src, orig, 0)

	// Empty input is a no-op.
	f.ProcessBlockTo(nil, nil)
}

func TestResponse_DirectMatchesSOS(t *testing.T) {
	b := []float64{0.2, 0.3, 0.1}
	a := []float64{1, -0.5, 0.25}

	d := newDirect(t, b, a)
	s := newSOS(t, b, a)

	for _, fc := range []float64{0, 0.05, 0.1, 0.25, 0.4, 0.49} {
		hd := d.Response(fc)

		hs := s.Response(fc)
		if cmplx.Abs(hd-hs) > eps {
			t.Errorf("fc=%v: direct %v vs sos %v", fc, hd, hs)
		}
	}
}

func TestMagnitudeDB(t *testing.T) {
	f := newDirect(t, []float64{0.5}, []float64{1})
	if got := f.MagnitudeDB(0.1); !almostEqual(got, 20*math.Log10(0.5), 1e-9) {
		t.Errorf("MagnitudeDB = %v, want %v", got, 20*math.Log10(0.5))
	}

	// An exact null hits the dB floor.
	blocker := newDirect(t, []float64{1, -1}, []float64{1, -0.9})
	if got := blocker.MagnitudeDB(0); got != response.MagnitudeFloorDB {
		t.Errorf("null MagnitudeDB = %v, want %v", got, response.MagnitudeFloorDB)
	}
}

func TestGroupDelay_PureDelay(t *testing.T) {
	f := newDirect(t, []float64{0, 0, 0, 1}, []float64{1})

	for _, fc := range []float64{0, 0.1, 0.3, 0.45} {
		if gd := f.GroupDelay(fc); !almostEqual(gd, 3, 1e-9) {
			t.Errorf("fc=%v: group delay = %v, want 3", fc, gd)
		}
	}
}

func TestGroupDelay_DirectMatchesSOS(t *testing.T) {
	b := []float64{0.2, 0.3, 0.1}
	a := []float64{1, -0.5, 0.25}

	d := newDirect(t, b, a)
	s := newSOS(t, b, a)

	for _, fc := range []float64{0.02, 0.1, 0.2, 0.35} {
		gd := d.GroupDelay(fc)

		gs := s.GroupDelay(fc)
		if !almostEqual(gd, gs, 1e-9) {
			t.Errorf("fc=%v: direct %v vs sos %v", fc, gd, gs)
		}
	}

	// A designed multi-section cascade has to agree with its expanded
	// transfer function as well.
	bt, at, err := design.Design(design.Butterworth, design.Lowpass, design.FormatTF, 4, 0.1, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	Bs, As, err := design.Design(design.Butterworth, design.Lowpass, design.FormatSOS, 4, 0.1, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	dd := newDirect(t, bt, at)
	ss := newSOS(t, Bs, As)

	for _, fc := range []float64{0.01, 0.05, 0.08} {
		gd := dd.GroupDelay(fc)

		gs := ss.GroupDelay(fc)
		if !almostEqual(gd, gs, 1e-6) {
			t.Errorf("designed, fc=%v: direct %v vs sos %v", fc, gd, gs)
		}
	}
}

func TestResponseGrid_MatchesResponse(t *testing.T) {
	b, a, err := design.Design(design.Butterworth, design.Lowpass, design.FormatTF, 4, 0.1, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	B, A, err := design.Design(design.Butterworth, design.Lowpass, design.FormatSOS, 4, 0.1, 0, 0, 0)
	if err != nil {
		t.Fatal(err)
	}

	const n = 64

	for _, f := range []*Filter{newDirect(t, b, a), newSOS(t, B, A)} {
		grid, err := f.ResponseGrid(n)
		if err != nil {
			t.Fatalf("%v form: %v", f.Form(), err)
		}

		if len(grid) != n {
			t.Fatalf("%v form: grid length %d, want %d", f.Form(), len(grid), n)
		}

		for _, k := range []int{0, 3, 16, 32, 63} {
			want := f.Response(float64(k) / n)
			if cmplx.Abs(grid[k]-want) > 1e-9 {
				t.Errorf("%v form, bin %d: grid %v vs response %v", f.Form(), k, grid[k], want)
			}
		}
	}
}

func TestResponseGrid_Errors(t *testing.T) {
	f := newDirect(t, []float64{1, 0, 0, 0, 0.5}, []float64{1})

	for _, n := range []int{0, -8, 48, 4} {
		if _, err := f.ResponseGrid(n); !errors.Is(err, response.ErrGridSize) {
			t.Errorf("n=%d: err = %v, want ErrGridSize", n, err)
		}
	}

	s := newSOS(t, []float64{1, 0, 0}, []float64{1, 0, 0})
	if _, err := s.ResponseGrid(2); !errors.Is(err, response.ErrGridSize) {
		t.Errorf("sos n=2: err = %v, want ErrGridSize", err)
	}
}

func TestAccessors(t *testing.T) {
	d := newDirect(t, []float64{0.5, 0.25}, []float64{1, -0.5})

	b, a := d.Coefficients()
	testutil.RequireSliceNearlyEqual(t, b, []float64{0.5, 0.25}, eps)
	testutil.RequireSliceNearlyEqual(t, a, []float64{1, -0.5}, eps)

	if d.Sections() != nil {
		t.Error("direct form: Sections() not nil")
	}

	// Returned slices are copies.
	b[0] = 999

	b2, _ := d.Coefficients()
	if b2[0] != 0.5 {
		t.Error("Coefficients() aliased internal state")
	}

	s := newSOS(t, []float64{2, 0, 0, 1, 0.5, 0}, []float64{2, 0, 0, 1, 0, 0.25})

	if b, a := s.Coefficients(); b != nil || a != nil {
		t.Error("sos form: Coefficients() not nil")
	}

	secs := s.Sections()
	if len(secs) != 2 {
		t.Fatalf("Sections() length %d, want 2", len(secs))
	}

	// First section was normalized by its own a0 = 2.
	if !almostEqual(secs[0].B0, 1, eps) || !almostEqual(secs[1].B1, 0.5, eps) {
		t.Errorf("unexpected section coefficients: %v", secs)
	}
}

func TestString(t *testing.T) {
	d := newDirect(t, []float64{1, -1}, []float64{1, -0.9})
	if got := d.String(); !strings.Contains(got, "direct form") {
		t.Errorf("direct String: %q", got)
	}

	s := newSOS(t, []float64{1, 0, 0, 1, 0, 0}, []float64{1, 0, 0, 1, 0, 0})

	got := s.String()
	if !strings.Contains(got, "sos form") || !strings.Contains(got, "[1]") {
		t.Errorf("sos String: %q", got)
	}
}
