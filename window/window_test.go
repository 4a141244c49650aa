package window

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-gridfft/internal/testutil"
)

func TestGenerateKnownValues(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		size int
		opts []Option
		want []float64
	}{
		{
			name: "hann symmetric",
			typ:  TypeHann,
			size: 5,
			want: []float64{0, 0.5, 1, 0.5, 0},
		},
		{
			name: "hann periodic",
			typ:  TypeHann,
			size: 4,
			opts: []Option{WithPeriodic()},
			want: []float64{0, 0.5, 1, 0.5},
		},
		{
			name: "hamming symmetric",
			typ:  TypeHamming,
			size: 3,
			want: []float64{0.08, 1, 0.08},
		},
		{
			name: "rectangular",
			typ:  TypeRectangular,
			size: 4,
			want: []float64{1, 1, 1, 1},
		},
		{
			name: "triangle symmetric",
			typ:  TypeTriangle,
			size: 5,
			want: []float64{0, 0.5, 1, 0.5, 0},
		},
		{
			name: "welch symmetric",
			typ:  TypeWelch,
			size: 5,
			want: []float64{0, 0.75, 1, 0.75, 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Generate(tt.typ, tt.size, tt.opts...)
			testutil.RequireSliceNearlyEqual(t, got, tt.want, 1e-12)
		})
	}
}

func TestGenerateSymmetry(t *testing.T) {
	types := []Type{
		TypeRectangular,
		TypeHann,
		TypeHamming,
		TypeBlackman,
		TypeBlackmanHarris,
		TypeFlatTop,
		TypeKaiser,
		TypeTukey,
		TypeTriangle,
		TypeWelch,
	}

	const size = 9
	for _, typ := range types {
		w := Generate(typ, size, WithAlpha(2.5))
		if len(w) != size {
			t.Fatalf("%v: length: got %d, want %d", typ, len(w), size)
		}
		for i := 0; i < size/2; i++ {
			if math.Abs(w[i]-w[size-1-i]) > 1e-12 {
				t.Errorf("%v: asymmetric at %d: %v vs %v", typ, i, w[i], w[size-1-i])
			}
		}
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	if got := Generate(TypeHann, 0); got != nil {
		t.Errorf("size 0: got %v, want nil", got)
	}
	if got := Generate(TypeHann, -3); got != nil {
		t.Errorf("negative size: got %v, want nil", got)
	}
	got := Generate(TypeHann, 1)
	testutil.RequireSliceNearlyEqual(t, got, []float64{0}, 0)
}

func TestKaiserBetaZeroIsRectangular(t *testing.T) {
	w, err := Kaiser(6, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, w, []float64{1, 1, 1, 1, 1, 1}, 0)
}

func TestTukeyLimits(t *testing.T) {
	rect, err := Tukey(7, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, rect, Generate(TypeRectangular, 7), 0)

	hannLike, err := Tukey(7, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, hannLike, Generate(TypeHann, 7), 1e-12)
}

func TestNamedWrapperErrors(t *testing.T) {
	if _, err := Hann(0); err == nil {
		t.Error("Hann(0): expected error, got nil")
	}
	if _, err := Kaiser(0, 2); err == nil {
		t.Error("Kaiser(0, 2): expected error, got nil")
	}
	if _, err := Kaiser(8, -1); err == nil {
		t.Error("Kaiser(8, -1): expected error, got nil")
	}
	if _, err := Tukey(8, 1.5); err == nil {
		t.Error("Tukey(8, 1.5): expected error, got nil")
	}
}

func TestEquivalentNoiseBandwidth(t *testing.T) {
	enbw, err := EquivalentNoiseBandwidth(Generate(TypeRectangular, 64))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(enbw-1) > 1e-12 {
		t.Errorf("rectangular ENBW: got %v, want 1", enbw)
	}

	// Periodic Hann ENBW is exactly 1.5 for any full-period length.
	enbw, err = EquivalentNoiseBandwidth(Generate(TypeHann, 64, WithPeriodic()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(enbw-1.5) > 1e-12 {
		t.Errorf("periodic hann ENBW: got %v, want 1.5", enbw)
	}

	if _, err := EquivalentNoiseBandwidth(nil); !errors.Is(err, errEmptyCoeffs) {
		t.Errorf("expected errEmptyCoeffs, got %v", err)
	}
}

func TestCoherentGain(t *testing.T) {
	cg, err := CoherentGain(Generate(TypeRectangular, 32))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(cg-1) > 1e-12 {
		t.Errorf("rectangular coherent gain: got %v, want 1", cg)
	}

	cg, err = CoherentGain(Generate(TypeHann, 32, WithPeriodic()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(cg-0.5) > 1e-12 {
		t.Errorf("periodic hann coherent gain: got %v, want 0.5", cg)
	}
}

func TestApplyCoefficients(t *testing.T) {
	samples := []float64{1, 2, 3}
	coeffs := []float64{2, 0.5, 1}

	out, err := ApplyCoefficients(samples, coeffs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out, []float64{2, 1, 3}, 1e-15)
	testutil.RequireSliceNearlyEqual(t, samples, []float64{1, 2, 3}, 0)

	if _, err := ApplyCoefficients(samples, coeffs[:2]); !errors.Is(err, errMismatchedLength) {
		t.Errorf("expected errMismatchedLength, got %v", err)
	}

	if err := ApplyCoefficientsInPlace(samples, coeffs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, samples, []float64{2, 1, 3}, 1e-15)
}

func TestApplyInPlace(t *testing.T) {
	buf := []float64{1, 1, 1, 1, 1}
	Apply(TypeHann, buf)
	testutil.RequireSliceNearlyEqual(t, buf, []float64{0, 0.5, 1, 0.5, 0}, 1e-12)

	// Empty buffers are a no-op.
	Apply(TypeHann, nil)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"hann", TypeHann},
		{"Hanning", TypeHann},
		{" BOXCAR ", TypeRectangular},
		{"blackmanharris", TypeBlackmanHarris},
		{"bartlett", TypeTriangle},
		{"flattop", TypeFlatTop},
	}

	for _, tt := range tests {
		got, err := Parse(tt.in)
		if err != nil {
			t.Fatalf("Parse(%q): unexpected error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("Parse(%q): got %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := Parse("wavelet"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("expected ErrUnknownType, got %v", err)
	}
}

func TestTypeString(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeKaiser, TypeWelch} {
		parsed, err := Parse(typ.String())
		if err != nil {
			t.Fatalf("Parse(%v.String()): unexpected error: %v", typ, err)
		}
		if parsed != typ {
			t.Errorf("round trip: got %v, want %v", parsed, typ)
		}
	}

	if got := Type(99).String(); got != "Type(99)" {
		t.Errorf("unknown type string: got %q", got)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) == 0 {
		t.Fatal("Names returned nothing")
	}
	for i := 1; i < len(names); i++ {
		if names[i] <= names[i-1] {
			t.Fatalf("names not sorted at %d: %v", i, names)
		}
	}
}

func TestAnalyze(t *testing.T) {
	rect := Analyze(Generate(TypeRectangular, 128))
	if math.Abs(rect.CoherentGain-1) > 1e-12 {
		t.Errorf("rect coherent gain: got %v, want 1", rect.CoherentGain)
	}
	if math.Abs(rect.ENBW-1) > 1e-12 {
		t.Errorf("rect ENBW: got %v, want 1", rect.ENBW)
	}
	if math.Abs(rect.ScallopLossdB-(-3.92)) > 0.05 {
		t.Errorf("rect scallop loss: got %v, want about -3.92", rect.ScallopLossdB)
	}
	if math.Abs(rect.HighestSidelobedB-(-13.26)) > 1 {
		t.Errorf("rect sidelobe: got %v, want about -13.26", rect.HighestSidelobedB)
	}

	hann := Analyze(Generate(TypeHann, 128, WithPeriodic()))
	if math.Abs(hann.ENBW-1.5) > 1e-12 {
		t.Errorf("hann ENBW: got %v, want 1.5", hann.ENBW)
	}
	if math.Abs(hann.HighestSidelobedB-(-31.5)) > 1 {
		t.Errorf("hann sidelobe: got %v, want about -31.5", hann.HighestSidelobedB)
	}

	if got := Analyze(nil); got != (Properties{}) {
		t.Errorf("Analyze(nil): got %+v, want zero", got)
	}
}
