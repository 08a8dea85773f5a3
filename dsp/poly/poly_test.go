package poly

import (
	"errors"
	"math/cmplx"
	"testing"

	"github.com/ZOwl/signal-processing/internal/testutil"
)

func TestFromRoots(t *testing.T) {
	// (x-1)(x+2) = x^2 + x - 2
	got := FromRoots([]complex128{1, -2})
	testutil.RequireComplexSliceNearlyEqual(t, got, Polynomial{1, 1, -2}, 0)

	if p := FromRoots(nil); len(p) != 1 || p[0] != 1 {
		t.Errorf("FromRoots(nil) = %v, want [1]", p)
	}
}

func TestMonomial(t *testing.T) {
	// (x+2)^3 = x^3 + 6x^2 + 12x + 8
	testutil.RequireComplexSliceNearlyEqual(t, Monomial(-2, 3), Polynomial{1, 6, 12, 8}, 0)
}

func TestTrimDegreeIsZero(t *testing.T) {
	tests := []struct {
		name   string
		p      Polynomial
		degree int
		zero   bool
	}{
		{"nil", nil, -1, true},
		{"all zero", Polynomial{0, 0}, -1, true},
		{"leading zeros", Polynomial{0, 0, 1, 2}, 1, false},
		{"constant", Polynomial{3}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Degree(); got != tt.degree {
				t.Errorf("Degree() = %d, want %d", got, tt.degree)
			}
			if got := tt.p.IsZero(); got != tt.zero {
				t.Errorf("IsZero() = %v, want %v", got, tt.zero)
			}
		})
	}
}

func TestTrimRel(t *testing.T) {
	tests := []struct {
		name string
		p    Polynomial
		want Polynomial
	}{
		{"rounding residue", Polynomial{2.2e-16, 1, 2}, Polynomial{1, 2}},
		{"small but significant", Polynomial{1e-6, 1, 2}, Polynomial{1e-6, 1, 2}},
		{"inner small kept", Polynomial{1, 1e-20, 2}, Polynomial{1, 1e-20, 2}},
		{"exact zeros", Polynomial{0, 0, 3}, Polynomial{3}},
		{"all zero", Polynomial{0, 0}, Polynomial{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.RequireComplexSliceNearlyEqual(t, tt.p.TrimRel(1e-12), tt.want, 0)
		})
	}
}

func TestAt(t *testing.T) {
	p := Polynomial{1, 2, 3}
	if p.At(0) != 3 || p.At(2) != 1 || p.At(3) != 0 || p.At(-1) != 0 {
		t.Errorf("unexpected coefficients from At on %v", p)
	}
}

func TestAddSubAlignment(t *testing.T) {
	p := Polynomial{1, 0, 0}
	q := Polynomial{2, 3}
	testutil.RequireComplexSliceNearlyEqual(t, p.Add(q), Polynomial{1, 2, 3}, 0)
	testutil.RequireComplexSliceNearlyEqual(t, q.Sub(p), Polynomial{-1, 2, 3}, 0)
}

func TestMulDoesNotAlias(t *testing.T) {
	p := Polynomial{1, 1}
	q := p.Mul(Polynomial{1, -1})
	q[0] = 42
	if p[0] != 1 {
		t.Fatal("Mul aliased its receiver")
	}
}

func TestDivRem(t *testing.T) {
	tests := []struct {
		name     string
		num, den Polynomial
		quo, rem Polynomial
	}{
		{
			// x^3 - 2x^2 - 4 = (x - 3)(x^2 + x + 3) + 5
			name: "cubic by linear",
			num:  Polynomial{1, -2, 0, -4},
			den:  Polynomial{1, -3},
			quo:  Polynomial{1, 1, 3},
			rem:  Polynomial{5},
		},
		{
			name: "exact",
			num:  Polynomial{1, 3, 2},
			den:  Polynomial{1, 1},
			quo:  Polynomial{1, 2},
			rem:  Polynomial{},
		},
		{
			name: "lower degree numerator",
			num:  Polynomial{2, 1},
			den:  Polynomial{1, 0, 1},
			quo:  Polynomial{},
			rem:  Polynomial{2, 1},
		},
		{
			name: "non-monic divisor",
			num:  Polynomial{1, 2, 3},
			den:  Polynomial{4, 5, 6},
			quo:  Polynomial{0.25},
			rem:  Polynomial{0.75, 1.5},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quo, rem, err := tt.num.DivRem(tt.den)
			if err != nil {
				t.Fatal(err)
			}
			testutil.RequireComplexSliceNearlyEqual(t, quo, tt.quo, 1e-12)
			testutil.RequireComplexSliceNearlyEqual(t, rem, tt.rem, 1e-12)
		})
	}
}

func TestDivRemByZero(t *testing.T) {
	_, _, err := Polynomial{1, 2}.DivRem(Polynomial{0})
	if !errors.Is(err, ErrDivisionByZero) {
		t.Fatalf("expected ErrDivisionByZero, got %v", err)
	}
}

func TestReverseConj(t *testing.T) {
	p := Polynomial{complex(1, 1), 2, complex(0, -3)}
	testutil.RequireComplexSliceNearlyEqual(t, p.ReverseConj(), Polynomial{complex(0, 3), 2, complex(1, -1)}, 0)
}

func TestRootsWith(t *testing.T) {
	p := Polynomial{0, 1, -3, 2}
	for name, finder := range map[string]RootFinder{
		"default":       DefaultRootFinder,
		"durand-kerner": DurandKerner,
		"companion":     Companion,
	} {
		t.Run(name, func(t *testing.T) {
			roots, err := p.RootsWith(finder)
			if err != nil {
				t.Fatal(err)
			}
			if len(roots) != 2 {
				t.Fatalf("expected 2 roots, got %v", roots)
			}
			for _, r := range roots {
				if v := p.Eval(r); cmplx.Abs(v) > 1e-9 {
					t.Errorf("p(%v) = %v", r, v)
				}
			}
		})
	}
}

func TestRootsConstant(t *testing.T) {
	roots, err := Polynomial{5}.Roots()
	if err != nil || len(roots) != 0 {
		t.Errorf("constant polynomial: roots=%v err=%v", roots, err)
	}
}

func TestIsRealTruncateIm(t *testing.T) {
	p := Polynomial{1, complex(2, 1e-14)}
	if !p.IsReal(1e-10) {
		t.Error("expected nearly-real polynomial")
	}
	if (Polynomial{complex(1, 0.1)}).IsReal(1e-10) {
		t.Error("expected complex polynomial")
	}
	testutil.RequireComplexSliceNearlyEqual(t, p.TruncateIm(), Polynomial{1, 2}, 0)
}
