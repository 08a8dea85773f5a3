package testutil

import (
	"fmt"
	"math"
	"math/cmplx"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireComplexSliceNearlyEqual is the complex counterpart of
// RequireSliceNearlyEqual. The distance is |got[i]-want[i]|.
func RequireComplexSliceNearlyEqual(t *testing.T, got, want []complex128, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := cmplx.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireRelativeNearlyEqual fails t unless |got-want| <= eps*max(1, |want|).
func RequireRelativeNearlyEqual(t *testing.T, got, want complex128, eps float64) {
	t.Helper()
	diff := cmplx.Abs(got - want)
	if diff > eps*math.Max(1, cmplx.Abs(want)) {
		t.Fatalf("got %v, want %v (diff %v, rel eps %v)", got, want, diff, eps)
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []complex128) {
	t.Helper()
	for i, v := range data {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
// Returns an error if the slices differ in length.
func MaxAbsDiff(a, b []complex128) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		d := cmplx.Abs(a[i] - b[i])
		if d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}
