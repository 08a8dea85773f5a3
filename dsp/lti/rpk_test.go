package lti

import (
	"testing"

	"github.com/ZOwl/signal-processing/dsp/poly"
	"github.com/ZOwl/signal-processing/internal/testutil"
)

func TestRpkPowersAndBlocks(t *testing.T) {
	r := Rpk{Terms: []Term{
		{Residue: 1, Pole: -1},
		{Residue: 2, Pole: -2},
		{Residue: 3, Pole: -2},
		{Residue: 4, Pole: -2},
		{Residue: 5, Pole: -1},
	}}

	powers := r.Powers()
	want := []int{1, 1, 2, 3, 1}
	for i := range want {
		if powers[i] != want[i] {
			t.Fatalf("Powers() = %v, want %v", powers, want)
		}
	}

	blocks := r.Blocks()
	if len(blocks) != 3 {
		t.Fatalf("expected 3 blocks, got %d", len(blocks))
	}
	testutil.RequireComplexSliceNearlyEqual(t, blocks[1].Residues, []complex128{2, 3, 4}, 0)
	if blocks[2].Pole != -1 {
		t.Errorf("block 2 pole = %v", blocks[2].Pole)
	}
}

func TestRpkEval(t *testing.T) {
	// 1/(s+2) - 4/(s+2)^2 + 5/(s+2)^3 + s = (s^2+1)/(s+2)^3 + s
	r := Rpk{
		Terms: []Term{{1, -2}, {-4, -2}, {5, -2}},
		K:     poly.Polynomial{1, 0},
	}
	s := complex(0.5, 1.5)
	want := (s*s+1)/((s+2)*(s+2)*(s+2)) + s
	testutil.RequireRelativeNearlyEqual(t, r.Eval(s), want, 1e-12)
}

func TestRpkEvalZ(t *testing.T) {
	// 2/(1 - 0.5 z^-1) + 3 z^-1
	r := Rpk{Terms: []Term{{2, 0.5}}, K: poly.Polynomial{0, 3}}
	z := complex(0.3, 0.8)
	want := 2/(1-0.5/z) + 3/z
	testutil.RequireRelativeNearlyEqual(t, r.EvalZ(z), want, 1e-12)
}

func TestRpkCloneIndependent(t *testing.T) {
	r := Rpk{Terms: []Term{{1, -1}}, K: poly.Polynomial{2}}
	c := r.Clone()
	c.Terms[0].Residue = 9
	c.K[0] = 9
	if r.Terms[0].Residue != 1 || r.K[0] != 2 {
		t.Fatal("Clone shares storage")
	}
}
