package residue

import (
	"fmt"
	"math/cmplx"
	"sort"

	"github.com/ZOwl/signal-processing/dsp/lti"
	"github.com/ZOwl/signal-processing/dsp/poly"
)

// cluster accumulates denominator roots that lie within the tolerance of
// its first member.
type cluster struct {
	first complex128
	sum   complex128
	n     int
}

func (c cluster) pole() complex128 {
	return c.sum / complex(float64(c.n), 0)
}

// Residue expands tf into partial fractions.
//
// A zero denominator yields a single term at the origin with residue 1 (or
// 0 when the numerator is zero too). A zero numerator yields zero residues
// at the roots of the denominator. Otherwise the result reproduces tf: K is
// the quotient of an improper system and the terms are ordered by blocks of
// ascending |pole|.
func Residue(tf lti.Tf, opts ...Option) (lti.Rpk, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return lti.Rpk{}, err
	}

	n := tf.Normalize()

	if len(n.A) == 0 {
		var r complex128
		if len(n.B) > 0 {
			r = 1
		}
		return lti.Rpk{Terms: []lti.Term{{Residue: r, Pole: 0}}}, nil
	}

	if len(n.B) == 0 {
		poles, err := n.A.RootsWith(cfg.RootFinder)
		if err != nil {
			return lti.Rpk{}, fmt.Errorf("residue: denominator roots: %w", err)
		}

		sort.SliceStable(poles, func(i, j int) bool {
			return normSqr(poles[i]) < normSqr(poles[j])
		})

		terms := make([]lti.Term, len(poles))
		for i, p := range poles {
			terms[i] = lti.Term{Pole: p}
		}
		return lti.Rpk{Terms: terms}, nil
	}

	var k poly.Polynomial
	rem := n.B
	if len(n.B) >= len(n.A) {
		k, rem, err = n.B.DivRem(n.A)
		if err != nil {
			return lti.Rpk{}, fmt.Errorf("residue: %w", err)
		}
	}

	roots, err := n.A.RootsWith(cfg.RootFinder)
	if err != nil {
		return lti.Rpk{}, fmt.Errorf("residue: denominator roots: %w", err)
	}

	clusters := clusterRoots(roots, cfg.Tolerance)
	cfg.Logger.V(1).Info("clustered poles",
		"roots", len(roots), "clusters", len(clusters), "tolerance", cfg.Tolerance)

	lead := n.A[0]
	terms := make([]lti.Term, 0, len(roots))

	for i, c := range clusters {
		factor := poly.Polynomial{1}
		for j, o := range clusters {
			if j != i {
				factor = factor.Mul(poly.Monomial(o.pole(), o.n))
			}
		}

		p := c.pole()
		block, err := blockResidues(rem, factor, p, c.n)
		if err != nil {
			return lti.Rpk{}, err
		}

		for _, r := range block {
			terms = append(terms, lti.Term{Residue: r / lead, Pole: p})
		}
	}

	return lti.Rpk{Terms: terms, K: k}, nil
}

// clusterRoots merges roots closer than tol to an existing cluster's first
// member, scanning in root-finder order, and sorts the clusters by
// ascending |pole|.
func clusterRoots(roots []complex128, tol float64) []cluster {
	var out []cluster

	for _, r := range roots {
		merged := false
		for i := range out {
			if cmplx.Abs(r-out[i].first) < tol {
				out[i].sum += r
				out[i].n++
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, cluster{first: r, sum: r, n: 1})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return normSqr(out[i].pole()) < normSqr(out[j].pole())
	})

	return out
}

// blockResidues returns the coefficients c_1..c_m of
// rem/(factor*(s-p)^m) = sum_j c_j/(s-p)^j + (terms of other poles).
// For m > 1 the numerator is deflated by (s-p) once per step; each step
// yields the coefficient of the currently highest power.
func blockResidues(rem, factor poly.Polynomial, p complex128, m int) ([]complex128, error) {
	if m == 1 {
		return []complex128{rem.Eval(p) / factor.Eval(p)}, nil
	}

	monomial := poly.Polynomial{1, -p}

	fq, fr, err := factor.DivRem(monomial)
	if err != nil {
		return nil, fmt.Errorf("residue: %w", err)
	}
	d := fr.At(0)

	out := make([]complex128, m)
	running := rem
	for i := range m {
		q, r, err := running.DivRem(monomial)
		if err != nil {
			return nil, fmt.Errorf("residue: %w", err)
		}

		c := r.At(0) / d
		running = q.Sub(fq.Scale(c))
		out[m-1-i] = c
	}

	return out, nil
}

// invertTrimTol is the relative size below which leading numerator
// coefficients of a rebuilt transfer function are dropped.
const invertTrimTol = 1e-12

// Invert rebuilds the transfer function of an expansion produced by
// [Residue]. The denominator is monic. Leading numerator coefficients
// below 1e-12 of the largest one are dropped, so a pole whose residue
// rounds to nearly zero does not raise the numerator degree.
func Invert(rpk lti.Rpk) lti.Tf {
	blocks := rpk.Blocks()

	a := poly.Polynomial{1}
	for _, b := range blocks {
		a = a.Mul(poly.Monomial(b.Pole, len(b.Residues)))
	}

	num := poly.Polynomial{}
	for i, b := range blocks {
		others := poly.Polynomial{1}
		for j, o := range blocks {
			if j != i {
				others = others.Mul(poly.Monomial(o.Pole, len(o.Residues)))
			}
		}

		m := len(b.Residues)
		for j, r := range b.Residues {
			num = num.Add(others.Mul(poly.Monomial(b.Pole, m-j-1)).Scale(r))
		}
	}

	if !rpk.K.IsZero() {
		num = num.Add(rpk.K.Mul(a))
	}

	// Cancelled poles leave rounding residue in the leading coefficients.
	num = num.TrimRel(invertTrimTol)
	if len(num) == 0 {
		num = poly.Polynomial{0}
	}

	return lti.Tf{B: num, A: a}
}

func normSqr(z complex128) float64 {
	return real(z)*real(z) + imag(z)*imag(z)
}
