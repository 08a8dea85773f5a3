package lti

import "github.com/ZOwl/signal-processing/dsp/poly"

// Term is one partial-fraction term of an [Rpk].
type Term struct {
	Residue complex128
	Pole    complex128
}

// Rpk is a system in residue-pole-remainder form.
//
// Consecutive terms sharing the same pole value form a multiplicity block;
// the j-th term of a block (1-based) is the coefficient of 1/(s-p)^j. K is
// the polynomial part of an improper system and empty otherwise.
type Rpk struct {
	Terms []Term
	K     poly.Polynomial
}

// Block is a run of terms sharing one pole. Residues[j] multiplies
// 1/(s-Pole)^(j+1).
type Block struct {
	Pole     complex128
	Residues []complex128
}

// Clone returns a deep copy of r.
func (r Rpk) Clone() Rpk {
	terms := make([]Term, len(r.Terms))
	copy(terms, r.Terms)
	return Rpk{Terms: terms, K: r.K.Clone()}
}

// Powers returns, for every term, its 1-based position within its run of
// equal consecutive poles.
func (r Rpk) Powers() []int {
	out := make([]int, len(r.Terms))
	for i, t := range r.Terms {
		if i > 0 && r.Terms[i-1].Pole == t.Pole {
			out[i] = out[i-1] + 1
			continue
		}
		out[i] = 1
	}
	return out
}

// Blocks groups the terms into runs of equal consecutive poles.
func (r Rpk) Blocks() []Block {
	var out []Block
	for i, t := range r.Terms {
		if i > 0 && r.Terms[i-1].Pole == t.Pole {
			last := &out[len(out)-1]
			last.Residues = append(last.Residues, t.Residue)
			continue
		}
		out = append(out, Block{Pole: t.Pole, Residues: []complex128{t.Residue}})
	}
	return out
}

// Eval returns sum(r_j/(s-p_j)^k_j) + K(s).
func (r Rpk) Eval(s complex128) complex128 {
	v := r.K.Eval(s)
	for i, k := range r.Powers() {
		t := r.Terms[i]
		v += t.Residue / cpow(s-t.Pole, k)
	}
	return v
}

// EvalZ evaluates the discrete-time expansion
// sum(r_j/(1-p_j z^-1)^k_j) + sum(K[i] z^-i).
func (r Rpk) EvalZ(z complex128) complex128 {
	v := evalInverse(r.K, z)
	for i, k := range r.Powers() {
		t := r.Terms[i]
		v += t.Residue / cpow(1-t.Pole/z, k)
	}
	return v
}

func cpow(x complex128, n int) complex128 {
	v := complex(1, 0)
	for range n {
		v *= x
	}
	return v
}
