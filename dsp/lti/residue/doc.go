// Package residue computes partial-fraction expansions of rational transfer
// functions.
//
// [Residue] expands B(s)/A(s) into
//
//	sum_j r_j/(s-p_j)^k_j + K(s)
//
// where repeated poles form multiplicity blocks whose j-th term carries the
// power j. [ResidueZ] applies the same engine to discrete-time systems whose
// coefficients are ascending powers of z^-1, producing terms of the form
// r_j/(1-p_j z^-1)^k_j. For complex coefficients ResidueZ expands the
// conjugate system; see its documentation. [Invert] and [InvertZ] rebuild
// the transfer function from an expansion.
//
// Near-multiple roots are merged when they lie closer than the clustering
// tolerance; a mis-tuned tolerance, or a root finder that fails to converge,
// shows up as inaccurate residues rather than as an error.
//
// Root finders scatter an m-fold root by roughly eps^(1/m). With
// [DefaultTolerance] poles of multiplicity up to 4 are merged reliably;
// a pole repeated 5 or more times splits into several nearby clusters and
// the expansion is numerically meaningless. Pass [WithTolerance] with a
// wider value, such as 1e-2, for such systems.
package residue
