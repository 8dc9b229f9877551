package qstat

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Eigenstate pairs an eigenvalue of an observable with its unit eigenvector.
type Eigenstate struct {
	Value  float64
	Vector []complex128
}

/*
Spectrum is the eigendecomposition of a Hermitian observable, ordered by
ascending eigenvalue. Eigenvectors are mutually orthonormal. A degenerate
eigenvalue shows up as several entries sharing the same Value.
*/
type Spectrum []Eigenstate

/*
Diagonalize computes the spectrum of a Hermitian observable.

Real symmetric observables go straight through gonum's EigenSym. A complex
Hermitian H = A + iB is embedded as the real symmetric matrix

	[A  -B]
	[B   A]

whose spectrum is the spectrum of H with every eigenvalue doubled. The n
complex eigenvectors are recovered from each doubled eigenspace with a
complex Gram-Schmidt pass.
*/
func Diagonalize(observable mat.CMatrix, tolerance float64) (Spectrum, error) {
	n, err := squareDim("observable", observable)
	if err != nil {
		return nil, err
	}

	if err := checkHermitian(observable, tolerance); err != nil {
		return nil, err
	}

	if isReal(observable) {
		return diagonalizeReal(observable, n)
	}

	return diagonalizeComplex(observable, n)
}

func diagonalizeReal(h mat.CMatrix, n int) (Spectrum, error) {
	sym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			sym.SetSym(i, j, (real(h.At(i, j))+real(h.At(j, i)))/2)
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		return nil, fmt.Errorf("eigendecomposition failed: %w", ErrInvalidArgument)
	}

	values := eig.Values(nil)
	var q mat.Dense
	eig.VectorsTo(&q)

	spectrum := make(Spectrum, n)
	for k, value := range values {
		vec := make([]complex128, n)
		for i := 0; i < n; i++ {
			vec[i] = complex(q.At(i, k), 0)
		}
		spectrum[k] = Eigenstate{Value: value, Vector: vec}
	}

	return spectrum, nil
}

func diagonalizeComplex(h mat.CMatrix, n int) (Spectrum, error) {
	sym := mat.NewSymDense(2*n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			// Hermitian part, so rounding noise in h cannot break symmetry.
			v := (h.At(i, j) + cmplx.Conj(h.At(j, i))) / 2
			a, b := real(v), imag(v)

			sym.SetSym(i, j, a)
			sym.SetSym(n+i, n+j, a)
			sym.SetSym(i, n+j, -b)
			if i != j {
				sym.SetSym(j, n+i, b)
			}
		}
	}

	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		return nil, fmt.Errorf("eigendecomposition failed: %w", ErrInvalidArgument)
	}

	values := eig.Values(nil)
	var q mat.Dense
	eig.VectorsTo(&q)

	scale := 1.0
	for _, v := range values {
		scale = math.Max(scale, math.Abs(v))
	}
	eps := 1e-8 * scale

	raw := rawCMatrix(h)
	spectrum := make(Spectrum, 0, n)
	for start := 0; start < len(values); {
		end := start + 1
		for end < len(values) && values[end]-values[end-1] <= eps {
			end++
		}

		if (end-start)%2 != 0 {
			return nil, fmt.Errorf(
				"eigenvalue %g has odd multiplicity %d in the real embedding: %w",
				values[start], end-start, ErrInvalidArgument,
			)
		}

		candidates := make([][]complex128, 0, end-start)
		for k := start; k < end; k++ {
			z := make([]complex128, n)
			for i := 0; i < n; i++ {
				z[i] = complex(q.At(i, k), q.At(n+i, k))
			}
			candidates = append(candidates, z)
		}

		basis, err := complexBasis(candidates, (end-start)/2)
		if err != nil {
			return nil, err
		}

		for _, vec := range basis {
			spectrum = append(spectrum, Eigenstate{
				Value:  real(bilinear(vec, raw, vec)),
				Vector: vec,
			})
		}

		start = end
	}

	sort.SliceStable(spectrum, func(i, j int) bool {
		return spectrum[i].Value < spectrum[j].Value
	})

	return spectrum, nil
}

/*
complexBasis picks m orthonormal complex vectors spanning the same complex
subspace as candidates. Each round takes the candidate with the largest
component outside the vectors already accepted.
*/
func complexBasis(candidates [][]complex128, m int) ([][]complex128, error) {
	basis := make([][]complex128, 0, m)
	used := make([]bool, len(candidates))

	for len(basis) < m {
		best, bestNorm := -1, 0.0
		var bestVec []complex128

		for c, z := range candidates {
			if used[c] {
				continue
			}
			r := orthogonalize(z, basis)
			if norm := vectorNorm(r); norm > bestNorm {
				best, bestNorm, bestVec = c, norm, r
			}
		}

		if best < 0 || bestNorm < 1e-6 {
			return nil, fmt.Errorf("eigenspace collapsed during orthogonalization: %w", ErrInvalidArgument)
		}

		used[best] = true
		cblas128.Dscal(1/bestNorm, vector(bestVec))
		basis = append(basis, bestVec)
	}

	return basis, nil
}

func orthogonalize(z []complex128, basis [][]complex128) []complex128 {
	r := make([]complex128, len(z))
	copy(r, z)

	for _, b := range basis {
		cblas128.Axpy(-innerProduct(b, r), vector(b), vector(r))
	}

	return r
}

func vector(v []complex128) cblas128.Vector {
	return cblas128.Vector{N: len(v), Inc: 1, Data: v}
}

// innerProduct returns ⟨v|w⟩.
func innerProduct(v, w []complex128) complex128 {
	return cblas128.Dotc(vector(v), vector(w))
}

func vectorNorm(v []complex128) float64 {
	return cblas128.Nrm2(vector(v))
}

// rawCMatrix exposes m as BLAS storage, copying only when m is not a CDense.
func rawCMatrix(m mat.CMatrix) cblas128.General {
	if d, ok := m.(*mat.CDense); ok {
		return d.RawCMatrix()
	}

	r, c := m.Dims()
	d := mat.NewCDense(r, c, nil)
	d.Copy(m)
	return d.RawCMatrix()
}

// Bilinear returns ⟨v|M|w⟩.
func Bilinear(v []complex128, m mat.CMatrix, w []complex128) complex128 {
	return bilinear(v, rawCMatrix(m), w)
}

func bilinear(v []complex128, m cblas128.General, w []complex128) complex128 {
	mw := make([]complex128, m.Rows)
	cblas128.Gemv(blas.NoTrans, 1, m, vector(w), 0, vector(mw))
	return innerProduct(v, mw)
}

/*
BornProbabilities returns Re⟨v|ρ|v⟩ for every eigenvector of the spectrum.
Negative or NaN values left by rounding are clamped to zero. When the
clamped probabilities do not sum to 1 within tolerance the state is
rejected with ErrInvalidState, otherwise they are renormalized.
*/
func (s Spectrum) BornProbabilities(state mat.CMatrix, tolerance float64) ([]float64, error) {
	n, err := squareDim("state", state)
	if err != nil {
		return nil, err
	}

	if n != len(s) {
		return nil, fmt.Errorf(
			"state dimension %d does not match observable dimension %d: %w",
			n, len(s), ErrInvalidArgument,
		)
	}

	rho := rawCMatrix(state)
	probs := make([]float64, len(s))
	for k, e := range s {
		p := real(bilinear(e.Vector, rho, e.Vector))
		if !(p > 0) {
			p = 0
		}
		probs[k] = p
	}

	total := floats.Sum(probs)

	if math.IsNaN(total) || math.Abs(total-1) > tolerance {
		return nil, fmt.Errorf("probabilities sum to %g: %w", total, ErrInvalidState)
	}

	normalizeProbabilities(probs)
	return probs, nil
}

func squareDim(name string, m mat.CMatrix) (int, error) {
	if m == nil {
		return 0, fmt.Errorf("%s is nil: %w", name, ErrInvalidArgument)
	}

	r, c := m.Dims()
	if r == 0 || r != c {
		return 0, fmt.Errorf("%s must be square and non-empty, got %dx%d: %w", name, r, c, ErrInvalidArgument)
	}

	return r, nil
}

/*
checkHermitian compares every entry with the conjugate of its transpose.
The tolerance is relative to the largest entry once that exceeds 1, so
rounding noise on large-valued observables is accepted.
*/
func checkHermitian(m mat.CMatrix, tolerance float64) error {
	n, _ := m.Dims()

	scale := 1.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			scale = math.Max(scale, cmplx.Abs(m.At(i, j)))
		}
	}
	tolerance *= scale

	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			if cmplx.Abs(m.At(i, j)-cmplx.Conj(m.At(j, i))) > tolerance {
				return fmt.Errorf("observable is not Hermitian at (%d, %d): %w", i, j, ErrInvalidArgument)
			}
		}
	}
	return nil
}

func isReal(m mat.CMatrix) bool {
	n, _ := m.Dims()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if imag(m.At(i, j)) != 0 {
				return false
			}
		}
	}
	return true
}
