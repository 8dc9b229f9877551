package qstat

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Qubit is a single two-level pure state α|0⟩ + β|1⟩.
type Qubit struct {
	alpha complex128 // |0⟩ amplitude
	beta  complex128 // |1⟩ amplitude
}

/*
NewQubit returns the normalized qubit with the given amplitudes. A zero
vector is returned as |0⟩.
*/
func NewQubit(alpha, beta complex128) *Qubit {
	norm := math.Sqrt(real(alpha*cmplx.Conj(alpha)) + real(beta*cmplx.Conj(beta)))
	if norm == 0 {
		return &Qubit{alpha: 1}
	}

	return &Qubit{
		alpha: alpha / complex(norm, 0),
		beta:  beta / complex(norm, 0),
	}
}

func (q *Qubit) ApplyHadamard() {
	// H = 1/√2 * [1  1]
	//           [1 -1]
	newAlpha := (q.alpha + q.beta) / complex(math.Sqrt(2), 0)
	newBeta := (q.alpha - q.beta) / complex(math.Sqrt(2), 0)
	q.alpha = newAlpha
	q.beta = newBeta
}

// Ket returns the amplitudes as a state vector.
func (q *Qubit) Ket() []complex128 {
	return []complex128{q.alpha, q.beta}
}

// Density returns |ψ⟩⟨ψ| for the qubit.
func (q *Qubit) Density() *mat.CDense {
	return PureState(q.Ket())
}

// PureState returns the density matrix |ψ⟩⟨ψ| of an arbitrary ket.
func PureState(ket []complex128) *mat.CDense {
	n := len(ket)
	rho := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			rho.Set(i, j, ket[i]*cmplx.Conj(ket[j]))
		}
	}
	return rho
}

// MaximallyMixed returns I/n.
func MaximallyMixed(n int) *mat.CDense {
	rho := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		rho.Set(i, i, complex(1/float64(n), 0))
	}
	return rho
}

func Identity(n int) *mat.CDense {
	id := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		id.Set(i, i, 1)
	}
	return id
}

func PauliX() *mat.CDense {
	return mat.NewCDense(2, 2, []complex128{
		0, 1,
		1, 0,
	})
}

func PauliY() *mat.CDense {
	return mat.NewCDense(2, 2, []complex128{
		0, -1i,
		1i, 0,
	})
}

func PauliZ() *mat.CDense {
	return mat.NewCDense(2, 2, []complex128{
		1, 0,
		0, -1,
	})
}
