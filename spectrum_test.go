package qstat

import (
	"errors"
	"math/cmplx"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/mat"
)

// blockPauliY returns diag(σy, σy), a complex observable whose eigenvalues
// are each twice degenerate.
func blockPauliY() *mat.CDense {
	return mat.NewCDense(4, 4, []complex128{
		0, -1i, 0, 0,
		1i, 0, 0, 0,
		0, 0, 0, -1i,
		0, 0, 1i, 0,
	})
}

func shouldBeOrthonormal(spectrum Spectrum) {
	for i := range spectrum {
		for j := range spectrum {
			overlap := innerProduct(spectrum[i].Vector, spectrum[j].Vector)
			if i == j {
				So(real(overlap), ShouldAlmostEqual, 1, 1e-9)
				So(imag(overlap), ShouldAlmostEqual, 0, 1e-9)
			} else {
				So(cmplx.Abs(overlap), ShouldBeLessThan, 1e-9)
			}
		}
	}
}

func TestDiagonalize(t *testing.T) {
	Convey("Given a real symmetric observable", t, func() {
		spectrum, err := Diagonalize(PauliX(), 1e-9)

		Convey("Then eigenvalues come back ascending with orthonormal vectors", func() {
			So(err, ShouldBeNil)
			So(len(spectrum), ShouldEqual, 2)
			So(spectrum[0].Value, ShouldAlmostEqual, -1, 1e-12)
			So(spectrum[1].Value, ShouldAlmostEqual, 1, 1e-12)
			shouldBeOrthonormal(spectrum)
		})
	})

	Convey("Given a complex Hermitian observable", t, func() {
		spectrum, err := Diagonalize(PauliY(), 1e-9)

		Convey("Then each eigenvector satisfies the eigen equation", func() {
			So(err, ShouldBeNil)
			So(len(spectrum), ShouldEqual, 2)
			So(spectrum[0].Value, ShouldAlmostEqual, -1, 1e-9)
			So(spectrum[1].Value, ShouldAlmostEqual, 1, 1e-9)
			shouldBeOrthonormal(spectrum)

			for _, e := range spectrum {
				for i := 0; i < 2; i++ {
					basis := []complex128{0, 0}
					basis[i] = 1
					got := Bilinear(basis, PauliY(), e.Vector)
					So(cmplx.Abs(got-complex(e.Value, 0)*e.Vector[i]), ShouldBeLessThan, 1e-9)
				}
			}
		})
	})

	Convey("Given a complex observable with degenerate eigenvalues", t, func() {
		spectrum, err := Diagonalize(blockPauliY(), 1e-9)

		Convey("Then every eigenvalue keeps its full multiplicity", func() {
			So(err, ShouldBeNil)
			So(len(spectrum), ShouldEqual, 4)
			So(spectrum[0].Value, ShouldAlmostEqual, -1, 1e-9)
			So(spectrum[1].Value, ShouldAlmostEqual, -1, 1e-9)
			So(spectrum[2].Value, ShouldAlmostEqual, 1, 1e-9)
			So(spectrum[3].Value, ShouldAlmostEqual, 1, 1e-9)
			shouldBeOrthonormal(spectrum)
		})

		Convey("Then the maximally mixed state splits evenly", func() {
			probs, err := spectrum.BornProbabilities(MaximallyMixed(4), 1e-6)
			So(err, ShouldBeNil)
			for _, p := range probs {
				So(p, ShouldAlmostEqual, 0.25, 1e-9)
			}
		})
	})

	Convey("Given a large-valued observable with rounding noise off the diagonal", t, func() {
		observable := mat.NewCDense(2, 2, []complex128{
			1e8, 1e7,
			1e7 + 1e-7, -1e8,
		})
		spectrum, err := Diagonalize(observable, 1e-9)

		Convey("Then it is accepted as Hermitian", func() {
			So(err, ShouldBeNil)
			So(len(spectrum), ShouldEqual, 2)
		})
	})

	Convey("Given a large-valued observable that is not Hermitian", t, func() {
		observable := mat.NewCDense(2, 2, []complex128{
			1e8, 1e7,
			2e7, -1e8,
		})
		_, err := Diagonalize(observable, 1e-9)
		So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
	})

	Convey("Given a non-square observable", t, func() {
		_, err := Diagonalize(mat.NewCDense(2, 3, nil), 1e-9)
		So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
	})
}

func TestBilinear(t *testing.T) {
	Convey("Given |0⟩ and |1⟩", t, func() {
		zero := []complex128{1, 0}
		one := []complex128{0, 1}

		Convey("Then ⟨0|σy|1⟩ is -i", func() {
			So(Bilinear(zero, PauliY(), one), ShouldEqual, complex(0, -1))
		})

		Convey("Then ⟨1|σz|1⟩ is -1", func() {
			So(Bilinear(one, PauliZ(), one), ShouldEqual, complex(-1, 0))
		})

		Convey("Then a matrix view that is not a CDense gives the same result", func() {
			// σy is its own conjugate transpose.
			So(Bilinear(zero, PauliY().H(), one), ShouldEqual, complex(0, -1))
			So(Bilinear(one, PauliY().H(), zero), ShouldEqual, complex(0, 1))
		})
	})
}
