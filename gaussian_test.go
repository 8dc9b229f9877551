package qstat

import (
	"errors"
	"math/rand/v2"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"gonum.org/v1/gonum/spatial/r2"
)

func TestSampleSphericalGaussians(t *testing.T) {
	Convey("Given two means", t, func() {
		mu1, mu2 := r2.Vec{X: -3, Y: 2}, r2.Vec{X: 4, Y: 4}

		Convey("When sampling", func() {
			x1, x2, err := SampleSphericalGaussians(mu1, mu2, 2000, 1500, rand.NewPCG(9, 9))

			Convey("Then each population has the requested size and mean", func() {
				So(err, ShouldBeNil)
				So(len(x1), ShouldEqual, 2000)
				So(len(x2), ShouldEqual, 1500)
				So(r2.Norm(r2.Sub(sampleMean(x1), mu1)), ShouldBeLessThan, 0.15)
				So(r2.Norm(r2.Sub(sampleMean(x2), mu2)), ShouldBeLessThan, 0.15)
			})
		})

		Convey("When a sample size is not positive", func() {
			_, _, err := SampleSphericalGaussians(mu1, mu2, 0, 10, nil)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)

			_, _, err = SampleSphericalGaussians(mu1, mu2, 10, -1, nil)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		})

		Convey("When the same stream seed is reused", func() {
			a, _, errA := SampleSphericalGaussians(mu1, mu2, 10, 10, rand.NewPCG(4, 4))
			b, _, errB := SampleSphericalGaussians(mu1, mu2, 10, 10, rand.NewPCG(4, 4))

			So(errA, ShouldBeNil)
			So(errB, ShouldBeNil)
			So(a, ShouldResemble, b)
		})
	})
}
