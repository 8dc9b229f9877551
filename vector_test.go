package qstat

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestToVector(t *testing.T) {
	Convey("Given a two-outcome frequency table", t, func() {
		table := FrequencyTable{1: 3, -1: 7}

		Convey("When converting it to a vector", func() {
			vec, err := ToVector(table)

			Convey("Then it is a 2x1 column with the smaller key first", func() {
				So(err, ShouldBeNil)
				r, c := vec.Dims()
				So(r, ShouldEqual, 2)
				So(c, ShouldEqual, 1)
				So(vec.AtVec(0), ShouldEqual, 7)
				So(vec.AtVec(1), ShouldEqual, 3)
			})
		})

		Convey("When the same counts are inserted in another order", func() {
			other := make(FrequencyTable)
			other[-1] = 7
			other[1] = 3

			a, errA := ToVector(table)
			b, errB := ToVector(other)

			Convey("Then the vectors match", func() {
				So(errA, ShouldBeNil)
				So(errB, ShouldBeNil)
				So(a.RawVector().Data, ShouldResemble, b.RawVector().Data)
			})
		})

		Convey("When the keys carry floating point noise", func() {
			vec, err := ToVector(FrequencyTable{-0.9999999999999999: 49887, 0.9999999999999996: 50113})
			So(err, ShouldBeNil)
			So(vec.AtVec(0), ShouldEqual, 49887)
			So(vec.AtVec(1), ShouldEqual, 50113)
		})
	})

	Convey("Given tables without exactly two keys", t, func() {
		for _, table := range []FrequencyTable{
			{},
			{1: 10},
			{-1: 1, 0: 2, 1: 3},
		} {
			vec, err := ToVector(table)
			So(vec, ShouldBeNil)
			So(errors.Is(err, ErrInvalidArgument), ShouldBeTrue)
		}
	})

	Convey("Given a measured table", t, func() {
		table, err := NewSampler(WithSeed(11)).Measure(MaximallyMixed(2), PauliX(), 2000)
		So(err, ShouldBeNil)

		vec, err := ToVector(table)
		So(err, ShouldBeNil)
		So(vec.AtVec(0)+vec.AtVec(1), ShouldEqual, 2000)
		So(vec.AtVec(0), ShouldEqual, float64(table[-1]))
	})
}
