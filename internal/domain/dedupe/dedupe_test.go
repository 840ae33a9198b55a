package dedupe_test

import (
	"testing"

	dedupe "github.com/okian/facultyhub/internal/domain/dedupe"
	"github.com/okian/facultyhub/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTitleSet(t *testing.T) {
	Convey("Given a new title set", t, func() {
		d := dedupe.NewTitleSet(dedupe.WithCapacity(4))

		Convey("Then it should start empty", func() {
			So(d.Size(), ShouldEqual, 0)
		})

		Convey("When recording titles", func() {
			first := d.SeenAndRecord("Graph Kernels")
			second := d.SeenAndRecord("Graph Kernels")
			other := d.SeenAndRecord("graph kernels")

			Convey("Then repeats are reported as seen", func() {
				So(first, ShouldBeFalse)
				So(second, ShouldBeTrue)
				So(other, ShouldBeFalse)
				So(d.Size(), ShouldEqual, 2)
			})
		})

		Convey("When a negative capacity is given", func() {
			d := dedupe.NewTitleSet(dedupe.WithCapacity(-1))
			So(d.SeenAndRecord("x"), ShouldBeFalse)
		})
	})
}

func TestByTitle(t *testing.T) {
	Convey("Given publications with repeated titles", t, func() {
		pubs := []model.Publication{
			{ID: "1", Title: "A", Year: "2024"},
			{ID: "2", Title: "B", Year: "2023"},
			{ID: "3", Title: "A", Year: "2020"},
			{ID: "4", Title: "A ", Year: "2019"},
			{ID: "5", Title: "b", Year: "2018"},
		}

		Convey("When deduplicating by title", func() {
			out := dedupe.ByTitle(pubs)

			Convey("Then the first occurrence wins and order is kept", func() {
				ids := make([]string, len(out))
				for i, p := range out {
					ids[i] = p.ID
				}
				So(ids, ShouldResemble, []string{"1", "2", "4", "5"})
			})

			Convey("Then the input is untouched", func() {
				So(len(pubs), ShouldEqual, 5)
			})
		})

		Convey("When the input is empty", func() {
			So(dedupe.ByTitle(nil), ShouldBeEmpty)
		})
	})
}

func TestByKey(t *testing.T) {
	Convey("Given arbitrary items", t, func() {
		out := dedupe.ByKey([]string{"x", "y", "x", "z", "y"}, func(s string) string { return s })
		So(out, ShouldResemble, []string{"x", "y", "z"})
	})
}
