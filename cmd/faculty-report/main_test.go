package main

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/okian/facultyhub/internal/report"
	"github.com/smartystreets/goconvey/convey"
)

const seedFile = "../../configs/seed.yaml"

func execute(args ...string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(&stdout, &stderr)
	cmd.SetArgs(args)
	cmd.SetOut(&stderr)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestFacultyReport(t *testing.T) {
	convey.Convey("Given the sample seed in the memory store", t, func() {
		_ = os.Unsetenv("FACULTY_CONFIG")
		_ = os.Unsetenv("FACULTY_STORE_DRIVER")

		convey.Convey("When printing JSON for the whole directory", func() {
			out, err := execute("--driver", "memory", "--seed-file", seedFile, "--format", "json", "--top", "3")
			convey.So(err, convey.ShouldBeNil)

			var rep report.Report
			convey.So(json.Unmarshal([]byte(out), &rep), convey.ShouldBeNil)

			convey.Convey("Then every professor is summarized", func() {
				convey.So(rep.Summary.Professors, convey.ShouldEqual, 8)
				convey.So(len(rep.Ranked), convey.ShouldEqual, 3)
				convey.So(rep.Sort, convey.ShouldEqual, "total_papers")
				convey.So(rep.Order, convey.ShouldEqual, "desc")
				convey.So(rep.Ranked[0].TotalPapers, convey.ShouldBeGreaterThanOrEqualTo, rep.Ranked[2].TotalPapers)
			})
		})

		convey.Convey("When filtering by university", func() {
			out, err := execute("--seed-file", seedFile, "--format", "json", "--university", "Temple University")
			convey.So(err, convey.ShouldBeNil)

			var rep report.Report
			convey.So(json.Unmarshal([]byte(out), &rep), convey.ShouldBeNil)
			convey.So(rep.Summary.Professors, convey.ShouldEqual, 2)
		})

		convey.Convey("When printing text", func() {
			out, err := execute("--seed-file", seedFile)
			convey.So(err, convey.ShouldBeNil)
			convey.So(out, convey.ShouldContainSubstring, "Faculty productivity report")
			convey.So(out, convey.ShouldContainSubstring, "Professors")
		})

		convey.Convey("When the sort key is unknown", func() {
			_, err := execute("--seed-file", seedFile, "--sort", "h_index")
			convey.So(err, convey.ShouldNotBeNil)
		})

		convey.Convey("When the format is unknown", func() {
			_, err := execute("--seed-file", seedFile, "--format", "xml")
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}
