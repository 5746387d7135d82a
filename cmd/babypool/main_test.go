package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

var actualEnv = map[string]string{
	"ACTUAL_FIRST_NAME":  "Gustavo",
	"ACTUAL_MIDDLE_NAME": "Patrick",
	"ACTUAL_GENDER":      "Chip",
	"ACTUAL_HAIR_COLOR":  "purple",
	"ACTUAL_EYE_COLOR":   "blue",
	"ACTUAL_LENGTH":      "42",
	"ACTUAL_WEIGHT_LBS":  "3",
	"ACTUAL_WEIGHT_OZS":  "14",
	"ACTUAL_BIRTHDAY":    "10/11/2025",
	"ACTUAL_LABOR_HOURS": "1",
	"ACTUAL_EPIDURAL":    "Yes",
	"ACTUAL_CUT_CORD":    "Yes",
	"ACTUAL_CATCH":       "No",
	"ACTUAL_FAINT":       "No",
}

func setActual(t *testing.T) {
	t.Helper()
	for k, v := range actualEnv {
		t.Setenv(k, v)
	}
}

func execute(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestScoreCommand(t *testing.T) {
	Convey("Given the actual outcome in the environment", t, func() {
		setActual(t)
		dir := t.TempDir()

		Convey("When scoring the CSV export with --explain", func() {
			out := filepath.Join(dir, "outputs", "overall_scores.csv")
			metricsFile := filepath.Join(dir, "babypool.prom")
			stdout, _, err := execute("score",
				"--input", filepath.Join("testdata", "guesses.csv"),
				"--output", out,
				"--metrics-file", metricsFile,
				"--explain",
			)

			Convey("Then the scores file has a header and one row per guess", func() {
				So(err, ShouldBeNil)
				data, readErr := os.ReadFile(out)
				So(readErr, ShouldBeNil)
				lines := strings.Split(strings.TrimSpace(string(data)), "\n")
				So(lines, ShouldHaveLength, 3)
				So(lines[0], ShouldEqual, "Your Name,Your Email,Timestamp,Overall Score")
				So(lines[1], ShouldStartWith, "Jackie,Jac.kie,:),")
				So(lines[2], ShouldEqual, "Brian,Bri.an,0,2")
			})

			Convey("And the field table is printed", func() {
				So(stdout, ShouldContainSubstring, "DIFFICULTY")
				So(stdout, ShouldContainSubstring, "First Name")
				So(stdout, ShouldContainSubstring, "Brian")
			})

			Convey("And the metrics textfile is written", func() {
				data, readErr := os.ReadFile(metricsFile)
				So(readErr, ShouldBeNil)
				So(string(data), ShouldContainSubstring, "babypool_scorer_batches_scored_total")
			})
		})

		Convey("When writing JSON", func() {
			out := filepath.Join(dir, "scores.json")
			_, _, err := execute("score", "--input", filepath.Join("testdata", "guesses.csv"), "--output", out)
			So(err, ShouldBeNil)

			data, readErr := os.ReadFile(out)
			So(readErr, ShouldBeNil)
			So(string(data), ShouldContainSubstring, `"overall_score": 2`)
		})

		Convey("When no input is given", func() {
			t.Setenv("BABYPOOL_INPUT", "")
			_, _, err := execute("score")
			So(err, ShouldEqual, errNoInput)
		})

		Convey("When the input does not exist", func() {
			_, _, err := execute("score", "--input", filepath.Join(dir, "missing.csv"), "--output", filepath.Join(dir, "x.csv"))
			So(err, ShouldNotBeNil)

			_, statErr := os.Stat(filepath.Join(dir, "x.csv"))
			So(os.IsNotExist(statErr), ShouldBeTrue)
		})
	})

	Convey("Given an incomplete actual outcome", t, func() {
		setActual(t)
		t.Setenv("ACTUAL_BIRTHDAY", "")

		_, _, err := execute("score", "--input", filepath.Join("testdata", "guesses.csv"))
		So(err, ShouldNotBeNil)
		So(err.Error(), ShouldContainSubstring, "actual.birthday")
	})
}

func TestFirstNonEmpty(t *testing.T) {
	Convey("firstNonEmpty picks the first set value", t, func() {
		So(firstNonEmpty("", "b", "c"), ShouldEqual, "b")
		So(firstNonEmpty("", ""), ShouldEqual, "")
	})
}
