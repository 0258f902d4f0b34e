package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/smartystreets/goconvey/convey"
)

const (
	resultsCSV = "Event,Gender,Class,Gold_Country,Silver_Country,Bronze_Country\n" +
		"Downhill,Men,Standing,USA,GER,\n" +
		"Slalom,Women,Sitting,USA,GER,FRA\n"
	guessesCSV = "Event,Gender,Class,Gold_Country,Silver_Country,Bronze_Country,Score\n" +
		"Downhill,Men,Standing,USA,GER,FRA,\n" +
		"Slalom,Women,Sitting,GER,USA,FRA,\n"
)

func execute(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootCommand(t *testing.T) {
	convey.Convey("Given result and guess files", t, func() {
		for _, k := range []string{"MEDALPOOL_CONFIG", "MEDALPOOL_OUTPUT_SUFFIX", "MEDALPOOL_LIST_SEPARATOR", "MEDALPOOL_STRICT_BALANCE"} {
			_ = os.Unsetenv(k)
		}
		dir := t.TempDir()
		results := filepath.Join(dir, "results.csv")
		guesses := filepath.Join(dir, "guesses.csv")
		convey.So(os.WriteFile(results, []byte(resultsCSV), 0o600), convey.ShouldBeNil)
		convey.So(os.WriteFile(guesses, []byte(guessesCSV), 0o600), convey.ShouldBeNil)

		convey.Convey("When running with both files", func() {
			stdout, stderr, err := execute(results, guesses)

			convey.Convey("Then it should write the updated table", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(stdout, convey.ShouldContainSubstring, "Scored 2 events for 16 points")

				raw, err := os.ReadFile(filepath.Join(dir, "guesses_updated.csv"))
				convey.So(err, convey.ShouldBeNil)
				convey.So(string(raw), convey.ShouldEqual,
					"Event,Gender,Class,Gold_Country,Silver_Country,Bronze_Country,Score\n"+
						"Downhill,Men,Standing,USA,GER,FRA,8\n"+
						"Slalom,Women,Sitting,GER,USA,FRA,8\n")
				convey.So(stderr, convey.ShouldContainSubstring, "perfect guess Bronze for FRA")
			})

			convey.Convey("And running on the output should report no updates", func() {
				stdout, _, err := execute(results, filepath.Join(dir, "guesses_updated.csv"))
				convey.So(err, convey.ShouldBeNil)
				convey.So(stdout, convey.ShouldContainSubstring, "No updates")
			})
		})

		convey.Convey("When running with an explicit output and JSON logs", func() {
			out := filepath.Join(dir, "out.csv")
			_, stderr, err := execute("--json", "-o", out, results, guesses)

			convey.Convey("Then the output flag should be honored", func() {
				convey.So(err, convey.ShouldBeNil)
				_, statErr := os.Stat(out)
				convey.So(statErr, convey.ShouldBeNil)
				convey.So(stderr, convey.ShouldContainSubstring, `"msg":"event scored"`)
			})
		})

		convey.Convey("When running in strict mode", func() {
			_, stderr, err := execute("--strict", results, guesses)

			convey.Convey("Then the unbalanced event should fail the run", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(stderr, convey.ShouldContainSubstring, "Error:")
				_, statErr := os.Stat(filepath.Join(dir, "guesses_updated.csv"))
				convey.So(os.IsNotExist(statErr), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When a config file sets the suffix", func() {
			cfgPath := filepath.Join(dir, "medalpool.yaml")
			convey.So(os.WriteFile(cfgPath, []byte("output_suffix: \"_scored\"\nlog_level: debug\n"), 0o600), convey.ShouldBeNil)

			_, _, err := execute("--config", cfgPath, results, guesses)

			convey.Convey("Then the configured suffix should name the output", func() {
				convey.So(err, convey.ShouldBeNil)
				_, statErr := os.Stat(filepath.Join(dir, "guesses_scored.csv"))
				convey.So(statErr, convey.ShouldBeNil)
			})
		})

		convey.Convey("When an argument is missing", func() {
			_, _, err := execute(results)

			convey.Convey("Then it should fail", func() {
				convey.So(err, convey.ShouldNotBeNil)
			})
		})
	})
}
