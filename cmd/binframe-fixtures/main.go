// Command binframe-fixtures runs every testdata/*.test.json5 fixture
// directly against the schema engine (load via schemafile, encode/decode
// via schema) and prints a report through test.TestSummary — the same
// reporting surface the teacher's test harness printed, now driven by this
// repo's runtime engine instead of per-case generated-and-compiled code
// (see DESIGN.md's note on test/runner_test.go).
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/binframe/binframe/schema"
	"github.com/binframe/binframe/schemafile"
	"github.com/binframe/binframe/test"
	"github.com/binframe/binframe/warn"
)

func main() {
	dir := flag.String("testdata", "testdata", "directory containing *.test.json5 fixtures")
	flag.Parse()

	if err := run(*dir); err != nil {
		fmt.Fprintln(os.Stderr, "binframe-fixtures:", err)
		os.Exit(1)
	}
}

func run(dir string) error {
	suites, err := test.LoadAllTestSuites(dir)
	if err != nil {
		return err
	}

	registry := schemafile.NewRegistry()
	results := make(map[string][]test.TestResult, len(suites))
	for _, suite := range suites {
		s, err := registry.Load(filepath.Join(dir, suite.SchemaFile), warn.Discard)
		if err != nil {
			continue // left out of results: BuildTestSummary counts it fully failing
		}
		results[suite.Name] = runSuite(s, suite)
	}

	summary := test.BuildTestSummary(results, suites)

	switch test.GetReportFlag() {
	case "json":
		summary.PrintJSON()
	case "failed":
		summary.PrintFailedSuites()
		summary.PrintFailingTests()
	case "passing":
		summary.PrintFullyPassingSuites()
	default:
		summary.PrintSummary()
		summary.PrintFailedSuites()
		summary.PrintFailingTests()
	}

	if summary.FailedTests > 0 {
		return fmt.Errorf("%d test case(s) failed", summary.FailedTests)
	}
	return nil
}

func runSuite(s *schema.Schema, suite *test.TestSuite) []test.TestResult {
	results := make([]test.TestResult, 0, len(suite.TestCases))
	for _, tc := range suite.TestCases {
		results = append(results, runCase(s, tc))
	}
	return results
}

func runCase(s *schema.Schema, tc test.TestCase) test.TestResult {
	inst, err := s.New(tc.Values, warn.Discard)
	if tc.ShouldErrorOnEncode {
		return test.TestResult{Description: tc.Description, Pass: err != nil, Detail: detailFor(err)}
	}
	if err != nil {
		return test.TestResult{Description: tc.Description, Pass: false, Detail: err.Error()}
	}

	buf, err := s.Serialize(inst, warn.Discard)
	if err != nil {
		return test.TestResult{Description: tc.Description, Pass: false, Detail: err.Error()}
	}
	if tc.Bytes != nil && !bytes.Equal(tc.WireBytes(), buf) {
		return test.TestResult{Description: tc.Description, Pass: false, Detail: "wire bytes did not match fixture"}
	}

	back, err := s.Parse(buf, warn.Discard)
	if tc.ShouldErrorOnDecode {
		return test.TestResult{Description: tc.Description, Pass: err != nil, Detail: detailFor(err)}
	}
	if err != nil {
		return test.TestResult{Description: tc.Description, Pass: false, Detail: err.Error()}
	}
	eq := inst.Equal(back)
	detail := ""
	if !eq {
		detail = "decoded instance did not equal original"
	}
	return test.TestResult{Description: tc.Description, Pass: eq, Detail: detail}
}

func detailFor(err error) string {
	if err == nil {
		return "expected an error but none occurred"
	}
	return ""
}
