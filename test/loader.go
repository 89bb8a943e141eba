// Package test loads the JSON5 round-trip fixtures (testdata/*.test.json5)
// used by the schemafile package tests and cmd/binframe-fixtures, adapted from the
// teacher's cross-language test-suite loader down to this repo's
// single-language scope: no bit-level/BigInt-suffix handling, since this
// implementation carries no bitfield or varint modes (see DESIGN.md).
package test

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aeolun/json5"
)

// TestSuite is one *.test.json5 file: the schema it exercises (loaded
// separately via schemafile.Registry) plus a list of encode/decode cases.
type TestSuite struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	SchemaFile  string     `json:"schema_file"`
	TestCases   []TestCase `json:"test_cases"`
}

// TestCase is one value <-> wire-bytes pair, or an expected failure. Bytes
// is declared []int rather than []byte: JSON5 numeric arrays don't reliably
// round-trip through encoding/json's base64-string []byte convention, so
// fixtures spell out each octet as a plain number and WireBytes converts.
type TestCase struct {
	Description         string                 `json:"description"`
	Values              map[string]interface{} `json:"values"`
	Bytes               []int                  `json:"bytes"`
	ShouldErrorOnEncode bool                   `json:"should_error_on_encode,omitempty"`
	ShouldErrorOnDecode bool                   `json:"should_error_on_decode,omitempty"`
	ErrorContains       string                 `json:"error_contains,omitempty"`
}

// WireBytes converts the fixture's numeric byte list to a []byte.
func (c TestCase) WireBytes() []byte {
	out := make([]byte, len(c.Bytes))
	for i, v := range c.Bytes {
		out[i] = byte(v)
	}
	return out
}

// LoadTestSuite loads a single *.test.json5 fixture.
func LoadTestSuite(path string) (*TestSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read test file %s: %w", path, err)
	}
	var suite TestSuite
	if err := json5.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("failed to parse test file %s: %w", path, err)
	}
	return &suite, nil
}

// LoadAllTestSuites loads every *.test.json5 fixture under rootDir,
// recursively, honoring MatchesFilter against each suite's Name.
func LoadAllTestSuites(rootDir string) ([]*TestSuite, error) {
	var suites []*TestSuite
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".test.json5") {
			return nil
		}
		suite, err := LoadTestSuite(path)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		if !MatchesFilter(suite.Name) {
			return nil
		}
		suites = append(suites, suite)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return suites, nil
}

// MatchesFilter reports whether name should run, per the TEST_FILTER
// environment variable convention: unset or empty runs everything, any
// value restricts to suite names containing it (case-sensitive substring).
func MatchesFilter(name string) bool {
	filter := os.Getenv("TEST_FILTER")
	if filter == "" {
		return true
	}
	return strings.Contains(name, filter)
}

// TestResult records one test case's outcome, consumed by TestSummary.
type TestResult struct {
	Description string
	Pass        bool
	Detail      string
}
