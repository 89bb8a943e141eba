package test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildTestSummary(t *testing.T) {
	suites := []*TestSuite{
		{Name: "a", TestCases: []TestCase{{Description: "ok"}, {Description: "bad"}}},
	}
	results := map[string][]TestResult{
		"a": {{Description: "ok", Pass: true}, {Description: "bad", Pass: false}},
	}
	summary := BuildTestSummary(results, suites)
	require.Equal(t, 2, summary.TotalTests)
	require.Equal(t, 1, summary.PassedTests)
	require.Equal(t, 1, summary.FailedTests)
	require.Equal(t, 1, summary.PartiallyPassingSuites)
}

func TestMatchesFilter(t *testing.T) {
	t.Setenv("TEST_FILTER", "")
	require.True(t, MatchesFilter("anything"))
	t.Setenv("TEST_FILTER", "point")
	require.True(t, MatchesFilter("point_round_trip"))
	require.False(t, MatchesFilter("vector_round_trip"))
}
