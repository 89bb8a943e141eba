package schemafile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/binframe/binframe/test"
	"github.com/binframe/binframe/warn"
)

func TestLoadAndRoundTripFixtures(t *testing.T) {
	suites, err := test.LoadAllTestSuites(filepath.Join("..", "testdata"))
	require.NoError(t, err)
	require.NotEmpty(t, suites)

	for _, suite := range suites {
		suite := suite
		t.Run(suite.Name, func(t *testing.T) {
			registry := NewRegistry()
			s, err := registry.Load(filepath.Join("..", "testdata", suite.SchemaFile), warn.Discard)
			require.NoError(t, err)

			for _, tc := range suite.TestCases {
				tc := tc
				t.Run(tc.Description, func(t *testing.T) {
					inst, err := s.New(tc.Values, warn.Discard)
					if tc.ShouldErrorOnEncode {
						require.Error(t, err)
						return
					}
					require.NoError(t, err)

					buf, err := s.Serialize(inst, warn.Discard)
					require.NoError(t, err)
					if tc.Bytes != nil {
						require.Equal(t, tc.WireBytes(), buf)
					}

					back, err := s.Parse(buf, warn.Discard)
					if tc.ShouldErrorOnDecode {
						require.Error(t, err)
						return
					}
					require.NoError(t, err)
					require.True(t, inst.Equal(back))
				})
			}
		})
	}
}

func TestLoadRejectsUnknownType(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.schema.json5")
	writeFile(t, path, `{name: "Bad", fields: [{name: "x", type: "nope"}]}`)

	registry := NewRegistry()
	_, err := registry.Load(path, warn.Discard)
	require.Error(t, err)
}

func TestExtendsResolvesAgainstRegistry(t *testing.T) {
	dir := t.TempDir()
	basePath := filepath.Join(dir, "base.schema.json5")
	derivedPath := filepath.Join(dir, "derived.schema.json5")
	writeFile(t, basePath, `{name: "Base", fields: [{name: "a", type: "uint8"}, {name: "b", type: "uint8"}]}`)
	writeFile(t, derivedPath, `{name: "Derived", extends: "Base", fields: [{name: "b", type: "uint16"}, {name: "c", type: "uint8"}]}`)

	registry := NewRegistry()
	_, err := registry.Load(basePath, warn.Discard)
	require.NoError(t, err)
	derived, err := registry.Load(derivedPath, warn.Discard)
	require.NoError(t, err)

	idx, ok := derived.FieldIndex("b")
	require.True(t, ok)
	require.Equal(t, 1, idx)
	n, _ := derived.Fields()[idx].Codec.FixedSize()
	require.Equal(t, 2, n)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
