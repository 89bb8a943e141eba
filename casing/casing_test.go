package casing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToSnake(t *testing.T) {
	cases := map[string]string{
		"SomeStruct":    "some_struct",
		"SSNLookup":     "ssn_lookup",
		"RS485Adaptor":  "rs485_adaptor",
		"John316":       "john316",
		"rot13_encoded": "rot13_encoded",
	}
	for in, want := range cases {
		require.Equal(t, want, ToSnake(in), "ToSnake(%q)", in)
	}
}
