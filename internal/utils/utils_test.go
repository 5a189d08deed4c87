package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"Area & Volume ":            "AreaVolume",
		"AreaVolume":                "AreaVolume",
		"Indices and Logs":          "IndicesandLogs",
		"Algebra - Cubics (2019)":   "AlgebraCubics2019",
		"":                          "",
		"!!! ???":                   "",
		"Géométrie":                 "Gomtrie",
		"数学 Maths 101":              "Maths101",
		"tab\tnew\nline":            "tabnewline",
		"Sequences_and-Series/Pt.2": "SequencesandSeriesPt2",
	}

	for in, want := range cases {
		assert.Equal(t, want, Sanitize(in), "Sanitize(%q)", in)
	}
}

func TestSanitizeKeepsOnlyAlphanumericsInOrder(t *testing.T) {
	for c := 0; c < 256; c++ {
		in := "x" + string(rune(c)) + "9"
		got := Sanitize(in)

		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if isAlnum {
			assert.Equal(t, "x"+string(rune(c))+"9", got)
		} else {
			assert.Equal(t, "x9", got)
		}
	}
}

func TestNewLogger(t *testing.T) {
	prod, err := NewLogger(false)
	require.NoError(t, err)
	require.NotNil(t, prod)

	dev, err := NewLogger(true)
	require.NoError(t, err)
	require.NotNil(t, dev)
}
