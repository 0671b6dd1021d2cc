package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSalary_StringForms(t *testing.T) {
	cases := []struct {
		in       string
		min, max float64
	}{
		{"45k-55k", 45000, 55000},
		{"45K - 55K", 45000, 55000},
		{"45000-55000", 45000, 55000},
		{"40k", 40000, 40000},
		{"38000", 38000, 38000},
		{"55k-45k", 45000, 55000}, // inverted bounds are swapped
	}

	for _, tc := range cases {
		r, ok := parseSalaryString(tc.in)
		require.True(t, ok, "input %q", tc.in)
		assert.Equal(t, tc.min, r.Min, "input %q", tc.in)
		assert.Equal(t, tc.max, r.Max, "input %q", tc.in)
	}
}

func TestParseSalary_Unparsable(t *testing.T) {
	for _, in := range []string{"", "competitive", "selon profil"} {
		_, ok := parseSalaryString(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestParseSalary_ObjectSwapsInvertedBounds(t *testing.T) {
	r, ok := parseSalary(map[string]any{"min": 60000.0, "max": 50000.0})

	require.True(t, ok)
	assert.Equal(t, 50000.0, r.Min)
	assert.Equal(t, 60000.0, r.Max)
}

func TestParseSalary_ZeroObjectRejected(t *testing.T) {
	_, ok := parseSalary(map[string]any{"min": 0.0, "max": 0.0})
	assert.False(t, ok)
}
