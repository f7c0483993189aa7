package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atozflooring/xtracr/constants"
	"github.com/atozflooring/xtracr/internal/template"
)

func builtinRegistry(t *testing.T) *template.Registry {
	t.Helper()
	reg, err := template.Builtin()
	require.NoError(t, err)
	return reg
}

func TestNormalizeMoney(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"$5,808", "5808.00", true},
		{"5808.00", "5808.00", true},
		{"$5,808.5", "5808.50", true},
		{"0", "0.00", true},
		{" $1,234.56 ", "1234.56", true},
		{"-5", "", false},
		{"abc", "", false},
		{"", "", false},
		{"$", "", false},
	}
	for _, tc := range cases {
		got, ok := normalizeMoney(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestRunCascade_Provenance(t *testing.T) {
	reg := builtinRegistry(t)
	amb, ok := reg.Get("ambrose")
	require.True(t, ok)

	t.Run("template pattern wins", func(t *testing.T) {
		res, ok := runCascade("Total: $5,808.00\n", constants.FieldDollarValue, amb, reg.Generic())
		require.True(t, ok)
		assert.Equal(t, "5808.00", res.Value)
		assert.Equal(t, ProvenanceTemplate, res.Provenance)
	})

	t.Run("generic closes the cascade", func(t *testing.T) {
		// "Amount:" is not an ambrose label, only the generic one
		res, ok := runCascade("Amount: $4,000\n", constants.FieldDollarValue, amb, reg.Generic())
		require.True(t, ok)
		assert.Equal(t, "4000.00", res.Value)
		assert.Equal(t, ProvenanceGeneric, res.Provenance)
	})

	t.Run("generic template stamps generic tier", func(t *testing.T) {
		// fallback selection hands the generic definition in as def; its
		// own hits are generic-tier, not template-specific
		res, ok := runCascade("Total: $4,000\n", constants.FieldDollarValue, reg.Generic(), reg.Generic())
		require.True(t, ok)
		assert.Equal(t, "4000.00", res.Value)
		assert.Equal(t, ProvenanceGeneric, res.Provenance)
	})

	t.Run("malformed money moves past the pattern", func(t *testing.T) {
		_, ok := runCascade("Total: $TBC\n", constants.FieldDollarValue, amb, reg.Generic())
		assert.False(t, ok)
	})

	t.Run("miss is absence not error", func(t *testing.T) {
		_, ok := runCascade("no labels at all", constants.FieldPONumber, amb, reg.Generic())
		assert.False(t, ok)
	})
}

func TestTrimDescription(t *testing.T) {
	t.Run("cuts at totals line", func(t *testing.T) {
		got := trimDescription("Supply and install carpet\nBed 1 and 2\nSubtotal: $5,808.00\nGST $580.80")
		assert.Equal(t, "Supply and install carpet\nBed 1 and 2", got)
	})

	t.Run("cuts at first blank line", func(t *testing.T) {
		got := trimDescription("Supply and install carpet\n\nUnrelated trailing text")
		assert.Equal(t, "Supply and install carpet", got)
	})

	t.Run("strips boilerplate tail", func(t *testing.T) {
		got := trimDescription("Replace wet underlay\nKind regards\nThe Team")
		// only trailing boilerplate is stripped; "The Team" keeps
		// "Kind regards" from being last until it is removed itself
		assert.Equal(t, "Replace wet underlay\nKind regards\nThe Team", got)

		got = trimDescription("Replace wet underlay\nKind regards")
		assert.Equal(t, "Replace wet underlay", got)
	})

	t.Run("collapses per line whitespace", func(t *testing.T) {
		got := trimDescription("  Supply   and install\t carpet  \nBed 1")
		assert.Equal(t, "Supply and install carpet\nBed 1", got)
	})
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", collapseWhitespace("  a \t b\n c "))
	assert.Equal(t, "", collapseWhitespace("   "))
}
