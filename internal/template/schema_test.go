package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemplatesFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "templates.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadDefinitions_Valid(t *testing.T) {
	path := writeTemplatesFile(t, `[
		{
			"id": "acme",
			"display_name": "Acme Builders",
			"po_pattern": "ACME-\\d{4}",
			"keywords": ["Acme Builders"],
			"email_domains": ["acme.com.au"],
			"patterns": [
				{"field": "po_number", "pattern": "(ACME-\\d{4})", "priority": 10}
			]
		}
	]`)

	raws, err := LoadDefinitions(path)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	assert.Equal(t, "acme", raws[0].ID)
	assert.Equal(t, []string{"acme.com.au"}, raws[0].EmailDomains)

	_, err = Builtin(raws...)
	require.NoError(t, err)
}

func TestLoadDefinitions_Invalid(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"not json", `{broken`},
		{"not an array", `{"id": "acme"}`},
		{"missing display_name", `[{"id": "acme", "patterns": []}]`},
		{"uppercase id", `[{"id": "Acme", "display_name": "Acme", "patterns": []}]`},
		{"pattern missing field", `[{"id": "acme", "display_name": "Acme", "patterns": [{"pattern": "(x)"}]}]`},
		{"unknown property", `[{"id": "acme", "display_name": "Acme", "patterns": [], "surprise": true}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadDefinitions(writeTemplatesFile(t, tc.content))
			require.Error(t, err)
		})
	}
}

func TestLoadDefinitions_MissingFile(t *testing.T) {
	_, err := LoadDefinitions(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
