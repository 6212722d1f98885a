package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTablesDefaults(t *testing.T) {
	tables, err := LoadTables("")
	require.NoError(t, err)

	assert.Equal(t, "mm", tables.UnitSynonyms["millimeters"])
	assert.Equal(t, "inch", tables.UnitSynonyms["in"])
	assert.NotEmpty(t, tables.CharReplacements)
}

func TestLoadTablesOverrideReplacesWholesale(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	raw := []byte("unit_synonyms:\n  thou: inch\n")
	require.NoError(t, os.WriteFile(path, raw, 0o644))

	tables, err := LoadTables(path)
	require.NoError(t, err)

	assert.Equal(t, "inch", tables.UnitSynonyms["thou"])
	// the override replaces the whole table, not individual entries
	assert.Empty(t, tables.UnitSynonyms["millimeters"])
	// absent sections keep their defaults
	assert.NotEmpty(t, tables.CharReplacements)
}

func TestLoadTablesMissingFile(t *testing.T) {
	_, err := LoadTables(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
