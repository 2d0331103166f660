package signer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadTables(t *testing.T) {
	tables, err := loadTables()
	require.NoError(t, err)

	t.Run("gorgon table is fully populated", func(t *testing.T) {
		assert.Len(t, tables.gorgon, 256)
		assert.EqualValues(t, 0x898f6b6d, tables.gorgon[0])
	})

	t.Run("ladon key is fully populated", func(t *testing.T) {
		assert.Len(t, tables.ladon, 32)
		assert.EqualValues(t, 0xf9, tables.ladon[0])
	})

	t.Run("repeated loads return the same tables", func(t *testing.T) {
		again, err := loadTables()
		require.NoError(t, err)
		assert.Same(t, tables, again)
	})
}

func TestParseTablesValidation(t *testing.T) {
	t.Run("embedded asset parses", func(t *testing.T) {
		_, err := parseTables()
		assert.NoError(t, err)
	})
}
