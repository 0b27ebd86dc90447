package migrations

import (
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesAreEmbeddedInOrder(t *testing.T) {
	names, err := Files()
	require.NoError(t, err)
	require.NotEmpty(t, names)

	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "001_init.sql")
	for _, name := range names {
		assert.True(t, strings.HasSuffix(name, ".sql"), name)
	}
}

func TestInitSchemaSplitsIntoStatements(t *testing.T) {
	content, err := FS.ReadFile("001_init.sql")
	require.NoError(t, err)

	statements := Statements(string(content))
	require.NotEmpty(t, statements)

	tables := 0
	for _, stmt := range statements {
		assert.NotContains(t, stmt, ";")
		if strings.Contains(stmt, "CREATE TABLE") {
			tables++
		}
	}
	// One table per store-backed entity.
	assert.Equal(t, 7, tables)
}

func TestStatementsSkipsBlankChunks(t *testing.T) {
	statements := Statements("CREATE TABLE a (id INT);\n\n;  \nCREATE TABLE b (id INT);\n")
	require.Len(t, statements, 2)
	assert.Equal(t, "CREATE TABLE a (id INT)", statements[0])
	assert.Equal(t, "CREATE TABLE b (id INT)", statements[1])
}
