package csvparser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseReader_CommaDelimited(t *testing.T) {
	text := "Name,Amount\nAlice,100\nBob,200\n"

	data, err := ParseReader(strings.NewReader(text), Settings{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Amount"}, data.Headers)
	assert.Equal(t, 2, data.RowCount)
	assert.Equal(t, 2, data.ColumnCount)
	assert.Equal(t, "100", data.Rows[0]["Amount"])
	assert.Equal(t, "Bob", data.Rows[1]["Name"])
}

func TestParseReader_AlternativeDelimiters(t *testing.T) {
	cases := []struct {
		delimiter string
		text      string
	}{
		{"tab", "Name\tAmount\nAlice\t100\n"},
		{"pipe", "Name|Amount\nAlice|100\n"},
		{"semicolon", "Name;Amount\nAlice;100\n"},
		{";", "Name;Amount\nAlice;100\n"},
	}

	for _, c := range cases {
		data, err := ParseReader(strings.NewReader(c.text), Settings{Delimiter: c.delimiter})
		require.NoError(t, err, "delimiter %q", c.delimiter)
		assert.Equal(t, "100", data.Rows[0]["Amount"], "delimiter %q", c.delimiter)
	}
}

func TestParseReader_EmptyHeadersGetPlaceholders(t *testing.T) {
	text := "Name,,Amount\nAlice,x,100\n"

	data, err := ParseReader(strings.NewReader(text), Settings{})
	require.NoError(t, err)

	assert.Equal(t, []string{"Name", "Column_2", "Amount"}, data.Headers)
	assert.Equal(t, "x", data.Rows[0]["Column_2"])
}

func TestParseReader_SkipsEmptyRowsAndPadsShortOnes(t *testing.T) {
	text := "Name,Amount,Extra\nAlice,100\n,,\nBob,200,note\n"

	data, err := ParseReader(strings.NewReader(text), Settings{})
	require.NoError(t, err)

	require.Equal(t, 2, data.RowCount)
	assert.Equal(t, "", data.Rows[0]["Extra"])
	assert.Equal(t, "note", data.Rows[1]["Extra"])
}

func TestParseReader_QuotedFields(t *testing.T) {
	text := "Name,Amount\n\"Smith, Alice\",\"1,250.50\"\n"

	data, err := ParseReader(strings.NewReader(text), Settings{})
	require.NoError(t, err)

	assert.Equal(t, "Smith, Alice", data.Rows[0]["Name"])
	assert.Equal(t, "1,250.50", data.Rows[0]["Amount"])
}

func TestParseReader_EmptyInput(t *testing.T) {
	_, err := ParseReader(strings.NewReader(""), Settings{})
	assert.Error(t, err)
}

func TestParse_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("Name,Amount\nAlice,100\n"), 0644))

	data, err := Parse(path, Settings{})
	require.NoError(t, err)

	assert.Equal(t, path, data.SourceFile)
	assert.Equal(t, 1, data.RowCount)
}

func TestParse_MissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.csv"), Settings{})
	assert.Error(t, err)
}

func TestHasColumn(t *testing.T) {
	data := &CSVData{Headers: []string{"Name", "Amount"}}

	assert.True(t, data.HasColumn("Amount"))
	assert.False(t, data.HasColumn("amount"))
	assert.False(t, data.HasColumn("Missing"))
}

func TestFilterRows(t *testing.T) {
	data, err := ParseReader(strings.NewReader("Name,Amount\nAlice,100\nBob,0\nCarol,50\n"), Settings{})
	require.NoError(t, err)

	filtered := FilterRows(data, func(row map[string]string) bool {
		return row["Amount"] != "0"
	})

	require.Len(t, filtered, 2)
	assert.Equal(t, "Alice", filtered[0]["Name"])
	assert.Equal(t, "Carol", filtered[1]["Name"])
}
