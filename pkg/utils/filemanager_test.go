package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"export.csv", "export.csv"},
		{"my report (final).csv", "my_report__final_.csv"},
		{"../../etc/passwd", "passwd"},
		{"", "upload"},
		{"..", "upload"},
		{"דוח.csv", "___.csv"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, SanitizeFilename(c.in), "SanitizeFilename(%q)", c.in)
	}
}

func TestSaltedName(t *testing.T) {
	a := SaltedName("export.csv")
	b := SaltedName("export.csv")

	assert.True(t, strings.HasSuffix(a, "_export.csv"))
	assert.NotEqual(t, a, b)
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")

	require.NoError(t, EnsureDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Idempotent on an existing directory.
	assert.NoError(t, EnsureDir(dir))
}

func TestRemoveQuietly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "transient.csv")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	RemoveQuietly(path, nil)
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// A missing file is not an error worth noticing.
	RemoveQuietly(path, nil)
}
