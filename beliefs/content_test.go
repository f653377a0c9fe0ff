package beliefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempContent(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.md")
	require.NoError(t, os.WriteFile(path, []byte(text), 0600))
	return path
}

func TestLoadContentBelowCeilingIsUnchanged(t *testing.T) {
	text := strings.Repeat("a", 100)
	path := writeTempContent(t, text)

	content, err := LoadContent(path, 100)
	require.NoError(t, err)
	assert.Equal(t, text, content.Text)
	assert.Equal(t, 100, content.Length())
	assert.Equal(t, 100, content.OriginalLength)
	assert.False(t, content.Truncated)
}

func TestLoadContentAboveCeilingIsTruncatedToExactlyCeiling(t *testing.T) {
	text := strings.Repeat("ab", 100) // 200 chars
	path := writeTempContent(t, text)

	content, err := LoadContent(path, 150)
	require.NoError(t, err)
	assert.Equal(t, 150, content.Length())
	assert.Equal(t, 200, content.OriginalLength)
	assert.True(t, content.Truncated)
	assert.True(t, strings.HasPrefix(text, content.Text), "truncated content must be a prefix of the original")
}

func TestLoadContentCountsCharactersNotBytes(t *testing.T) {
	text := strings.Repeat("é", 50)
	path := writeTempContent(t, text)

	content, err := LoadContent(path, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, content.Length())
	assert.Equal(t, 50, content.OriginalLength)
	assert.Equal(t, strings.Repeat("é", 30), content.Text)
}

func TestLoadContentMissingFile(t *testing.T) {
	_, err := LoadContent(filepath.Join(t.TempDir(), "nope.md"), 100)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
