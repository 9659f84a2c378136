package directory

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMapping(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "phone_names.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("loads well-formed entries", func(t *testing.T) {
		path := writeMapping(t, `# family plan members
5551234567: Alice
5552345678: Bob

5553456789:Carol
`)
		dir, err := Load(path, nil)
		require.NoError(t, err)
		require.Len(t, dir, 3)

		assert.Equal(t, "Alice", dir["(555) 123-4567"])
		assert.Equal(t, "Bob", dir["(555) 234-5678"])
		assert.Equal(t, "Carol", dir["(555) 345-6789"])
	})

	t.Run("skips malformed lines without aborting", func(t *testing.T) {
		path := writeMapping(t, `5551234567: Alice
this line has no colon
12345: Short Number
5552345678: Bob
`)
		dir, err := Load(path, nil)
		require.NoError(t, err)
		require.Len(t, dir, 2)
		assert.Equal(t, "Alice", dir["(555) 123-4567"])
		assert.Equal(t, "Bob", dir["(555) 234-5678"])
	})

	t.Run("missing file yields empty directory", func(t *testing.T) {
		dir, err := Load(filepath.Join(t.TempDir(), "nope.txt"), nil)
		require.NoError(t, err)
		assert.Empty(t, dir)
	})

	t.Run("empty path yields empty directory", func(t *testing.T) {
		dir, err := Load("", nil)
		require.NoError(t, err)
		assert.Empty(t, dir)
	})
}

func TestNameFor(t *testing.T) {
	dir := Directory{"(555) 123-4567": "Alice"}

	assert.Equal(t, "Alice", dir.NameFor("(555) 123-4567"))
	// Unmapped numbers fall back to the formatted number itself.
	assert.Equal(t, "(555) 999-0000", dir.NameFor("(555) 999-0000"))
}
