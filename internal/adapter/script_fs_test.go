package adapter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "remock.dev/pkg/remock/internal/model"
)

func TestLocalScriptFS_ReadScript(t *testing.T) {
	src := "class A { fn m() { return 1 } }"
	path := writeFile(t, "counter.cls", src)

	fs := NewLocalScriptFS()

	name, text, err := fs.ReadScript(path)
	require.NoError(t, err)
	assert.Equal(t, "counter", name, "display name drops directory and extension")
	assert.Equal(t, src, text)
}

func TestLocalScriptFS_NoExtension(t *testing.T) {
	path := writeFile(t, "plain", "class A { fn m() { return 1 } }")

	fs := NewLocalScriptFS()

	name, _, err := fs.ReadScript(path)
	require.NoError(t, err)
	assert.Equal(t, "plain", name)
}

func TestLocalScriptFS_MissingFile(t *testing.T) {
	fs := NewLocalScriptFS()

	_, _, err := fs.ReadScript(m.Path(filepath.Join(t.TempDir(), "ghost.cls")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read script")
}
