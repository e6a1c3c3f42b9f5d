package mmap_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/symtab/internal/mmap"
	"github.com/stretchr/testify/require"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.toml")
	content := []byte("[[symbol]]\nname = \"foo\"\n")
	require.NoError(t, os.WriteFile(path, content, 0644))

	m, err := mmap.Open(path)
	require.NoError(t, err)
	require.Equal(t, content, m.Data)

	require.NoError(t, m.Close())
	require.Nil(t, m.Data)
}

func TestOpenEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	m, err := mmap.Open(path)
	require.NoError(t, err)
	require.Empty(t, m.Data)
	require.NoError(t, m.Close())
}

func TestOpenMissing(t *testing.T) {
	_, err := mmap.Open(filepath.Join(t.TempDir(), "missing"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
