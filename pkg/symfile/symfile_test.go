package symfile_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/ostafen/symtab/pkg/symfile"
	"github.com/stretchr/testify/require"
)

const sample = `
buckets = 7

[[symbol]]
name  = "Foo"
type  = 1
value = "100"

[[symbol]]
name  = "bar"
value = "untyped"
`

func TestParse(t *testing.T) {
	f, err := symfile.Parse([]byte(sample))
	require.NoError(t, err)

	require.Equal(t, 7, f.Buckets)
	require.Equal(t, []symfile.Symbol{
		{Name: "Foo", Type: 1, Value: "100"},
		{Name: "bar", Type: 0, Value: "untyped"},
	}, f.Symbols)
}

func TestParseEmpty(t *testing.T) {
	f, err := symfile.Parse(nil)
	require.NoError(t, err)
	require.Zero(t, f.Buckets)
	require.Empty(t, f.Symbols)
}

func TestParseErrors(t *testing.T) {
	cases := map[string]string{
		"syntax":        "[[symbol]\nname = \"x\"",
		"missing name":  "[[symbol]]\nvalue = \"x\"",
		"unknown key":   "[[symbol]]\nname = \"x\"\ncolour = \"red\"",
		"negative type": "[[symbol]]\nname = \"x\"\ntype = -1",
		"bad buckets":   "buckets = -3",
	}

	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := symfile.Parse([]byte(in))
			require.Error(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "symbols.toml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	f, err := symfile.Load(path)
	require.NoError(t, err)
	require.Equal(t, path, f.Path)
	require.Len(t, f.Symbols, 2)
}

func TestLoadReportsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[symbol]]\ntype = 2\n"), 0644))

	_, err := symfile.Load(path)
	require.ErrorContains(t, err, path)
	require.ErrorContains(t, err, "symbol #1: missing name")
}

func TestWrite(t *testing.T) {
	in := &symfile.File{
		Buckets: 13,
		Symbols: []symfile.Symbol{
			{Name: "a", Type: 2, Value: "x"},
			{Name: "B", Value: "y"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, symfile.Write(&buf, in))

	out, err := symfile.Parse(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, in.Buckets, out.Buckets)
	require.Equal(t, in.Symbols, out.Symbols)
}
