package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ostafen/symtab/pkg/symfile"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	f := generate("sym_%d", 5, 2)
	require.Len(t, f.Symbols, 5)

	require.Equal(t, symfile.Symbol{Name: "sym_0", Type: 1, Value: "value_0"}, f.Symbols[0])
	require.Equal(t, symfile.Symbol{Name: "sym_0", Type: 2, Value: "value_1"}, f.Symbols[1])
	require.Equal(t, symfile.Symbol{Name: "sym_2", Type: 1, Value: "value_4"}, f.Symbols[4])
}

func TestGetMountpoint(t *testing.T) {
	require.Equal(t, "symbols", getMountpoint("/tmp/symbols.toml"))
	require.Equal(t, "symbols_mnt", getMountpoint("symbols"))
}

func TestGenLoadReport(t *testing.T) {
	dir := t.TempDir()
	symbols := filepath.Join(dir, "symbols.toml")
	reportPath := filepath.Join(dir, "report.xml")

	gen := DefineGenCommand()
	gen.SetArgs([]string{symbols, "--count", "10", "--types", "2", "--buckets", "7"})
	require.NoError(t, gen.Execute())

	f, err := symfile.Load(symbols)
	require.NoError(t, err)
	require.Equal(t, 7, f.Buckets)
	require.Len(t, f.Symbols, 10)

	load := DefineLoadCommand()
	load.SetArgs([]string{symbols,
		"--no-progress",
		"--report", reportPath,
		"--undefine", "SYMBOL_0000:1",
		"--undefine", "missing",
	})
	require.NoError(t, load.Execute())

	data, err := os.ReadFile(reportPath)
	require.NoError(t, err)

	report := string(data)
	require.Equal(t, 10, strings.Count(report, "<undefined "))

	// the explicit undefine is recorded before teardown
	first := strings.Index(report, "<undefined ")
	require.Contains(t, report[first:first+200], "value_0")
}

func TestLoadMemLimit(t *testing.T) {
	dir := t.TempDir()
	symbols := filepath.Join(dir, "symbols.toml")

	gen := DefineGenCommand()
	gen.SetArgs([]string{symbols, "--count", "100"})
	require.NoError(t, gen.Execute())

	load := DefineLoadCommand()
	load.SetArgs([]string{symbols, "--no-progress", "--mem-limit", "1KB"})
	require.ErrorContains(t, load.Execute(), "out of memory")
}

func TestLookupMissing(t *testing.T) {
	dir := t.TempDir()
	symbols := filepath.Join(dir, "symbols.toml")
	require.NoError(t, os.WriteFile(symbols, []byte(`
[[symbol]]
name = "Foo"
value = "bar"
`), 0o644))

	lookup := DefineLookupCommand()
	lookup.SetArgs([]string{symbols, "foo"})
	require.NoError(t, lookup.Execute())

	lookup = DefineLookupCommand()
	lookup.SetArgs([]string{symbols, "foo", "baz"})
	require.ErrorContains(t, lookup.Execute(), "1 of 2 keys not found")
}
