package format_test

import (
	"testing"

	"github.com/ostafen/symtab/pkg/util/format"
	"github.com/stretchr/testify/require"
)

func TestFormatBytes(t *testing.T) {
	require.Equal(t, "512B", format.FormatBytes(512))
	require.Equal(t, "1KB", format.FormatBytes(1024))
	require.Equal(t, "1.50KB", format.FormatBytes(1536))
	require.Equal(t, "4MB", format.FormatBytes(4*format.MB))
}

func TestParseBytes(t *testing.T) {
	cases := []struct {
		in   string
		want uint64
	}{
		{"0", 0},
		{"512", 512},
		{"512B", 512},
		{"64KB", 64 * format.KB},
		{"64kb", 64 * format.KB},
		{"4M", 4 * format.MB},
		{" 4MB ", 4 * format.MB},
		{"1.5GB", 3 * format.GB / 2},
		{"2TB", 2 * format.TB},
	}

	for _, c := range cases {
		got, err := format.ParseBytes(c.in)
		require.NoError(t, err, c.in)
		require.Equal(t, c.want, got, c.in)
	}

	for _, in := range []string{"", "MB", "4XB", "-1KB", "abc"} {
		_, err := format.ParseBytes(in)
		require.Error(t, err, in)
	}
}
