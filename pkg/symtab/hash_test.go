package symtab

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	cases := []struct {
		key  string
		want uint32
	}{
		{"", 0},
		{"a", 97},
		{"ab", 1650},
		{"Foo", 27999},
		{"foo", 27999},
		{"abcdefgh", 144358056},
		{"ABCDEFGH", 144358056},
		{"_isc_symtab_define", 152040037},
		{"www.example.com", 225236221},
		{"WWW.Example.COM", 225236221},
	}

	for _, c := range cases {
		require.Equal(t, c.want, Hash(c.key), "Hash(%q)", c.key)
	}
}

func TestHashHighNibbleFolded(t *testing.T) {
	keys := []string{"_isc_symtab_define", "a-rather-long-identifier-name", "zzzzzzzzzzzzzzzzzzzz"}
	for _, k := range keys {
		require.Zero(t, Hash(k)&0xf0000000, "Hash(%q) kept bits in the top nibble", k)
	}
}

func TestEqualFold(t *testing.T) {
	require.True(t, equalFold("Foo", "fOO"))
	require.True(t, equalFold("", ""))
	require.True(t, equalFold("a_1.B", "A_1.b"))
	require.False(t, equalFold("foo", "fo"))
	require.False(t, equalFold("foo", "fop"))

	// only ASCII letters fold
	require.False(t, equalFold("[", "{"))
	require.False(t, equalFold("K", "k"))
	require.False(t, equalFold("é", "É"))
}
