package symtab

// Hash returns P. J. Weinberger's hash of key, as given on p. 436 of
// "Compilers: Principles, Techniques, and Tools" (Aho, Sethi, Ullman).
// ASCII uppercase letters are lowered before they are mixed in, so keys
// differing only in ASCII case hash to the same value. Bytes are taken as
// unsigned values.
func Hash(key string) uint32 {
	var h uint32
	for i := 0; i < len(key); i++ {
		h = (h << 4) + uint32(lower(key[i]))
		if g := h & 0xf0000000; g != 0 {
			h ^= g >> 24
			h ^= g
		}
	}
	return h
}

func lower(c byte) byte {
	if 'A' <= c && c <= 'Z' {
		return c + ('a' - 'A')
	}
	return c
}

// equalFold reports whether a and b are equal under ASCII case folding.
// Non-ASCII bytes must match exactly, which keeps it consistent with Hash.
func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		if a[i] != b[i] && lower(a[i]) != lower(b[i]) {
			return false
		}
	}
	return true
}
