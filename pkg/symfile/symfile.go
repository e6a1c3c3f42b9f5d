// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.
package symfile

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/ostafen/symtab/internal/mmap"
)

// File is the content of a symbol definition file:
//
//	buckets = 101
//
//	[[symbol]]
//	name  = "Foo"
//	type  = 1
//	value = "bar"
type File struct {
	// Buckets is the suggested table size. Zero leaves the choice to the caller.
	Buckets int      `toml:"buckets,omitempty"`
	Symbols []Symbol `toml:"symbol"`

	// Path is the file the symbols were loaded from (set at load time).
	Path string `toml:"-"`
}

// Symbol is a single definition. Type defaults to 0.
type Symbol struct {
	Name  string `toml:"name"`
	Type  uint32 `toml:"type,omitempty"`
	Value string `toml:"value"`
}

// Parse decodes and validates a symbol file.
func Parse(data []byte) (*File, error) {
	var f File
	md, err := toml.Decode(string(data), &f)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	if f.Buckets < 0 {
		return nil, fmt.Errorf("buckets must not be negative, got %d", f.Buckets)
	}
	for i, s := range f.Symbols {
		if s.Name == "" {
			return nil, fmt.Errorf("symbol #%d: missing name", i+1)
		}
	}
	return &f, nil
}

// Load maps the file at path and parses it.
func Load(path string) (*File, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	defer m.Close()

	f, err := Parse(m.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Path = path
	return f, nil
}

// Write encodes f in the format read by Parse.
func Write(w io.Writer, f *File) error {
	return toml.NewEncoder(w).Encode(f)
}
