//go:build !unix

package mmap

import (
	"fmt"
	"os"
)

// File holds the contents of a file. Platforms without mmap read it instead.
type File struct {
	Data []byte
	File *os.File
}

func Open(filePath string) (*File, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	return &File{Data: data}, nil
}

func (m *File) Close() error {
	m.Data = nil
	return nil
}
