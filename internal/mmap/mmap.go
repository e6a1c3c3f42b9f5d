//go:build unix

package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is a read-only mapping of a whole file.
type File struct {
	Data []byte   // The memory-mapped contents; empty for zero-length files
	File *os.File // The underlying opened file

	mapped bool
}

// Open maps the file at filePath into memory for reading.
func Open(filePath string) (*File, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", filePath, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to get file info for %q: %w", filePath, err)
	}
	if !fi.Mode().IsRegular() {
		f.Close()
		return nil, fmt.Errorf("%q is not a regular file", filePath)
	}

	size := fi.Size()
	if size == 0 {
		// mmap rejects zero-length mappings
		return &File{Data: []byte{}, File: f}, nil
	}
	if int64(int(size)) != size {
		f.Close()
		return nil, fmt.Errorf("file %q is too large to map (%d bytes)", filePath, size)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to mmap file %q with length %d: %w", filePath, size, err)
	}

	return &File{
		Data:   data,
		File:   f,
		mapped: true,
	}, nil
}

// Close unmaps the memory region and closes the underlying file.
func (m *File) Close() error {
	var err error
	if m.mapped {
		err = unix.Munmap(m.Data)
		if err != nil {
			return fmt.Errorf("failed to munmap: %w", err)
		}
		m.mapped = false
	}
	m.Data = nil

	if m.File != nil {
		closeErr := m.File.Close()
		if closeErr != nil {
			return fmt.Errorf("failed to close file: %w", closeErr)
		}
		m.File = nil
	}
	return nil
}
