//go:build linux
// +build linux

package fuse

import (
	"context"
	"errors"
	"os"
	"strconv"
	"time"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/ostafen/symtab/pkg/symtab"
)

func (sfs *SymbolFS) Root() (fs.Node, error) {
	return &Dir{
		fs: sfs,
	}, nil
}

// Dir is the root directory. Looking a name up performs a wildcard lookup,
// so every spelling of a key resolves to the same file.
type Dir struct {
	fs *SymbolFS
}

func (*Dir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *Dir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	if name == typesDir {
		return &TypesDir{fs: d.fs}, nil
	}
	return d.fs.file(name, 0)
}

func (d *Dir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	dirEntries := make([]fuse.Dirent, 0, len(d.fs.names)+1)
	dirEntries = append(dirEntries, fuse.Dirent{
		Inode: 1,
		Name:  typesDir,
		Type:  fuse.DT_Dir,
	})
	return appendFiles(dirEntries, d.fs.names), nil
}

// TypesDir lists one directory per non-zero symbol type.
type TypesDir struct {
	fs *SymbolFS
}

func (*TypesDir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *TypesDir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	n, err := strconv.ParseUint(name, 10, 32)
	if err != nil {
		return nil, fuse.ENOENT
	}
	if _, ok := d.fs.byType[uint32(n)]; !ok {
		return nil, fuse.ENOENT
	}
	return &TypeDir{fs: d.fs, typ: uint32(n)}, nil
}

func (d *TypesDir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	dirEntries := make([]fuse.Dirent, len(d.fs.types))
	for i, typ := range d.fs.types {
		dirEntries[i] = fuse.Dirent{
			Inode: uint64(i + 1),
			Name:  strconv.FormatUint(uint64(typ), 10),
			Type:  fuse.DT_Dir,
		}
	}
	return dirEntries, nil
}

// TypeDir resolves names with an exact type match.
type TypeDir struct {
	fs  *SymbolFS
	typ uint32
}

func (*TypeDir) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = os.ModeDir | 0555
	return nil
}

func (d *TypeDir) Lookup(ctx context.Context, name string) (fs.Node, error) {
	return d.fs.file(name, d.typ)
}

func (d *TypeDir) ReadDirAll(ctx context.Context) ([]fuse.Dirent, error) {
	return appendFiles(nil, d.fs.byType[d.typ]), nil
}

func (sfs *SymbolFS) file(name string, typ uint32) (fs.Node, error) {
	value, err := sfs.lookup(name, typ)
	if errors.Is(err, symtab.ErrNotFound) {
		return nil, fuse.ENOENT
	}
	if err != nil {
		return nil, err
	}
	return File{data: []byte(value + "\n")}, nil
}

func appendFiles(dirEntries []fuse.Dirent, names []string) []fuse.Dirent {
	for _, name := range names {
		dirEntries = append(dirEntries, fuse.Dirent{
			Inode: uint64(len(dirEntries) + 1),
			Name:  name,
			Type:  fuse.DT_File,
		})
	}
	return dirEntries
}

// File holds the value of a symbol followed by a newline.
type File struct {
	data []byte
}

func (f File) Attr(ctx context.Context, a *fuse.Attr) error {
	a.Mode = 0444
	a.Size = uint64(len(f.data))
	a.Mtime = time.Now()
	return nil
}

func (f File) Read(ctx context.Context, req *fuse.ReadRequest, resp *fuse.ReadResponse) error {
	if req.Offset >= int64(len(f.data)) {
		// Trying to read past EOF
		resp.Data = []byte{}
		return nil
	}

	end := min(req.Offset+int64(req.Size), int64(len(f.data)))
	resp.Data = f.data[req.Offset:end]
	return nil
}
