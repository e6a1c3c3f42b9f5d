package fuse

import (
	"slices"
	"sync"

	"github.com/ostafen/symtab/pkg/symfile"
	"github.com/ostafen/symtab/pkg/symtab"
)

// typesDir is the root entry holding one directory per non-zero type.
// A symbol with this name is shadowed in the root listing.
const typesDir = "types"

// SymbolFS is a read-only view over a symbol table. The table offers no
// iteration, so the names to list are indexed once from the definitions
// that were loaded into it.
type SymbolFS struct {
	// FUSE serves requests concurrently, the table must not be.
	mu    sync.Mutex
	table *symtab.Table[string]

	names  []string
	types  []uint32
	byType map[uint32][]string
}

// NewSymbolFS indexes the given definitions, all of which must have been
// successfully defined in table. The root lists each key once, under the
// spelling it was first defined with.
func NewSymbolFS(table *symtab.Table[string], defined []symfile.Symbol) (*SymbolFS, error) {
	seen, err := symtab.New[struct{}](max(table.Size(), 1), nil)
	if err != nil {
		return nil, err
	}
	defer seen.Close()

	sfs := &SymbolFS{
		table:  table,
		byType: make(map[uint32][]string),
	}
	for _, sym := range defined {
		if err := seen.Define(sym.Name, 0, struct{}{}); err == nil {
			sfs.names = append(sfs.names, sym.Name)
		}
		if sym.Type == 0 {
			continue
		}
		if _, ok := sfs.byType[sym.Type]; !ok {
			sfs.types = append(sfs.types, sym.Type)
		}
		sfs.byType[sym.Type] = append(sfs.byType[sym.Type], sym.Name)
	}

	slices.Sort(sfs.names)
	slices.Sort(sfs.types)
	for _, names := range sfs.byType {
		slices.Sort(names)
	}
	return sfs, nil
}

func (sfs *SymbolFS) lookup(name string, typ uint32) (string, error) {
	sfs.mu.Lock()
	defer sfs.mu.Unlock()

	return sfs.table.Lookup(name, typ)
}

// Close destroys the underlying table.
func (sfs *SymbolFS) Close() error {
	sfs.mu.Lock()
	defer sfs.mu.Unlock()

	return sfs.table.Close()
}
