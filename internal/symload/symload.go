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
package symload

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ostafen/symtab/internal/logger"
	"github.com/ostafen/symtab/pkg/mem"
	"github.com/ostafen/symtab/pkg/pbar"
	"github.com/ostafen/symtab/pkg/symfile"
	"github.com/ostafen/symtab/pkg/symtab"
)

// DefaultBuckets is used when neither the caller nor the symbol file choose a size.
const DefaultBuckets = 101

type Options struct {
	// Buckets overrides the size suggested by the symbol file when positive.
	Buckets int
	// MemLimit bounds the memory charged by the table; 0 means unbounded.
	MemLimit uint64
	// OnUndefine is registered as the table's undefine callback.
	OnUndefine symtab.UndefineFunc[string]
	Logger     *logger.Logger
	// Progress receives a progress line while loading; nil disables it.
	Progress io.Writer
}

// Usage reports the memory charged by a loaded table.
type Usage interface {
	InUse() int
	Peak() int
	Allocs() int
}

type Result struct {
	Table *symtab.Table[string]
	Mem   Usage
	// Symbols holds the definitions that made it into the table, in file order.
	Symbols    []symfile.Symbol
	Defined    int
	Duplicates []symfile.Symbol
	Duration   time.Duration
}

// Buckets returns the table size to use for f.
func Buckets(f *symfile.File, override int) int {
	switch {
	case override > 0:
		return override
	case f.Buckets > 0:
		return f.Buckets
	default:
		return DefaultBuckets
	}
}

// Load defines every symbol of f into a new table. Symbols colliding with an
// earlier definition are skipped and reported in Result.Duplicates.
//
// If the table runs out of memory the table is closed and the error returned.
func Load(f *symfile.File, opts Options) (*Result, error) {
	log := opts.Logger
	if log == nil {
		log = logger.New(io.Discard, logger.ErrorLevel)
	}

	var mctx interface {
		mem.Context
		Usage
	}
	if opts.MemLimit > 0 {
		mctx = mem.NewBudget(int(min(opts.MemLimit, uint64(maxInt))))
	} else {
		mctx = mem.NewCounter()
	}

	size := Buckets(f, opts.Buckets)
	st, err := symtab.New(size, opts.OnUndefine,
		symtab.WithMem(mctx),
		symtab.WithLogger(log.Zap()),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create table with %d buckets: %w", size, err)
	}

	var bar *pbar.ProgressBarState
	if opts.Progress != nil {
		bar = pbar.NewProgressBarState(opts.Progress, len(f.Symbols))
	}

	start := time.Now()
	res := &Result{
		Table: st,
		Mem:   mctx,
	}

	for i, sym := range f.Symbols {
		err := st.Define(sym.Name, sym.Type, sym.Value)
		switch {
		case err == nil:
			res.Defined++
			res.Symbols = append(res.Symbols, sym)
		case errors.Is(err, symtab.ErrExists):
			log.Warnf("symbol #%d %q (type %d) already defined, skipping", i+1, sym.Name, sym.Type)
			res.Duplicates = append(res.Duplicates, sym)
		default:
			_ = st.Close()
			return nil, fmt.Errorf("symbol #%d %q: %w", i+1, sym.Name, err)
		}

		if bar != nil {
			bar.Processed = i + 1
			bar.Defined = res.Defined
			bar.Rejected = len(res.Duplicates)
			bar.Render(false)
		}
	}
	if bar != nil {
		bar.Finish()
	}

	res.Duration = time.Since(start)
	log.Debugf("loaded %d of %d symbols into %d buckets in %s", res.Defined, len(f.Symbols), size, res.Duration)
	return res, nil
}

const maxInt = int(^uint(0) >> 1)

// ParseRef parses a symbol reference of the form "name" or "name:type".
// A missing type is 0, the wildcard.
func ParseRef(ref string) (string, uint32, error) {
	name, typ, found := strings.Cut(ref, ":")
	if !found {
		return ref, 0, nil
	}
	if name == "" {
		return "", 0, fmt.Errorf("invalid symbol reference %q: empty name", ref)
	}

	n, err := strconv.ParseUint(typ, 10, 32)
	if err != nil {
		return "", 0, fmt.Errorf("invalid symbol reference %q: bad type: %w", ref, err)
	}
	return name, uint32(n), nil
}
