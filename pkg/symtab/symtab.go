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
package symtab

import (
	"errors"
	"slices"
	"unsafe"

	"github.com/ostafen/symtab/pkg/mem"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned by Lookup and Undefine when no entry matches.
	ErrNotFound = errors.New("symbol not found")
	// ErrExists is returned by Define when a matching entry is already present.
	ErrExists = errors.New("symbol already defined")
	// ErrNoMemory is returned when the memory context refuses an allocation.
	ErrNoMemory = mem.ErrNoMemory
	// ErrClosed is returned by every operation on a table that was closed.
	ErrClosed = errors.New("symbol table closed")
)

// UndefineFunc is invoked with the stored key, type and value of every entry
// leaving the table, either through Undefine or through Close.
//
// It must not call back into the table it was registered with.
type UndefineFunc[V any] func(key string, typ uint32, value V)

type entry[V any] struct {
	key   string
	typ   uint32
	value V
}

// Table is a symbol table: a hash table with a fixed number of chained
// buckets, mapping case-insensitive string keys qualified by a type tag to
// values of type V.
//
// A type tag of 0 acts as a wildcard when searching: a query with type 0
// matches the first entry with the given key, whatever its stored type, while
// a non-zero query type only matches entries stored with exactly that type.
// Type 0 can also be stored like any other type.
//
// Each bucket keeps its entries in insertion order. The bucket of a key is
// Hash(key) modulo the number of buckets, which is chosen by New and never
// changes afterwards.
//
// A Table is not safe for concurrent use.
type Table[V any] struct {
	// buckets holds one insertion-ordered chain per bucket.
	buckets [][]entry[V]
	// count is the number of live entries across all buckets.
	count int

	onUndefine UndefineFunc[V]
	mctx       mem.Context
	log        *zap.Logger

	// Sizes charged to mctx for the table itself, for the bucket array
	// and for every entry.
	headerSize int
	bucketSize int
	entrySize  int

	closed     bool
	inCallback bool
}

type options struct {
	mctx   mem.Context
	logger *zap.Logger
}

// Option configures a Table created by New.
type Option func(*options)

// WithMem makes the table charge its memory to m. By default every table
// gets its own mem.Counter.
func WithMem(m mem.Context) Option {
	return func(o *options) {
		o.mctx = m
	}
}

// WithLogger sets the logger used to trace table operations at debug level.
// Tables log nothing by default.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// New creates a table with size buckets. A prime size gives the best
// distribution. onUndefine may be nil.
//
// New panics if size is not positive. It returns ErrNoMemory if the memory
// context cannot hold the table, in which case nothing remains charged.
func New[V any](size int, onUndefine UndefineFunc[V], opts ...Option) (*Table[V], error) {
	if size <= 0 {
		panic("symtab: table size must be greater than zero")
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.mctx == nil {
		o.mctx = mem.NewCounter()
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	t := &Table[V]{
		onUndefine: onUndefine,
		mctx:       o.mctx,
		log:        o.logger,
	}
	t.headerSize = int(unsafe.Sizeof(*t))
	t.bucketSize = int(unsafe.Sizeof([]entry[V](nil)))
	t.entrySize = int(unsafe.Sizeof(entry[V]{}))

	if err := t.mctx.Get(t.headerSize); err != nil {
		return nil, err
	}
	if err := t.mctx.Get(size * t.bucketSize); err != nil {
		t.mctx.Put(t.headerSize)
		return nil, err
	}
	t.buckets = make([][]entry[V], size)

	t.log.Debug("symbol table created", zap.Int("buckets", size))
	return t, nil
}

// Lookup returns the value of the first entry in key's bucket matching key
// (ignoring ASCII case) and typ. It returns ErrNotFound if there is none.
func (t *Table[V]) Lookup(key string, typ uint32) (V, error) {
	var zero V
	if err := t.enter(); err != nil {
		return zero, err
	}

	b, i := t.find(key, typ)
	if i < 0 {
		return zero, ErrNotFound
	}
	return t.buckets[b][i].value, nil
}

// Define adds an entry for (key, typ) holding value at the tail of key's
// bucket.
//
// Define does not overwrite: if an entry matching (key, typ) exists, where
// typ 0 matches any stored type, it returns ErrExists and the table is left
// as it was. If the memory context refuses the new entry, Define returns
// ErrNoMemory and the table is left as it was.
func (t *Table[V]) Define(key string, typ uint32, value V) error {
	if err := t.enter(); err != nil {
		return err
	}

	b, i := t.find(key, typ)
	if i >= 0 {
		return ErrExists
	}

	if err := t.mctx.Get(t.entrySize); err != nil {
		return err
	}
	t.buckets[b] = append(t.buckets[b], entry[V]{
		key:   key,
		typ:   typ,
		value: value,
	})
	t.count++

	t.log.Debug("symbol defined",
		zap.String("key", key),
		zap.Uint32("type", typ),
		zap.Int("bucket", b))
	return nil
}

// Undefine removes the first entry matching (key, typ), calling the undefine
// callback with its stored key, type and value before unlinking it. The
// order of the remaining entries in the bucket is preserved. Undefine returns
// ErrNotFound if no entry matches.
func (t *Table[V]) Undefine(key string, typ uint32) error {
	if err := t.enter(); err != nil {
		return err
	}

	b, i := t.find(key, typ)
	if i < 0 {
		return ErrNotFound
	}

	e := t.buckets[b][i]
	t.undefined(&e)

	t.buckets[b] = slices.Delete(t.buckets[b], i, i+1)
	t.mctx.Put(t.entrySize)
	t.count--

	t.log.Debug("symbol undefined",
		zap.String("key", e.key),
		zap.Uint32("type", e.typ),
		zap.Int("bucket", b))
	return nil
}

// Close destroys the table. The undefine callback is invoked for every
// remaining entry, bucket by bucket and, within a bucket, in insertion order.
// All memory is then returned to the memory context.
//
// Any further call on the table, including Close, returns ErrClosed.
func (t *Table[V]) Close() error {
	if err := t.enter(); err != nil {
		return err
	}

	n := t.count
	for b := range t.buckets {
		for i := range t.buckets[b] {
			t.undefined(&t.buckets[b][i])
			t.mctx.Put(t.entrySize)
		}
		t.buckets[b] = nil
	}
	t.mctx.Put(len(t.buckets) * t.bucketSize)
	t.mctx.Put(t.headerSize)

	t.buckets = nil
	t.count = 0
	t.closed = true

	t.log.Debug("symbol table destroyed", zap.Int("entries", n))
	return nil
}

// Len returns the number of entries in the table.
func (t *Table[V]) Len() int {
	return t.count
}

// Size returns the number of buckets, or 0 once the table is closed.
func (t *Table[V]) Size() int {
	return len(t.buckets)
}

// Bucket returns the index of the bucket key belongs to.
func (t *Table[V]) Bucket(key string) int {
	if t.closed {
		return -1
	}
	return t.bucket(key)
}

func (t *Table[V]) bucket(key string) int {
	return int(uint64(Hash(key)) % uint64(len(t.buckets)))
}

func (t *Table[V]) find(key string, typ uint32) (int, int) {
	b := t.bucket(key)
	for i, e := range t.buckets[b] {
		if (typ == 0 || e.typ == typ) && equalFold(e.key, key) {
			return b, i
		}
	}
	return b, -1
}

// enter guards every public operation.
func (t *Table[V]) enter() error {
	if t == nil {
		panic("symtab: nil table")
	}
	if t.inCallback {
		panic("symtab: table used from its own undefine callback")
	}
	if t.closed {
		return ErrClosed
	}
	return nil
}

func (t *Table[V]) undefined(e *entry[V]) {
	if t.onUndefine == nil {
		return
	}

	t.inCallback = true
	defer func() { t.inCallback = false }()

	t.onUndefine(e.key, e.typ, e.value)
}
