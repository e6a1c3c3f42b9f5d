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
package mem

import (
	"errors"
	"fmt"
)

// ErrNoMemory is returned by Get when a context refuses an allocation.
var ErrNoMemory = errors.New("out of memory")

// Context is the allocator a symbol table draws its memory from.
//
// Get charges n bytes against the context and reports ErrNoMemory (possibly
// wrapped) when the request cannot be satisfied. Put returns n bytes that
// were previously obtained with Get.
//
// Contexts are not safe for concurrent use.
type Context interface {
	Get(n int) error
	Put(n int)
}

// Counter is an unbounded Context which keeps track of the bytes and the
// number of allocations currently outstanding.
type Counter struct {
	inUse  int
	allocs int
	peak   int
}

// NewCounter returns an empty Counter.
func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) Get(n int) error {
	if n < 0 {
		panic(fmt.Sprintf("mem: negative allocation size %d", n))
	}
	c.inUse += n
	c.allocs++
	c.peak = max(c.peak, c.inUse)
	return nil
}

func (c *Counter) Put(n int) {
	if c.allocs == 0 || n > c.inUse {
		panic(fmt.Sprintf("mem: put of %d bytes without matching get (%d bytes in %d allocations outstanding)", n, c.inUse, c.allocs))
	}
	c.inUse -= n
	c.allocs--
}

// InUse returns the number of bytes currently charged.
func (c *Counter) InUse() int { return c.inUse }

// Allocs returns the number of allocations not yet returned.
func (c *Counter) Allocs() int { return c.allocs }

// Peak returns the highest value InUse has reached.
func (c *Counter) Peak() int { return c.peak }

// Budget is a Counter that refuses allocations past a fixed limit.
type Budget struct {
	Counter
	limit int
}

// NewBudget returns a Budget allowing at most limit bytes to be in use.
func NewBudget(limit int) *Budget {
	return &Budget{limit: limit}
}

func (b *Budget) Get(n int) error {
	if b.inUse+n > b.limit {
		return fmt.Errorf("%w: requested %d bytes with %d of %d in use", ErrNoMemory, n, b.inUse, b.limit)
	}
	return b.Counter.Get(n)
}

// Limit returns the maximum number of bytes the budget hands out.
func (b *Budget) Limit() int { return b.limit }
