package mem_test

import (
	"testing"

	"github.com/ostafen/symtab/pkg/mem"
	"github.com/stretchr/testify/require"
)

func TestCounter(t *testing.T) {
	c := mem.NewCounter()

	require.NoError(t, c.Get(16))
	require.NoError(t, c.Get(32))
	require.Equal(t, 48, c.InUse())
	require.Equal(t, 2, c.Allocs())

	c.Put(16)
	require.Equal(t, 32, c.InUse())
	require.Equal(t, 1, c.Allocs())
	require.Equal(t, 48, c.Peak())

	c.Put(32)
	require.Zero(t, c.InUse())
	require.Zero(t, c.Allocs())
}

func TestCounterUnbalancedPut(t *testing.T) {
	c := mem.NewCounter()
	require.Panics(t, func() { c.Put(1) })

	require.NoError(t, c.Get(4))
	require.Panics(t, func() { c.Put(8) })
}

func TestBudget(t *testing.T) {
	b := mem.NewBudget(100)

	require.NoError(t, b.Get(60))
	require.NoError(t, b.Get(40))

	err := b.Get(1)
	require.ErrorIs(t, err, mem.ErrNoMemory)
	require.Equal(t, 100, b.InUse())
	require.Equal(t, 2, b.Allocs())

	b.Put(40)
	require.NoError(t, b.Get(1))
	require.Equal(t, 61, b.InUse())
	require.Equal(t, 100, b.Limit())
}

func TestBudgetZero(t *testing.T) {
	b := mem.NewBudget(0)
	require.NoError(t, b.Get(0))
	require.ErrorIs(t, b.Get(1), mem.ErrNoMemory)
}
