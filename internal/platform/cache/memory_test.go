// Copyright (c) 2026 D42X. All rights reserved.

package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestMemory_PutGet covers the basic hit/miss contract.
*/
func TestMemory_PutGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(4, time.Minute)

	_, ok := m.Get(ctx, "missing")
	assert.False(t, ok)

	m.Put(ctx, "k", "v")
	value, ok := m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v", value)

	// Replacement keeps a single entry.
	m.Put(ctx, "k", "v2")
	value, ok = m.Get(ctx, "k")
	require.True(t, ok)
	assert.Equal(t, "v2", value)
	assert.Equal(t, 1, m.Len())
}

/*
TestMemory_Remove verifies point invalidation.
*/
func TestMemory_Remove(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(4, time.Minute)

	m.Put(ctx, "k", "v")
	m.Remove(ctx, "k")

	_, ok := m.Get(ctx, "k")
	assert.False(t, ok)

	// Removing an absent key is a no-op, not a panic.
	m.Remove(ctx, "k")
}

/*
TestMemory_Clear verifies full invalidation.
*/
func TestMemory_Clear(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(8, time.Minute)

	for i := 0; i < 5; i++ {
		m.Put(ctx, fmt.Sprintf("k%d", i), "v")
	}
	require.Equal(t, 5, m.Len())

	m.Clear(ctx)
	assert.Equal(t, 0, m.Len())

	_, ok := m.Get(ctx, "k0")
	assert.False(t, ok)
}

/*
TestMemory_TTLExpiry verifies entries die of old age without explicit
removal, and that access does not refresh the clock.
*/
func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(4, time.Minute)

	current := time.Unix(1_700_000_000, 0)
	m.now = func() time.Time { return current }

	m.Put(ctx, "k", "v")

	// 59s later: still live.
	current = current.Add(59 * time.Second)
	_, ok := m.Get(ctx, "k")
	assert.True(t, ok)

	// The read above must not have extended the lifetime.
	current = current.Add(2 * time.Second)
	_, ok = m.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
}

/*
TestMemory_CapacityEviction verifies the entry ceiling holds and the
least-recently-used entry goes first.
*/
func TestMemory_CapacityEviction(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(3, time.Minute)

	m.Put(ctx, "a", "1")
	m.Put(ctx, "b", "2")
	m.Put(ctx, "c", "3")

	// Touch "a" so "b" becomes the coldest entry.
	_, ok := m.Get(ctx, "a")
	require.True(t, ok)

	m.Put(ctx, "d", "4")
	assert.Equal(t, 3, m.Len())

	_, ok = m.Get(ctx, "b")
	assert.False(t, ok)

	for _, key := range []string{"a", "c", "d"} {
		_, ok := m.Get(ctx, key)
		assert.True(t, ok, "expected %q to survive eviction", key)
	}
}
