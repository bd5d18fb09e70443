// Copyright (c) 2026 D42X. All rights reserved.

package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Memory is a capacity-bounded, TTL-bounded in-memory [Cache].
//
// Entries expire a fixed duration after they were written; expiry is
// age-based and is not refreshed on access. When the store is full the
// least-recently-used entry is evicted first.
//
// All operations are pure memory manipulation under one mutex; nothing
// blocks on I/O.
type Memory struct {
	mu       sync.Mutex
	entries  map[string]*list.Element
	order    *list.List
	capacity int
	ttl      time.Duration

	// now is swappable so TTL expiry is testable without sleeping.
	now func() time.Time
}

// memoryEntry is the value stored in each LRU list element.
type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time
}

// NewMemory creates a Memory cache with the given entry ceiling and TTL.
func NewMemory(capacity int, ttl time.Duration) *Memory {
	return &Memory{
		entries:  make(map[string]*list.Element, capacity),
		order:    list.New(),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get implements [Cache].
func (m *Memory) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	element, found := m.entries[key]
	if !found {
		return "", false
	}

	entry := element.Value.(*memoryEntry)
	if !m.now().Before(entry.expiresAt) {
		// Expired entries are reaped lazily on access.
		m.order.Remove(element)
		delete(m.entries, key)
		return "", false
	}

	m.order.MoveToFront(element)
	return entry.value, true
}

// Put implements [Cache].
func (m *Memory) Put(_ context.Context, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if element, found := m.entries[key]; found {
		entry := element.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = m.now().Add(m.ttl)
		m.order.MoveToFront(element)
		return
	}

	if m.order.Len() >= m.capacity {
		m.evictOldest()
	}

	entry := &memoryEntry{
		key:       key,
		value:     value,
		expiresAt: m.now().Add(m.ttl),
	}
	m.entries[key] = m.order.PushFront(entry)
}

// Remove implements [Cache].
func (m *Memory) Remove(_ context.Context, key string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if element, found := m.entries[key]; found {
		m.order.Remove(element)
		delete(m.entries, key)
	}
}

// Clear implements [Cache].
func (m *Memory) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]*list.Element, m.capacity)
	m.order.Init()
}

// Len returns the current number of entries, expired or not.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

// evictOldest removes the least-recently-used entry. Caller holds the lock.
func (m *Memory) evictOldest() {
	oldest := m.order.Back()
	if oldest == nil {
		return
	}
	entry := oldest.Value.(*memoryEntry)
	m.order.Remove(oldest)
	delete(m.entries, entry.key)
}
