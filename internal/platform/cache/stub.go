// Copyright (c) 2026 D42X. All rights reserved.

package cache

import (
	"context"
	"sync"
)

// Stub is a deterministic, unbounded [Cache] for tests: no TTL, no
// eviction, no clock. It also counts operations so tests can assert on
// cache traffic without instrumenting production code.
type Stub struct {
	mu      sync.Mutex
	values  map[string]string
	Gets    int
	Puts    int
	Removes int
	Clears  int
}

// NewStub creates an empty Stub.
func NewStub() *Stub {
	return &Stub{values: make(map[string]string)}
}

// Get implements [Cache].
func (s *Stub) Get(_ context.Context, key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Gets++
	value, ok := s.values[key]
	return value, ok
}

// Put implements [Cache].
func (s *Stub) Put(_ context.Context, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Puts++
	s.values[key] = value
}

// Remove implements [Cache].
func (s *Stub) Remove(_ context.Context, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Removes++
	delete(s.values, key)
}

// Clear implements [Cache].
func (s *Stub) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Clears++
	s.values = make(map[string]string)
}

// Seed inserts a value without bumping the Put counter, for arranging
// pre-existing cache state in tests.
func (s *Stub) Seed(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// Len returns the number of stored entries.
func (s *Stub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.values)
}
