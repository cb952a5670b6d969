// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package lru

import (
	"strconv"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestGetSet(t *testing.T) {
	c := New[string, int](4)
	if _, ok := c.Get("a"); ok {
		t.Error("Get on empty cache found a value")
	}
	c.Set("a", 1)
	c.Set("a", 2)
	if v, ok := c.Get("a"); !ok || v != 2 {
		t.Errorf("Get(a) = %v, %v, want 2, true", v, ok)
	}
	if got := c.Stats(); got != (Stats{Len: 1, Capacity: 4, Hits: 1, Misses: 1}) {
		t.Errorf("Stats() = %+v", got)
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](3)
	for i := range 3 {
		c.Set(i, i)
	}
	c.Get(0)
	c.Set(3, 3)

	if _, ok := c.Get(1); ok {
		t.Error("key 1 should have been evicted")
	}
	if diff := cmp.Diff([]int{3, 0, 2}, c.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestClear(t *testing.T) {
	c := New[int, int](0)
	if got := c.Stats().Capacity; got != 1 {
		t.Errorf("Capacity = %d, want 1", got)
	}
	c.Set(1, 1)
	c.Set(2, 2)
	if c.Len() != 1 {
		t.Errorf("Len() = %d, want 1", c.Len())
	}
	c.Clear()
	if c.Len() != 0 || len(c.Keys()) != 0 {
		t.Error("Clear left entries behind")
	}
	c.Set(5, 5)
	if v, ok := c.Get(5); !ok || v != 5 {
		t.Errorf("Get after Clear = %v, %v", v, ok)
	}
}

func TestConcurrent(t *testing.T) {
	c := New[string, int](64)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				k := strconv.Itoa((g*200 + i) % 100)
				c.Set(k, i)
				c.Get(k)
			}
		}()
	}
	wg.Wait()
	if n := c.Len(); n > 64 {
		t.Errorf("Len() = %d exceeds capacity", n)
	}
}
