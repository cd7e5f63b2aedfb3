/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package handler

import (
	"sync"

	"github.com/bits-and-blooms/bitset"
	"github.com/cockroachdb/errors"

	"github.com/botobag/routes/graphql/executor"
)

// OperationCache caches executor.PreparedOperation created from a query to save parsing and
// validation efforts. Keys are built by OperationCacheKey.
type OperationCache interface {
	// Get looks up operation for the given key.
	Get(key string) (operation *executor.PreparedOperation, ok bool)

	// Add adds an operation that associated with the key to the cache.
	Add(key string, operation *executor.PreparedOperation)
}

// OperationCacheKey returns the key for caching the operation selected by operationName in the
// query. A document with multiple operations is prepared once per operation name.
func OperationCacheKey(operationName string, query string) string {
	return operationName + "\x00" + query
}

type lruEntry struct {
	key       string
	operation *executor.PreparedOperation

	// Index of this entry in the allocator
	index uint

	// Next and previous pointers in the doubly-linked list of elements. To simplify the
	// implementation, internally a list l is implemented as a ring, such that &l.root is both the
	// next element of the last list element (l.Back()) and the previous element of the first list
	// element (l.Front()).
	next, prev *lruEntry
}

// lruEntryAllocator preallocates all entries for the cache and hands them out on demand.
type lruEntryAllocator struct {
	entries []lruEntry
	// Allocated entries will have their corresponding bits set in the bitset.
	allocated *bitset.BitSet
}

func newLRUEntryAllocator(maxEntries uint) lruEntryAllocator {
	allocator := lruEntryAllocator{
		entries:   make([]lruEntry, maxEntries),
		allocated: bitset.New(maxEntries),
	}
	for i := range allocator.entries {
		allocator.entries[i].index = uint(i)
	}
	return allocator
}

// New allocates an entry to store given key and operation. It panics if there's no any entry
// available to allocate.
func (allocator *lruEntryAllocator) New(key string, operation *executor.PreparedOperation) *lruEntry {
	// Search allocated to find an unused entry.
	i, found := allocator.allocated.NextClear(0)
	if !found || i >= uint(len(allocator.entries)) {
		panic("LRUOperationCache: no available entry to return")
	}

	// Reserve the entry.
	entry := &allocator.entries[i]
	allocator.allocated.Set(i)

	entry.key = key
	entry.operation = operation

	return entry
}

// Free deallocates the entry. It doesn't free the memory. Instead, it marks the entry to be free for
// later reuse.
func (allocator *lruEntryAllocator) Free(entry *lruEntry) {
	// Clear reference.
	entry.key = ""
	entry.operation = nil
	allocator.allocated.Clear(entry.index)
}

// lruEvictList is a doubly linked list that maintains eviction list for LRUOperationCache. Its
// implementation mirrors from container/list [0] and only provides operation used by
// LRUOperationCache.
//
// [0]: https://go.googlesource.com/go/+/5bc1fd4/src/container/list/list.go
type lruEvictList struct {
	// Allocator that manages allocation and deallocation for the entry
	allocator lruEntryAllocator

	// sentinel list element, only &root, root.prev, and root.next are used
	root lruEntry

	// current list length excluding (this) sentinel element
	len uint
}

func newLRUEvictList(maxEntries uint) *lruEvictList {
	l := &lruEvictList{
		allocator: newLRUEntryAllocator(maxEntries),
	}
	l.root.next = &l.root
	l.root.prev = &l.root
	return l
}

// Len returns the number of elements of list l.
func (l *lruEvictList) Len() uint { return l.len }

// Back returns the last element of list l or nil if the list is empty.
func (l *lruEvictList) Back() *lruEntry {
	if l.len == 0 {
		return nil
	}
	return l.root.prev
}

// insert inserts e after at, increments l.len, and returns e.
func (l *lruEvictList) insert(e, at *lruEntry) *lruEntry {
	n := at.next
	at.next = e
	e.prev = at
	e.next = n
	n.prev = e
	l.len++
	return e
}

// Remove removes e from l and notifies allocator to mark it as free. The given entry must not be
// nil.
func (l *lruEvictList) Remove(e *lruEntry) {
	e.prev.next = e.next
	e.next.prev = e.prev
	e.next = nil // avoid memory leaks
	e.prev = nil // avoid memory leaks
	l.len--
	l.allocator.Free(e)
}

// PushFront inserts an new entry e with given values at the front of list l and returns e.
func (l *lruEvictList) PushFront(key string, operation *executor.PreparedOperation) *lruEntry {
	return l.insert(l.allocator.New(key, operation), &l.root)
}

// MoveToFront moves element e to the front of list l.
func (l *lruEvictList) MoveToFront(e *lruEntry) {
	if l.root.next == e {
		return
	}

	e.prev.next = e.next
	e.next.prev = e.prev

	n := l.root.next
	l.root.next = e
	e.prev = &l.root
	e.next = n
	n.prev = e
}

// LRUOperationCache is a thread-safe LRU cache that implements OperationCache. It serves as default
// operation cache for LLHandler. Most part of implementation directly derived from groupcache/lru
// [0] with sync.Mutex added to make it safe for concurrent access.
//
// [0]: https://github.com/golang/groupcache/blob/master/lru/lru.go
type LRUOperationCache struct {
	// The maximum number of cache operations before an item is evicted. It must be greater than 0.
	maxEntries uint

	// m guards cache and evictList.
	m         sync.Mutex
	cache     map[string]*lruEntry
	evictList *lruEvictList
}

var _ OperationCache = (*LRUOperationCache)(nil)

// ErrZeroCacheSize is returned by NewLRUOperationCache when size is zero.
var ErrZeroCacheSize = errors.New("LRUOperationCache: must specified a non-zero cache size")

// NewLRUOperationCache creates a new LRUOperationCache with given size.
func NewLRUOperationCache(maxEntries uint) (*LRUOperationCache, error) {
	if maxEntries == 0 {
		return nil, ErrZeroCacheSize
	}

	return &LRUOperationCache{
		maxEntries: maxEntries,
		cache:      make(map[string]*lruEntry, maxEntries),
		evictList:  newLRUEvictList(maxEntries),
	}, nil
}

// Get implements OperationCache.
func (c *LRUOperationCache) Get(key string) (operation *executor.PreparedOperation, ok bool) {
	c.m.Lock()
	defer c.m.Unlock()

	if entry, hit := c.cache[key]; hit {
		c.evictList.MoveToFront(entry)
		return entry.operation, true
	}

	return nil, false
}

// Add implements OperationCache.
func (c *LRUOperationCache) Add(key string, operation *executor.PreparedOperation) {
	c.m.Lock()
	defer c.m.Unlock()

	if e, ok := c.cache[key]; ok {
		c.evictList.MoveToFront(e)
		e.operation = operation
		return
	}

	if c.evictList.Len() >= c.maxEntries {
		c.removeOldest()
	}
	c.cache[key] = c.evictList.PushFront(key, operation)
}

// Len returns the number of operations in the cache.
func (c *LRUOperationCache) Len() int {
	c.m.Lock()
	defer c.m.Unlock()
	return int(c.evictList.Len())
}

// removeOldest removes the oldest entry from the cache. c.m must be held.
func (c *LRUOperationCache) removeOldest() {
	e := c.evictList.Back()
	if e != nil {
		delete(c.cache, e.key)
		c.evictList.Remove(e)
	}
}

// NopOperationCache does nothing. Passing it to OverrideOperationCache disables caching.
type NopOperationCache struct{}

var _ OperationCache = NopOperationCache{}

// Get implements OperationCache.
func (NopOperationCache) Get(key string) (operation *executor.PreparedOperation, ok bool) {
	return
}

// Add implements OperationCache.
func (NopOperationCache) Add(key string, operation *executor.PreparedOperation) {}
