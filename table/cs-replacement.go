/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import "container/list"

// CsReplacementPolicy represents a cache replacement policy for the Content Store.
type CsReplacementPolicy interface {
	// AfterInsert is called after a new entry is inserted into the Content Store.
	AfterInsert(index uint64)

	// AfterRefresh is called after a new Data packet refreshes an existing entry in the Content Store.
	AfterRefresh(index uint64)

	// BeforeUse is called before an entry in the Content Store is used to satisfy a pending Interest.
	BeforeUse(index uint64)

	// EvictEntries is called to instruct the policy to evict enough entries to reduce the Content Store size below its capacity.
	EvictEntries()
}

// CsLRU is a least-recently-used replacement policy for the Content Store.
type CsLRU struct {
	cs        *ContentStore
	queue     *list.List               // front is least recently used
	locations map[uint64]*list.Element // index -> location in queue
}

// NewCsLRU creates a new LRU replacement policy for the specified Content Store.
func NewCsLRU(cs *ContentStore) *CsLRU {
	lru := new(CsLRU)
	lru.cs = cs
	lru.queue = list.New()
	lru.locations = make(map[uint64]*list.Element)
	return lru
}

// AfterInsert enqueues a newly inserted entry as most recently used.
func (l *CsLRU) AfterInsert(index uint64) {
	l.locations[index] = l.queue.PushBack(index)
}

// AfterRefresh marks a refreshed entry as most recently used.
func (l *CsLRU) AfterRefresh(index uint64) {
	if location, ok := l.locations[index]; ok {
		l.queue.Remove(location)
	}
	l.locations[index] = l.queue.PushBack(index)
}

// BeforeUse marks a used entry as most recently used.
func (l *CsLRU) BeforeUse(index uint64) {
	if location, ok := l.locations[index]; ok {
		l.queue.Remove(location)
	}
	l.locations[index] = l.queue.PushBack(index)
}

// EvictEntries evicts least recently used entries until the Content Store is within capacity.
func (l *CsLRU) EvictEntries() {
	for l.cs.Size() > l.cs.capacity && l.queue.Len() > 0 {
		front := l.queue.Front()
		index := front.Value.(uint64)
		l.queue.Remove(front)
		delete(l.locations, index)
		l.cs.eraseIndex(index)
	}
}
