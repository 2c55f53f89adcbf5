/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/cespare/xxhash"
	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/ndn"
)

// CsEntry is an entry in the Content Store.
type CsEntry struct {
	index      uint64
	Data       *ndn.Data
	InsertTime time.Time
}

// ContentStore is a name-keyed cache of previously seen Data.
type ContentStore struct {
	entries     map[uint64]*CsEntry
	capacity    int
	replacement CsReplacementPolicy
}

// NewContentStore creates a new Content Store using the configured capacity and replacement policy.
func NewContentStore() *ContentStore {
	cs := new(ContentStore)
	cs.entries = make(map[uint64]*CsEntry)
	cs.capacity = csCapacity

	// This value has already been validated from loading the configuration
	switch csReplacementPolicy {
	case "lru":
		cs.replacement = NewCsLRU(cs)
	default:
		core.LogFatal(cs, "Unknown CS replacement policy ", csReplacementPolicy)
	}
	return cs
}

func (c *ContentStore) String() string {
	return "ContentStore"
}

func hashCsName(name *ndn.Name) uint64 {
	return xxhash.Sum64String(name.String())
}

// Size returns the number of entries in the Content Store.
func (c *ContentStore) Size() int {
	return len(c.entries)
}

// Lookup returns the cached Data for the specified name, or nil if none exists.
func (c *ContentStore) Lookup(name *ndn.Name) *ndn.Data {
	entry, ok := c.entries[hashCsName(name)]
	if !ok || !entry.Data.Name().Equals(name) {
		return nil
	}
	c.replacement.BeforeUse(entry.index)
	return entry.Data
}

// Insert adds or updates the cached Data for its name.
func (c *ContentStore) Insert(data *ndn.Data) {
	index := hashCsName(data.Name())

	if entry, ok := c.entries[index]; ok {
		entry.Data = data
		entry.InsertTime = time.Now()
		c.replacement.AfterRefresh(index)
		return
	}

	c.entries[index] = &CsEntry{index: index, Data: data, InsertTime: time.Now()}
	c.replacement.AfterInsert(index)
	c.replacement.EvictEntries()
}

// eraseIndex allows the replacement policy to erase the entry with the specified index.
func (c *ContentStore) eraseIndex(index uint64) {
	delete(c.entries, index)
}
