/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"strconv"
	"testing"

	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/ndn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCs(t *testing.T, config string) *ContentStore {
	t.Helper()
	core.LoadConfigString(config)
	Configure()
	return NewContentStore()
}

func TestCsInsertAndLookup(t *testing.T) {
	cs := newTestCs(t, "")
	name, _ := ndn.NameFromString("/video/stream/frame128")
	data := ndn.NewData(name, []byte("payload"))

	assert.Nil(t, cs.Lookup(name))
	cs.Insert(data)
	assert.Equal(t, 1, cs.Size())

	cached := cs.Lookup(name)
	require.NotNil(t, cached)
	assert.Equal(t, []byte("payload"), cached.Content())

	// Lookup is exact
	prefix, _ := ndn.NameFromString("/video/stream")
	assert.Nil(t, cs.Lookup(prefix))
}

func TestCsRefresh(t *testing.T) {
	cs := newTestCs(t, "")
	name, _ := ndn.NameFromString("/a")

	cs.Insert(ndn.NewData(name, []byte("old")))
	cs.Insert(ndn.NewData(name, []byte("new")))
	assert.Equal(t, 1, cs.Size())
	assert.Equal(t, []byte("new"), cs.Lookup(name).Content())
}

func TestCsLRUEviction(t *testing.T) {
	cs := newTestCs(t, `
[tables.cs]
capacity = 2
`)

	names := make([]*ndn.Name, 3)
	for i := range names {
		names[i], _ = ndn.NameFromString("/item/" + strconv.Itoa(i))
	}

	cs.Insert(ndn.NewData(names[0], nil))
	cs.Insert(ndn.NewData(names[1], nil))

	// Touch item 0 so item 1 becomes the least recently used
	require.NotNil(t, cs.Lookup(names[0]))

	cs.Insert(ndn.NewData(names[2], nil))
	assert.Equal(t, 2, cs.Size())
	assert.NotNil(t, cs.Lookup(names[0]))
	assert.Nil(t, cs.Lookup(names[1]))
	assert.NotNil(t, cs.Lookup(names[2]))
}
