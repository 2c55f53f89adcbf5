/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"testing"
	"time"

	"github.com/named-data/ccnfd/ndn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFibInsertAndExactMatch(t *testing.T) {
	fib := NewFib()
	prefix, _ := ndn.NameFromString("/video/stream")

	entry := fib.InsertNexthop(prefix, 1)
	require.NotNil(t, entry)
	assert.Equal(t, 1, fib.Size())
	assert.True(t, entry.Name().Equals(prefix))

	// New nexthops start Yellow
	nexthop := entry.FindNexthop(1)
	require.NotNil(t, nexthop)
	assert.Equal(t, Yellow, nexthop.Status)
	assert.Equal(t, time.Duration(0), nexthop.Rtt)

	// Inserting the same nexthop again does not duplicate it
	fib.InsertNexthop(prefix, 1)
	assert.Equal(t, 1, len(entry.Nexthops()))

	fib.InsertNexthop(prefix, 2)
	assert.Equal(t, 2, len(entry.Nexthops()))
	assert.Equal(t, 1, fib.Size())

	assert.Same(t, entry, fib.FindExactEntry(prefix))
	other, _ := ndn.NameFromString("/video")
	assert.Nil(t, fib.FindExactEntry(other))
}

func TestFibLongestPrefixMatch(t *testing.T) {
	fib := NewFib()
	short, _ := ndn.NameFromString("/video")
	long, _ := ndn.NameFromString("/video/stream")
	fib.InsertNexthop(short, 1)
	fib.InsertNexthop(long, 2)

	name, _ := ndn.NameFromString("/video/stream/frame128")
	entry := fib.LongestPrefixEntry(name)
	require.NotNil(t, entry)
	assert.True(t, entry.Name().Equals(long))

	name, _ = ndn.NameFromString("/video/other")
	entry = fib.LongestPrefixEntry(name)
	require.NotNil(t, entry)
	assert.True(t, entry.Name().Equals(short))

	name, _ = ndn.NameFromString("/audio")
	assert.Nil(t, fib.LongestPrefixEntry(name))
}

func TestFibStatusAndRtt(t *testing.T) {
	fib := NewFib()
	prefix, _ := ndn.NameFromString("/a")
	entry := fib.InsertNexthop(prefix, 1)

	entry.UpdateStatus(1, Green)
	assert.Equal(t, Green, entry.FindNexthop(1).Status)

	// Updating an absent nexthop is a no-op
	entry.UpdateStatus(2, Green)
	assert.Nil(t, entry.FindNexthop(2))

	// First sample sets the estimate directly
	entry.UpdateRtt(1, 100*time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, entry.FindNexthop(1).Rtt)

	// Subsequent samples move it by the smoothing gain
	entry.UpdateRtt(1, 200*time.Millisecond)
	rtt := entry.FindNexthop(1).Rtt
	assert.Greater(t, rtt, 100*time.Millisecond)
	assert.Less(t, rtt, 200*time.Millisecond)
}

func TestFibRemoveEntry(t *testing.T) {
	fib := NewFib()
	prefix, _ := ndn.NameFromString("/a/b/c")
	fib.InsertNexthop(prefix, 1)

	assert.False(t, fib.RemoveEntry(mustName(t, "/a/b")))
	assert.True(t, fib.RemoveEntry(prefix))
	assert.Equal(t, 0, fib.Size())
	assert.Nil(t, fib.FindExactEntry(prefix))
	assert.False(t, fib.RemoveEntry(prefix))
}

func TestFibCleanUpFace(t *testing.T) {
	fib := NewFib()
	shared, _ := ndn.NameFromString("/shared")
	only, _ := ndn.NameFromString("/only/via/two")
	fib.InsertNexthop(shared, 1)
	fib.InsertNexthop(shared, 2)
	fib.InsertNexthop(only, 2)
	assert.Equal(t, 2, fib.Size())

	fib.CleanUpFace(2)

	// The shared entry loses one nexthop, the exclusive entry is removed
	entry := fib.FindExactEntry(shared)
	require.NotNil(t, entry)
	assert.Equal(t, 1, len(entry.Nexthops()))
	assert.Nil(t, entry.FindNexthop(2))

	assert.Nil(t, fib.FindExactEntry(only))
	assert.Equal(t, 1, fib.Size())
}

func mustName(t *testing.T, s string) *ndn.Name {
	t.Helper()
	name, err := ndn.NameFromString(s)
	require.NoError(t, err)
	return name
}
