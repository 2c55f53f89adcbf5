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

	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/ndn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPit(t *testing.T, config string) *Pit {
	t.Helper()
	core.LoadConfigString(config)
	Configure()
	return NewPit()
}

func TestPitFindOrInsert(t *testing.T) {
	pit := newTestPit(t, "")
	name, _ := ndn.NameFromString("/video/stream/frame128")

	entry, err := pit.FindOrInsert(name, nil)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 1, pit.Size())
	assert.True(t, entry.Name().Equals(name))
	assert.Equal(t, 0, len(entry.InRecords()))
	assert.Equal(t, 0, len(entry.OutRecords()))

	again, err := pit.FindOrInsert(name, nil)
	require.NoError(t, err)
	assert.Same(t, entry, again)
	assert.Equal(t, 1, pit.Size())

	assert.Same(t, entry, pit.Lookup(name))
	other, _ := ndn.NameFromString("/video/other")
	assert.Nil(t, pit.Lookup(other))
}

func TestPitCapacity(t *testing.T) {
	pit := newTestPit(t, `
[tables.pit]
capacity = 2
`)

	for i, s := range []string{"/a", "/b"} {
		name, _ := ndn.NameFromString(s)
		_, err := pit.FindOrInsert(name, nil)
		require.NoError(t, err, "insert %d", i)
	}

	name, _ := ndn.NameFromString("/c")
	_, err := pit.FindOrInsert(name, nil)
	assert.ErrorIs(t, err, ErrPitFull)

	// Existing entries are still reachable at capacity
	existing, _ := ndn.NameFromString("/a")
	_, err = pit.FindOrInsert(existing, nil)
	assert.NoError(t, err)
}

func TestPitSeenNonces(t *testing.T) {
	pit := newTestPit(t, `
[tables.pit]
max_seen_nonces = 3
`)
	name, _ := ndn.NameFromString("/a")
	entry, _ := pit.FindOrInsert(name, nil)

	assert.False(t, entry.IsNonceSeen(1))
	entry.AddSeenNonce(1)
	entry.AddSeenNonce(2)
	entry.AddSeenNonce(3)
	assert.True(t, entry.IsNonceSeen(1))
	assert.True(t, entry.IsNonceSeen(3))

	// Oldest nonce is evicted once the bounded set is full
	entry.AddSeenNonce(4)
	assert.False(t, entry.IsNonceSeen(1))
	assert.True(t, entry.IsNonceSeen(2))
	assert.True(t, entry.IsNonceSeen(4))
}

func TestPitInOutRecords(t *testing.T) {
	pit := newTestPit(t, "")
	name, _ := ndn.NameFromString("/a")
	entry, _ := pit.FindOrInsert(name, nil)

	assert.Nil(t, entry.FindIncoming(1))
	entry.AddIncoming(1)
	entry.AddIncoming(2)
	assert.NotNil(t, entry.FindIncoming(1))
	assert.Equal(t, 2, len(entry.InRecords()))

	// AddIncoming is idempotent per face
	first := entry.FindIncoming(1)
	assert.Same(t, first, entry.AddIncoming(1))

	entry.RemoveIncoming(1)
	assert.Nil(t, entry.FindIncoming(1))

	out := entry.AddOutgoing(3)
	assert.Equal(t, 0, out.RetxCount)
	assert.False(t, out.WaitingInVain)

	entry.SetWaitingInVain(3)
	assert.True(t, entry.FindOutgoing(3).WaitingInVain)
	assert.True(t, entry.AreAllOutgoingInVain())

	// Refreshing the record counts a retransmission and clears in-vain
	again := entry.AddOutgoing(3)
	assert.Same(t, out, again)
	assert.Equal(t, 1, again.RetxCount)
	assert.False(t, again.WaitingInVain)
	assert.False(t, entry.AreAllOutgoingInVain())

	entry.ClearIncoming()
	entry.ClearOutgoing()
	assert.Equal(t, 0, len(entry.InRecords()))
	assert.Equal(t, 0, len(entry.OutRecords()))
}

func TestPitRetransmissionAllowance(t *testing.T) {
	pit := newTestPit(t, "")
	name, _ := ndn.NameFromString("/a")
	entry, _ := pit.FindOrInsert(name, nil)

	assert.True(t, entry.CanForwardTo(1))
	entry.AddOutgoing(1)
	assert.False(t, entry.CanForwardTo(1))

	entry.IncreaseAllowedRetx()
	assert.True(t, entry.CanForwardTo(1))
	entry.AddOutgoing(1)
	assert.False(t, entry.CanForwardTo(1))
}

func TestPitEraseAndSweep(t *testing.T) {
	pit := newTestPit(t, `
[tables.pit]
grace_period_ms = 50
`)
	name, _ := ndn.NameFromString("/a")
	entry, _ := pit.FindOrInsert(name, nil)
	entry.AddSeenNonce(42)

	pit.MarkErased(entry)
	assert.True(t, entry.IsErased())
	assert.Equal(t, 1, pit.Size())

	// Erased entries keep absorbing duplicates during the grace period
	assert.True(t, entry.IsNonceSeen(42))

	// Not yet expired
	pit.Sweep(time.Now(), func(*PitEntry) { t.Fatal("unexpected expiry") })
	assert.Equal(t, 1, pit.Size())

	// Past the grace period the entry is physically removed
	pit.Sweep(time.Now().Add(100*time.Millisecond), func(*PitEntry) { t.Fatal("unexpected expiry") })
	assert.Equal(t, 0, pit.Size())
	assert.Nil(t, pit.Lookup(name))
}

func TestPitLifetimeExpiry(t *testing.T) {
	pit := newTestPit(t, "")
	name, _ := ndn.NameFromString("/a")
	entry, _ := pit.FindOrInsert(name, nil)
	entry.AddIncoming(1)
	entry.UpdateLifetime(10 * time.Millisecond)

	expired := 0
	pit.Sweep(time.Now(), func(*PitEntry) { t.Fatal("not yet expired") })

	pit.Sweep(time.Now().Add(time.Second), func(e *PitEntry) {
		expired++
		assert.Same(t, entry, e)
	})
	assert.Equal(t, 1, expired)
}

func TestPitUpdateLifetimeRevivesErased(t *testing.T) {
	pit := newTestPit(t, "")
	name, _ := ndn.NameFromString("/a")
	entry, _ := pit.FindOrInsert(name, nil)

	pit.MarkErased(entry)
	assert.True(t, entry.IsErased())

	entry.UpdateLifetime(time.Second)
	assert.False(t, entry.IsErased())
}

func TestPitRemoveFaceRecords(t *testing.T) {
	pit := newTestPit(t, "")
	name, _ := ndn.NameFromString("/a")
	entry, _ := pit.FindOrInsert(name, nil)
	entry.AddIncoming(1)
	entry.AddIncoming(2)
	entry.AddOutgoing(1)

	entry.RemoveFaceRecords(1)
	assert.Nil(t, entry.FindIncoming(1))
	assert.Nil(t, entry.FindOutgoing(1))
	assert.NotNil(t, entry.FindIncoming(2))
}
