/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"errors"
	"time"

	"github.com/named-data/ccnfd/ndn"
	"github.com/named-data/ccnfd/utils/priority_queue"
)

// ErrPitFull is returned when inserting an entry would exceed the PIT's capacity.
var ErrPitFull = errors.New("PIT is at capacity")

// PitInRecord records a face awaiting a response for an Interest.
type PitInRecord struct {
	Face        uint64
	ArrivalTime time.Time // arrival time of the first Interest from this face
}

// PitOutRecord records a face an Interest was forwarded to.
type PitOutRecord struct {
	Face          uint64
	SendTime      time.Time
	WaitingInVain bool // set when a NACK came back on this face
	RetxCount     int
}

// PitEntry is an entry in the PIT. All mutators run on the forwarding thread.
type PitEntry struct {
	pit *Pit
	key string

	name       *ndn.Name
	inRecords  map[uint64]*PitInRecord
	outRecords map[uint64]*PitOutRecord

	// seenNonces is a bounded FIFO of nonces observed for this name.
	seenNonces []uint32

	expirationTime time.Time
	maxAllowedRetx int

	fibEntry *FibEntry // non-owning back-reference; may have no nexthops left

	erased    bool
	pruneTime time.Time
	removed   bool
}

// Pit is the Pending Interest Table: the table of in-flight Interests, keyed
// exactly by name.
type Pit struct {
	entries map[string]*PitEntry

	capacity      int
	gracePeriod   time.Duration
	maxSeenNonces int

	deadlines priority_queue.Queue[*PitEntry, int64]
}

// NewPit creates a new PIT using the configured capacity and grace period.
func NewPit() *Pit {
	pit := new(Pit)
	pit.entries = make(map[string]*PitEntry)
	pit.capacity = pitCapacity
	pit.gracePeriod = pitGracePeriod
	pit.maxSeenNonces = pitMaxSeenNonces
	pit.deadlines = priority_queue.New[*PitEntry, int64]()
	return pit
}

// Size returns the number of entries in the PIT, including erased entries not yet pruned.
func (p *Pit) Size() int {
	return len(p.entries)
}

// Lookup returns the PIT entry for the specified name, or nil if none exists.
func (p *Pit) Lookup(name *ndn.Name) *PitEntry {
	return p.entries[name.String()]
}

// FindOrInsert returns the PIT entry for the specified name, creating it if
// absent. Returns ErrPitFull if creation would exceed the configured capacity.
func (p *Pit) FindOrInsert(name *ndn.Name, fibEntry *FibEntry) (*PitEntry, error) {
	key := name.String()
	if entry, ok := p.entries[key]; ok {
		return entry, nil
	}

	if p.capacity > 0 && len(p.entries) >= p.capacity {
		return nil, ErrPitFull
	}

	entry := new(PitEntry)
	entry.pit = p
	entry.key = key
	entry.name = name.DeepCopy()
	entry.inRecords = make(map[uint64]*PitInRecord)
	entry.outRecords = make(map[uint64]*PitOutRecord)
	entry.fibEntry = fibEntry
	p.entries[key] = entry
	return entry, nil
}

// MarkErased logically removes the entry: its in/out sets are expected to be
// empty, but the entry (and its seen nonces) linger for the grace period to
// absorb late duplicates and loops.
func (p *Pit) MarkErased(entry *PitEntry) {
	if entry.removed {
		return
	}
	entry.erased = true
	entry.pruneTime = time.Now().Add(p.gracePeriod)
	p.deadlines.Push(entry, entry.pruneTime.UnixNano())
}

// RemoveEntry physically removes the entry from the PIT.
func (p *Pit) RemoveEntry(entry *PitEntry) {
	if entry.removed {
		return
	}
	entry.removed = true
	delete(p.entries, entry.key)
}

// Sweep processes all deadlines up to now. Erased entries past their grace
// period are physically removed; entries whose lifetime expired are handed to
// onExpired for finalization. Runs on the forwarding thread.
func (p *Pit) Sweep(now time.Time, onExpired func(*PitEntry)) {
	for p.deadlines.Len() > 0 && p.deadlines.PeekPriority() <= now.UnixNano() {
		entry := p.deadlines.Pop()
		if entry.removed {
			continue
		}

		if entry.erased {
			if !now.Before(entry.pruneTime) {
				p.RemoveEntry(entry)
			} else {
				p.deadlines.Push(entry, entry.pruneTime.UnixNano())
			}
			continue
		}

		if !now.Before(entry.expirationTime) {
			onExpired(entry)
		} else {
			// Lifetime was refreshed since this deadline was queued
			p.deadlines.Push(entry, entry.expirationTime.UnixNano())
		}
	}
}

// Name returns the name of the PIT entry.
func (e *PitEntry) Name() *ndn.Name {
	return e.name
}

// FibEntry returns the FIB entry backing this PIT entry.
func (e *PitEntry) FibEntry() *FibEntry {
	return e.fibEntry
}

// InRecords returns the per-face incoming records of the entry.
func (e *PitEntry) InRecords() map[uint64]*PitInRecord {
	return e.inRecords
}

// OutRecords returns the per-face outgoing records of the entry.
func (e *PitEntry) OutRecords() map[uint64]*PitOutRecord {
	return e.outRecords
}

// IsErased returns whether the entry has been logically removed.
func (e *PitEntry) IsErased() bool {
	return e.erased
}

// ExpirationTime returns the lifetime deadline of the entry.
func (e *PitEntry) ExpirationTime() time.Time {
	return e.expirationTime
}

// IsNonceSeen returns whether the specified nonce has been observed for this name.
func (e *PitEntry) IsNonceSeen(nonce uint32) bool {
	for _, seen := range e.seenNonces {
		if seen == nonce {
			return true
		}
	}
	return false
}

// AddSeenNonce records a nonce, evicting the oldest if the bounded set is full.
func (e *PitEntry) AddSeenNonce(nonce uint32) {
	if len(e.seenNonces) >= e.pit.maxSeenNonces {
		copy(e.seenNonces, e.seenNonces[1:])
		e.seenNonces = e.seenNonces[:len(e.seenNonces)-1]
	}
	e.seenNonces = append(e.seenNonces, nonce)
}

// UpdateLifetime extends the entry's lifetime deadline. An erased entry being
// refreshed is revived.
func (e *PitEntry) UpdateLifetime(lifetime time.Duration) {
	e.erased = false
	deadline := time.Now().Add(lifetime)
	if deadline.After(e.expirationTime) {
		e.expirationTime = deadline
		e.pit.deadlines.Push(e, deadline.UnixNano())
	}
}

// FindIncoming returns the incoming record for the specified face, or nil if none exists.
func (e *PitEntry) FindIncoming(faceID uint64) *PitInRecord {
	return e.inRecords[faceID]
}

// AddIncoming creates an incoming record for the specified face if none exists.
func (e *PitEntry) AddIncoming(faceID uint64) *PitInRecord {
	if record, ok := e.inRecords[faceID]; ok {
		return record
	}
	record := &PitInRecord{Face: faceID, ArrivalTime: time.Now()}
	e.inRecords[faceID] = record
	return record
}

// RemoveIncoming removes the incoming record for the specified face, if present.
func (e *PitEntry) RemoveIncoming(faceID uint64) {
	delete(e.inRecords, faceID)
}

// FindOutgoing returns the outgoing record for the specified face, or nil if none exists.
func (e *PitEntry) FindOutgoing(faceID uint64) *PitOutRecord {
	return e.outRecords[faceID]
}

// AddOutgoing creates or refreshes the outgoing record for the specified
// face. Refreshing an existing record counts a retransmission and clears its
// in-vain flag.
func (e *PitEntry) AddOutgoing(faceID uint64) *PitOutRecord {
	if record, ok := e.outRecords[faceID]; ok {
		record.SendTime = time.Now()
		record.WaitingInVain = false
		record.RetxCount++
		return record
	}
	record := &PitOutRecord{Face: faceID, SendTime: time.Now()}
	e.outRecords[faceID] = record
	return record
}

// SetWaitingInVain marks the outgoing record for the specified face as in vain.
func (e *PitEntry) SetWaitingInVain(faceID uint64) {
	if record, ok := e.outRecords[faceID]; ok {
		record.WaitingInVain = true
	}
}

// AreAllOutgoingInVain returns whether every outgoing record is marked in vain.
func (e *PitEntry) AreAllOutgoingInVain() bool {
	for _, record := range e.outRecords {
		if !record.WaitingInVain {
			return false
		}
	}
	return true
}

// IncreaseAllowedRetx grants one additional propagation attempt per nexthop.
func (e *PitEntry) IncreaseAllowedRetx() {
	e.maxAllowedRetx++
}

// CanForwardTo returns whether the Interest may be sent to the specified face:
// either no attempt has been made yet, or the retransmission allowance permits another.
func (e *PitEntry) CanForwardTo(faceID uint64) bool {
	record, ok := e.outRecords[faceID]
	if !ok {
		return true
	}
	return record.RetxCount < e.maxAllowedRetx
}

// ClearIncoming removes all incoming records from the entry.
func (e *PitEntry) ClearIncoming() {
	e.inRecords = make(map[uint64]*PitInRecord)
}

// ClearOutgoing removes all outgoing records from the entry.
func (e *PitEntry) ClearOutgoing() {
	e.outRecords = make(map[uint64]*PitOutRecord)
}

// RemoveFaceRecords removes all references to the specified face from the entry.
func (e *PitEntry) RemoveFaceRecords(faceID uint64) {
	delete(e.inRecords, faceID)
	delete(e.outRecords, faceID)
}

// Entries returns all live PIT entries. Intended for face cleanup and tests.
func (p *Pit) Entries() []*PitEntry {
	entries := make([]*PitEntry, 0, len(p.entries))
	for _, entry := range p.entries {
		entries = append(entries, entry)
	}
	return entries
}
