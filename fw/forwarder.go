/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"time"

	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/dispatch"
	"github.com/named-data/ccnfd/face"
	"github.com/named-data/ccnfd/ndn"
	"github.com/named-data/ccnfd/ndn/tlv"
	"github.com/named-data/ccnfd/table"
)

type pendingPacket struct {
	face dispatch.Face
	wire []byte
}

// Forwarder is the L3 forwarding core: it owns the face registry and the
// tables, demultiplexes inbound packets, and drives the Interest, Data, and
// NACK pipelines on a single forwarding thread.
type Forwarder struct {
	registry     *face.Registry
	pit          *table.Pit
	fib          *table.Fib
	cs           *table.ContentStore
	measurements *table.Measurements
	strategy     Strategy

	nacksEnabled     bool
	cacheUnsolicited bool

	pendingInterests chan pendingPacket
	pendingDatas     chan pendingPacket
	controls         chan func()
	shouldQuit       chan struct{}
	HasQuit          chan struct{}

	// Counters
	NInInterests  uint64
	NInData       uint64
	NOutInterests uint64
	NOutData      uint64
	NOutNacks     uint64
}

// NewForwarder creates a new forwarding core from the loaded configuration.
func NewForwarder() *Forwarder {
	f := new(Forwarder)
	f.registry = face.NewRegistry()
	f.pit = table.NewPit()
	f.fib = table.NewFib()
	f.cs = table.NewContentStore()
	f.measurements = table.NewMeasurements()
	f.strategy = instantiateStrategy(core.GetConfigStringDefault("fw.strategy", "smart-flooding"), f)
	f.nacksEnabled = core.GetConfigBoolDefault("fw.nacks_enabled", false)
	f.cacheUnsolicited = core.GetConfigBoolDefault("fw.cache_unsolicited_data", false)
	f.pendingInterests = make(chan pendingPacket, fwQueueSize)
	f.pendingDatas = make(chan pendingPacket, fwQueueSize)
	f.controls = make(chan func(), fwQueueSize)
	f.shouldQuit = make(chan struct{})
	f.HasQuit = make(chan struct{})
	return f
}

func (f *Forwarder) String() string {
	return "Forwarder"
}

// Fib returns the forwarder's FIB.
func (f *Forwarder) Fib() *table.Fib {
	return f.fib
}

// Registry returns the forwarder's face registry.
func (f *Forwarder) Registry() *face.Registry {
	return f.registry
}

// Measurements returns the forwarder's measurements table.
func (f *Forwarder) Measurements() *table.Measurements {
	return f.measurements
}

// AddFace registers a face: it assigns the next face ID and wires the face's
// receive callback to this forwarder. Returns the assigned face ID.
func (f *Forwarder) AddFace(face dispatch.Face) uint64 {
	face.RegisterPacketHandler(f)
	return f.registry.Add(face)
}

// RemoveFace unregisters a face and purges every reference to it from the PIT
// and FIB. PIT entries whose FIB entry is left without nexthops are erased,
// since they can no longer be satisfied by any route. The purge runs on the
// forwarding thread to serialize with in-flight pipelines.
//
// Removing a face that was never registered is a fatal precondition failure.
func (f *Forwarder) RemoveFace(face dispatch.Face) {
	f.controls <- func() {
		f.removeFace(face)
	}
}

func (f *Forwarder) removeFace(removedFace dispatch.Face) {
	faceID := removedFace.FaceID()
	if f.registry.Get(faceID) != removedFace {
		core.LogFatal(f, "Attempt to remove face that doesn't exist, FaceID=", faceID)
		return
	}

	removedFace.RegisterPacketHandler(nil)
	f.registry.Remove(faceID)
	f.fib.CleanUpFace(faceID)

	for _, entry := range f.pit.Entries() {
		entry.RemoveFaceRecords(faceID)
		if entry.FibEntry() != nil && len(entry.FibEntry().Nexthops()) == 0 && !entry.IsErased() {
			// No route can satisfy this entry anymore
			entry.ClearIncoming()
			entry.ClearOutgoing()
			f.pit.MarkErased(entry)
		}
	}
}

// Receive is the callback registered on every face. It classifies the packet
// by its declared header type and queues it for the forwarding thread.
func (f *Forwarder) Receive(incomingFace dispatch.Face, wire []byte) {
	if !incomingFace.IsUp() {
		return
	}

	pktType, err := tlv.PeekType(wire)
	if err != nil {
		core.LogInfo(f, "Unable to classify packet from FaceID=", incomingFace.FaceID(), " - DROP")
		return
	}

	switch pktType {
	case tlv.Interest:
		f.pendingInterests <- pendingPacket{incomingFace, wire}
	case tlv.Data:
		f.pendingDatas <- pendingPacket{incomingFace, wire}
	default:
		// Should be unreachable given upstream framing, so this indicates a
		// misbehaving peer or a framing bug
		core.LogError(f, "Unrecognized packet type=", pktType, " from FaceID=", incomingFace.FaceID(), " - DROP")
	}
}

// Run processes packets and timer events until Stop is called. One packet or
// event is processed to completion before the next is admitted.
func (f *Forwarder) Run() {
	sweepTimer := time.NewTicker(fwSweepInterval)
	defer sweepTimer.Stop()

	for {
		select {
		case pending := <-f.pendingInterests:
			f.processIncomingInterest(pending.face, pending.wire)
		case pending := <-f.pendingDatas:
			f.processIncomingData(pending.face, pending.wire)
		case control := <-f.controls:
			control()
		case <-sweepTimer.C:
			f.pit.Sweep(time.Now(), f.finalizeInterest)
		case <-f.shouldQuit:
			core.LogInfo(f, "Stopping forwarding thread")
			close(f.HasQuit)
			return
		}
	}
}

// Stop tells the forwarding thread to quit.
func (f *Forwarder) Stop() {
	close(f.shouldQuit)
}

//
// Interest pipeline
//

func (f *Forwarder) processIncomingInterest(incomingFace dispatch.Face, wire []byte) {
	interest, err := ndn.DecodeInterest(wire)
	if err != nil {
		core.LogInfo(f, "Unable to decode Interest from FaceID=", incomingFace.FaceID(), " (", err, ") - DROP")
		return
	}

	if interest.IsNack() {
		f.processIncomingNack(incomingFace, interest)
		return
	}

	f.NInInterests++
	core.LogTrace(f, "OnIncomingInterest: ", interest.Name(), ", FaceID=", incomingFace.FaceID())

	fibEntry := f.fib.LongestPrefixEntry(interest.Name())
	pitEntry, err := f.pit.FindOrInsert(interest.Name(), fibEntry)
	if err != nil {
		core.LogDebug(f, "PIT at capacity for Interest=", interest.Name(), " - DROP")
		f.measurements.Increment("interest.pit-limit")
		return
	}

	isNew := len(pitEntry.InRecords()) == 0 && len(pitEntry.OutRecords()) == 0

	isDuplicate := pitEntry.IsNonceSeen(interest.Nonce())
	if !isDuplicate {
		pitEntry.AddSeenNonce(interest.Nonce())
	}

	isRetransmitted := false
	if pitEntry.FindIncoming(incomingFace.FaceID()) != nil {
		// Almost certainly a retransmission, though we are trusting the consumer on that
		isRetransmitted = true
	} else {
		// Duplicates also register the requester, so genuine late joiners
		// still receive the Data
		pitEntry.AddIncoming(incomingFace.FaceID())
	}

	if isDuplicate {
		core.LogDebug(f, "Received duplicate Interest=", interest.Name(), " on FaceID=", incomingFace.FaceID())
		f.measurements.Increment("interest.duplicated")

		// Handles routing loops and recently satisfied Interests: erased
		// entries keep their seen nonces for a grace period
		if f.nacksEnabled {
			nack := interest.DeepCopy()
			nack.SetNackTag(ndn.NackLoop)
			f.sendNack(nack, incomingFace)
		}
		return
	}

	if cached := f.cs.Lookup(interest.Name()); cached != nil {
		core.LogTrace(f, "Content store hit for Interest=", interest.Name())
		f.measurements.Increment("cs.hits")
		// Satisfy from cache without touching the FIB or outgoing records
		f.satisfyPendingInterests(pitEntry, cached)
		return
	}
	f.measurements.Increment("cs.misses")

	pitEntry.UpdateLifetime(interest.Lifetime())

	if pitEntry.FindOutgoing(incomingFace.FaceID()) != nil {
		// Non-duplicate Interest from a face we forwarded to: the origin is
		// asking us for its own data. Don't suppress, but lose faith in that
		// face. This is a policy choice, not a proven invariant.
		core.LogDebug(f, "Interest=", interest.Name(), " arrived from pending nexthop FaceID=", incomingFace.FaceID())
		if fibEntry := pitEntry.FibEntry(); fibEntry != nil {
			fibEntry.UpdateStatus(incomingFace.FaceID(), table.Yellow)
		}
	} else if !isNew && !isRetransmitted {
		// Another pending outgoing attempt already covers this Interest
		core.LogDebug(f, "Suppressed Interest=", interest.Name(), " from FaceID=", incomingFace.FaceID())
		f.measurements.Increment("interest.suppressed")
		return
	}

	propagated := f.strategy.PropagateInterest(pitEntry, incomingFace.FaceID(), interest)
	if !propagated && isRetransmitted {
		// Give retransmissions another chance
		pitEntry.IncreaseAllowedRetx()
		propagated = f.strategy.PropagateInterest(pitEntry, incomingFace.FaceID(), interest)
	}

	if !propagated {
		core.LogDebug(f, "No usable nexthop for Interest=", interest.Name(), " - giving up")
		f.measurements.Increment("interest.no-faces")
		f.giveUpInterest(pitEntry, interest)
	}
}

// processOutgoingInterest records the forwarding attempt in the PIT entry and
// hands the Interest to the nexthop face. Returns whether it was sent.
func (f *Forwarder) processOutgoingInterest(pitEntry *table.PitEntry, interest *ndn.Interest, nexthop uint64, inFace uint64) bool {
	outgoingFace := f.registry.Get(nexthop)
	if outgoingFace == nil {
		core.LogError(f, "Non-existent nexthop FaceID=", nexthop, " for Interest=", interest.Name(), " - DROP")
		return false
	}
	if !outgoingFace.IsUp() {
		core.LogDebug(f, "Nexthop FaceID=", nexthop, " is down for Interest=", interest.Name(), " - skipping")
		return false
	}

	core.LogTrace(f, "OnOutgoingInterest: ", interest.Name(), ", FaceID=", nexthop)
	pitEntry.AddOutgoing(nexthop)
	f.NOutInterests++
	outgoingFace.SendPacket(interest.Encode())
	return true
}

// finalizeInterest handles a PIT entry whose lifetime expired before
// satisfaction. The entry lingers erased for the grace period so that its
// seen nonces keep absorbing late duplicates.
func (f *Forwarder) finalizeInterest(pitEntry *table.PitEntry) {
	core.LogTrace(f, "OnFinalizeInterest: ", pitEntry.Name())
	f.measurements.AddToInt("interest.expired", len(pitEntry.InRecords()))
	pitEntry.ClearIncoming()
	pitEntry.ClearOutgoing()
	f.pit.MarkErased(pitEntry)
}

//
// Data pipeline
//

func (f *Forwarder) processIncomingData(incomingFace dispatch.Face, wire []byte) {
	data, err := ndn.DecodeData(wire)
	if err != nil {
		core.LogInfo(f, "Unable to decode Data from FaceID=", incomingFace.FaceID(), " (", err, ") - DROP")
		return
	}

	f.NInData++
	core.LogTrace(f, "OnIncomingData: ", data.Name(), ", FaceID=", incomingFace.FaceID())

	pitEntry := f.pit.Lookup(data.Name())
	if pitEntry == nil {
		if f.cacheUnsolicited {
			f.cs.Insert(data)
			return
		}
		// Unsolicited Data must not poison the content store
		core.LogDebug(f, "Unsolicited Data=", data.Name(), " - DROP")
		f.measurements.Increment("data.unsolicited")
		return
	}

	outRecord := pitEntry.FindOutgoing(incomingFace.FaceID())
	if outRecord == nil {
		// We want this Data, but never asked this face for it
		if f.cacheUnsolicited {
			f.cs.Insert(data)
			return
		}
		core.LogWarn(f, "PIT entry for Data=", data.Name(), " has no outgoing record for FaceID=", incomingFace.FaceID(), " - DROP")
		f.measurements.Increment("data.outgoing-entry-missing")
		return
	}

	if fibEntry := pitEntry.FibEntry(); fibEntry != nil {
		rtt := time.Since(outRecord.SendTime)
		fibEntry.UpdateRtt(incomingFace.FaceID(), rtt)
		fibEntry.UpdateStatus(incomingFace.FaceID(), table.Green)
		f.measurements.AddSampleToEWMA("fw.rtt_ms", float64(rtt.Milliseconds()), 0.125)
	}

	f.cs.Insert(data)

	pitEntry.RemoveIncoming(incomingFace.FaceID())
	if len(pitEntry.InRecords()) == 0 {
		pitEntry.ClearOutgoing()
		f.pit.MarkErased(pitEntry)
		return
	}

	f.satisfyPendingInterests(pitEntry, data)
}

// satisfyPendingInterests sends the Data to every face in the entry's
// incoming set, then erases the entry. Also used directly for content store
// hits, where no outgoing-record or FIB bookkeeping applies.
func (f *Forwarder) satisfyPendingInterests(pitEntry *table.PitEntry, data *ndn.Data) {
	if len(pitEntry.InRecords()) == 0 {
		return
	}

	wire := data.Encode()
	for faceID := range pitEntry.InRecords() {
		downstream := f.registry.Get(faceID)
		if downstream == nil {
			continue
		}
		core.LogTrace(f, "OnOutgoingData: ", data.Name(), ", FaceID=", faceID)
		f.NOutData++
		f.measurements.Increment("data.sent")
		downstream.SendPacket(wire)
	}

	pitEntry.ClearIncoming()
	pitEntry.ClearOutgoing()
	f.pit.MarkErased(pitEntry)
}

//
// NACK sub-protocol
//

func (f *Forwarder) sendNack(nack *ndn.Interest, downstream dispatch.Face) {
	core.LogTrace(f, "OnOutgoingNack: ", nack.Name(), ", type=", nack.NackTag(), ", FaceID=", downstream.FaceID())
	f.NOutNacks++
	f.measurements.Increment("nack.sent")
	downstream.SendPacket(nack.Encode())
}

// giveUpInterest is invoked when an Interest cannot be propagated to any
// face. With NACKs disabled, the entry is left to expire naturally.
func (f *Forwarder) giveUpInterest(pitEntry *table.PitEntry, interest *ndn.Interest) {
	if !f.nacksEnabled {
		return
	}

	nack := interest.DeepCopy()
	nack.SetNackTag(ndn.NackGiveUp)
	for faceID := range pitEntry.InRecords() {
		downstream := f.registry.Get(faceID)
		if downstream == nil {
			continue
		}
		f.sendNack(nack, downstream)
	}

	pitEntry.ClearIncoming()
	pitEntry.ClearOutgoing()
	f.pit.MarkErased(pitEntry)
}

func (f *Forwarder) processIncomingNack(incomingFace dispatch.Face, nack *ndn.Interest) {
	if !f.nacksEnabled {
		core.LogDebug(f, "NACK received with sub-protocol disabled - DROP")
		return
	}

	core.LogTrace(f, "OnIncomingNack: ", nack.Name(), ", type=", nack.NackTag(), ", FaceID=", incomingFace.FaceID())

	pitEntry := f.pit.Lookup(nack.Name())
	if pitEntry == nil {
		// Someone NACKed a request we no longer track
		f.measurements.Increment("nack.non-duplicate")
		return
	}

	if pitEntry.FindOutgoing(incomingFace.FaceID()) == nil {
		return
	}

	pitEntry.SetWaitingInVain(incomingFace.FaceID())
	if fibEntry := pitEntry.FibEntry(); fibEntry != nil {
		fibEntry.UpdateStatus(incomingFace.FaceID(), table.Yellow)
	}

	if nack.NackTag() == ndn.NackGiveUp {
		// The neighbor discarded its own bookkeeping, so symmetry requires removing ours
		pitEntry.RemoveIncoming(incomingFace.FaceID())
	}

	if len(pitEntry.InRecords()) == 0 {
		// Interest was satisfied in the meantime
		f.measurements.Increment("nack.after-satisfied")
		return
	}

	if !pitEntry.AreAllOutgoingInVain() {
		// Still expecting Data from some other face
		f.measurements.Increment("nack.suppressed")
		return
	}

	retry := nack.DeepCopy()
	retry.SetNackTag(ndn.NackNone)
	if !f.strategy.PropagateInterest(pitEntry, incomingFace.FaceID(), retry) {
		f.measurements.Increment("interest.no-faces")
		f.giveUpInterest(pitEntry, retry)
	}
}
