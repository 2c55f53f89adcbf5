/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package fw

import (
	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/ndn"
	"github.com/named-data/ccnfd/table"
)

// Strategy is the forwarding decision engine: given a PIT entry and the
// candidate nexthops of its FIB entry, it decides which faces an Interest is
// propagated to.
type Strategy interface {
	String() string

	// PropagateInterest attempts to forward the Interest toward candidate
	// nexthops, excluding the face it arrived on. Returns whether the
	// Interest was sent on at least one face.
	PropagateInterest(pitEntry *table.PitEntry, inFace uint64, interest *ndn.Interest) bool
}

// StrategyBase provides common helper methods for CCNFD forwarding strategies.
type StrategyBase struct {
	forwarder *Forwarder
}

// NewStrategyBase is a helper that allows specific strategies to initialize the base.
func (s *StrategyBase) NewStrategyBase(forwarder *Forwarder) {
	s.forwarder = forwarder
}

// SendInterest sends an Interest to the specified nexthop, recording the
// attempt in the PIT entry. Returns whether the Interest was handed to the face.
func (s *StrategyBase) SendInterest(pitEntry *table.PitEntry, interest *ndn.Interest, nexthop uint64, inFace uint64) bool {
	return s.forwarder.processOutgoingInterest(pitEntry, interest, nexthop, inFace)
}

// eligibleNexthops returns the nexthops of the entry's FIB entry that are not
// Red, not the incoming face, and permitted by the retransmission allowance.
func eligibleNexthops(pitEntry *table.PitEntry, inFace uint64) []*table.FibNexthopEntry {
	fibEntry := pitEntry.FibEntry()
	if fibEntry == nil {
		return nil
	}

	eligible := make([]*table.FibNexthopEntry, 0, len(fibEntry.Nexthops()))
	for _, nexthop := range fibEntry.Nexthops() {
		if nexthop.Status == table.Red || nexthop.FaceID == inFace {
			continue
		}
		if !pitEntry.CanForwardTo(nexthop.FaceID) {
			continue
		}
		eligible = append(eligible, nexthop)
	}
	return eligible
}

// instantiateStrategy creates the strategy with the given configured name.
func instantiateStrategy(name string, forwarder *Forwarder) Strategy {
	switch name {
	case "flooding":
		s := new(Flooding)
		s.NewStrategyBase(forwarder)
		return s
	case "smart-flooding":
		s := new(SmartFlooding)
		s.NewStrategyBase(forwarder)
		return s
	default:
		core.LogFatal("Strategy", "Unknown forwarding strategy ", name)
		return nil
	}
}
