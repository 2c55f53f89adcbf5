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

// SmartFlooding is a forwarding strategy that forwards to the best Green
// nexthop when one is known, and floods Yellow nexthops otherwise.
type SmartFlooding struct {
	StrategyBase
}

func (s *SmartFlooding) String() string {
	return "Strategy-SmartFlooding"
}

// PropagateInterest forwards the Interest to the lowest-RTT Green nexthop, or
// to every eligible nexthop when no Green nexthop is usable.
func (s *SmartFlooding) PropagateInterest(pitEntry *table.PitEntry, inFace uint64, interest *ndn.Interest) bool {
	eligible := eligibleNexthops(pitEntry, inFace)

	var bestGreen *table.FibNexthopEntry
	for _, nexthop := range eligible {
		if nexthop.Status != table.Green {
			continue
		}
		if bestGreen == nil || nexthop.Rtt < bestGreen.Rtt {
			bestGreen = nexthop
		}
	}

	if bestGreen != nil {
		core.LogTrace(s, "Forwarding Interest=", interest.Name(), " to Green FaceID=", bestGreen.FaceID)
		if s.SendInterest(pitEntry, interest, bestGreen.FaceID, inFace) {
			return true
		}
	}

	// No usable Green nexthop; flood the rest
	propagatedCount := 0
	for _, nexthop := range eligible {
		if bestGreen != nil && nexthop.FaceID == bestGreen.FaceID {
			continue
		}
		core.LogTrace(s, "Forwarding Interest=", interest.Name(), " to FaceID=", nexthop.FaceID)
		if s.SendInterest(pitEntry, interest, nexthop.FaceID, inFace) {
			propagatedCount++
		}
	}
	return propagatedCount > 0
}
