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

// Flooding is a forwarding strategy that forwards Interests to every eligible nexthop.
type Flooding struct {
	StrategyBase
}

func (s *Flooding) String() string {
	return "Strategy-Flooding"
}

// PropagateInterest forwards the Interest to all non-Red nexthops except the incoming face.
func (s *Flooding) PropagateInterest(pitEntry *table.PitEntry, inFace uint64, interest *ndn.Interest) bool {
	propagatedCount := 0
	for _, nexthop := range eligibleNexthops(pitEntry, inFace) {
		core.LogTrace(s, "Forwarding Interest=", interest.Name(), " to FaceID=", nexthop.FaceID)
		if s.SendInterest(pitEntry, interest, nexthop.FaceID, inFace) {
			propagatedCount++
		}
	}
	return propagatedCount > 0
}
