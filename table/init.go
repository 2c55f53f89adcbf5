/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"time"

	"github.com/named-data/ccnfd/core"
)

// pitCapacity is the maximum number of entries in the PIT (0 = unbounded).
var pitCapacity int

// pitGracePeriod is how long erased PIT entries are retained to absorb late duplicates.
var pitGracePeriod time.Duration

// pitMaxSeenNonces is the maximum number of nonces remembered per PIT entry.
var pitMaxSeenNonces int

// csCapacity is the maximum number of entries in the Content Store.
var csCapacity int

// csReplacementPolicy is the replacement policy used by the Content Store.
var csReplacementPolicy string

// Configure configures the tables.
func Configure() {
	pitCapacity = core.GetConfigIntDefault("tables.pit.capacity", 4096)
	pitGracePeriod = time.Duration(core.GetConfigIntDefault("tables.pit.grace_period_ms", 6000)) * time.Millisecond
	pitMaxSeenNonces = core.GetConfigIntDefault("tables.pit.max_seen_nonces", 32)
	csCapacity = core.GetConfigIntDefault("tables.cs.capacity", 1024)
	csReplacementPolicy = core.GetConfigStringDefault("tables.cs.replacement_policy", "lru")
}
