/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package fw implements the forwarding core: the dispatcher, the Interest,
// Data, and NACK pipelines, and the forwarding strategies.
package fw

import (
	"time"

	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/utils/comparison"
)

// fwQueueSize is the size of the pipeline queues feeding the forwarding thread.
var fwQueueSize int

// fwSweepInterval is how often the PIT is swept for expired and prunable entries.
var fwSweepInterval time.Duration

// Configure configures the forwarding core.
func Configure() {
	fwQueueSize = comparison.Clamp(core.GetConfigIntDefault("fw.queue_size", 1024), 16, 65536)
	fwSweepInterval = time.Duration(core.GetConfigIntDefault("fw.sweep_interval_ms", 100)) * time.Millisecond
}
