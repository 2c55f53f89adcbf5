/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package dispatch

// PacketHandler provides the interface that the forwarding core satisfies to receive packets from faces.
type PacketHandler interface {
	String() string

	// Receive delivers a received packet from the specified face.
	Receive(face Face, wire []byte)
}
