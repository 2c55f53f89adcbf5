/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package dispatch holds the narrow interfaces shared between the face and
// forwarding packages (to avoid a circular dependency between them).
package dispatch

import "github.com/named-data/ccnfd/ndn"

// FaceState indicates the state of a face.
type FaceState int

const (
	// Up indicates the face is up.
	Up FaceState = iota
	// Down indicates the face is down.
	Down
	// AdminDown indicates the face is administratively down.
	AdminDown
)

func (s FaceState) String() string {
	switch s {
	case Up:
		return "Up"
	case Down:
		return "Down"
	default:
		return "AdminDown"
	}
}

// Face provides the interface that attachment points must satisfy for the forwarding core to consume them.
type Face interface {
	String() string
	SetFaceID(faceID uint64)

	FaceID() uint64
	LocalURI() *ndn.URI
	RemoteURI() *ndn.URI

	State() FaceState
	IsUp() bool

	SendPacket(wire []byte)

	// RegisterPacketHandler sets the handler that received packets are delivered to.
	RegisterPacketHandler(handler PacketHandler)

	// Close brings the face down and releases its transport.
	Close()
}
