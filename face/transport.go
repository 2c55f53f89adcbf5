/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/named-data/ccnfd/dispatch"
	"github.com/named-data/ccnfd/ndn"
)

// transport provides an interface for transports for specific face types
type transport interface {
	String() string
	setFaceID(faceID uint64)
	setLinkService(linkService *LinkService)

	RemoteURI() *ndn.URI
	LocalURI() *ndn.URI
	State() dispatch.FaceState
	MTU() int

	runReceive()

	sendFrame([]byte)

	changeState(newState dispatch.FaceState)

	// Counters
	NInBytes() uint64
	NOutBytes() uint64
}

// transportBase provides logic common between transport types
type transportBase struct {
	linkService *LinkService

	faceID    uint64
	remoteURI *ndn.URI
	localURI  *ndn.URI
	mtu       int

	state dispatch.FaceState

	hasQuit chan bool

	// Counters
	nInBytes  uint64
	nOutBytes uint64
}

func (t *transportBase) makeTransportBase(remoteURI *ndn.URI, localURI *ndn.URI, mtu int) {
	t.remoteURI = remoteURI
	t.localURI = localURI
	t.state = dispatch.Down
	t.mtu = mtu
	t.hasQuit = make(chan bool, 2)
}

func (t *transportBase) setFaceID(faceID uint64) {
	t.faceID = faceID
}

func (t *transportBase) setLinkService(linkService *LinkService) {
	t.linkService = linkService
}

//
// Getters
//

// LocalURI returns the local URI of the transport.
func (t *transportBase) LocalURI() *ndn.URI {
	return t.localURI
}

// RemoteURI returns the remote URI of the transport.
func (t *transportBase) RemoteURI() *ndn.URI {
	return t.remoteURI
}

// MTU returns the maximum transmission unit (MTU) of the transport.
func (t *transportBase) MTU() int {
	return t.mtu
}

// State returns the state of the transport.
func (t *transportBase) State() dispatch.FaceState {
	return t.state
}

//
// Counters
//

// NInBytes returns the number of link-layer bytes received on this transport.
func (t *transportBase) NInBytes() uint64 {
	return t.nInBytes
}

// NOutBytes returns the number of link-layer bytes sent on this transport.
func (t *transportBase) NOutBytes() uint64 {
	return t.nOutBytes
}

//
// Stubs
//

func (t *transportBase) runReceive() {
	// Overridden in specific transport implementation
}

func (t *transportBase) sendFrame(frame []byte) {
	// Overridden in specific transport implementation

	t.nOutBytes += uint64(len(frame))
}
