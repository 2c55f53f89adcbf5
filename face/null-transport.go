/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"strconv"

	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/dispatch"
	"github.com/named-data/ccnfd/ndn"
	"github.com/named-data/ccnfd/ndn/tlv"
)

// NullTransport is a transport that drops all packets.
type NullTransport struct {
	transportBase
}

var _ transport = &NullTransport{}

// MakeNullTransport makes a NullTransport.
func MakeNullTransport() *NullTransport {
	t := new(NullTransport)
	t.makeTransportBase(ndn.MakeNullFaceURI(), ndn.MakeNullFaceURI(), tlv.MaxPacketSize)
	t.state = dispatch.Up
	return t
}

func (t *NullTransport) String() string {
	return "NullTransport, FaceID=" + strconv.FormatUint(t.faceID, 10) + ", RemoteURI=" + t.remoteURI.String() + ", LocalURI=" + t.localURI.String()
}

func (t *NullTransport) runReceive() {
	<-t.hasQuit
}

func (t *NullTransport) sendFrame(frame []byte) {
	t.nOutBytes += uint64(len(frame))
}

func (t *NullTransport) changeState(new dispatch.FaceState) {
	if t.state == new {
		return
	}

	core.LogInfo(t, "state: ", t.state, " -> ", new)
	t.state = new

	if t.state != dispatch.Up {
		t.hasQuit <- true
		t.linkService.tellTransportQuit()
	}
}
