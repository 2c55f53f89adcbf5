/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"net"
	"strconv"

	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/dispatch"
	"github.com/named-data/ccnfd/ndn"
	"github.com/named-data/ccnfd/ndn/tlv"
)

// UnixStreamTransport is a Unix stream socket transport for local applications.
type UnixStreamTransport struct {
	conn *net.UnixConn
	transportBase
}

var _ transport = &UnixStreamTransport{}

// MakeUnixStreamTransport creates a Unix stream transport from an accepted connection.
func MakeUnixStreamTransport(remoteURI *ndn.URI, localURI *ndn.URI, conn net.Conn) (*UnixStreamTransport, error) {
	if remoteURI.Scheme() != "unix" {
		return nil, core.ErrNotCanonical
	}

	t := new(UnixStreamTransport)
	t.makeTransportBase(remoteURI, localURI, tlv.MaxPacketSize)
	t.conn = conn.(*net.UnixConn)
	t.state = dispatch.Up
	return t, nil
}

func (t *UnixStreamTransport) String() string {
	return "UnixStreamTransport, FaceID=" + strconv.FormatUint(t.faceID, 10) + ", RemoteURI=" + t.remoteURI.String() + ", LocalURI=" + t.localURI.String()
}

func (t *UnixStreamTransport) sendFrame(frame []byte) {
	if len(frame) > t.MTU() {
		core.LogWarn(t, "Attempted to send frame larger than MTU - DROP")
		return
	}

	core.LogTrace(t, "Sending frame of size ", len(frame))
	_, err := t.conn.Write(frame)
	if err != nil {
		core.LogWarn(t, "Unable to send on socket - DROP and Face DOWN")
		t.changeState(dispatch.Down)
		return
	}
	t.nOutBytes += uint64(len(frame))
}

func (t *UnixStreamTransport) runReceive() {
	err := readStreamTransport(t.conn, func(frame []byte) {
		core.LogTrace(t, "Receive of size ", len(frame))
		t.nInBytes += uint64(len(frame))
		t.linkService.handleIncomingFrame(frame)
	})
	if err != nil {
		core.LogWarn(t, "Unable to read from socket (", err, ") - Face DOWN")
	}
	t.changeState(dispatch.Down)
}

func (t *UnixStreamTransport) changeState(new dispatch.FaceState) {
	if t.state == new {
		return
	}

	core.LogInfo(t, "state: ", t.state, " -> ", new)
	t.state = new

	if t.state != dispatch.Up {
		core.LogInfo(t, "Closing Unix stream socket")
		t.hasQuit <- true
		t.conn.Close()
		t.linkService.tellTransportQuit()
	}
}
