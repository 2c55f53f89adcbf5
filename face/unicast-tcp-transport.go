/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"errors"
	"net"
	"strconv"

	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/dispatch"
	"github.com/named-data/ccnfd/face/impl"
	"github.com/named-data/ccnfd/ndn"
	"github.com/named-data/ccnfd/ndn/tlv"
)

// UnicastTCPTransport is a unicast TCP transport.
type UnicastTCPTransport struct {
	conn net.Conn
	transportBase
}

var _ transport = &UnicastTCPTransport{}

// MakeUnicastTCPTransport dials the remote endpoint and creates a new unicast
// TCP transport on the resulting connection.
func MakeUnicastTCPTransport(remoteURI *ndn.URI, localURI *ndn.URI) (*UnicastTCPTransport, error) {
	if remoteURI.Scheme() != "tcp4" && remoteURI.Scheme() != "tcp6" {
		return nil, core.ErrNotCanonical
	}

	t := new(UnicastTCPTransport)
	t.makeTransportBase(remoteURI, localURI, tlv.MaxPacketSize)

	var localAddr net.TCPAddr
	if localURI != nil {
		localAddr.IP = net.ParseIP(localURI.Path())
		localAddr.Port = int(localURI.Port())
	}

	// Allow address reuse so a restarted daemon can rebind immediately
	dialer := &net.Dialer{LocalAddr: &localAddr, Control: impl.SyscallReuseAddr}
	conn, err := dialer.Dial(remoteURI.Scheme(), net.JoinHostPort(remoteURI.Path(), strconv.Itoa(int(remoteURI.Port()))))
	if err != nil {
		return nil, errors.New("unable to connect to remote endpoint: " + err.Error())
	}
	t.conn = conn

	if localURI == nil {
		tcpAddr := t.conn.LocalAddr().(*net.TCPAddr)
		ipVersion := 4
		if tcpAddr.IP.To4() == nil {
			ipVersion = 6
		}
		t.localURI = ndn.MakeTCPFaceURI(ipVersion, tcpAddr.IP.String(), uint16(tcpAddr.Port))
	}

	t.state = dispatch.Up
	return t, nil
}

// AcceptUnicastTCPTransport wraps a connection accepted by the TCP listener.
func AcceptUnicastTCPTransport(conn net.Conn, localURI *ndn.URI) *UnicastTCPTransport {
	t := new(UnicastTCPTransport)
	remoteAddr := conn.RemoteAddr().(*net.TCPAddr)
	ipVersion := 4
	if remoteAddr.IP.To4() == nil {
		ipVersion = 6
	}
	remoteURI := ndn.MakeTCPFaceURI(ipVersion, remoteAddr.IP.String(), uint16(remoteAddr.Port))
	t.makeTransportBase(remoteURI, localURI, tlv.MaxPacketSize)
	t.conn = conn
	t.state = dispatch.Up
	return t
}

func (t *UnicastTCPTransport) String() string {
	return "UnicastTCPTransport, FaceID=" + strconv.FormatUint(t.faceID, 10) + ", RemoteURI=" + t.remoteURI.String() + ", LocalURI=" + t.localURI.String()
}

func (t *UnicastTCPTransport) sendFrame(frame []byte) {
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

func (t *UnicastTCPTransport) runReceive() {
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

func (t *UnicastTCPTransport) changeState(new dispatch.FaceState) {
	if t.state == new {
		return
	}

	core.LogInfo(t, "state: ", t.state, " -> ", new)
	t.state = new

	if t.state != dispatch.Up {
		core.LogInfo(t, "Closing TCP socket")
		t.hasQuit <- true
		t.conn.Close()
		t.linkService.tellTransportQuit()
	}
}
