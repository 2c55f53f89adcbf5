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

// UnicastUDPTransport is a unicast UDP transport.
type UnicastUDPTransport struct {
	conn net.Conn
	transportBase
}

var _ transport = &UnicastUDPTransport{}

// MakeUnicastUDPTransport creates a new unicast UDP transport.
func MakeUnicastUDPTransport(remoteURI *ndn.URI, localURI *ndn.URI) (*UnicastUDPTransport, error) {
	if remoteURI.Scheme() != "udp4" && remoteURI.Scheme() != "udp6" {
		return nil, core.ErrNotCanonical
	}

	t := new(UnicastUDPTransport)
	t.makeTransportBase(remoteURI, localURI, tlv.MaxPacketSize)

	var localAddr net.UDPAddr
	if localURI != nil {
		localAddr.IP = net.ParseIP(localURI.Path())
		localAddr.Port = int(localURI.Port())
	}

	dialer := &net.Dialer{LocalAddr: &localAddr, Control: impl.SyscallReuseAddr}
	conn, err := dialer.Dial(remoteURI.Scheme(), net.JoinHostPort(remoteURI.Path(), strconv.Itoa(int(remoteURI.Port()))))
	if err != nil {
		return nil, errors.New("unable to connect to remote endpoint: " + err.Error())
	}
	t.conn = conn

	if localURI == nil {
		udpAddr := t.conn.LocalAddr().(*net.UDPAddr)
		ipVersion := 4
		if udpAddr.IP.To4() == nil {
			ipVersion = 6
		}
		t.localURI = ndn.MakeUDPFaceURI(ipVersion, udpAddr.IP.String(), uint16(udpAddr.Port))
	}

	t.state = dispatch.Up
	return t, nil
}

func (t *UnicastUDPTransport) String() string {
	return "UnicastUDPTransport, FaceID=" + strconv.FormatUint(t.faceID, 10) + ", RemoteURI=" + t.remoteURI.String() + ", LocalURI=" + t.localURI.String()
}

func (t *UnicastUDPTransport) sendFrame(frame []byte) {
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

func (t *UnicastUDPTransport) runReceive() {
	recvBuf := make([]byte, tlv.MaxPacketSize)
	for {
		readSize, err := t.conn.Read(recvBuf)
		if err != nil {
			core.LogWarn(t, "Unable to read from socket (", err, ") - Face DOWN")
			break
		}

		core.LogTrace(t, "Receive of size ", readSize)
		t.nInBytes += uint64(readSize)

		// A datagram must hold exactly one TLV frame
		tlvType, typeLen, err := tlv.DecodeVarNum(recvBuf[:readSize])
		if err != nil || tlvType == 0 {
			core.LogDebug(t, "Received frame without valid TLV block - DROP")
			continue
		}
		length, lengthLen, err := tlv.DecodeVarNum(recvBuf[typeLen:readSize])
		if err != nil || typeLen+lengthLen+int(length) != readSize {
			core.LogDebug(t, "Received frame without valid TLV block - DROP")
			continue
		}

		t.linkService.handleIncomingFrame(recvBuf[:readSize])
	}
	t.changeState(dispatch.Down)
}

func (t *UnicastUDPTransport) changeState(new dispatch.FaceState) {
	if t.state == new {
		return
	}

	core.LogInfo(t, "state: ", t.state, " -> ", new)
	t.state = new

	if t.state != dispatch.Up {
		core.LogInfo(t, "Closing UDP socket")
		t.hasQuit <- true
		t.conn.Close()
		t.linkService.tellTransportQuit()
	}
}
