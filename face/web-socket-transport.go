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

	"github.com/gorilla/websocket"
	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/dispatch"
	"github.com/named-data/ccnfd/ndn"
	"github.com/named-data/ccnfd/ndn/tlv"
)

// WebSocketTransport communicates with web applications via WebSocket.
type WebSocketTransport struct {
	transportBase
	c *websocket.Conn
}

var _ transport = &WebSocketTransport{}

// NewWebSocketTransport creates a WebSocket transport from an upgraded connection.
func NewWebSocketTransport(localURI *ndn.URI, c *websocket.Conn) *WebSocketTransport {
	remoteAddr := c.RemoteAddr().(*net.TCPAddr)
	remoteURI := ndn.MakeWebSocketFaceURI(remoteAddr.IP.String(), uint16(remoteAddr.Port))

	t := &WebSocketTransport{c: c}
	t.makeTransportBase(remoteURI, localURI, tlv.MaxPacketSize)
	t.state = dispatch.Up
	return t
}

func (t *WebSocketTransport) String() string {
	return "WebSocketTransport, FaceID=" + strconv.FormatUint(t.faceID, 10) + ", RemoteURI=" + t.remoteURI.String() + ", LocalURI=" + t.localURI.String()
}

func (t *WebSocketTransport) sendFrame(frame []byte) {
	if len(frame) > t.MTU() {
		core.LogWarn(t, "Attempted to send frame larger than MTU - DROP")
		return
	}

	core.LogTrace(t, "Sending frame of size ", len(frame))
	err := t.c.WriteMessage(websocket.BinaryMessage, frame)
	if err != nil {
		core.LogWarn(t, "Unable to send on socket - DROP and Face DOWN")
		t.changeState(dispatch.Down)
		return
	}
	t.nOutBytes += uint64(len(frame))
}

func (t *WebSocketTransport) runReceive() {
	for {
		mt, message, err := t.c.ReadMessage()
		if err != nil {
			core.LogWarn(t, "Unable to read from socket (", err, ") - Face DOWN")
			break
		}

		if mt != websocket.BinaryMessage {
			core.LogWarn(t, "Ignored non-binary message")
			continue
		}

		core.LogTrace(t, "Receive of size ", len(message))
		t.nInBytes += uint64(len(message))

		if len(message) > tlv.MaxPacketSize {
			core.LogWarn(t, "Received too much data without valid TLV block - DROP")
			continue
		}

		t.linkService.handleIncomingFrame(message)
	}
	t.changeState(dispatch.Down)
}

func (t *WebSocketTransport) changeState(new dispatch.FaceState) {
	if t.state == new {
		return
	}

	core.LogInfo(t, "state: ", t.state, " -> ", new)
	t.state = new

	if t.state != dispatch.Up {
		core.LogInfo(t, "Closing WebSocket")
		t.hasQuit <- true
		t.c.Close()
		t.linkService.tellTransportQuit()
	}
}
