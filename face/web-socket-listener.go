/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"net"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/ndn"
)

// WebSocketListener accepts incoming WebSocket connections and creates a face
// for each.
type WebSocketListener struct {
	server   http.Server
	upgrader websocket.Upgrader
	localURI *ndn.URI
	admit    func(*LinkService)
}

// MakeWebSocketListener constructs a WebSocketListener.
func MakeWebSocketListener(localURI *ndn.URI, admit func(*LinkService)) (*WebSocketListener, error) {
	if localURI.Scheme() != "ws" {
		return nil, core.ErrNotCanonical
	}

	l := &WebSocketListener{
		localURI: localURI,
		admit:    admit,
	}
	l.upgrader = websocket.Upgrader{
		// Browser consumers connect from arbitrary origins
		CheckOrigin: func(*http.Request) bool { return true },
	}
	l.server.Addr = net.JoinHostPort(localURI.Path(), strconv.Itoa(int(localURI.Port())))
	l.server.Handler = http.HandlerFunc(l.handler)
	return l, nil
}

func (l *WebSocketListener) String() string {
	return "WebSocketListener, " + l.localURI.String()
}

func (l *WebSocketListener) Run() {
	err := l.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		core.LogFatal(l, "Unable to start WebSocket listener: ", err)
	}
}

func (l *WebSocketListener) handler(w http.ResponseWriter, r *http.Request) {
	c, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		core.LogWarn(l, "Unable to upgrade connection: ", err)
		return
	}

	newTransport := NewWebSocketTransport(l.localURI, c)
	core.LogInfo(l, "Accepting new WebSocket face ", newTransport.RemoteURI())
	l.admit(MakeLinkService(newTransport))
}

func (l *WebSocketListener) Close() {
	l.server.Close()
}
