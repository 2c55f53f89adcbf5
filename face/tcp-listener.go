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
	"github.com/named-data/ccnfd/ndn"
)

// TCPListener accepts incoming TCP connections and creates a face for each.
type TCPListener struct {
	conn     net.Listener
	localURI *ndn.URI
	admit    func(*LinkService)
	stopped  chan bool
}

// MakeTCPListener constructs a TCPListener. Each accepted face is handed to
// admit, which is responsible for registering it and running it.
func MakeTCPListener(localURI *ndn.URI, admit func(*LinkService)) (*TCPListener, error) {
	if localURI.Scheme() != "tcp4" && localURI.Scheme() != "tcp6" {
		return nil, core.ErrNotCanonical
	}

	return &TCPListener{
		localURI: localURI,
		admit:    admit,
		stopped:  make(chan bool, 1),
	}, nil
}

func (l *TCPListener) String() string {
	return "TCPListener, " + l.localURI.String()
}

func (l *TCPListener) Run() {
	defer func() { l.stopped <- true }()

	var err error
	l.conn, err = net.Listen(l.localURI.Scheme(), net.JoinHostPort(l.localURI.Path(), strconv.Itoa(int(l.localURI.Port()))))
	if err != nil {
		core.LogFatal(l, "Unable to start TCP listener: ", err)
	}

	core.LogInfo(l, "Listening")

	for {
		newConn, err := l.conn.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			core.LogWarn(l, "Unable to accept connection: ", err)
			return
		}

		newTransport := AcceptUnicastTCPTransport(newConn, l.localURI)
		core.LogInfo(l, "Accepting new TCP face ", newTransport.RemoteURI())
		l.admit(MakeLinkService(newTransport))
	}
}

func (l *TCPListener) Close() {
	if l.conn != nil {
		l.conn.Close()
		<-l.stopped
	}
}
