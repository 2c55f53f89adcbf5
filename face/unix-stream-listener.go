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
	"os"
	"path"
	"strconv"

	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/ndn"
)

// UnixStreamListener listens for incoming Unix stream connections.
type UnixStreamListener struct {
	conn     net.Listener
	localURI *ndn.URI
	admit    func(*LinkService)
	nextFD   int // We can't (at least easily) access the actual FD through net.Conn, so we'll make our own
	stopped  chan bool
}

// MakeUnixStreamListener constructs a UnixStreamListener.
func MakeUnixStreamListener(localURI *ndn.URI, admit func(*LinkService)) (*UnixStreamListener, error) {
	if localURI.Scheme() != "unix" {
		return nil, core.ErrNotCanonical
	}

	return &UnixStreamListener{
		localURI: localURI,
		admit:    admit,
		nextFD:   1,
		stopped:  make(chan bool, 1),
	}, nil
}

func (l *UnixStreamListener) String() string {
	return "UnixStreamListener, " + l.localURI.String()
}

func (l *UnixStreamListener) Run() {
	defer func() { l.stopped <- true }()

	// Delete any existing socket
	sockPath := l.localURI.Path()
	os.Remove(sockPath)
	os.MkdirAll(path.Dir(sockPath), os.ModePerm)

	var err error
	if l.conn, err = net.Listen("unix", sockPath); err != nil {
		core.LogFatal(l, "Unable to start Unix stream listener: ", err)
	}

	// Allow all local apps to communicate with us
	if err := os.Chmod(sockPath, os.ModePerm); err != nil {
		core.LogFatal(l, "Unable to change permissions on Unix stream listener: ", err)
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

		remoteURI := ndn.MakeUnixFaceURI("fd" + strconv.Itoa(l.nextFD))
		l.nextFD++

		newTransport, err := MakeUnixStreamTransport(remoteURI, l.localURI, newConn)
		if err != nil {
			core.LogError(l, "Failed to create new Unix stream transport: ", err)
			continue
		}

		core.LogInfo(l, "Accepting new Unix stream face ", remoteURI)
		l.admit(MakeLinkService(newTransport))
	}
}

func (l *UnixStreamListener) Close() {
	if l.conn != nil {
		l.conn.Close()
		<-l.stopped
	}
}
