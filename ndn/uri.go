/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"net"
	"strconv"
	"strings"

	"github.com/named-data/ccnfd/core"
)

// URIType is the type of a face URI.
type URIType int

// Face URI types.
const (
	nullURI URIType = iota
	devURI
	etherURI
	tcpURI
	udpURI
	unixURI
	wsURI
)

// URI represents a face URI.
type URI struct {
	uriType URIType
	scheme  string
	path    string
	port    uint16
}

// MakeNullFaceURI constructs a null face URI.
func MakeNullFaceURI() *URI {
	return &URI{nullURI, "null", "", 0}
}

// MakeDevFaceURI constructs a URI for a network interface.
func MakeDevFaceURI(ifname string) *URI {
	return &URI{devURI, "dev", ifname, 0}
}

// MakeEthernetFaceURI constructs a URI for an Ethernet face from a MAC address.
func MakeEthernetFaceURI(address string) *URI {
	return &URI{etherURI, "ether", address, 0}
}

// MakeTCPFaceURI constructs a URI for a TCP face.
func MakeTCPFaceURI(ipVersion int, host string, port uint16) *URI {
	return &URI{tcpURI, "tcp" + strconv.Itoa(ipVersion), host, port}
}

// MakeUDPFaceURI constructs a URI for a UDP face.
func MakeUDPFaceURI(ipVersion int, host string, port uint16) *URI {
	return &URI{udpURI, "udp" + strconv.Itoa(ipVersion), host, port}
}

// MakeUnixFaceURI constructs a URI for a Unix stream face.
func MakeUnixFaceURI(path string) *URI {
	return &URI{unixURI, "unix", path, 0}
}

// MakeWebSocketFaceURI constructs a URI for a WebSocket face.
func MakeWebSocketFaceURI(host string, port uint16) *URI {
	return &URI{wsURI, "ws", host, port}
}

// ParseURI parses a URI string of the form scheme://path[:port].
func ParseURI(str string) (*URI, error) {
	schemeSplit := strings.SplitN(str, "://", 2)
	if len(schemeSplit) != 2 {
		if str == "null://" || str == "null" {
			return MakeNullFaceURI(), nil
		}
		return nil, core.ErrNotCanonical
	}
	scheme := strings.ToLower(schemeSplit[0])
	rest := schemeSplit[1]

	switch scheme {
	case "null":
		return MakeNullFaceURI(), nil
	case "dev":
		return MakeDevFaceURI(rest), nil
	case "ether":
		return MakeEthernetFaceURI(rest), nil
	case "unix":
		return MakeUnixFaceURI(rest), nil
	case "tcp", "tcp4", "tcp6", "udp", "udp4", "udp6", "ws":
		host, portStr, err := net.SplitHostPort(rest)
		if err != nil {
			return nil, core.ErrNotCanonical
		}
		port, err := strconv.ParseUint(portStr, 10, 16)
		if err != nil || port == 0 {
			return nil, core.ErrNotCanonical
		}
		ipVersion := 4
		if ip := net.ParseIP(host); ip != nil && ip.To4() == nil {
			ipVersion = 6
		}
		if strings.HasSuffix(scheme, "6") {
			ipVersion = 6
		}
		switch scheme[:2] {
		case "tc":
			return MakeTCPFaceURI(ipVersion, host, uint16(port)), nil
		case "ud":
			return MakeUDPFaceURI(ipVersion, host, uint16(port)), nil
		default:
			return MakeWebSocketFaceURI(host, uint16(port)), nil
		}
	}
	return nil, core.ErrNotCanonical
}

// Scheme returns the scheme of the URI.
func (u *URI) Scheme() string {
	return u.scheme
}

// Path returns the path (host, interface name, or socket path) of the URI.
func (u *URI) Path() string {
	return u.path
}

// Port returns the port of the URI, if any.
func (u *URI) Port() uint16 {
	return u.port
}

func (u *URI) String() string {
	switch u.uriType {
	case nullURI:
		return "null://"
	case devURI, etherURI, unixURI:
		return u.scheme + "://" + u.path
	default:
		return u.scheme + "://" + net.JoinHostPort(u.path, strconv.FormatUint(uint64(u.port), 10))
	}
}
