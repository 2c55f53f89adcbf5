/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/utils/comparison"
)

// faceQueueSize is the maximum number of frames that can be buffered to be sent on a face.
var faceQueueSize int

// ccnEtherType is the EtherType used for multicast Ethernet faces.
var ccnEtherType int

// EthernetMulticastAddress is the multicast Ethernet address faces send to.
var EthernetMulticastAddress string

// TCPUnicastPort is the port TCP faces dial from and the TCP listener binds to.
var TCPUnicastPort uint16

// UDPUnicastPort is the port UDP faces dial from.
var UDPUnicastPort uint16

// UnixSocketPath is the Unix socket file path for local faces.
var UnixSocketPath string

// WebSocketPort is the port the WebSocket listener binds to.
var WebSocketPort uint16

// Configure configures the face system.
func Configure() {
	faceQueueSize = comparison.Clamp(core.GetConfigIntDefault("faces.queue_size", 1024), 16, 65536)
	ccnEtherType = core.GetConfigIntDefault("faces.ethernet.ethertype", 0x7777)
	EthernetMulticastAddress = core.GetConfigStringDefault("faces.ethernet.multicast_address", "01:00:5e:00:17:aa")
	TCPUnicastPort = core.GetConfigUint16Default("faces.tcp.port", 6363)
	UDPUnicastPort = core.GetConfigUint16Default("faces.udp.port", 6363)
	UnixSocketPath = core.GetConfigStringDefault("faces.unix.socket_path", "/run/ccnfd.sock")
	WebSocketPort = core.GetConfigUint16Default("faces.websocket.port", 9696)
}
