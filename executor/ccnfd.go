/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package executor

import (
	"net"
	"os"
	"time"

	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/face"
	"github.com/named-data/ccnfd/fw"
	"github.com/named-data/ccnfd/ndn"
	"github.com/named-data/ccnfd/table"
)

// CcnfdConfig is the startup configuration of the daemon.
type CcnfdConfig struct {
	Version         string
	ConfigFileName  string
	DisableEthernet bool
	DisableUnix     bool
	LogFile         string
}

// Ccnfd is the wrapper class for the forwarding daemon.
// Note: only one instance of this class should be created.
type Ccnfd struct {
	config *CcnfdConfig

	forwarder *fw.Forwarder

	unixListener *face.UnixStreamListener
	wsListener   *face.WebSocketListener
	tcpListeners []*face.TCPListener
}

// NewCcnfd creates a Ccnfd. Don't call this function twice.
func NewCcnfd(config *CcnfdConfig) *Ccnfd {
	core.Version = config.Version
	core.StartTimestamp = time.Now()

	core.LoadConfig(config.ConfigFileName)
	core.InitializeLogger(config.LogFile)
	face.Configure()
	fw.Configure()
	table.Configure()

	return &Ccnfd{config: config}
}

// admitFace registers a face with the forwarder and runs it until its
// transport dies, at which point the forwarder purges it.
func (c *Ccnfd) admitFace(linkService *face.LinkService) {
	c.forwarder.AddFace(linkService)
	go func() {
		linkService.Run()
		c.forwarder.RemoveFace(linkService)
	}()
}

// Start runs the daemon. Note: this function may exit the program when there
// is an error. This function is non-blocking.
func (c *Ccnfd) Start() {
	core.LogInfo("Main", "Starting CCNFD")

	c.forwarder = fw.NewForwarder()
	go c.forwarder.Run()

	// The null face absorbs packets routed nowhere
	c.admitFace(face.MakeLinkService(face.MakeNullTransport()))

	faceCnt := 0

	ethEnabled := core.GetConfigBoolDefault("faces.ethernet.enabled", false) && !c.config.DisableEthernet
	if ethEnabled {
		multicastEthURI := ndn.MakeEthernetFaceURI(face.EthernetMulticastAddress)
		ifaces, err := net.Interfaces()
		if err != nil {
			core.LogFatal("Main", "Unable to access network interfaces: ", err)
			os.Exit(2)
		}
		for _, iface := range ifaces {
			if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagMulticast == 0 {
				continue
			}
			multicastEthTransport, err := face.MakeMulticastEthernetTransport(multicastEthURI, ndn.MakeDevFaceURI(iface.Name))
			if err != nil {
				core.LogError("Main", "Unable to create MulticastEthernetTransport for ", iface.Name, ": ", err)
				continue
			}
			c.admitFace(face.MakeLinkService(multicastEthTransport))
			faceCnt++
			core.LogInfo("Main", "Created multicast Ethernet face for ", iface.Name)
		}
	}

	if core.GetConfigBoolDefault("faces.tcp.enabled", true) {
		bind := core.GetConfigStringDefault("faces.tcp.bind", "0.0.0.0")
		tcpListener, err := face.MakeTCPListener(ndn.MakeTCPFaceURI(4, bind, face.TCPUnicastPort), c.admitFace)
		if err != nil {
			core.LogError("Main", "Unable to create TCP listener for ", bind, ": ", err)
		} else {
			faceCnt++
			go tcpListener.Run()
			core.LogInfo("Main", "Created TCP listener for ", bind)
			c.tcpListeners = append(c.tcpListeners, tcpListener)
		}
	}

	if core.GetConfigBoolDefault("faces.unix.enabled", true) && !c.config.DisableUnix {
		var err error
		c.unixListener, err = face.MakeUnixStreamListener(ndn.MakeUnixFaceURI(face.UnixSocketPath), c.admitFace)
		if err != nil {
			core.LogError("Main", "Unable to create Unix stream listener at ", face.UnixSocketPath, ": ", err)
		} else {
			faceCnt++
			go c.unixListener.Run()
			core.LogInfo("Main", "Created Unix stream listener for ", face.UnixSocketPath)
		}
	}

	if core.GetConfigBoolDefault("faces.websocket.enabled", true) {
		bind := core.GetConfigStringDefault("faces.websocket.bind", "0.0.0.0")
		var err error
		c.wsListener, err = face.MakeWebSocketListener(ndn.MakeWebSocketFaceURI(bind, face.WebSocketPort), c.admitFace)
		if err != nil {
			core.LogError("Main", "Unable to create WebSocket listener for ", bind, ": ", err)
		} else {
			faceCnt++
			go c.wsListener.Run()
			core.LogInfo("Main", "Created WebSocket listener for ", bind)
		}
	}

	if faceCnt <= 0 {
		core.LogFatal("Main", "No face or listener is successfully created. Quit.")
		os.Exit(2)
	}

	c.setUpStaticRoutes()
}

// setUpStaticRoutes installs the routes configured under [[fib.routes]],
// dialing a face for each nexthop URI that is not already connected.
func (c *Ccnfd) setUpStaticRoutes() {
	for _, route := range core.GetConfigTrees("fib.routes") {
		prefixStr, ok := route.Get("prefix").(string)
		if !ok {
			core.LogError("Main", "Static route missing prefix - skipping")
			continue
		}
		nexthopStr, ok := route.Get("nexthop").(string)
		if !ok {
			core.LogError("Main", "Static route for ", prefixStr, " missing nexthop - skipping")
			continue
		}

		prefix, err := ndn.NameFromString(prefixStr)
		if err != nil {
			core.LogError("Main", "Unable to parse static route prefix ", prefixStr, ": ", err)
			continue
		}
		remoteURI, err := ndn.ParseURI(nexthopStr)
		if err != nil {
			core.LogError("Main", "Unable to parse static route nexthop ", nexthopStr, ": ", err)
			continue
		}

		nexthopFace := c.forwarder.Registry().GetByURI(remoteURI)
		if nexthopFace == nil {
			linkService, err := c.dialFace(remoteURI)
			if err != nil {
				core.LogError("Main", "Unable to dial nexthop ", remoteURI, ": ", err)
				continue
			}
			c.admitFace(linkService)
			nexthopFace = linkService
		}

		c.forwarder.Fib().InsertNexthop(prefix, nexthopFace.FaceID())
		core.LogInfo("Main", "Installed static route ", prefix, " -> ", remoteURI)
	}
}

func (c *Ccnfd) dialFace(remoteURI *ndn.URI) (*face.LinkService, error) {
	switch remoteURI.Scheme() {
	case "tcp4", "tcp6":
		t, err := face.MakeUnicastTCPTransport(remoteURI, nil)
		if err != nil {
			return nil, err
		}
		return face.MakeLinkService(t), nil
	case "udp4", "udp6":
		t, err := face.MakeUnicastUDPTransport(remoteURI, nil)
		if err != nil {
			return nil, err
		}
		return face.MakeLinkService(t), nil
	default:
		return nil, core.ErrNotCanonical
	}
}

// Stop shuts down the daemon.
func (c *Ccnfd) Stop() {
	core.LogInfo("Main", "Forwarder shutting down ...")

	if c.unixListener != nil {
		c.unixListener.Close()
	}
	if c.wsListener != nil {
		c.wsListener.Close()
	}
	for _, tcpListener := range c.tcpListeners {
		tcpListener.Close()
	}

	// Tell all faces to quit
	for _, f := range c.forwarder.Registry().Faces() {
		f.Close()
	}

	c.forwarder.Stop()
	<-c.forwarder.HasQuit
}
