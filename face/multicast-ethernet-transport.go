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
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcap"
	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/dispatch"
	"github.com/named-data/ccnfd/ndn"
	"github.com/named-data/ccnfd/ndn/tlv"
)

// MulticastEthernetTransport is a multicast Ethernet transport. Frames are
// carried directly in Ethernet with the configured EtherType.
type MulticastEthernetTransport struct {
	pcap       *pcap.Handle
	shouldQuit chan bool
	remoteAddr net.HardwareAddr
	localAddr  net.HardwareAddr
	transportBase
}

var _ transport = &MulticastEthernetTransport{}

// MakeMulticastEthernetTransport creates a new multicast Ethernet transport
// on the interface named by localURI.
func MakeMulticastEthernetTransport(remoteURI *ndn.URI, localURI *ndn.URI) (*MulticastEthernetTransport, error) {
	if remoteURI.Scheme() != "ether" || localURI.Scheme() != "dev" {
		return nil, core.ErrNotCanonical
	}

	t := new(MulticastEthernetTransport)
	t.makeTransportBase(remoteURI, localURI, tlv.MaxPacketSize)
	t.shouldQuit = make(chan bool, 1)

	var err error
	t.remoteAddr, err = net.ParseMAC(remoteURI.Path())
	if err != nil {
		core.LogError(t, "Unable to parse MAC address ", remoteURI.Path(), ": ", err)
		return nil, err
	}

	iface, err := net.InterfaceByName(localURI.Path())
	if err != nil {
		core.LogError(t, "Unable to get local interface ", localURI.Path(), ": ", err)
		return nil, err
	}
	t.localAddr = iface.HardwareAddr

	inactive, err := pcap.NewInactiveHandle(localURI.Path())
	if err != nil {
		core.LogError(t, "Unable to create PCAP handle: ", err)
		return nil, err
	}
	defer inactive.CleanUp()

	if err := inactive.SetSnapLen(18 + tlv.MaxPacketSize); err != nil {
		core.LogError(t, "Unable to set PCAP snap length: ", err)
		return nil, err
	}
	if err := inactive.SetImmediateMode(true); err != nil {
		core.LogError(t, "Unable to set immediate mode for PCAP capture: ", err)
		return nil, err
	}
	if err := inactive.SetTimeout(time.Minute); err != nil {
		core.LogError(t, "Unable to set PCAP timeout: ", err)
		return nil, err
	}

	t.pcap, err = inactive.Activate()
	if err != nil {
		core.LogError(t, "Unable to activate PCAP handle: ", err)
		return nil, err
	}

	err = t.pcap.SetBPFFilter("ether proto " + strconv.Itoa(ccnEtherType) + " and ether dst " + remoteURI.Path())
	if err != nil {
		core.LogError(t, "Unable to set PCAP filter: ", err)
	}

	t.state = dispatch.Up
	return t, nil
}

func (t *MulticastEthernetTransport) String() string {
	return "MulticastEthernetTransport, FaceID=" + strconv.FormatUint(t.faceID, 10) + ", RemoteURI=" + t.remoteURI.String() + ", LocalURI=" + t.localURI.String()
}

func (t *MulticastEthernetTransport) sendFrame(frame []byte) {
	if len(frame) > t.MTU() {
		core.LogWarn(t, "Attempted to send frame larger than MTU - DROP")
		return
	}

	// Wrap in Ethernet frame
	ethHeader := layers.Ethernet{SrcMAC: t.localAddr, DstMAC: t.remoteAddr, EthernetType: layers.EthernetType(ccnEtherType)}
	ethFrame := gopacket.NewSerializeBuffer()
	gopacket.SerializeLayers(ethFrame, gopacket.SerializeOptions{}, &ethHeader, gopacket.Payload(frame))

	core.LogTrace(t, "Sending frame of size ", len(ethFrame.Bytes()))
	err := t.pcap.WritePacketData(ethFrame.Bytes())
	if err != nil {
		core.LogWarn(t, "Unable to write frame - DROP and Face DOWN")
		t.changeState(dispatch.Down)
		return
	}
	t.nOutBytes += uint64(len(frame))
}

func (t *MulticastEthernetTransport) runReceive() {
	packetSource := gopacket.NewPacketSource(t.pcap, t.pcap.LinkType())
	for {
		select {
		case packet, ok := <-packetSource.Packets():
			if !ok {
				t.changeState(dispatch.Down)
				return
			}

			payload := packet.LinkLayer().LayerPayload()
			core.LogTrace(t, "Receive of size ", len(payload))
			t.nInBytes += uint64(len(payload))

			if len(payload) > tlv.MaxPacketSize {
				core.LogWarn(t, "Received too much data without valid TLV block - DROP")
				continue
			}

			// The Ethernet payload may be padded to the minimum frame size
			_, typeLen, err := tlv.DecodeVarNum(payload)
			if err != nil {
				core.LogDebug(t, "Unable to process received frame: ", err, " - DROP")
				continue
			}
			length, lengthLen, err := tlv.DecodeVarNum(payload[typeLen:])
			if err != nil {
				core.LogDebug(t, "Unable to process received frame: ", err, " - DROP")
				continue
			}
			if length > tlv.MaxPacketSize {
				core.LogDebug(t, "Received frame declares length beyond maximum packet size - DROP")
				continue
			}
			tlvSize := typeLen + lengthLen + int(length)
			if len(payload) < tlvSize {
				core.LogDebug(t, "Received frame is incomplete - DROP")
				continue
			}

			t.linkService.handleIncomingFrame(payload[:tlvSize])
		case <-t.shouldQuit:
			return
		}
	}
}

func (t *MulticastEthernetTransport) changeState(new dispatch.FaceState) {
	if t.state == new {
		return
	}

	core.LogInfo(t, "state: ", t.state, " -> ", new)
	t.state = new

	if t.state != dispatch.Up {
		core.LogInfo(t, "Closing PCAP handle")
		t.shouldQuit <- true
		t.hasQuit <- true
		t.pcap.Close()
		t.linkService.tellTransportQuit()
	}
}
