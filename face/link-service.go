/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"strconv"
	"sync"

	"github.com/Link512/stealthpool"
	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/dispatch"
	"github.com/named-data/ccnfd/ndn"
	"github.com/named-data/ccnfd/ndn/tlv"
)

const poolBlockCount = 256
const poolBlockSize = tlv.MaxPacketSize + 200

// LinkService ties a transport to the forwarding core: it owns the face's
// send queue and delivers received frames to the registered packet handler.
type LinkService struct {
	faceID    uint64
	transport transport
	handler   dispatch.PacketHandler

	sendQueue chan []byte
	framePool *stealthpool.Pool

	transportQuit     chan struct{}
	transportQuitOnce sync.Once

	// Counters
	NInPackets  uint64
	NOutPackets uint64
}

var _ dispatch.Face = &LinkService{}

// MakeLinkService creates a link service on top of the given transport.
func MakeLinkService(t transport) *LinkService {
	l := new(LinkService)
	l.transport = t
	l.transport.setLinkService(l)
	l.sendQueue = make(chan []byte, faceQueueSize)
	l.transportQuit = make(chan struct{})

	pool, err := stealthpool.New(poolBlockCount, stealthpool.WithBlockSize(poolBlockSize))
	if err != nil {
		core.LogFatal(l, "Failed to allocate frame pool: ", err)
	}
	l.framePool = pool
	return l
}

func (l *LinkService) String() string {
	if l.transport != nil {
		return "LinkService, " + l.transport.String()
	}
	return "LinkService, FaceID=" + strconv.FormatUint(l.faceID, 10)
}

// Run drives the face until its transport goes down. The caller runs it in
// its own goroutine; its return signals that the face is dead.
func (l *LinkService) Run() {
	go l.transport.runReceive()
	l.runSend()
	l.framePool.Close()
}

func (l *LinkService) runSend() {
	for {
		select {
		case frame := <-l.sendQueue:
			l.transport.sendFrame(frame)
			l.framePool.Return(frame)
		case <-l.transportQuit:
			return
		}
	}
}

// tellTransportQuit is called by the transport when it leaves the Up state.
func (l *LinkService) tellTransportQuit() {
	l.transportQuitOnce.Do(func() {
		close(l.transportQuit)
	})
}

// handleIncomingFrame is called by the transport's receive thread. The frame
// buffer belongs to the transport, so the frame is copied before handoff.
func (l *LinkService) handleIncomingFrame(frame []byte) {
	handler := l.handler
	if handler == nil {
		return
	}

	l.NInPackets++
	wire := make([]byte, len(frame))
	copy(wire, frame)
	handler.Receive(l, wire)
}

//
// Getters
//

// FaceID returns the ID of the face.
func (l *LinkService) FaceID() uint64 {
	return l.faceID
}

// SetFaceID sets the ID of the face.
func (l *LinkService) SetFaceID(faceID uint64) {
	l.faceID = faceID
	l.transport.setFaceID(faceID)
}

// LocalURI returns the local URI of the underlying transport.
func (l *LinkService) LocalURI() *ndn.URI {
	return l.transport.LocalURI()
}

// RemoteURI returns the remote URI of the underlying transport.
func (l *LinkService) RemoteURI() *ndn.URI {
	return l.transport.RemoteURI()
}

// State returns the state of the underlying transport.
func (l *LinkService) State() dispatch.FaceState {
	return l.transport.State()
}

// IsUp returns whether the face can currently carry packets.
func (l *LinkService) IsUp() bool {
	return l.State() == dispatch.Up
}

// RegisterPacketHandler sets the upstream handler for received packets.
func (l *LinkService) RegisterPacketHandler(handler dispatch.PacketHandler) {
	l.handler = handler
}

// SendPacket queues a packet to be sent on this face.
func (l *LinkService) SendPacket(wire []byte) {
	if !l.IsUp() {
		core.LogWarn(l, "Cannot send packet on down face - DROP")
		return
	}

	if len(wire) > poolBlockSize {
		core.LogWarn(l, "Attempted to send packet larger than frame pool block - DROP")
		return
	}

	frame, err := l.framePool.Get()
	if err != nil {
		core.LogWarn(l, "Frame pool exhausted - DROP")
		return
	}
	frame = frame[:len(wire)]
	copy(frame, wire)

	select {
	case l.sendQueue <- frame:
		l.NOutPackets++
	default:
		core.LogWarn(l, "Dropped packet due to congestion")
		l.framePool.Return(frame)
	}
}

// Close brings the face down.
func (l *LinkService) Close() {
	l.transport.changeState(dispatch.Down)
}
