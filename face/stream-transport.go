/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"errors"
	"io"

	"github.com/named-data/ccnfd/ndn/tlv"
)

// readStreamTransport reassembles TLV frames from a byte stream and passes
// each complete frame to frameCb. Returns the read error that ended the
// stream, or a framing error if the peer sends garbage.
func readStreamTransport(reader io.Reader, frameCb func([]byte)) error {
	recvBuf := make([]byte, tlv.MaxPacketSize*32)
	recvOff := 0
	tlvOff := 0

	for {
		readSize, err := reader.Read(recvBuf[recvOff:])
		recvOff += readSize
		if err != nil {
			return err
		}

		// Deliver every complete TLV frame in the buffer
		for {
			_, typeLen, err := tlv.DecodeVarNum(recvBuf[tlvOff:recvOff])
			if err != nil {
				// Probably incomplete packet
				break
			}

			length, lengthLen, err := tlv.DecodeVarNum(recvBuf[tlvOff+typeLen : recvOff])
			if err != nil {
				// Probably incomplete packet
				break
			}
			// A declared length beyond the MTU can never complete, and a
			// near-max value would overflow the int conversion below
			if length > tlv.MaxPacketSize {
				return errors.New("received TLV block larger than maximum packet size")
			}

			tlvSize := typeLen + lengthLen + int(length)

			if recvOff-tlvOff >= tlvSize {
				frameCb(recvBuf[tlvOff : tlvOff+tlvSize])
				tlvOff += tlvSize
			} else if recvOff-tlvOff > tlv.MaxPacketSize {
				return errors.New("received too much data without valid TLV block")
			} else {
				// Incomplete packet (for sure)
				break
			}
		}

		// If less than one packet space remains in buffer, shift to beginning
		if recvOff-tlvOff < tlv.MaxPacketSize {
			copy(recvBuf, recvBuf[tlvOff:recvOff])
			recvOff -= tlvOff
			tlvOff = 0
		}
	}
}
