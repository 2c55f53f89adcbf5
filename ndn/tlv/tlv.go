/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package tlv provides the TLV wire primitives underlying the CCNFD packet format.
package tlv

import (
	"encoding/binary"
	"errors"
	"math"
)

// TLV types in the CCNFD wire format.
const (
	NackType             = 0x03
	Interest             = 0x05
	Data                 = 0x06
	Name                 = 0x07
	GenericNameComponent = 0x08
	Nonce                = 0x0A
	InterestLifetime     = 0x0C
	Content              = 0x15
)

// MaxPacketSize is the maximum allowed size of a CCNFD packet.
const MaxPacketSize = 8800

// DataTrailerSize is the size of the fixed integrity trailer following an encoded Data packet.
const DataTrailerSize = 8

// TLV errors.
var (
	ErrBufferTooShort = errors.New("TLV length exceeds buffer size")
	ErrMissingLength  = errors.New("missing TLV length")
	ErrTooLong        = errors.New("value too long")
	ErrUnexpected     = errors.New("unexpected TLV type")
)

// EncodeVarNum encodes a non-negative integer value for encoding.
func EncodeVarNum(in uint64) []byte {
	if in <= 0xFC {
		return []byte{byte(in)}
	} else if in <= 0xFFFF {
		out := make([]byte, 3)
		out[0] = 0xFD
		binary.BigEndian.PutUint16(out[1:], uint16(in))
		return out
	} else if in <= 0xFFFFFFFF {
		out := make([]byte, 5)
		out[0] = 0xFE
		binary.BigEndian.PutUint32(out[1:], uint32(in))
		return out
	}
	out := make([]byte, 9)
	out[0] = 0xFF
	binary.BigEndian.PutUint64(out[1:], in)
	return out
}

// DecodeVarNum decodes a non-negative integer value from a wire value, returning the value and the number of bytes consumed.
func DecodeVarNum(in []byte) (uint64, int, error) {
	if len(in) < 1 {
		return 0, 0, ErrBufferTooShort
	}

	switch {
	case in[0] <= 0xFC:
		return uint64(in[0]), 1, nil
	case in[0] == 0xFD:
		if len(in) < 3 {
			return 0, 0, ErrBufferTooShort
		}
		return uint64(binary.BigEndian.Uint16(in[1:3])), 3, nil
	case in[0] == 0xFE:
		if len(in) < 5 {
			return 0, 0, ErrBufferTooShort
		}
		return uint64(binary.BigEndian.Uint32(in[1:5])), 5, nil
	default:
		if len(in) < 9 {
			return 0, 0, ErrBufferTooShort
		}
		return binary.BigEndian.Uint64(in[1:9]), 9, nil
	}
}

// EncodeNNI encodes a non-negative integer value into a TLV value slice.
func EncodeNNI(v uint64) []byte {
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, v)

	if v <= math.MaxUint8 {
		return value[7:]
	} else if v <= math.MaxUint16 {
		return value[6:]
	} else if v <= math.MaxUint32 {
		return value[4:]
	}
	return value
}

// DecodeNNI decodes a non-negative integer value from a TLV value slice.
func DecodeNNI(value []byte) (uint64, error) {
	if len(value) < 1 {
		return 0, ErrBufferTooShort
	} else if len(value) > 8 {
		return 0, ErrTooLong
	}
	buf := make([]byte, 8)
	copy(buf[8-len(value):], value)
	return binary.BigEndian.Uint64(buf), nil
}

// PeekType returns the outer TLV type of the given wire, or an error if the wire is too short to contain one.
func PeekType(wire []byte) (uint32, error) {
	typ, _, err := DecodeVarNum(wire)
	if err != nil {
		return 0, err
	}
	if typ > math.MaxUint32 {
		return 0, ErrUnexpected
	}
	return uint32(typ), nil
}
