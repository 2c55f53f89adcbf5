/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import "math"

// Block contains an encoded TLV block.
type Block struct {
	tlvType     uint32
	value       []byte
	subelements []*Block
}

// NewEmptyBlock creates an empty block of the specified type.
func NewEmptyBlock(tlvType uint32) *Block {
	return &Block{tlvType: tlvType}
}

// NewBlock creates a block containing the specified type and value.
func NewBlock(tlvType uint32, value []byte) *Block {
	b := &Block{tlvType: tlvType}
	b.value = make([]byte, len(value))
	copy(b.value, value)
	return b
}

// NewNNIBlock creates a block containing a non-negative integer value of the specified type.
func NewNNIBlock(tlvType uint32, v uint64) *Block {
	return &Block{tlvType: tlvType, value: EncodeNNI(v)}
}

// Type returns the type of the block.
func (b *Block) Type() uint32 {
	return b.tlvType
}

// Value returns the value contained in the block.
func (b *Block) Value() []byte {
	return b.value
}

// Subelements returns the sub-elements of the block.
func (b *Block) Subelements() []*Block {
	return b.subelements
}

// Append appends a subelement onto the end of the block's value.
func (b *Block) Append(block *Block) {
	b.subelements = append(b.subelements, block)
}

// Find returns the first subelement of the specified type, or nil if none exists.
func (b *Block) Find(tlvType uint32) *Block {
	for _, elem := range b.subelements {
		if elem.Type() == tlvType {
			return elem
		}
	}
	return nil
}

// Parse parses the block value into subelements, if possible.
func (b *Block) Parse() bool {
	startPos := 0
	b.subelements = []*Block{}
	for startPos < len(b.value) {
		block, blockLen, err := DecodeBlock(b.value[startPos:])
		if err != nil {
			return false
		}
		b.subelements = append(b.subelements, block)
		startPos += blockLen
	}
	return true
}

// Wire returns the wire-encoded block.
func (b *Block) Wire() []byte {
	value := b.value
	if len(b.subelements) > 0 {
		value = []byte{}
		for _, elem := range b.subelements {
			value = append(value, elem.Wire()...)
		}
	}

	encodedType := EncodeVarNum(uint64(b.tlvType))
	encodedLength := EncodeVarNum(uint64(len(value)))
	wire := make([]byte, 0, len(encodedType)+len(encodedLength)+len(value))
	wire = append(wire, encodedType...)
	wire = append(wire, encodedLength...)
	wire = append(wire, value...)
	return wire
}

// DecodeBlock decodes a block from the wire, returning the block and the number of bytes consumed.
func DecodeBlock(wire []byte) (*Block, int, error) {
	typ, typLen, err := DecodeVarNum(wire)
	if err != nil {
		return nil, 0, err
	}
	if typ > math.MaxUint32 {
		return nil, 0, ErrUnexpected
	}

	length, lengthLen, err := DecodeVarNum(wire[typLen:])
	if err != nil {
		return nil, 0, ErrMissingLength
	}
	// Compare against the remaining bytes rather than summing, so a huge
	// declared length cannot overflow past the check
	if length > uint64(len(wire)-typLen-lengthLen) {
		return nil, 0, ErrBufferTooShort
	}

	b := new(Block)
	b.tlvType = uint32(typ)
	b.value = make([]byte, length)
	copy(b.value, wire[typLen+lengthLen:uint64(typLen+lengthLen)+length])
	return b, typLen + lengthLen + int(length), nil
}
