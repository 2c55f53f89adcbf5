/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package tlv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVarNumRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 0xFC, 0xFD, 0xFF, 0x100, 0xFFFF, 0x10000, 0xFFFFFFFF, 0x100000000, 0xFFFFFFFFFFFFFFFF}
	lengths := []int{1, 1, 1, 3, 3, 3, 3, 5, 5, 9, 9}

	for i, value := range values {
		encoded := EncodeVarNum(value)
		assert.Equal(t, lengths[i], len(encoded))

		decoded, consumed, err := DecodeVarNum(encoded)
		require.NoError(t, err)
		assert.Equal(t, value, decoded)
		assert.Equal(t, lengths[i], consumed)
	}
}

func TestVarNumTruncated(t *testing.T) {
	_, _, err := DecodeVarNum([]byte{})
	assert.ErrorIs(t, err, ErrBufferTooShort)

	_, _, err = DecodeVarNum([]byte{0xFD, 0x01})
	assert.ErrorIs(t, err, ErrBufferTooShort)

	_, _, err = DecodeVarNum([]byte{0xFE, 0x01, 0x02, 0x03})
	assert.ErrorIs(t, err, ErrBufferTooShort)

	_, _, err = DecodeVarNum([]byte{0xFF, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07})
	assert.ErrorIs(t, err, ErrBufferTooShort)
}

func TestNNIRoundTrip(t *testing.T) {
	values := []uint64{0, 0xFF, 0x100, 0xFFFF, 0x10000, 0xFFFFFFFF, 0x100000000}
	lengths := []int{1, 1, 2, 2, 4, 4, 8}

	for i, value := range values {
		encoded := EncodeNNI(value)
		assert.Equal(t, lengths[i], len(encoded))

		decoded, err := DecodeNNI(encoded)
		require.NoError(t, err)
		assert.Equal(t, value, decoded)
	}
}

func TestNNIInvalid(t *testing.T) {
	_, err := DecodeNNI([]byte{})
	assert.ErrorIs(t, err, ErrBufferTooShort)

	_, err = DecodeNNI(make([]byte, 9))
	assert.ErrorIs(t, err, ErrTooLong)
}

func TestPeekType(t *testing.T) {
	wire := NewBlock(Interest, []byte{0x01, 0x02}).Wire()
	typ, err := PeekType(wire)
	require.NoError(t, err)
	assert.Equal(t, uint32(Interest), typ)

	_, err = PeekType([]byte{})
	assert.Error(t, err)
}

func TestBlockRoundTrip(t *testing.T) {
	block := NewBlock(Name, []byte{0x01, 0x02, 0x03})
	wire := block.Wire()

	decoded, consumed, err := DecodeBlock(wire)
	require.NoError(t, err)
	assert.Equal(t, len(wire), consumed)
	assert.Equal(t, uint32(Name), decoded.Type())
	assert.Equal(t, []byte{0x01, 0x02, 0x03}, decoded.Value())
}

func TestBlockSubelements(t *testing.T) {
	block := NewEmptyBlock(Interest)
	block.Append(NewBlock(Name, []byte{}))
	block.Append(NewBlock(Nonce, []byte{0x01, 0x02, 0x03, 0x04}))

	decoded, _, err := DecodeBlock(block.Wire())
	require.NoError(t, err)
	require.True(t, decoded.Parse())
	assert.Equal(t, 2, len(decoded.Subelements()))
	assert.NotNil(t, decoded.Find(Nonce))
	assert.Nil(t, decoded.Find(Content))
}

func TestBlockTruncated(t *testing.T) {
	wire := NewBlock(Data, make([]byte, 16)).Wire()
	_, _, err := DecodeBlock(wire[:len(wire)-1])
	assert.ErrorIs(t, err, ErrBufferTooShort)
}

func TestBlockAbsurdLength(t *testing.T) {
	// Declared lengths near the uint64 maximum must not slip past the
	// bounds check through overflow or be handed to make
	wires := [][]byte{
		{0x05, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF},
		{0x05, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xF6},
		{0x06, 0xFE, 0xFF, 0xFF, 0xFF, 0xFF},
		{0x07, 0xFD, 0xFF, 0xFF},
	}

	for _, wire := range wires {
		_, _, err := DecodeBlock(wire)
		assert.ErrorIs(t, err, ErrBufferTooShort)
	}
}
