/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataEncodeDecode(t *testing.T) {
	name, _ := NameFromString("/video/stream/frame128")
	data := NewData(name, []byte("payload"))

	decoded, err := DecodeData(data.Encode())
	require.NoError(t, err)
	assert.True(t, decoded.Name().Equals(name))
	assert.Equal(t, []byte("payload"), decoded.Content())
}

func TestDataEmptyContent(t *testing.T) {
	name, _ := NameFromString("/a")
	data := NewData(name, nil)

	decoded, err := DecodeData(data.Encode())
	require.NoError(t, err)
	assert.Equal(t, 0, len(decoded.Content()))
}

func TestDataCorruptTrailer(t *testing.T) {
	name, _ := NameFromString("/a")
	wire := NewData(name, []byte("payload")).Encode()

	// Flip one bit in the trailer
	wire[len(wire)-1] ^= 0x01
	_, err := DecodeData(wire)
	assert.Error(t, err)
}

func TestDataCorruptPayload(t *testing.T) {
	name, _ := NameFromString("/a")
	wire := NewData(name, []byte("payload")).Encode()

	// Flip one bit in the covered fields
	wire[len(wire)-10] ^= 0x01
	_, err := DecodeData(wire)
	assert.Error(t, err)
}

func TestDataDeepCopy(t *testing.T) {
	name, _ := NameFromString("/a")
	data := NewData(name, []byte("payload"))
	copied := data.DeepCopy()

	copied.Content()[0] = 'X'
	assert.Equal(t, byte('p'), data.Content()[0])
}
