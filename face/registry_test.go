/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"testing"

	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/ndn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryAddGetRemove(t *testing.T) {
	core.LoadConfigString("")
	Configure()
	registry := NewRegistry()

	face1 := MakeLinkService(MakeNullTransport())
	face2 := MakeLinkService(MakeNullTransport())

	id1 := registry.Add(face1)
	id2 := registry.Add(face2)
	assert.NotEqual(t, id1, id2)
	assert.Equal(t, id1, face1.FaceID())
	assert.Equal(t, 2, registry.Len())

	assert.Equal(t, face1, registry.Get(id1))
	assert.Equal(t, face2, registry.Get(id2))
	assert.Nil(t, registry.Get(9999))

	removed := registry.Remove(id1)
	assert.Equal(t, face1, removed)
	assert.Nil(t, registry.Get(id1))
	assert.Equal(t, 1, registry.Len())
	assert.Nil(t, registry.Remove(id1))
}

func TestRegistryFaceIDsNotReused(t *testing.T) {
	core.LoadConfigString("")
	Configure()
	registry := NewRegistry()

	face1 := MakeLinkService(MakeNullTransport())
	id1 := registry.Add(face1)
	registry.Remove(id1)

	face2 := MakeLinkService(MakeNullTransport())
	id2 := registry.Add(face2)
	assert.Greater(t, id2, id1)
}

func TestRegistryGetByURI(t *testing.T) {
	core.LoadConfigString("")
	Configure()
	registry := NewRegistry()

	face1 := MakeLinkService(MakeNullTransport())
	registry.Add(face1)

	found := registry.GetByURI(ndn.MakeNullFaceURI())
	require.NotNil(t, found)
	assert.Equal(t, face1.FaceID(), found.FaceID())

	assert.Nil(t, registry.GetByURI(ndn.MakeUnixFaceURI("/nonexistent")))
}
