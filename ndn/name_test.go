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

func TestNameFromString(t *testing.T) {
	name, err := NameFromString("/video/stream/frame128")
	require.NoError(t, err)
	assert.Equal(t, 3, name.Size())
	assert.Equal(t, "video", string(name.At(0).Value()))
	assert.Equal(t, "/video/stream/frame128", name.String())

	root, err := NameFromString("/")
	require.NoError(t, err)
	assert.Equal(t, 0, root.Size())
	assert.Equal(t, "/", root.String())

	_, err = NameFromString("no-leading-slash")
	assert.Error(t, err)

	_, err = NameFromString("/a//b")
	assert.Error(t, err)
}

func TestNameEscaping(t *testing.T) {
	name, err := NameFromString("/a%2Fb/c%20d")
	require.NoError(t, err)
	assert.Equal(t, "a/b", string(name.At(0).Value()))
	assert.Equal(t, "c d", string(name.At(1).Value()))

	// Escaping round-trips through String
	reparsed, err := NameFromString(name.String())
	require.NoError(t, err)
	assert.True(t, name.Equals(reparsed))

	_, err = NameFromString("/a%2")
	assert.Error(t, err)
	_, err = NameFromString("/a%zz")
	assert.Error(t, err)
}

func TestNamePrefixOf(t *testing.T) {
	prefix, _ := NameFromString("/video/stream")
	name, _ := NameFromString("/video/stream/frame128")
	other, _ := NameFromString("/video/other")

	assert.True(t, prefix.PrefixOf(name))
	assert.True(t, prefix.PrefixOf(prefix))
	assert.False(t, name.PrefixOf(prefix))
	assert.False(t, other.PrefixOf(name))

	root, _ := NameFromString("/")
	assert.True(t, root.PrefixOf(name))
}

func TestNameEncodeDecode(t *testing.T) {
	name, _ := NameFromString("/video/stream/frame128")
	decoded, err := DecodeName(name.Encode())
	require.NoError(t, err)
	assert.True(t, name.Equals(decoded))
}

func TestNameDeepCopy(t *testing.T) {
	name, _ := NameFromString("/a/b")
	copied := name.DeepCopy()
	assert.True(t, name.Equals(copied))

	copied.Append(MakeNameComponent([]byte("c")))
	assert.Equal(t, 2, name.Size())
	assert.Equal(t, 3, copied.Size())
}

func TestNamePrefix(t *testing.T) {
	name, _ := NameFromString("/a/b/c")
	prefix := name.Prefix(2)
	assert.Equal(t, "/a/b", prefix.String())
}
