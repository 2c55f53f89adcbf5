/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package ndn

import (
	"encoding/binary"
	"errors"
	"math/rand"
	"time"

	"github.com/named-data/ccnfd/ndn/tlv"
)

// NackType tags an Interest as a negative acknowledgment.
type NackType uint8

// NACK tags carried in the Interest header.
const (
	// NackNone indicates a normal Interest.
	NackNone NackType = 0
	// NackLoop indicates a duplicate (looping) Interest was detected.
	NackLoop NackType = 1
	// NackGiveUp indicates the sender discarded its PIT entry for the Interest.
	NackGiveUp NackType = 2
)

func (n NackType) String() string {
	switch n {
	case NackNone:
		return "None"
	case NackLoop:
		return "Loop"
	case NackGiveUp:
		return "GiveUp"
	}
	return "Unknown"
}

// DefaultInterestLifetime is the lifetime assumed for Interests that do not carry a lifetime hint.
const DefaultInterestLifetime = 4000 * time.Millisecond

// Interest represents a request packet identifying desired content by name.
type Interest struct {
	name     *Name
	nonce    uint32
	lifetime time.Duration
	nackType NackType
}

// NewInterest creates a new Interest with the specified name, a fresh nonce, and default values.
func NewInterest(name *Name) *Interest {
	i := new(Interest)
	i.name = name.DeepCopy()
	i.lifetime = DefaultInterestLifetime
	i.RefreshNonce()
	return i
}

// DecodeInterest decodes an Interest from the wire.
func DecodeInterest(wire []byte) (*Interest, error) {
	block, _, err := tlv.DecodeBlock(wire)
	if err != nil {
		return nil, err
	}
	if block.Type() != tlv.Interest {
		return nil, tlv.ErrUnexpected
	}
	if !block.Parse() {
		return nil, errors.New("unable to parse Interest fields")
	}

	i := new(Interest)
	i.lifetime = DefaultInterestLifetime

	nameBlock := block.Find(tlv.Name)
	if nameBlock == nil {
		return nil, errors.New("Interest missing Name")
	}
	i.name, err = DecodeName(nameBlock)
	if err != nil {
		return nil, err
	}

	nonceBlock := block.Find(tlv.Nonce)
	if nonceBlock == nil || len(nonceBlock.Value()) != 4 {
		return nil, errors.New("Interest missing or malformed Nonce")
	}
	i.nonce = binary.BigEndian.Uint32(nonceBlock.Value())

	if lifetimeBlock := block.Find(tlv.InterestLifetime); lifetimeBlock != nil {
		lifetime, err := tlv.DecodeNNI(lifetimeBlock.Value())
		if err != nil {
			return nil, errors.New("Interest has malformed InterestLifetime")
		}
		i.lifetime = time.Duration(lifetime) * time.Millisecond
	}

	if nackBlock := block.Find(tlv.NackType); nackBlock != nil {
		if len(nackBlock.Value()) != 1 || nackBlock.Value()[0] > uint8(NackGiveUp) {
			return nil, errors.New("Interest has malformed NackType")
		}
		i.nackType = NackType(nackBlock.Value()[0])
	}

	return i, nil
}

// Name returns the name of the Interest.
func (i *Interest) Name() *Name {
	return i.name
}

// Nonce returns the nonce of the Interest.
func (i *Interest) Nonce() uint32 {
	return i.nonce
}

// SetNonce sets the nonce of the Interest.
func (i *Interest) SetNonce(nonce uint32) {
	i.nonce = nonce
}

// RefreshNonce generates a new random nonce for the Interest.
func (i *Interest) RefreshNonce() {
	i.nonce = rand.Uint32()
}

// Lifetime returns the lifetime of the Interest.
func (i *Interest) Lifetime() time.Duration {
	return i.lifetime
}

// SetLifetime sets the lifetime of the Interest.
func (i *Interest) SetLifetime(lifetime time.Duration) {
	i.lifetime = lifetime
}

// NackTag returns the NACK tag of the Interest.
func (i *Interest) NackTag() NackType {
	return i.nackType
}

// SetNackTag sets the NACK tag of the Interest.
func (i *Interest) SetNackTag(nackType NackType) {
	i.nackType = nackType
}

// IsNack returns whether the Interest carries a NACK tag.
func (i *Interest) IsNack() bool {
	return i.nackType != NackNone
}

// DeepCopy creates a deep copy of the Interest.
func (i *Interest) DeepCopy() *Interest {
	copyI := new(Interest)
	copyI.name = i.name.DeepCopy()
	copyI.nonce = i.nonce
	copyI.lifetime = i.lifetime
	copyI.nackType = i.nackType
	return copyI
}

// Encode encodes the Interest into its wire format.
func (i *Interest) Encode() []byte {
	block := tlv.NewEmptyBlock(tlv.Interest)
	block.Append(i.name.Encode())

	nonce := make([]byte, 4)
	binary.BigEndian.PutUint32(nonce, i.nonce)
	block.Append(tlv.NewBlock(tlv.Nonce, nonce))

	block.Append(tlv.NewNNIBlock(tlv.InterestLifetime, uint64(i.lifetime.Milliseconds())))

	if i.nackType != NackNone {
		block.Append(tlv.NewBlock(tlv.NackType, []byte{uint8(i.nackType)}))
	}

	return block.Wire()
}
