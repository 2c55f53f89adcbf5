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

	"github.com/cespare/xxhash"
	"github.com/named-data/ccnfd/ndn/tlv"
)

// Data represents a response packet carrying named content.
//
// The last DataTrailerSize bytes of the encoded packet value form a fixed
// integrity trailer computed over the preceding fields.
type Data struct {
	name    *Name
	content []byte
}

// NewData creates a new Data packet with the specified name and content.
func NewData(name *Name, content []byte) *Data {
	d := new(Data)
	d.name = name.DeepCopy()
	d.content = make([]byte, len(content))
	copy(d.content, content)
	return d
}

// DecodeData decodes a Data packet from the wire, verifying its integrity trailer.
func DecodeData(wire []byte) (*Data, error) {
	block, _, err := tlv.DecodeBlock(wire)
	if err != nil {
		return nil, err
	}
	if block.Type() != tlv.Data {
		return nil, tlv.ErrUnexpected
	}

	value := block.Value()
	if len(value) < tlv.DataTrailerSize {
		return nil, errors.New("Data missing integrity trailer")
	}
	fields := value[:len(value)-tlv.DataTrailerSize]
	trailer := binary.BigEndian.Uint64(value[len(value)-tlv.DataTrailerSize:])
	if xxhash.Sum64(fields) != trailer {
		return nil, errors.New("Data integrity trailer mismatch")
	}

	fieldsBlock := tlv.NewBlock(tlv.Data, fields)
	if !fieldsBlock.Parse() {
		return nil, errors.New("unable to parse Data fields")
	}

	d := new(Data)

	nameBlock := fieldsBlock.Find(tlv.Name)
	if nameBlock == nil {
		return nil, errors.New("Data missing Name")
	}
	d.name, err = DecodeName(nameBlock)
	if err != nil {
		return nil, err
	}

	contentBlock := fieldsBlock.Find(tlv.Content)
	if contentBlock == nil {
		return nil, errors.New("Data missing Content")
	}
	d.content = make([]byte, len(contentBlock.Value()))
	copy(d.content, contentBlock.Value())

	return d, nil
}

// Name returns the name of the Data packet.
func (d *Data) Name() *Name {
	return d.name
}

// Content returns the content of the Data packet.
func (d *Data) Content() []byte {
	return d.content
}

// DeepCopy creates a deep copy of the Data packet.
func (d *Data) DeepCopy() *Data {
	return NewData(d.name, d.content)
}

// Encode encodes the Data packet into its wire format, appending the integrity trailer.
func (d *Data) Encode() []byte {
	fields := d.name.Encode().Wire()
	fields = append(fields, tlv.NewBlock(tlv.Content, d.content).Wire()...)

	trailer := make([]byte, tlv.DataTrailerSize)
	binary.BigEndian.PutUint64(trailer, xxhash.Sum64(fields))

	return tlv.NewBlock(tlv.Data, append(fields, trailer...)).Wire()
}
