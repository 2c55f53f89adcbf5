/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

// Package ndn defines the CCNFD packet model: names, Interests, Data, and NACK tagging.
package ndn

import (
	"errors"
	"strings"

	"github.com/named-data/ccnfd/ndn/tlv"
)

// NameComponent represents a generic name component.
type NameComponent struct {
	value []byte
}

// MakeNameComponent creates a name component with the specified value.
func MakeNameComponent(value []byte) NameComponent {
	c := NameComponent{}
	c.value = make([]byte, len(value))
	copy(c.value, value)
	return c
}

// DecodeNameComponent decodes a name component from the wire.
func DecodeNameComponent(wire *tlv.Block) (NameComponent, error) {
	if wire == nil || wire.Type() != tlv.GenericNameComponent {
		return NameComponent{}, tlv.ErrUnexpected
	}
	return MakeNameComponent(wire.Value()), nil
}

func isUnreservedURIChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') ||
		b == '-' || b == '.' || b == '_' || b == '~'
}

const hexDigits = "0123456789ABCDEF"

func (c NameComponent) String() string {
	var out strings.Builder
	for _, b := range c.value {
		if isUnreservedURIChar(b) {
			out.WriteByte(b)
		} else {
			out.WriteByte('%')
			out.WriteByte(hexDigits[b>>4])
			out.WriteByte(hexDigits[b&0x0F])
		}
	}
	return out.String()
}

// Value returns the value of the name component.
func (c NameComponent) Value() []byte {
	return c.value
}

// Equals returns whether the two name components are equal.
func (c NameComponent) Equals(other NameComponent) bool {
	if len(c.value) != len(other.value) {
		return false
	}
	for i, b := range c.value {
		if other.value[i] != b {
			return false
		}
	}
	return true
}

// Encode encodes the name component into a block.
func (c NameComponent) Encode() *tlv.Block {
	return tlv.NewBlock(tlv.GenericNameComponent, c.value)
}

// Name represents a hierarchical content name.
type Name struct {
	components []NameComponent
}

// NewName creates an empty name.
func NewName() *Name {
	return new(Name)
}

func unescapeComponent(in string) ([]byte, error) {
	out := make([]byte, 0, len(in))
	for i := 0; i < len(in); i++ {
		if in[i] != '%' {
			out = append(out, in[i])
			continue
		}
		if i+2 >= len(in) {
			return nil, errors.New("truncated percent-escape in name component")
		}
		hi := strings.IndexByte(hexDigits, upperHex(in[i+1]))
		lo := strings.IndexByte(hexDigits, upperHex(in[i+2]))
		if hi < 0 || lo < 0 {
			return nil, errors.New("invalid percent-escape in name component")
		}
		out = append(out, byte(hi<<4|lo))
		i += 2
	}
	return out, nil
}

func upperHex(b byte) byte {
	if b >= 'a' && b <= 'f' {
		return b - ('a' - 'A')
	}
	return b
}

// NameFromString creates a name from the specified URI string.
func NameFromString(str string) (*Name, error) {
	n := NewName()
	if str == "" || str == "/" {
		return n, nil
	}
	if str[0] != '/' {
		return nil, errors.New("name must begin with '/'")
	}

	for _, component := range strings.Split(str[1:], "/") {
		if component == "" {
			return nil, errors.New("name contains an empty component")
		}
		value, err := unescapeComponent(component)
		if err != nil {
			return nil, err
		}
		n.Append(MakeNameComponent(value))
	}
	return n, nil
}

// DecodeName decodes a name from the wire.
func DecodeName(wire *tlv.Block) (*Name, error) {
	if wire == nil || wire.Type() != tlv.Name {
		return nil, tlv.ErrUnexpected
	}
	if !wire.Parse() {
		return nil, errors.New("unable to parse name components")
	}

	n := NewName()
	for _, elem := range wire.Subelements() {
		component, err := DecodeNameComponent(elem)
		if err != nil {
			return nil, err
		}
		n.Append(component)
	}
	return n, nil
}

// Append appends a component to the end of the name and returns the name to allow chaining.
func (n *Name) Append(component NameComponent) *Name {
	n.components = append(n.components, component)
	return n
}

// At returns the component at the specified index.
func (n *Name) At(index int) NameComponent {
	return n.components[index]
}

// Size returns the number of components in the name.
func (n *Name) Size() int {
	return len(n.components)
}

// Equals returns whether the two names are equal.
func (n *Name) Equals(other *Name) bool {
	if other == nil || n.Size() != other.Size() {
		return false
	}
	for i, component := range n.components {
		if !component.Equals(other.components[i]) {
			return false
		}
	}
	return true
}

// PrefixOf returns whether the name is a prefix of the specified name.
func (n *Name) PrefixOf(other *Name) bool {
	if other == nil || n.Size() > other.Size() {
		return false
	}
	for i, component := range n.components {
		if !component.Equals(other.components[i]) {
			return false
		}
	}
	return true
}

// Prefix returns a copy of the first size components of the name.
func (n *Name) Prefix(size int) *Name {
	prefix := NewName()
	for i := 0; i < size; i++ {
		prefix.Append(n.components[i])
	}
	return prefix
}

// DeepCopy creates a deep copy of the name.
func (n *Name) DeepCopy() *Name {
	copyN := NewName()
	for _, component := range n.components {
		copyN.Append(MakeNameComponent(component.Value()))
	}
	return copyN
}

func (n *Name) String() string {
	if len(n.components) == 0 {
		return "/"
	}
	var out strings.Builder
	for _, component := range n.components {
		out.WriteByte('/')
		out.WriteString(component.String())
	}
	return out.String()
}

// Encode encodes the name into a block.
func (n *Name) Encode() *tlv.Block {
	wire := tlv.NewEmptyBlock(tlv.Name)
	for _, component := range n.components {
		wire.Append(component.Encode())
	}
	return wire
}
