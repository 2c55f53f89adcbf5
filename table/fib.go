/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"sync"
	"time"

	"github.com/named-data/ccnfd/ndn"
)

// NexthopStatus is the health/eligibility class of a FIB nexthop.
type NexthopStatus int

const (
	// Red indicates the nexthop is ineligible for forwarding.
	Red NexthopStatus = iota
	// Yellow indicates the nexthop may bring Data back (degraded).
	Yellow
	// Green indicates the nexthop is known to bring Data back.
	Green
)

func (s NexthopStatus) String() string {
	switch s {
	case Red:
		return "Red"
	case Yellow:
		return "Yellow"
	default:
		return "Green"
	}
}

// rttAlpha is the gain of the smoothed RTT estimator.
const rttAlpha = 0.125

// FibNexthopEntry is the per-face metric attached to a FIB entry.
type FibNexthopEntry struct {
	FaceID uint64
	Status NexthopStatus
	Rtt    time.Duration // smoothed RTT estimate; 0 until the first sample
}

// FibEntry is an entry in the FIB: a name prefix and its candidate nexthops.
//
// Mutators on an entry are only called from the forwarding thread or while
// holding the owning Fib's lock.
type FibEntry struct {
	node     *fibTreeNode
	name     *ndn.Name
	nexthops []*FibNexthopEntry
}

// Name returns the prefix of the FIB entry.
func (e *FibEntry) Name() *ndn.Name {
	return e.name
}

// Nexthops returns the nexthops of the FIB entry.
func (e *FibEntry) Nexthops() []*FibNexthopEntry {
	return e.nexthops
}

// FindNexthop returns the nexthop metric for the specified face, or nil if none exists.
func (e *FibEntry) FindNexthop(faceID uint64) *FibNexthopEntry {
	for _, nexthop := range e.nexthops {
		if nexthop.FaceID == faceID {
			return nexthop
		}
	}
	return nil
}

// UpdateStatus sets the status of the specified nexthop, if present.
func (e *FibEntry) UpdateStatus(faceID uint64, status NexthopStatus) {
	if nexthop := e.FindNexthop(faceID); nexthop != nil {
		nexthop.Status = status
	}
}

// UpdateRtt folds an RTT sample into the smoothed estimate of the specified nexthop.
func (e *FibEntry) UpdateRtt(faceID uint64, sample time.Duration) {
	nexthop := e.FindNexthop(faceID)
	if nexthop == nil {
		return
	}
	if nexthop.Rtt == 0 {
		nexthop.Rtt = sample
	} else {
		nexthop.Rtt += time.Duration(rttAlpha * float64(sample-nexthop.Rtt))
	}
}

func (e *FibEntry) removeNexthop(faceID uint64) bool {
	for i, nexthop := range e.nexthops {
		if nexthop.FaceID == faceID {
			if i < len(e.nexthops)-1 {
				copy(e.nexthops[i:], e.nexthops[i+1:])
			}
			e.nexthops = e.nexthops[:len(e.nexthops)-1]
			return true
		}
	}
	return false
}

type fibTreeNode struct {
	component ndn.NameComponent
	depth     int

	parent   *fibTreeNode
	children []*fibTreeNode

	entry *FibEntry
}

// Fib is the Forwarding Information Base: a name-prefix tree of FIB entries.
type Fib struct {
	root     *fibTreeNode
	nEntries int

	// mutex synchronizes route insertion/removal (which may come from outside
	// the forwarding thread) with lookups.
	mutex sync.RWMutex
}

// NewFib creates a new FIB.
func NewFib() *Fib {
	fib := new(Fib)
	fib.root = new(fibTreeNode)
	// Root component is the zero component since it represents zero components
	return fib
}

func (n *fibTreeNode) findLongestPrefixNode(name *ndn.Name) *fibTreeNode {
	if name.Size() > n.depth {
		for _, child := range n.children {
			if name.At(child.depth - 1).Equals(child.component) {
				return child.findLongestPrefixNode(name)
			}
		}
	}
	return n
}

func (f *Fib) fillTreeToPrefix(name *ndn.Name) *fibTreeNode {
	curNode := f.root.findLongestPrefixNode(name)
	for depth := curNode.depth + 1; depth <= name.Size(); depth++ {
		newNode := new(fibTreeNode)
		newNode.component = name.At(depth - 1)
		newNode.depth = depth
		newNode.parent = curNode
		curNode.children = append(curNode.children, newNode)
		curNode = newNode
	}
	return curNode
}

func (n *fibTreeNode) pruneIfEmpty() {
	for curNode := n; curNode.parent != nil && len(curNode.children) == 0 && curNode.entry == nil; curNode = curNode.parent {
		for i, child := range curNode.parent.children {
			if child == curNode {
				if i < len(curNode.parent.children)-1 {
					copy(curNode.parent.children[i:], curNode.parent.children[i+1:])
				}
				curNode.parent.children = curNode.parent.children[:len(curNode.parent.children)-1]
				break
			}
		}
	}
}

// Size returns the number of entries in the FIB.
func (f *Fib) Size() int {
	f.mutex.RLock()
	defer f.mutex.RUnlock()
	return f.nEntries
}

// InsertNexthop adds a nexthop for the specified prefix, creating the FIB
// entry if needed. New nexthops start Yellow until proven by Data.
func (f *Fib) InsertNexthop(name *ndn.Name, faceID uint64) *FibEntry {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	node := f.fillTreeToPrefix(name)
	if node.entry == nil {
		node.entry = &FibEntry{node: node, name: name.DeepCopy()}
		f.nEntries++
	}
	if nexthop := node.entry.FindNexthop(faceID); nexthop != nil {
		return node.entry
	}
	node.entry.nexthops = append(node.entry.nexthops, &FibNexthopEntry{FaceID: faceID, Status: Yellow})
	return node.entry
}

// FindExactEntry returns the FIB entry for the exact prefix, or nil if none exists.
func (f *Fib) FindExactEntry(name *ndn.Name) *FibEntry {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	node := f.root.findLongestPrefixNode(name)
	if node.depth == name.Size() {
		return node.entry
	}
	return nil
}

// LongestPrefixEntry returns the FIB entry matching the longest prefix of the
// specified name, or nil if no prefix of the name has an entry.
func (f *Fib) LongestPrefixEntry(name *ndn.Name) *FibEntry {
	f.mutex.RLock()
	defer f.mutex.RUnlock()

	for node := f.root.findLongestPrefixNode(name); node != nil; node = node.parent {
		if node.entry != nil {
			return node.entry
		}
	}
	return nil
}

// RemoveEntry removes the FIB entry for the specified prefix, if present.
func (f *Fib) RemoveEntry(name *ndn.Name) bool {
	f.mutex.Lock()
	defer f.mutex.Unlock()

	node := f.root.findLongestPrefixNode(name)
	if node.depth != name.Size() || node.entry == nil {
		return false
	}
	node.entry = nil
	f.nEntries--
	node.pruneIfEmpty()
	return true
}

// CleanUpFace removes the specified face from every FIB entry, removing
// entries left with no nexthops.
func (f *Fib) CleanUpFace(faceID uint64) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	f.root.cleanUpFace(faceID, f)
}

func (n *fibTreeNode) cleanUpFace(faceID uint64, f *Fib) {
	// Children first: pruning a child mutates n.children
	for i := len(n.children) - 1; i >= 0; i-- {
		n.children[i].cleanUpFace(faceID, f)
	}
	if n.entry != nil && n.entry.removeNexthop(faceID) && len(n.entry.nexthops) == 0 {
		n.entry = nil
		f.nEntries--
		n.pruneIfEmpty()
	}
}
