/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package priority_queue

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

type item[V any, P constraints.Ordered] struct {
	object   V
	priority P
}

type wrapper[V any, P constraints.Ordered] []*item[V, P]

func (pq wrapper[V, P]) Len() int {
	return len(pq)
}

func (pq wrapper[V, P]) Less(i, j int) bool {
	return pq[i].priority < pq[j].priority
}

func (pq wrapper[V, P]) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *wrapper[V, P]) Push(x any) {
	*pq = append(*pq, x.(*item[V, P]))
}

func (pq *wrapper[V, P]) Pop() any {
	old := *pq
	n := len(old)
	popped := old[n-1]
	old[n-1] = nil // avoid memory leak
	*pq = old[0 : n-1]
	return popped
}

// Queue represents a priority queue with MINIMUM priority.
type Queue[V any, P constraints.Ordered] struct {
	pq wrapper[V, P]
}

// New creates a new priority queue. Not required to call.
func New[V any, P constraints.Ordered]() Queue[V, P] {
	return Queue[V, P]{wrapper[V, P]{}}
}

// Len returns the length of the priority queue.
func (q *Queue[V, P]) Len() int {
	return len(q.pq)
}

// Push pushes the 'value' onto the priority queue.
func (q *Queue[V, P]) Push(value V, priority P) {
	heap.Push(&q.pq, &item[V, P]{object: value, priority: priority})
}

// Peek returns the minimum element of the priority queue without removing it.
func (q *Queue[V, P]) Peek() V {
	return q.pq[0].object
}

// PeekPriority returns the minimum element's priority.
func (q *Queue[V, P]) PeekPriority() P {
	return q.pq[0].priority
}

// Pop removes and returns the minimum element of the priority queue.
func (q *Queue[V, P]) Pop() V {
	return heap.Pop(&q.pq).(*item[V, P]).object
}
