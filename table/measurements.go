/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package table

import (
	"github.com/cornelk/hashmap"
)

// Measurements is a table of named measurements (outcome counters and
// smoothed samples) exposed for external tracing. It is safe for concurrent
// readers while the forwarding thread updates it.
type Measurements struct {
	table *hashmap.HashMap
}

// NewMeasurements creates a new measurements table.
func NewMeasurements() *Measurements {
	m := new(Measurements)
	m.table = &hashmap.HashMap{}
	return m
}

// Get returns the measurement value at the specified key or nil if it does not exist.
func (m *Measurements) Get(key string) interface{} {
	value, isOk := m.table.GetStringKey(key)
	if !isOk {
		return nil
	}
	return value
}

// GetInt returns the integer measurement value at the specified key or 0 if it does not exist.
func (m *Measurements) GetInt(key string) int {
	value, isOk := m.table.GetStringKey(key)
	if !isOk {
		return 0
	}
	if intValue, isInt := value.(int); isInt {
		return intValue
	}
	return 0
}

// set atomically sets the value of the specified key only if it is equal to the expected value, returning whether the operation was successful.
func (m *Measurements) set(key string, expected interface{}, value interface{}) bool {
	return m.table.Cas(key, expected, value)
}

// AddToInt adds the specified value to the given key, setting as value if uninitialized.
func (m *Measurements) AddToInt(key string, value int) {
	wasSet := false
	for !wasSet {
		expected := m.Get(key)
		if expected != nil {
			wasSet = m.set(key, expected, expected.(int)+value)
		} else {
			_, wasSet = m.table.GetOrInsert(key, value)
			// We need to flip this because it returns false if set
			wasSet = !wasSet
		}
	}
}

// Increment adds one to the given key.
func (m *Measurements) Increment(key string) {
	m.AddToInt(key, 1)
}

// AddSampleToEWMA adds a sample to an exponentially weighted moving average.
func (m *Measurements) AddSampleToEWMA(key string, sample float64, alpha float64) {
	wasSet := false
	for !wasSet {
		expected := m.Get(key)
		if expected != nil {
			newValue := expected.(float64) + alpha*(sample-expected.(float64))
			wasSet = m.set(key, expected, newValue)
		} else {
			_, wasSet = m.table.GetOrInsert(key, sample)
			// We need to flip this because it returns false if set
			wasSet = !wasSet
		}
	}
}
