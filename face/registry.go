/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package face

import (
	"sync"

	"github.com/named-data/ccnfd/core"
	"github.com/named-data/ccnfd/dispatch"
	"github.com/named-data/ccnfd/ndn"
)

// Registry holds the faces attached to the forwarder. Face IDs are assigned
// monotonically and never reused within the lifetime of the registry.
type Registry struct {
	mutex      sync.RWMutex
	faces      map[uint64]dispatch.Face
	nextFaceID uint64
}

// NewRegistry creates an empty face registry.
func NewRegistry() *Registry {
	r := new(Registry)
	r.faces = make(map[uint64]dispatch.Face)
	r.nextFaceID = 1
	return r
}

// Add adds a face to the registry, assigning and returning its face ID.
func (r *Registry) Add(face dispatch.Face) uint64 {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	faceID := r.nextFaceID
	r.nextFaceID++
	face.SetFaceID(faceID)
	r.faces[faceID] = face
	core.LogDebug("FaceRegistry", "Registered FaceID=", faceID)
	return faceID
}

// Get returns the face with the specified ID, or nil if none exists.
func (r *Registry) Get(faceID uint64) dispatch.Face {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return r.faces[faceID]
}

// GetByURI returns the face with the specified remote URI, or nil if none exists.
func (r *Registry) GetByURI(remoteURI *ndn.URI) dispatch.Face {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	for _, face := range r.faces {
		if face.RemoteURI() != nil && face.RemoteURI().String() == remoteURI.String() {
			return face
		}
	}
	return nil
}

// Remove removes the face with the specified ID from the registry, returning
// it, or nil if no such face was registered.
func (r *Registry) Remove(faceID uint64) dispatch.Face {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	face, ok := r.faces[faceID]
	if !ok {
		return nil
	}
	delete(r.faces, faceID)
	core.LogDebug("FaceRegistry", "Unregistered FaceID=", faceID)
	return face
}

// Len returns the number of registered faces.
func (r *Registry) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.faces)
}

// Faces returns all registered faces.
func (r *Registry) Faces() []dispatch.Face {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	faces := make([]dispatch.Face, 0, len(r.faces))
	for _, face := range r.faces {
		faces = append(faces, face)
	}
	return faces
}
