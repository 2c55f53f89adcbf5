/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import "errors"

// Error definitions
var (
	ErrNotCanonical = errors.New("URI could not be canonized")
	ErrFaceUnknown  = errors.New("face is not registered")
)
