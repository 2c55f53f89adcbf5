/* CCNFD - Content-Centric Network Forwarding Daemon
 *
 * Copyright (C) 2025-2026 The CCNFD Authors.
 *
 * This file is licensed under the terms of the MIT License, as found in LICENSE.md.
 */

package core

import "time"

// Version of CCNFD.
var Version string

// StartTimestamp is the time the forwarder was started.
var StartTimestamp time.Time
