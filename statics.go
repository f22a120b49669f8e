// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package scan

import "sync"

var statics struct {
	mu     sync.Mutex
	resets []func()
}

// RegisterStaticReset registers a hook run by ResetStaticData.
// Packages holding process-wide caches register a hook that empties
// them.
func RegisterStaticReset(f func()) {
	statics.mu.Lock()
	statics.resets = append(statics.resets, f)
	statics.mu.Unlock()
}

// ResetStaticData releases process-wide cached data: glyph masks,
// pattern caches, anything registered through RegisterStaticReset.
// Live Surfaces, Devices and Converters are unaffected. Useful before
// leak-checking a process or to drop memory in a long-lived one.
func ResetStaticData() {
	statics.mu.Lock()
	resets := make([]func(), len(statics.resets))
	copy(resets, statics.resets)
	statics.mu.Unlock()

	for _, f := range resets {
		f()
	}
}
