// Copyright 2026 AWS Cost Protection Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package cache provides thread-safe in-memory state shared between the
// sweep loop and the HTTP surface.
//
// There is exactly one writer (the sweep loop) and the readers poll, so the
// infrastructure here is deliberately small: an RWMutex plus a freshness
// timestamp. Caches embed BaseCache and keep their own storage.
package cache

import (
	"sync"
	"time"
)

// BaseCache carries the lock and the last-write timestamp for an embedding
// cache. The embedding struct owns the data and calls Lock/Unlock around
// writes and RLock/RUnlock around reads; MarkUpdated stamps a write.
type BaseCache struct {
	// mu protects the embedding struct's data fields and lastUpdate.
	mu sync.RWMutex

	// lastUpdate is zero until the first write.
	lastUpdate time.Time
}

// NewBaseCache returns a BaseCache that reports never-updated until the
// first MarkUpdated.
func NewBaseCache() BaseCache {
	return BaseCache{}
}

// Lock acquires the write lock.
func (b *BaseCache) Lock() {
	b.mu.Lock()
}

// Unlock releases the write lock.
func (b *BaseCache) Unlock() {
	b.mu.Unlock()
}

// RLock acquires the read lock.
func (b *BaseCache) RLock() {
	b.mu.RLock()
}

// RUnlock releases the read lock.
func (b *BaseCache) RUnlock() {
	b.mu.RUnlock()
}

// MarkUpdated stamps the freshness timestamp. The caller must hold the
// write lock.
func (b *BaseCache) MarkUpdated() {
	b.lastUpdate = time.Now()
}

// GetLastUpdate returns the time of the last MarkUpdated, or the zero time
// if nothing has been written yet.
func (b *BaseCache) GetLastUpdate() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lastUpdate
}

// IsStale reports whether the last write is older than maxAge. A cache that
// has never been written is always stale.
func (b *BaseCache) IsStale(maxAge time.Duration) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.lastUpdate.IsZero() {
		return true
	}
	return time.Since(b.lastUpdate) > maxAge
}

// GetAge returns the time since the last write, or 0 if nothing has been
// written yet.
func (b *BaseCache) GetAge() time.Duration {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.lastUpdate.IsZero() {
		return 0
	}
	return time.Since(b.lastUpdate)
}
