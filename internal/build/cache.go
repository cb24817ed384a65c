package build

import (
	"sync"

	"github.com/remix-go/remix/pkg/render"
)

// ModuleCache holds the currently loaded server entry and route
// modules. Live mode calls ReplaceAll at the top of every request; the
// swap is a full replacement, never a partial invalidation, so readers
// always observe one coherent generation and no locking is needed
// beyond the cache itself.
type ModuleCache struct {
	mu      sync.RWMutex
	entry   render.ServerEntry
	modules render.RouteModules
}

// NewModuleCache creates an empty cache.
func NewModuleCache() *ModuleCache {
	return &ModuleCache{}
}

// ReplaceAll swaps in a new generation of modules.
func (c *ModuleCache) ReplaceAll(entry render.ServerEntry, modules render.RouteModules) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = entry
	c.modules = modules
}

// Entry returns the cached server entry, or nil before the first load.
func (c *ModuleCache) Entry() render.ServerEntry {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.entry
}

// Modules returns the cached route modules.
func (c *ModuleCache) Modules() render.RouteModules {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.modules
}
