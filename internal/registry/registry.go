// Package registry provides the convertor registry.
//
// # Overview
//
// The registry enables extensible convertor registration for the engine.
// Instead of hard-coded switch statements, convertors register their
// constructors by key string. This allows new convertors to be added without
// modifying core execution code.
//
// # Adding a New Convertor
//
// To add a new convertor:
//
//  1. Implement the convertor.Convertor interface
//  2. Create a constructor function returning a fresh instance
//  3. Register the constructor in an init() function
//
// Example:
//
//	func init() {
//	    registry.Register("my_convertor", func() convertor.Convertor {
//	        return NewMyConvertor()
//	    })
//	}
//
// # Lazy Loading
//
// Extended convertors are not registered at startup. A lazy loader can be
// installed with RegisterLazyLoader; it runs once, on the first lookup that
// misses, and the lookup is retried afterwards. This keeps the heavier
// extras out of processes that only use the core catalog.
package registry

import (
	"sort"
	"sync"

	"github.com/NII-CPS-Center/tablelinker-lib/internal/convertor"
)

// Constructor creates a fresh convertor instance.
// Instances hold per-run state, so a new one is built for every run.
type Constructor func() convertor.Convertor

var (
	mu         sync.RWMutex
	convertors = make(map[string]Constructor)
	lazyLoader func()
	lazyLoaded bool
)

// Register registers a convertor constructor by key.
// Registering an already registered key overwrites the previous constructor.
//
// This function is safe for concurrent use and is typically called from
// init() functions in convertor packages.
func Register(key string, constructor Constructor) {
	mu.Lock()
	defer mu.Unlock()
	convertors[key] = constructor
}

// RegisterLazyLoader installs a hook that is invoked once, on the first
// lookup miss, before the lookup is retried. Used to defer registration of
// the extended convertor catalog.
func RegisterLazyLoader(loader func()) {
	mu.Lock()
	defer mu.Unlock()
	lazyLoader = loader
	lazyLoaded = false
}

// Get returns the registered constructor for a convertor key.
// Returns nil and false if no constructor is registered for the key.
func Get(key string) (Constructor, bool) {
	mu.RLock()
	c, ok := convertors[key]
	loader := lazyLoader
	loaded := lazyLoaded
	mu.RUnlock()
	if ok || loader == nil || loaded {
		return c, ok
	}

	mu.Lock()
	if !lazyLoaded {
		lazyLoaded = true
		mu.Unlock()
		loader()
	} else {
		mu.Unlock()
	}

	mu.RLock()
	defer mu.RUnlock()
	c, ok = convertors[key]
	return c, ok
}

// Exists reports whether a convertor key is registered, triggering the lazy
// loader if necessary.
func Exists(key string) bool {
	_, ok := Get(key)
	return ok
}

// List returns all registered convertor keys, sorted.
// Useful for documentation and debugging.
func List() []string {
	mu.RLock()
	defer mu.RUnlock()
	keys := make([]string, 0, len(convertors))
	for k := range convertors {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clear removes all registered constructors and the lazy loader.
// This is intended for testing purposes only.
func Clear() {
	mu.Lock()
	defer mu.Unlock()
	convertors = make(map[string]Constructor)
	lazyLoader = nil
	lazyLoaded = false
}
