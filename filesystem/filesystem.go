// Package filesystem provides a virtualized abstraction layer for all filesystem operations.
//
// Every component that touches disk (configuration, logs, persisted
// preferences) goes through API(), so tests can swap the backend for an
// in-memory one.
package filesystem

import (
	"sync"

	"github.com/spf13/afero"
)

var (
	mu      sync.RWMutex
	backend = afero.Afero{Fs: afero.NewOsFs()}
)

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// Use replaces the active backend.
func Use(fs afero.Fs) {
	mu.Lock()
	defer mu.Unlock()
	backend = afero.Afero{Fs: fs}
}

// UseOS restores the native operating system backend.
func UseOS() {
	Use(afero.NewOsFs())
}

// UseMemory installs a volatile in-memory backend for unit tests.
func UseMemory() {
	Use(afero.NewMemMapFs())
}
