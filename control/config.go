// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Thread-safe configuration store. Keys under a frozen prefix are fixed at
// construction; the FIFO geometry lives there.

package control

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/momentics/hioload-cdc/internal/logging"
)

// ErrReadOnlyKey indicates an attempt to change a construction-time key.
var ErrReadOnlyKey = errors.New("configuration key is read-only")

// ConfigStore is a key/value map with snapshot reads and reload listeners.
type ConfigStore struct {
	mu        sync.RWMutex
	config    map[string]any
	frozen    []string
	listeners []func()
}

// NewConfigStore initializes a store. Keys starting with any of the frozen
// prefixes may be set once through Seed and never changed.
func NewConfigStore(frozen ...string) *ConfigStore {
	return &ConfigStore{
		config: make(map[string]any),
		frozen: frozen,
	}
}

// Seed writes initial values, including frozen keys, without notifying
// listeners.
func (cs *ConfigStore) Seed(values map[string]any) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	for k, v := range values {
		cs.config[k] = v
	}
}

// GetSnapshot returns a copy of all config values.
func (cs *ConfigStore) GetSnapshot() map[string]any {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	out := make(map[string]any, len(cs.config))
	for k, v := range cs.config {
		out[k] = v
	}
	return out
}

// Get returns one value.
func (cs *ConfigStore) Get(key string) (any, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	v, ok := cs.config[key]
	return v, ok
}

func (cs *ConfigStore) isFrozen(key string) bool {
	for _, p := range cs.frozen {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

// SetConfig merges new values and notifies listeners. Nothing is applied if
// any key is frozen.
func (cs *ConfigStore) SetConfig(newCfg map[string]any) error {
	cs.mu.Lock()
	for k := range newCfg {
		if cs.isFrozen(k) {
			cs.mu.Unlock()
			logging.Warn(logging.ComponentControl, "rejected read-only key", "key", k)
			return fmt.Errorf("set %q: %w", k, ErrReadOnlyKey)
		}
	}
	for k, v := range newCfg {
		cs.config[k] = v
	}
	listeners := append([]func(){}, cs.listeners...)
	cs.mu.Unlock()

	logging.Debug(logging.ComponentControl, "config updated", "keys", len(newCfg), "listeners", len(listeners))
	for _, fn := range listeners {
		fn()
	}
	return nil
}

// OnReload registers a listener hook called after config changes.
func (cs *ConfigStore) OnReload(fn func()) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	cs.listeners = append(cs.listeners, fn)
}
