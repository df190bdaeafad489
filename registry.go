package jobtrack

import "sync"

var _ StoreRegistry = &MemoryRegistry{}

// MemoryRegistry is a StoreRegistry kept in process memory. Registering a
// name twice replaces the earlier value.
type MemoryRegistry struct {
	mu     sync.RWMutex
	stores map[string]any
}

func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{stores: map[string]any{}}
}

func (r *MemoryRegistry) Register(name string, value any) error {
	if name == "" {
		return ErrEmptyStoreName
	}
	r.mu.Lock()
	r.stores[name] = value
	r.mu.Unlock()
	return nil
}

func (r *MemoryRegistry) Lookup(name string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.stores[name]
	return v, ok
}

// LookupAuthStore returns the auth record registered by App.OnReady
func LookupAuthStore(r StoreRegistry) (*AuthStore, bool) {
	v, ok := r.Lookup(AuthStoreName)
	if !ok {
		return nil, false
	}
	store, ok := v.(*AuthStore)
	return store, ok
}
