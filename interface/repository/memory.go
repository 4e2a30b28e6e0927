package repository

import "sync"

// Store is the keyed collection used by the engine for tiers, proposals and
// pools. Implementations must be safe for concurrent use.
type Store[K comparable, V any] interface {
	Get(id K) (V, bool)
	Put(id K, value V)
	List() []V
	Len() int
	Replace(items map[K]V)
}

type MemoryStore[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

func NewMemoryStore[K comparable, V any]() *MemoryStore[K, V] {
	return &MemoryStore[K, V]{items: make(map[K]V)}
}

func (store *MemoryStore[K, V]) Get(id K) (V, bool) {
	store.mu.RLock()
	defer store.mu.RUnlock()
	value, ok := store.items[id]
	return value, ok
}

func (store *MemoryStore[K, V]) Put(id K, value V) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.items[id] = value
}

// List returns the values in no particular order.
func (store *MemoryStore[K, V]) List() []V {
	store.mu.RLock()
	defer store.mu.RUnlock()
	list := make([]V, 0, len(store.items))
	for _, value := range store.items {
		list = append(list, value)
	}
	return list
}

func (store *MemoryStore[K, V]) Len() int {
	store.mu.RLock()
	defer store.mu.RUnlock()
	return len(store.items)
}

// Replace swaps the whole content of the store in one step.
func (store *MemoryStore[K, V]) Replace(items map[K]V) {
	copied := make(map[K]V, len(items))
	for id, value := range items {
		copied[id] = value
	}

	store.mu.Lock()
	defer store.mu.Unlock()
	store.items = copied
}
