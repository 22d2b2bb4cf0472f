package logctx

// Store is the text-only diagnostic store a Context mutates. It holds flat
// string values under string keys with no ordering guarantee. A Store is
// confined to one goroutine; the engine never shares one across goroutines
// (transfer happens through Snapshot instead).
type Store interface {
	// Get returns the value stored under key, if any.
	Get(key string) (string, bool)

	// Put stores value under key, replacing any existing value.
	Put(key, value string)

	// Remove deletes key from the store. Removing an absent key is a no-op.
	Remove(key string)

	// CopyAll returns an independent copy of the whole store.
	CopyAll() map[string]string
}

// KeyLister is optionally implemented by stores that can report their keys
// in insertion order. The record assembler uses it to keep assembled field
// order stable; for other stores it falls back to sorted keys.
type KeyLister interface {
	Keys() []string
}

// MapStore is the default Store: a map plus an insertion-order key list.
// The order list costs one slice walk on Remove but keeps every Get/Put
// allocation-free, which matters on the Enter hot path.
type MapStore struct {
	values map[string]string
	order  []string
}

// NewMapStore creates an empty MapStore.
func NewMapStore() *MapStore {
	return &MapStore{values: make(map[string]string)}
}

func (s *MapStore) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *MapStore) Put(key, value string) {
	if _, exists := s.values[key]; !exists {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

func (s *MapStore) Remove(key string) {
	if _, exists := s.values[key]; !exists {
		return
	}
	delete(s.values, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *MapStore) CopyAll() map[string]string {
	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Keys returns the stored keys in insertion order.
func (s *MapStore) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of stored entries.
func (s *MapStore) Len() int {
	return len(s.values)
}
