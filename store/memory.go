package store

import "sync"

// MemoryStore is an in-memory Store implementation.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

// memTx buffers writes in an overlay so a failed Update leaves the
// underlying map untouched.
type memTx struct {
	base    map[string][]byte
	writes  map[string][]byte
	deletes map[string]bool
}

func (t *memTx) Get(key string) ([]byte, bool, error) {
	if t.deletes[key] {
		return nil, false, nil
	}
	if v, ok := t.writes[key]; ok {
		return append([]byte(nil), v...), true, nil
	}
	v, ok := t.base[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (t *memTx) Set(key string, value []byte) error {
	delete(t.deletes, key)
	t.writes[key] = append([]byte(nil), value...)
	return nil
}

func (t *memTx) Delete(key string) error {
	delete(t.writes, key)
	t.deletes[key] = true
	return nil
}

// View runs fn against a read-only snapshot of the store.
func (s *MemoryStore) View(fn func(Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return ErrClosed
	}
	tx := &memTx{base: s.data, writes: make(map[string][]byte), deletes: make(map[string]bool)}
	return fn(tx)
}

// Update runs fn and applies its writes only if fn returns nil.
func (s *MemoryStore) Update(fn func(Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	tx := &memTx{base: s.data, writes: make(map[string][]byte), deletes: make(map[string]bool)}
	if err := fn(tx); err != nil {
		return err
	}
	for k := range tx.deletes {
		delete(s.data, k)
	}
	for k, v := range tx.writes {
		s.data[k] = v
	}
	return nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

var _ Store = (*MemoryStore)(nil)
