package storage

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type MemStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemStorage() *MemStorage {
	return &MemStorage{values: make(map[string]string)}
}

func (ms *MemStorage) Get(key string) (string, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	v, ok := ms.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (ms *MemStorage) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.values[key] = value
	return nil
}

func (ms *MemStorage) Remove(keys ...string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, key := range keys {
		delete(ms.values, key)
	}
	return nil
}

func (ms *MemStorage) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.values)
}

// MemProvider garde l'état de chaque visiteur en mémoire (dev et tests).
// Comme pour Redis, un visiteur sans écriture depuis ttl est oublié, et
// un visiteur n'occupe de la mémoire qu'à partir de sa première écriture.
type MemProvider struct {
	mu       sync.Mutex
	visitors *expirable.LRU[string, *MemStorage]
}

func NewMemProvider() *MemProvider {
	return newMemProvider(VisitorTTL)
}

func newMemProvider(ttl time.Duration) *MemProvider {
	return &MemProvider{visitors: expirable.NewLRU[string, *MemStorage](0, nil, ttl)}
}

func (mp *MemProvider) Namespace(visitorID string) Storage {
	return &memNamespace{provider: mp, id: visitorID}
}

// Len compte les visiteurs ayant un état en mémoire
func (mp *MemProvider) Len() int {
	return mp.visitors.Len()
}

func (mp *MemProvider) Close() error {
	mp.visitors.Purge()
	return nil
}

type memNamespace struct {
	provider *MemProvider
	id       string
}

func (n *memNamespace) Get(key string) (string, error) {
	st, ok := n.provider.visitors.Get(n.id)
	if !ok {
		return "", ErrNotFound
	}
	return st.Get(key)
}

func (n *memNamespace) Set(key, value string) error {
	n.provider.mu.Lock()
	defer n.provider.mu.Unlock()

	st, ok := n.provider.visitors.Get(n.id)
	if !ok {
		st = NewMemStorage()
	}
	// Add repousse l'expiration du visiteur
	n.provider.visitors.Add(n.id, st)
	return st.Set(key, value)
}

func (n *memNamespace) Remove(keys ...string) error {
	n.provider.mu.Lock()
	defer n.provider.mu.Unlock()

	st, ok := n.provider.visitors.Get(n.id)
	if !ok {
		return nil
	}
	if err := st.Remove(keys...); err != nil {
		return err
	}
	if st.Len() == 0 {
		n.provider.visitors.Remove(n.id)
	}
	return nil
}
