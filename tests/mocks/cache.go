package mocks

import (
	"context"
	"encoding/json"
	"sync"

	sharedCache "github.com/davicafu/facturalab/internal/shared/infra/platform/cache"
)

// DummyCache simula una cache en memoria con valores JSON.
type DummyCache struct {
	store map[string][]byte
	mu    sync.Mutex
}

func NewDummyCache() *DummyCache {
	return &DummyCache{store: make(map[string][]byte)}
}

// SetForTest inserta directamente un valor serializado.
func (c *DummyCache) SetForTest(key string, val interface{}) {
	data, _ := json.Marshal(val)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = data
}

func (c *DummyCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.store[key]
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *DummyCache) Set(ctx context.Context, key string, val interface{}, ttlSecs int) error {
	data, err := json.Marshal(val)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store[key] = data
	return nil
}

func (c *DummyCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.store, key)
	return nil
}

// Verificación estática
var _ sharedCache.Cache = (*DummyCache)(nil)
