package catalog

import (
	"context"
	"sync"
)

// Coordinator serializes access to the Index: reads share a lock and observe
// the last committed snapshot, mutations hold it exclusively across the full
// read-modify-write-persist sequence. The catalog document is independent of
// the feedback and customer documents, which carry their own locks.
type Coordinator struct {
	mu  sync.RWMutex
	idx *Index
}

func NewCoordinator(idx *Index) *Coordinator {
	return &Coordinator{idx: idx}
}

// ensure lazily loads the catalog on first use.
func (c *Coordinator) ensure(ctx context.Context) error {
	c.mu.RLock()
	loaded := c.idx.Loaded()
	c.mu.RUnlock()
	if loaded {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.idx.Loaded() {
		return nil
	}
	return c.idx.Load(ctx)
}

// Reload forces a fresh load from the store.
func (c *Coordinator) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx.Load(ctx)
}

func (c *Coordinator) Ping(ctx context.Context) error {
	return c.idx.Ping(ctx)
}

func (c *Coordinator) All(ctx context.Context) (*Document, error) {
	if err := c.ensure(ctx); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.idx.All()
}

func (c *Coordinator) GetCategory(ctx context.Context, key string) (Category, error) {
	if err := c.ensure(ctx); err != nil {
		return Category{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.idx.GetCategory(key)
}

func (c *Coordinator) GetProduct(ctx context.Context, categoryKey, productKey string) (Product, error) {
	if err := c.ensure(ctx); err != nil {
		return Product{}, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.idx.GetProduct(categoryKey, productKey)
}

func (c *Coordinator) SetOutOfStock(ctx context.Context, categoryKey, productKey string) error {
	if err := c.ensure(ctx); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.idx.SetOutOfStock(ctx, categoryKey, productKey)
}
