package catalog

import (
	"context"
	"errors"
	"fmt"

	"StellarStore/internal/docstore"
)

var (
	ErrCategoryNotFound = errors.New("category does not exist")
	ErrProductNotFound  = errors.New("product does not exist")
	ErrNotLoaded        = errors.New("catalog not loaded")
)

// Index owns the in-memory catalog document. It is not safe for concurrent
// use on its own; the Coordinator provides the locking discipline.
//
// Mutations never touch the installed document in place. SetOutOfStock
// builds a modified copy, persists it, and only then installs it as the
// current snapshot, so a failed save leaves readers on the previous
// committed state.
type Index struct {
	store docstore.Store
	name  string
	doc   *Document
}

func NewIndex(store docstore.Store, name string) *Index {
	return &Index{store: store, name: name}
}

// Load reads the catalog document from the store, replacing the current
// snapshot.
func (i *Index) Load(ctx context.Context) error {
	var d Document
	if err := i.store.Load(ctx, i.name, &d); err != nil {
		return err
	}
	i.doc = &d
	return nil
}

func (i *Index) Loaded() bool { return i.doc != nil }

func (i *Index) Ping(ctx context.Context) error { return i.store.Ping(ctx) }

// All returns the current catalog snapshot. Callers must treat it as
// read-only.
func (i *Index) All() (*Document, error) {
	if i.doc == nil {
		return nil, ErrNotLoaded
	}
	return i.doc, nil
}

func (i *Index) GetCategory(key string) (Category, error) {
	if i.doc == nil {
		return Category{}, ErrNotLoaded
	}
	c, ok := i.doc.Categories.Get(key)
	if !ok {
		return Category{}, fmt.Errorf("%q: %w", key, ErrCategoryNotFound)
	}
	return c, nil
}

func (i *Index) GetProduct(categoryKey, productKey string) (Product, error) {
	c, err := i.GetCategory(categoryKey)
	if err != nil {
		return Product{}, err
	}
	p, ok := c.Get(productKey)
	if !ok {
		return Product{}, fmt.Errorf("%q: %w", productKey, ErrProductNotFound)
	}
	return p, nil
}

// SetOutOfStock marks the product out of stock and persists the updated
// document. The mutation and the persistence are one unit: on save failure
// the previous snapshot stays installed and no change is observable.
// Marking an already out-of-stock product succeeds.
func (i *Index) SetOutOfStock(ctx context.Context, categoryKey, productKey string) error {
	if i.doc == nil {
		return ErrNotLoaded
	}

	cat, ok := i.doc.Categories.Get(categoryKey)
	if !ok {
		return fmt.Errorf("%q: %w", categoryKey, ErrCategoryNotFound)
	}
	p, ok := cat.Get(productKey)
	if !ok {
		return fmt.Errorf("%q: %w", productKey, ErrProductNotFound)
	}

	p.InStock = false

	nextCat := cat.Clone()
	nextCat.Set(productKey, p)
	nextCats := i.doc.Categories.Clone()
	nextCats.Set(categoryKey, nextCat)
	next := &Document{Categories: nextCats}

	if err := i.store.Save(ctx, i.name, next); err != nil {
		return fmt.Errorf("persist catalog: %w", err)
	}

	i.doc = next
	return nil
}
