package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	infracat "github.com/bryanwahyu/marineiq/internal/infra/catalog"
)

const DefaultCatalogObject = "catalog/marineiq.yaml"

// ObjectStore is the part of Store the catalog needs.
type ObjectStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Check(ctx context.Context) error
}

// ObjectCatalog serves a catalog document kept in an object store.
// Load fetches it once; reads are served from memory afterwards.
type ObjectCatalog struct {
	*infracat.Memory
	store ObjectStore
	key   string
}

func NewObjectCatalog(store ObjectStore, key string) *ObjectCatalog {
	if key == "" {
		key = DefaultCatalogObject
	}
	mem, _ := infracat.NewMemory(catalog.Catalog{})
	return &ObjectCatalog{Memory: mem, store: store, key: key}
}

func (o *ObjectCatalog) Key() string { return o.key }

// Load fetches and validates the catalog object. A missing object is ErrNotFound.
func (o *ObjectCatalog) Load(ctx context.Context) error {
	data, err := o.store.Get(ctx, o.key)
	if errors.Is(err, ErrNoObject) {
		return fmt.Errorf("catalog object %s: %w", o.key, catalog.ErrNotFound)
	}
	if err != nil {
		return err
	}
	c, err := infracat.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("catalog object %s: %w", o.key, err)
	}
	return o.Replace(c)
}

// Seed uploads c and serves it.
func (o *ObjectCatalog) Seed(ctx context.Context, c catalog.Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	data, err := infracat.Marshal(c)
	if err != nil {
		return err
	}
	if err := o.store.Put(ctx, o.key, data, "application/yaml"); err != nil {
		return fmt.Errorf("upload %s: %w", o.key, err)
	}
	return o.Replace(c)
}

// Check reports the store's health, then the served catalog's.
func (o *ObjectCatalog) Check(ctx context.Context) error {
	if err := o.store.Check(ctx); err != nil {
		return err
	}
	return o.Memory.Check(ctx)
}
