package storage

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	infracat "github.com/bryanwahyu/marineiq/internal/infra/catalog"
)

type memStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	down    error
}

func newMemStore() *memStore { return &memStore{objects: map[string][]byte{}} }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[key]
	if !ok {
		return nil, ErrNoObject
	}
	return data, nil
}

func (m *memStore) Put(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = append([]byte(nil), data...)
	return nil
}

func (m *memStore) Check(context.Context) error { return m.down }

func TestObjectCatalogSeedThenLoad(t *testing.T) {
	store := newMemStore()
	ctx := context.Background()

	seeder := NewObjectCatalog(store, "")
	assert.Equal(t, DefaultCatalogObject, seeder.Key())
	require.NoError(t, seeder.Seed(ctx, infracat.Builtin()))

	reader := NewObjectCatalog(store, "")
	require.NoError(t, reader.Load(ctx))
	ds, err := reader.Datasets(ctx)
	require.NoError(t, err)
	assert.Len(t, ds, 6)
	require.NoError(t, reader.Check(ctx))
}

func TestObjectCatalogMissingObject(t *testing.T) {
	oc := NewObjectCatalog(newMemStore(), "nope.yaml")
	assert.ErrorIs(t, oc.Load(context.Background()), catalog.ErrNotFound)
	// nothing loaded yet
	assert.Error(t, oc.Check(context.Background()))
}

func TestObjectCatalogRejectsBrokenDocument(t *testing.T) {
	store := newMemStore()
	store.objects[DefaultCatalogObject] = []byte("datasets:\n  - {id: a, name: A, category: sonar}\n")
	oc := NewObjectCatalog(store, "")
	assert.ErrorIs(t, oc.Load(context.Background()), catalog.ErrInvalid)
}

func TestObjectCatalogCheckReportsStore(t *testing.T) {
	store := newMemStore()
	oc := NewObjectCatalog(store, "")
	require.NoError(t, oc.Seed(context.Background(), infracat.Builtin()))

	store.down = errors.New("connection refused")
	assert.EqualError(t, oc.Check(context.Background()), "connection refused")
}
