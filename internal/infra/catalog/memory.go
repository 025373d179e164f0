package catalog

import (
	"context"
	"fmt"
	"sync"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
)

// Memory serves a validated catalog from memory. The catalog can be swapped
// atomically with Replace.
type Memory struct {
	mu sync.RWMutex
	c  catalog.Catalog
}

func NewMemory(c catalog.Catalog) (*Memory, error) {
	m := &Memory{}
	if err := m.Replace(c); err != nil {
		return nil, err
	}
	return m, nil
}

// NewBuiltin is NewMemory(Builtin()). The built-in catalog is always valid.
func NewBuiltin() *Memory {
	m, err := NewMemory(Builtin())
	if err != nil {
		panic(fmt.Sprintf("builtin catalog: %v", err))
	}
	return m
}

// Replace validates c and makes it the served catalog. On error the previous
// catalog stays in place.
func (m *Memory) Replace(c catalog.Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	c = c.Clone()
	m.mu.Lock()
	m.c = c
	m.mu.Unlock()
	return nil
}

// Snapshot returns a copy of the served catalog.
func (m *Memory) Snapshot() catalog.Catalog {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Clone()
}

func (m *Memory) Datasets(context.Context) ([]catalog.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]catalog.Dataset(nil), m.c.Datasets...), nil
}

func (m *Memory) Dataset(_ context.Context, id string) (catalog.Dataset, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.c.Dataset(id)
	if !ok {
		return catalog.Dataset{}, fmt.Errorf("dataset %q: %w", id, catalog.ErrNotFound)
	}
	return d, nil
}

func (m *Memory) Alerts(context.Context) ([]catalog.Alert, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.c.Clone().Alerts, nil
}

func (m *Memory) Regions(context.Context) ([]catalog.OceanRegion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]catalog.OceanRegion(nil), m.c.Regions...), nil
}

// Check implements the health checker. An empty catalog is unhealthy.
func (m *Memory) Check(context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.c.Datasets) == 0 {
		return fmt.Errorf("catalog has no datasets")
	}
	return nil
}
