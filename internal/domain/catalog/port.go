package catalog

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrInvalid  = errors.New("invalid catalog")
)

// Repository port (read-only access to the mock catalog)
type Repository interface {
	Datasets(ctx context.Context) ([]Dataset, error)
	// Dataset returns ErrNotFound when id is not in the catalog.
	Dataset(ctx context.Context, id string) (Dataset, error)
	Alerts(ctx context.Context) ([]Alert, error)
	Regions(ctx context.Context) ([]OceanRegion, error)
}

// Seeder port, implemented by backends that can be written by `catalog seed`.
type Seeder interface {
	Seed(ctx context.Context, c Catalog) error
}

// Load reads the whole catalog through repo.
func Load(ctx context.Context, repo Repository) (Catalog, error) {
	ds, err := repo.Datasets(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("load datasets: %w", err)
	}
	as, err := repo.Alerts(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("load alerts: %w", err)
	}
	rs, err := repo.Regions(ctx)
	if err != nil {
		return Catalog{}, fmt.Errorf("load regions: %w", err)
	}
	return Catalog{Datasets: ds, Alerts: as, Regions: rs}, nil
}
