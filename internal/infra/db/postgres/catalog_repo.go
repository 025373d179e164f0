package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	records "github.com/bryanwahyu/marineiq/internal/infra/db"
)

type CatalogRepository struct{ db *sqlx.DB }

func NewCatalogRepository(db *sqlx.DB) *CatalogRepository { return &CatalogRepository{db: db} }

func (r *CatalogRepository) Datasets(ctx context.Context) ([]catalog.Dataset, error) {
	var rows []records.DatasetRow
	const q = `SELECT id, position, name, category, region, description FROM marine_datasets ORDER BY position`
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return records.Datasets(rows), nil
}

func (r *CatalogRepository) Dataset(ctx context.Context, id string) (catalog.Dataset, error) {
	var row records.DatasetRow
	const q = `SELECT id, position, name, category, region, description FROM marine_datasets WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Dataset{}, fmt.Errorf("dataset %q: %w", id, catalog.ErrNotFound)
		}
		return catalog.Dataset{}, err
	}
	return row.Domain(), nil
}

func (r *CatalogRepository) Alerts(ctx context.Context) ([]catalog.Alert, error) {
	var rows []records.AlertRow
	const q = `
SELECT id, position, severity, category, title, description, location, timestamp_label, relevant_roles
FROM marine_alerts ORDER BY position`
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return records.Alerts(rows)
}

func (r *CatalogRepository) Regions(ctx context.Context) ([]catalog.OceanRegion, error) {
	var rows []records.RegionRow
	const q = `
SELECT name, position, temperature, chlorophyll, salinity, fish_activity, x, y, width, height
FROM marine_regions ORDER BY position`
	if err := r.db.SelectContext(ctx, &rows, q); err != nil {
		return nil, err
	}
	return records.Regions(rows), nil
}

// Check implements the health checker.
func (r *CatalogRepository) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.db.PingContext(ctx)
}

// Seed creates the tables if needed and makes their content equal to c.
func (r *CatalogRepository) Seed(ctx context.Context, c catalog.Catalog) error {
	if err := c.Validate(); err != nil {
		return err
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	datasets := records.DatasetRows(c.Datasets)
	for _, row := range datasets {
		if _, err := tx.NamedExecContext(ctx, `
INSERT INTO marine_datasets (id, position, name, category, region, description)
VALUES (:id, :position, :name, :category, :region, :description)
ON CONFLICT (id) DO UPDATE SET
 position = EXCLUDED.position,
 name = EXCLUDED.name,
 category = EXCLUDED.category,
 region = EXCLUDED.region,
 description = EXCLUDED.description`, row); err != nil {
			return fmt.Errorf("seed dataset %s: %w", row.ID, err)
		}
	}
	alerts := records.AlertRows(c.Alerts)
	for _, row := range alerts {
		if _, err := tx.NamedExecContext(ctx, `
INSERT INTO marine_alerts (id, position, severity, category, title, description, location, timestamp_label, relevant_roles)
VALUES (:id, :position, :severity, :category, :title, :description, :location, :timestamp_label, :relevant_roles)
ON CONFLICT (id) DO UPDATE SET
 position = EXCLUDED.position,
 severity = EXCLUDED.severity,
 category = EXCLUDED.category,
 title = EXCLUDED.title,
 description = EXCLUDED.description,
 location = EXCLUDED.location,
 timestamp_label = EXCLUDED.timestamp_label,
 relevant_roles = EXCLUDED.relevant_roles`, row); err != nil {
			return fmt.Errorf("seed alert %s: %w", row.ID, err)
		}
	}
	regions := records.RegionRows(c.Regions)
	for _, row := range regions {
		if _, err := tx.NamedExecContext(ctx, `
INSERT INTO marine_regions (name, position, temperature, chlorophyll, salinity, fish_activity, x, y, width, height)
VALUES (:name, :position, :temperature, :chlorophyll, :salinity, :fish_activity, :x, :y, :width, :height)
ON CONFLICT (name) DO UPDATE SET
 position = EXCLUDED.position,
 temperature = EXCLUDED.temperature,
 chlorophyll = EXCLUDED.chlorophyll,
 salinity = EXCLUDED.salinity,
 fish_activity = EXCLUDED.fish_activity,
 x = EXCLUDED.x, y = EXCLUDED.y, width = EXCLUDED.width, height = EXCLUDED.height`, row); err != nil {
			return fmt.Errorf("seed region %s: %w", row.Name, err)
		}
	}

	if err := prune(ctx, tx, records.DatasetsTable, "id", records.DatasetKeys(datasets)); err != nil {
		return err
	}
	if err := prune(ctx, tx, records.AlertsTable, "id", records.AlertKeys(alerts)); err != nil {
		return err
	}
	if err := prune(ctx, tx, records.RegionsTable, "name", records.RegionKeys(regions)); err != nil {
		return err
	}
	return tx.Commit()
}

// prune deletes rows whose key is not in keep.
func prune(ctx context.Context, tx *sqlx.Tx, table, key string, keep []string) error {
	if len(keep) == 0 {
		_, err := tx.ExecContext(ctx, "DELETE FROM "+table)
		return err
	}
	q, args, err := sqlx.In(fmt.Sprintf("DELETE FROM %s WHERE %s NOT IN (?)", table, key), keep)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, tx.Rebind(q), args...); err != nil {
		return fmt.Errorf("prune %s: %w", table, err)
	}
	return nil
}
