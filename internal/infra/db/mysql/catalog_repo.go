package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	records "github.com/bryanwahyu/marineiq/internal/infra/db"
)

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

const datasetColumns = `id, position, name, category, region, description`

func scanDataset(row interface{ Scan(...any) error }) (records.DatasetRow, error) {
	var d records.DatasetRow
	err := row.Scan(&d.ID, &d.Position, &d.Name, &d.Category, &d.Region, &d.Description)
	return d, err
}

func (r *CatalogRepository) Datasets(ctx context.Context) ([]catalog.Dataset, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+datasetColumns+` FROM marine_datasets ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []records.DatasetRow
	for rows.Next() {
		d, err := scanDataset(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records.Datasets(out), nil
}

func (r *CatalogRepository) Dataset(ctx context.Context, id string) (catalog.Dataset, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+datasetColumns+` FROM marine_datasets WHERE id=? LIMIT 1`, id)
	d, err := scanDataset(row)
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Dataset{}, fmt.Errorf("dataset %q: %w", id, catalog.ErrNotFound)
	}
	if err != nil {
		return catalog.Dataset{}, err
	}
	return d.Domain(), nil
}

func (r *CatalogRepository) Alerts(ctx context.Context) ([]catalog.Alert, error) {
	const q = `
SELECT id, position, severity, category, title, description, location, timestamp_label, relevant_roles
FROM marine_alerts ORDER BY position;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []records.AlertRow
	for rows.Next() {
		var a records.AlertRow
		if err := rows.Scan(&a.ID, &a.Position, &a.Severity, &a.Category, &a.Title,
			&a.Description, &a.Location, &a.Timestamp, &a.RelevantRoles); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records.Alerts(out)
}

func (r *CatalogRepository) Regions(ctx context.Context) ([]catalog.OceanRegion, error) {
	const q = `
SELECT name, position, temperature, chlorophyll, salinity, fish_activity, x, y, width, height
FROM marine_regions ORDER BY position;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []records.RegionRow
	for rows.Next() {
		var g records.RegionRow
		if err := rows.Scan(&g.Name, &g.Position, &g.Temperature, &g.Chlorophyll, &g.Salinity,
			&g.FishActivity, &g.X, &g.Y, &g.Width, &g.Height); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records.Regions(out), nil
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
	// DDL commits implicitly in MySQL, so the schema goes first, outside the tx
	for _, stmt := range schema {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	datasets := records.DatasetRows(c.Datasets)
	for _, d := range datasets {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO marine_datasets (id, position, name, category, region, description)
VALUES (?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 position=VALUES(position), name=VALUES(name), category=VALUES(category),
 region=VALUES(region), description=VALUES(description);
`, d.ID, d.Position, d.Name, d.Category, d.Region, d.Description); err != nil {
			return fmt.Errorf("seed dataset %s: %w", d.ID, err)
		}
	}

	alerts := records.AlertRows(c.Alerts)
	for _, a := range alerts {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO marine_alerts (id, position, severity, category, title, description, location, timestamp_label, relevant_roles)
VALUES (?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 position=VALUES(position), severity=VALUES(severity), category=VALUES(category),
 title=VALUES(title), description=VALUES(description), location=VALUES(location),
 timestamp_label=VALUES(timestamp_label), relevant_roles=VALUES(relevant_roles);
`, a.ID, a.Position, a.Severity, a.Category, a.Title, a.Description, a.Location, a.Timestamp, a.RelevantRoles); err != nil {
			return fmt.Errorf("seed alert %s: %w", a.ID, err)
		}
	}

	regions := records.RegionRows(c.Regions)
	for _, g := range regions {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO marine_regions (name, position, temperature, chlorophyll, salinity, fish_activity, x, y, width, height)
VALUES (?,?,?,?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
 position=VALUES(position), temperature=VALUES(temperature), chlorophyll=VALUES(chlorophyll),
 salinity=VALUES(salinity), fish_activity=VALUES(fish_activity),
 x=VALUES(x), y=VALUES(y), width=VALUES(width), height=VALUES(height);
`, g.Name, g.Position, g.Temperature, g.Chlorophyll, g.Salinity, g.FishActivity, g.X, g.Y, g.Width, g.Height); err != nil {
			return fmt.Errorf("seed region %s: %w", g.Name, err)
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
func prune(ctx context.Context, tx *sql.Tx, table, key string, keep []string) error {
	q := "DELETE FROM " + table
	if len(keep) > 0 {
		q = fmt.Sprintf("DELETE FROM %s WHERE %s NOT IN (%s)", table, key, placeholders(len(keep)))
	}
	if _, err := tx.ExecContext(ctx, q, args(keep)...); err != nil {
		return fmt.Errorf("prune %s: %w", table, err)
	}
	return nil
}
