package db

import (
	"fmt"
	"strings"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	"github.com/bryanwahyu/marineiq/internal/domain/roles"
)

// Tables shared by the SQL catalog backends. Rows keep a position column
// so reads come back in catalog order.
const (
	DatasetsTable = "marine_datasets"
	AlertsTable   = "marine_alerts"
	RegionsTable  = "marine_regions"
)

type DatasetRow struct {
	ID          string `db:"id"`
	Position    int    `db:"position"`
	Name        string `db:"name"`
	Category    string `db:"category"`
	Region      string `db:"region"`
	Description string `db:"description"`
}

type AlertRow struct {
	ID            string `db:"id"`
	Position      int    `db:"position"`
	Severity      string `db:"severity"`
	Category      string `db:"category"`
	Title         string `db:"title"`
	Description   string `db:"description"`
	Location      string `db:"location"`
	Timestamp     string `db:"timestamp_label"`
	RelevantRoles string `db:"relevant_roles"` // comma separated
}

type RegionRow struct {
	Name         string  `db:"name"`
	Position     int     `db:"position"`
	Temperature  float64 `db:"temperature"`
	Chlorophyll  float64 `db:"chlorophyll"`
	Salinity     float64 `db:"salinity"`
	FishActivity int     `db:"fish_activity"`
	X            float64 `db:"x"`
	Y            float64 `db:"y"`
	Width        float64 `db:"width"`
	Height       float64 `db:"height"`
}

func (r DatasetRow) Domain() catalog.Dataset {
	return catalog.Dataset{
		ID:          r.ID,
		Name:        r.Name,
		Category:    catalog.Category(r.Category),
		Region:      r.Region,
		Description: r.Description,
	}
}

func (r AlertRow) Domain() (catalog.Alert, error) {
	rs, err := SplitRoles(r.RelevantRoles)
	if err != nil {
		return catalog.Alert{}, fmt.Errorf("alert %s: %w", r.ID, err)
	}
	return catalog.Alert{
		ID:            r.ID,
		Severity:      catalog.Severity(r.Severity),
		Category:      catalog.AlertCategory(r.Category),
		Title:         r.Title,
		Description:   r.Description,
		Location:      r.Location,
		Timestamp:     r.Timestamp,
		RelevantRoles: rs,
	}, nil
}

func (r RegionRow) Domain() catalog.OceanRegion {
	return catalog.OceanRegion{
		Name:         r.Name,
		Temperature:  r.Temperature,
		Chlorophyll:  r.Chlorophyll,
		Salinity:     r.Salinity,
		FishActivity: r.FishActivity,
		Bounds:       catalog.Bounds{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height},
	}
}

func DatasetRows(ds []catalog.Dataset) []DatasetRow {
	out := make([]DatasetRow, len(ds))
	for i, d := range ds {
		out[i] = DatasetRow{ID: d.ID, Position: i, Name: d.Name, Category: string(d.Category), Region: d.Region, Description: d.Description}
	}
	return out
}

func AlertRows(as []catalog.Alert) []AlertRow {
	out := make([]AlertRow, len(as))
	for i, a := range as {
		out[i] = AlertRow{
			ID:            a.ID,
			Position:      i,
			Severity:      string(a.Severity),
			Category:      string(a.Category),
			Title:         a.Title,
			Description:   a.Description,
			Location:      a.Location,
			Timestamp:     a.Timestamp,
			RelevantRoles: JoinRoles(a.RelevantRoles),
		}
	}
	return out
}

func RegionRows(rs []catalog.OceanRegion) []RegionRow {
	out := make([]RegionRow, len(rs))
	for i, r := range rs {
		out[i] = RegionRow{
			Name:         r.Name,
			Position:     i,
			Temperature:  r.Temperature,
			Chlorophyll:  r.Chlorophyll,
			Salinity:     r.Salinity,
			FishActivity: r.FishActivity,
			X:            r.Bounds.X,
			Y:            r.Bounds.Y,
			Width:        r.Bounds.Width,
			Height:       r.Bounds.Height,
		}
	}
	return out
}

func JoinRoles(rs []roles.Role) string {
	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}

func SplitRoles(s string) ([]roles.Role, error) {
	var out []roles.Role
	for _, p := range strings.Split(s, ",") {
		if strings.TrimSpace(p) == "" {
			continue
		}
		r, err := roles.Parse(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func Datasets(rows []DatasetRow) []catalog.Dataset {
	out := make([]catalog.Dataset, len(rows))
	for i, r := range rows {
		out[i] = r.Domain()
	}
	return out
}

func Alerts(rows []AlertRow) ([]catalog.Alert, error) {
	out := make([]catalog.Alert, len(rows))
	for i, r := range rows {
		a, err := r.Domain()
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

func Regions(rows []RegionRow) []catalog.OceanRegion {
	out := make([]catalog.OceanRegion, len(rows))
	for i, r := range rows {
		out[i] = r.Domain()
	}
	return out
}

// DatasetKeys returns the primary keys of rows, for pruning stale rows after a seed.
func DatasetKeys(rows []DatasetRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func AlertKeys(rows []AlertRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func RegionKeys(rows []RegionRow) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Name
	}
	return out
}
