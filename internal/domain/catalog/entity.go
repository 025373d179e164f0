package catalog

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/bryanwahyu/marineiq/internal/domain/roles"
)

// Category enum for datasets
type Category string

const (
	CategoryOtolith       Category = "otolith"
	CategoryEDNA          Category = "edna"
	CategoryEnvironmental Category = "environmental"
	CategoryFisheries     Category = "fisheries"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryOtolith, CategoryEDNA, CategoryEnvironmental, CategoryFisheries:
		return true
	}
	return false
}

// Dataset is a named data source that can take part in a correlation.
type Dataset struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Category    Category `json:"category" yaml:"category"`
	Region      string   `json:"region" yaml:"region"`
	Description string   `json:"description" yaml:"description"`
}

// Severity enum
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityModerate Severity = "moderate"
	SeverityAdvisory Severity = "advisory"
)

func (s Severity) Valid() bool {
	return s == SeverityCritical || s == SeverityModerate || s == SeverityAdvisory
}

// AlertCategory enum
type AlertCategory string

const (
	AlertClimate      AlertCategory = "climate"
	AlertBiodiversity AlertCategory = "biodiversity"
	AlertFisheries    AlertCategory = "fisheries"
	AlertPollution    AlertCategory = "pollution"
)

func (c AlertCategory) Valid() bool {
	switch c {
	case AlertClimate, AlertBiodiversity, AlertFisheries, AlertPollution:
		return true
	}
	return false
}

// Alert is a notice shown to the roles listed in RelevantRoles.
// Timestamp is display text ("2 hours ago"), not a parsed time.
type Alert struct {
	ID            string        `json:"id" yaml:"id"`
	Severity      Severity      `json:"severity" yaml:"severity"`
	Category      AlertCategory `json:"category" yaml:"category"`
	Title         string        `json:"title" yaml:"title"`
	Description   string        `json:"description" yaml:"description"`
	Location      string        `json:"location" yaml:"location"`
	Timestamp     string        `json:"timestamp" yaml:"timestamp"`
	RelevantRoles []roles.Role  `json:"relevantRoles" yaml:"relevantRoles"`
}

func (a Alert) RelevantTo(r roles.Role) bool {
	for _, rr := range a.RelevantRoles {
		if rr == r {
			return true
		}
	}
	return false
}

// Bounds in percent of the map canvas.
type Bounds struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// ActivityTier buckets fishing activity for map colouring.
type ActivityTier string

const (
	TierHigh     ActivityTier = "high"
	TierElevated ActivityTier = "elevated"
	TierModerate ActivityTier = "moderate"
	TierLow      ActivityTier = "low"
)

func TierFor(activity int) ActivityTier {
	switch {
	case activity >= 80:
		return TierHigh
	case activity >= 60:
		return TierElevated
	case activity >= 40:
		return TierModerate
	default:
		return TierLow
	}
}

// OceanRegion is one clickable area of the map.
type OceanRegion struct {
	Name         string  `json:"name" yaml:"name"`
	Temperature  float64 `json:"temperature" yaml:"temperature"`   // °C
	Chlorophyll  float64 `json:"chlorophyll" yaml:"chlorophyll"`   // mg/m³
	Salinity     float64 `json:"salinity" yaml:"salinity"`         // PSU
	FishActivity int     `json:"fishActivity" yaml:"fishActivity"` // percent
	Bounds       Bounds  `json:"bounds" yaml:"bounds"`
}

func (r OceanRegion) Tier() ActivityTier { return TierFor(r.FishActivity) }

// MaxKeyLength bounds dataset ids and region names, in characters.
const MaxKeyLength = 128

// CheckKey reports whether s can address a dataset or region from a request:
// no surrounding spaces, no control characters, at most MaxKeyLength long.
func CheckKey(s string) error {
	if strings.TrimSpace(s) != s {
		return fmt.Errorf("%q has surrounding whitespace", s)
	}
	if n := utf8.RuneCountInString(s); n > MaxKeyLength {
		return fmt.Errorf("%d characters, limit is %d", n, MaxKeyLength)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return fmt.Errorf("contains control character %U", r)
		}
	}
	return nil
}

// Catalog aggregate: everything a repository serves, in display order.
type Catalog struct {
	Datasets []Dataset     `json:"datasets" yaml:"datasets"`
	Alerts   []Alert       `json:"alerts" yaml:"alerts"`
	Regions  []OceanRegion `json:"regions" yaml:"regions"`
}

// Validate enforces uniqueness of ids and names, their CheckKey shape and
// the enum domains.
// The first violation is returned wrapped in ErrInvalid.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Datasets))
	for i, d := range c.Datasets {
		if strings.TrimSpace(d.ID) == "" {
			return fmt.Errorf("%w: dataset #%d has no id", ErrInvalid, i)
		}
		if err := CheckKey(d.ID); err != nil {
			return fmt.Errorf("%w: dataset id: %v", ErrInvalid, err)
		}
		if seen[d.ID] {
			return fmt.Errorf("%w: duplicate dataset id %q", ErrInvalid, d.ID)
		}
		seen[d.ID] = true
		if !d.Category.Valid() {
			return fmt.Errorf("%w: dataset %q has unknown category %q", ErrInvalid, d.ID, d.Category)
		}
	}

	seen = make(map[string]bool, len(c.Alerts))
	for i, a := range c.Alerts {
		if strings.TrimSpace(a.ID) == "" {
			return fmt.Errorf("%w: alert #%d has no id", ErrInvalid, i)
		}
		if seen[a.ID] {
			return fmt.Errorf("%w: duplicate alert id %q", ErrInvalid, a.ID)
		}
		seen[a.ID] = true
		if !a.Severity.Valid() {
			return fmt.Errorf("%w: alert %q has unknown severity %q", ErrInvalid, a.ID, a.Severity)
		}
		if !a.Category.Valid() {
			return fmt.Errorf("%w: alert %q has unknown category %q", ErrInvalid, a.ID, a.Category)
		}
		if len(a.RelevantRoles) == 0 {
			return fmt.Errorf("%w: alert %q is relevant to no role", ErrInvalid, a.ID)
		}
		for _, r := range a.RelevantRoles {
			if !r.Valid() {
				return fmt.Errorf("%w: alert %q names unknown role %q", ErrInvalid, a.ID, r)
			}
		}
	}

	seen = make(map[string]bool, len(c.Regions))
	for _, r := range c.Regions {
		if strings.TrimSpace(r.Name) == "" {
			return fmt.Errorf("%w: region without name", ErrInvalid)
		}
		if err := CheckKey(r.Name); err != nil {
			return fmt.Errorf("%w: region name: %v", ErrInvalid, err)
		}
		if seen[r.Name] {
			return fmt.Errorf("%w: duplicate region %q", ErrInvalid, r.Name)
		}
		seen[r.Name] = true
		if r.FishActivity < 0 || r.FishActivity > 100 {
			return fmt.Errorf("%w: region %q fish activity %d out of range", ErrInvalid, r.Name, r.FishActivity)
		}
	}
	return nil
}

func (c *Catalog) Dataset(id string) (Dataset, bool) {
	for _, d := range c.Datasets {
		if d.ID == id {
			return d, true
		}
	}
	return Dataset{}, false
}

func (c *Catalog) Region(name string) (OceanRegion, bool) {
	for _, r := range c.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return OceanRegion{}, false
}

// Clone returns a deep copy so callers can't mutate shared slices.
func (c Catalog) Clone() Catalog {
	out := Catalog{
		Datasets: append([]Dataset(nil), c.Datasets...),
		Regions:  append([]OceanRegion(nil), c.Regions...),
		Alerts:   make([]Alert, len(c.Alerts)),
	}
	for i, a := range c.Alerts {
		a.RelevantRoles = append([]roles.Role(nil), a.RelevantRoles...)
		out.Alerts[i] = a
	}
	return out
}
