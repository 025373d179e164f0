package catalog

import "github.com/bryanwahyu/marineiq/internal/domain/roles"

// FilterAlerts keeps the alerts relevant to role, preserving catalog order.
func FilterAlerts(alerts []Alert, role roles.Role) []Alert {
	out := make([]Alert, 0, len(alerts))
	for _, a := range alerts {
		if a.RelevantTo(role) {
			out = append(out, a)
		}
	}
	return out
}

// ExcludeDataset returns datasets without the one with id. Empty id keeps all.
func ExcludeDataset(datasets []Dataset, id string) []Dataset {
	out := make([]Dataset, 0, len(datasets))
	for _, d := range datasets {
		if id != "" && d.ID == id {
			continue
		}
		out = append(out, d)
	}
	return out
}
