package catalog

import (
	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
	"github.com/bryanwahyu/marineiq/internal/domain/roles"
)

// Builtin returns the mock ocean catalog the dashboard ships with.
func Builtin() catalog.Catalog {
	return catalog.Catalog{
		Datasets: builtinDatasets(),
		Alerts:   builtinAlerts(),
		Regions:  builtinRegions(),
	}
}

func builtinDatasets() []catalog.Dataset {
	return []catalog.Dataset{
		{
			ID:          "otolith_cod_north_atlantic",
			Name:        "Atlantic Cod Growth Rates (North Atlantic)",
			Category:    catalog.CategoryOtolith,
			Region:      "North Atlantic",
			Description: "Age and growth analysis from otolith microstructure",
		},
		{
			ID:          "edna_zooplankton_north_atlantic",
			Name:        "Zooplankton Biodiversity (North Atlantic)",
			Category:    catalog.CategoryEDNA,
			Region:      "North Atlantic",
			Description: "eDNA-derived zooplankton species diversity",
		},
		{
			ID:          "sst_north_pacific",
			Name:        "Sea Surface Temperature (North Pacific)",
			Category:    catalog.CategoryEnvironmental,
			Region:      "North Pacific",
			Description: "Satellite-derived temperature anomalies",
		},
		{
			ID:          "tuna_catch_indian_ocean",
			Name:        "Skipjack Tuna Catch Data (Indian Ocean)",
			Category:    catalog.CategoryFisheries,
			Region:      "Indian Ocean",
			Description: "Commercial catch records with effort data",
		},
		{
			ID:          "edna_coral_indo_pacific",
			Name:        "Coral Reef Biodiversity (Indo-Pacific)",
			Category:    catalog.CategoryEDNA,
			Region:      "Indo-Pacific",
			Description: "Environmental DNA from coral reef ecosystems",
		},
		{
			ID:          "otolith_salmon_north_pacific",
			Name:        "Pacific Salmon Migration Patterns",
			Category:    catalog.CategoryOtolith,
			Region:      "North Pacific",
			Description: "Otolith chemistry reveals migration pathways",
		},
	}
}

var everyone = []roles.Role{roles.Fisheries, roles.Biodiversity, roles.Researcher}

func builtinAlerts() []catalog.Alert {
	return []catalog.Alert{
		{
			ID:            "1",
			Severity:      catalog.SeverityCritical,
			Category:      catalog.AlertClimate,
			Title:         "Marine Heatwave Event",
			Description:   "Sea surface temperatures in the North Pacific are 3.2°C above the 20-year average. Potential impacts on salmon migration patterns and plankton distribution.",
			Location:      "North Pacific Ocean",
			Timestamp:     "2 hours ago",
			RelevantRoles: append([]roles.Role(nil), everyone...),
		},
		{
			ID:            "2",
			Severity:      catalog.SeverityModerate,
			Category:      catalog.AlertBiodiversity,
			Title:         "Coral Bleaching Alert",
			Description:   "eDNA analysis indicates 40% reduction in coral-associated species diversity in the Great Barrier Reef. Immediate monitoring recommended.",
			Location:      "Coral Triangle",
			Timestamp:     "6 hours ago",
			RelevantRoles: []roles.Role{roles.Biodiversity, roles.Researcher},
		},
		{
			ID:            "3",
			Severity:      catalog.SeverityAdvisory,
			Category:      catalog.AlertFisheries,
			Title:         "Unusual Fishing Activity Pattern",
			Description:   "Vessel tracking data shows 200% increase in trawling activity near the Dogger Bank. Potential impact on cod spawning grounds.",
			Location:      "North Atlantic Ocean",
			Timestamp:     "12 hours ago",
			RelevantRoles: []roles.Role{roles.Fisheries, roles.Researcher},
		},
		{
			ID:            "4",
			Severity:      catalog.SeverityCritical,
			Category:      catalog.AlertBiodiversity,
			Title:         "Invasive Species Detection",
			Description:   "eDNA samples confirm presence of Mnemiopsis leidyi (comb jelly) in Mediterranean waters. Rapid response protocol activated.",
			Location:      "Mediterranean Sea",
			Timestamp:     "18 hours ago",
			RelevantRoles: []roles.Role{roles.Biodiversity, roles.Researcher},
		},
		{
			ID:            "5",
			Severity:      catalog.SeverityModerate,
			Category:      catalog.AlertPollution,
			Title:         "Microplastic Concentration Spike",
			Description:   "Satellite imagery and water sampling indicate 5x increase in microplastic density in subtropical gyre systems.",
			Location:      "South Pacific Gyre",
			Timestamp:     "1 day ago",
			RelevantRoles: []roles.Role{roles.Biodiversity, roles.Researcher},
		},
		{
			ID:            "6",
			Severity:      catalog.SeverityAdvisory,
			Category:      catalog.AlertClimate,
			Title:         "Ocean Acidification Trend",
			Description:   "pH levels in Arctic waters have decreased by 0.1 units over the past month. Monitoring shellfish populations recommended.",
			Location:      "Arctic Ocean",
			Timestamp:     "2 days ago",
			RelevantRoles: append([]roles.Role(nil), everyone...),
		},
	}
}

func builtinRegions() []catalog.OceanRegion {
	return []catalog.OceanRegion{
		{Name: "North Pacific Ocean", Temperature: 14.2, Chlorophyll: 0.8, Salinity: 34.8, FishActivity: 78, Bounds: catalog.Bounds{X: 5, Y: 25, Width: 35, Height: 25}},
		{Name: "North Atlantic Ocean", Temperature: 12.8, Chlorophyll: 1.2, Salinity: 35.2, FishActivity: 85, Bounds: catalog.Bounds{X: 40, Y: 25, Width: 25, Height: 25}},
		{Name: "Indian Ocean", Temperature: 26.4, Chlorophyll: 0.6, Salinity: 34.7, FishActivity: 92, Bounds: catalog.Bounds{X: 65, Y: 40, Width: 25, Height: 20}},
		{Name: "South Pacific Ocean", Temperature: 16.8, Chlorophyll: 0.4, Salinity: 34.9, FishActivity: 65, Bounds: catalog.Bounds{X: 5, Y: 60, Width: 35, Height: 25}},
		{Name: "South Atlantic Ocean", Temperature: 18.2, Chlorophyll: 0.7, Salinity: 35.1, FishActivity: 73, Bounds: catalog.Bounds{X: 40, Y: 60, Width: 25, Height: 25}},
		{Name: "Arctic Ocean", Temperature: -1.2, Chlorophyll: 0.3, Salinity: 32.4, FishActivity: 25, Bounds: catalog.Bounds{X: 20, Y: 5, Width: 60, Height: 15}},
		{Name: "Southern Ocean", Temperature: 2.4, Chlorophyll: 1.8, Salinity: 34.6, FishActivity: 45, Bounds: catalog.Bounds{X: 10, Y: 85, Width: 80, Height: 10}},
	}
}
