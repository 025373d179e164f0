package correlation

import (
	"fmt"

	"github.com/bryanwahyu/marineiq/internal/domain/catalog"
)

const Recommendation = "Further investigation recommended in overlapping regions. Consider expanding sampling efforts in areas where both datasets show high variability."

// Narrative builds the insight text for a pair of datasets.
func Narrative(primary, correlating catalog.Dataset) string {
	subject := "biodiversity levels"
	if primary.Category == catalog.CategoryOtolith {
		subject = "fish growth rates"
	}
	driver := "ecosystem health"
	if correlating.Category == catalog.CategoryEnvironmental {
		driver = "environmental factors"
	}
	return fmt.Sprintf(
		"Strong positive correlation detected between %s and %s. This suggests that %s are significantly influenced by %s.",
		primary.Name, correlating.Name, subject, driver,
	)
}
