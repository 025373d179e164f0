package prompt

import (
	"fmt"
	"strings"

	domain "github.com/bryanwahyu/marineiq/internal/domain/assistant"
	"github.com/bryanwahyu/marineiq/internal/domain/roles"
)

// GetSystemPrompt tells the model who it is talking to and what data exists.
// The catalog is the only ground truth the model gets.
func GetSystemPrompt(req domain.Request) string {
	var b strings.Builder
	profile, ok := roles.ProfileOf(req.Role)
	audience := string(req.Role)
	if ok {
		audience = profile.Name
	}

	fmt.Fprintf(&b, `You are the MarineIQ Ocean Assistant inside an ocean intelligence dashboard. The user works in %s.
Answer questions about ocean data, correlations, and insights using only the catalog below. If the catalog cannot answer, say so.
You must produce one valid JSON object only (no markdown, no commentary, no code fences):
{"answer": "<string>", "relatedDatasets": ["<dataset id>", ...]}
relatedDatasets lists catalog dataset ids you relied on, possibly empty.

`, audience)

	b.WriteString("Datasets:\n")
	for _, d := range req.Catalog.Datasets {
		fmt.Fprintf(&b, "- %s [%s] %s, %s: %s\n", d.ID, d.Category, d.Name, d.Region, d.Description)
	}
	b.WriteString("\nOcean regions (temperature °C, chlorophyll mg/m³, salinity PSU, fishing activity %):\n")
	for _, r := range req.Catalog.Regions {
		fmt.Fprintf(&b, "- %s: %.1f, %.1f, %.1f, %d (%s)\n", r.Name, r.Temperature, r.Chlorophyll, r.Salinity, r.FishActivity, r.Tier())
	}
	b.WriteString("\nActive alerts for this user:\n")
	if len(req.Catalog.Alerts) == 0 {
		b.WriteString("- none\n")
	}
	for _, a := range req.Catalog.Alerts {
		fmt.Fprintf(&b, "- [%s/%s] %s (%s, %s): %s\n", a.Severity, a.Category, a.Title, a.Location, a.Timestamp, a.Description)
	}
	return b.String()
}

// GetUserPrompt wraps the user's question.
func GetUserPrompt(question string) string {
	return fmt.Sprintf("Question: %s", question)
}
