package roles

import (
	"errors"
	"fmt"
	"strings"
)

// Role enum
type Role string

const (
	Fisheries    Role = "fisheries"
	Biodiversity Role = "biodiversity"
	Researcher   Role = "researcher"
)

// Default role for a fresh dashboard session.
const Default = Fisheries

var ErrUnknownRole = errors.New("unknown role")

// All returns the roles in switcher order.
func All() []Role {
	return []Role{Fisheries, Biodiversity, Researcher}
}

func (r Role) Valid() bool {
	switch r {
	case Fisheries, Biodiversity, Researcher:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// Parse normalises and validates a role name.
func Parse(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// Profile value object, everything the switcher and page header show for a role.
type Profile struct {
	Role        Role   `json:"role" yaml:"role"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Headline    string `json:"headline" yaml:"headline"`
	Blurb       string `json:"blurb" yaml:"blurb"`
}

var profiles = map[Role]Profile{
	Fisheries: {
		Role:        Fisheries,
		Name:        "Fisheries Management",
		Description: "Monitor fishing activities, stock health, and sustainability metrics",
		Headline:    "Fisheries Management Dashboard",
		Blurb:       "Monitor global fishing activities, assess stock health, and ensure sustainable practices with real-time vessel tracking and catch forecasting.",
	},
	Biodiversity: {
		Role:        Biodiversity,
		Name:        "Biodiversity Conservation",
		Description: "Track marine biodiversity, protected areas, and conservation efforts",
		Headline:    "Biodiversity Conservation Center",
		Blurb:       "Track marine biodiversity through eDNA analysis, monitor protected areas, and respond to conservation alerts across global ocean ecosystems.",
	},
	Researcher: {
		Role:        Researcher,
		Name:        "Scientific Research",
		Description: "Deep data exploration and cross-disciplinary analysis tools",
		Headline:    "Scientific Research Workbench",
		Blurb:       "Access comprehensive datasets, perform cross-disciplinary correlation analysis, and explore the revolutionary eDNA + Otolith data pipeline for advanced marine research.",
	},
}

// ProfileOf returns the profile of r. Unknown roles get an empty profile and false.
func ProfileOf(r Role) (Profile, bool) {
	p, ok := profiles[r]
	return p, ok
}

// Profiles returns all profiles in switcher order.
func Profiles() []Profile {
	out := make([]Profile, 0, len(profiles))
	for _, r := range All() {
		out = append(out, profiles[r])
	}
	return out
}
