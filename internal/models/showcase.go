package models

import (
	"fmt"
	"time"
)

// PinnedSectionName is the synthetic first showcase section holding pinned projects.
const PinnedSectionName = "My Pins"

// Showcase tag ids as sent by the backend.
const (
	ShowcaseTagMixDevelopments = 0
	ShowcaseTagLastFewUnits    = 1
	ShowcaseTagSellingFast     = 2
)

// ShowcaseTagLabel returns the display label for a showcase tag id.
func ShowcaseTagLabel(tag int) string {
	switch tag {
	case ShowcaseTagLastFewUnits:
		return "Last Few Units"
	case ShowcaseTagSellingFast:
		return "Selling Fast"
	default:
		return "Mix Developments"
	}
}

// ShowcaseFilter is the filter body sent to the showcase endpoint.
// Empty fields are not applied by the backend.
type ShowcaseFilter struct {
	TagName          string `json:"tagName"`
	ProjectGroupName string `json:"projectGroupName"`
	Type             string `json:"type"`
	Tenure           string `json:"tenure"`
	State            string `json:"state"`
}

// ShowcaseProject is a project listed in the showcase.
type ShowcaseProject struct {
	ProjectName      string `json:"projectName"`
	ProjectAddress   string `json:"projectAddress"`
	ProjectGroupName string `json:"projectGroupName"`
	Photo            string `json:"photo"`
	ProjectID        int    `json:"projectId"`
	TagID            int    `json:"tagId"`
	AvailableUnits   int    `json:"availableUnits"`
	TotalUnits       int    `json:"totalUnits"`
}

// Availability returns the "available/total Available" label.
// Projects without unit counts use the default label.
func (p ShowcaseProject) Availability() string {
	if p.TotalUnits <= 0 {
		return "150/500 Available"
	}
	return fmt.Sprintf("%d/%d Available", p.AvailableUnits, p.TotalUnits)
}

// PinnedProject is a locally pinned showcase project.
type PinnedProject struct {
	PinnedAt    time.Time
	ProjectName string
	ProjectID   int
}

// ShowcaseSection is a titled group of showcase projects.
type ShowcaseSection struct {
	Name     string
	Projects []ShowcaseProject
}

// GroupShowcase groups projects by project group name in first-seen order.
// When any listed project is pinned, a "My Pins" section comes first.
// Projects without a group land in "Other".
func GroupShowcase(projects []ShowcaseProject, pinned map[int]bool) []ShowcaseSection {
	sections := make([]ShowcaseSection, 0)

	var pins []ShowcaseProject
	for _, p := range projects {
		if pinned[p.ProjectID] {
			pins = append(pins, p)
		}
	}
	if len(pins) > 0 {
		sections = append(sections, ShowcaseSection{Name: PinnedSectionName, Projects: pins})
	}

	index := make(map[string]int)
	for _, p := range projects {
		name := p.ProjectGroupName
		if name == "" {
			name = "Other"
		}
		i, ok := index[name]
		if !ok {
			i = len(sections)
			index[name] = i
			sections = append(sections, ShowcaseSection{Name: name})
		}
		sections[i].Projects = append(sections[i].Projects, p)
	}

	return sections
}
