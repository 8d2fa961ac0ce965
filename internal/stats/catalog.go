package stats

import (
	"github.com/j-veylop/promaster-tui/internal/models"
)

// Catalog holds the selection catalogs of the three reporting axes.
type Catalog struct {
	PropertyData       []models.ListGroup
	PropertyChartType  []models.ChartType
	PersonnelData      []models.ListGroup
	PersonnelChartType []models.ChartType
	PeriodData         []models.ListGroup
	PeriodChartType    []models.ChartType

	records [3][]models.StatisticRecord
}

// Axis returns the group and chart-type catalogs of an axis.
func (c *Catalog) Axis(axis models.Axis) ([]models.ListGroup, []models.ChartType) {
	switch axis {
	case models.AxisProperty:
		return c.PropertyData, c.PropertyChartType
	case models.AxisPersonnel:
		return c.PersonnelData, c.PersonnelChartType
	case models.AxisPeriod:
		return c.PeriodData, c.PeriodChartType
	default:
		return nil, nil
	}
}

// Records returns the raw records assigned to an axis.
func (c *Catalog) Records(axis models.Axis) []models.StatisticRecord {
	if axis < 0 || int(axis) >= len(c.records) {
		return nil
	}
	return c.records[axis]
}

func (c *Catalog) set(axis models.Axis, groups []models.ListGroup, types []models.ChartType, records []models.StatisticRecord) {
	switch axis {
	case models.AxisProperty:
		c.PropertyData, c.PropertyChartType = groups, types
	case models.AxisPersonnel:
		c.PersonnelData, c.PersonnelChartType = groups, types
	case models.AxisPeriod:
		c.PeriodData, c.PeriodChartType = groups, types
	default:
		return
	}
	c.records[axis] = records
}

// ProcessStatistics derives the group and chart-type catalogs for each axis.
// Axes with no statistic get empty, non-nil catalogs.
func ProcessStatistics(statistics []models.Statistic) Catalog {
	var c Catalog
	for _, axis := range models.Axes {
		c.set(axis, make([]models.ListGroup, 0), make([]models.ChartType, 0), nil)
	}

	for axis, i := range AssignAxes(statistics) {
		records := statistics[i].Records
		c.set(axis, BuildGroups(records), BuildChartTypes(records), records)
	}
	return c
}

// AssignAxes maps each axis to the index of the statistic that feeds it.
//
// A statistic whose name mentions exactly one axis claims that axis; the
// first such statistic wins. Every other statistic, including one whose
// named axis was already claimed, falls back to its position (0 property,
// 1 personnel, 2 period) when that axis is still free.
func AssignAxes(statistics []models.Statistic) map[models.Axis]int {
	assigned := make(map[models.Axis]int, len(models.Axes))
	claimed := make(map[int]bool, len(statistics))

	for i, s := range statistics {
		axis, ok := models.AxisFromName(s.StatisticName)
		if !ok {
			continue
		}
		if _, taken := assigned[axis]; !taken {
			assigned[axis] = i
			claimed[i] = true
		}
	}

	for i := range min(len(statistics), len(models.Axes)) {
		if claimed[i] {
			continue
		}
		axis := models.Axes[i]
		if _, taken := assigned[axis]; !taken {
			assigned[axis] = i
		}
	}

	return assigned
}

type groupKey struct {
	group     string
	chartName string
}

// BuildGroups groups distinct chart identities by (group, chart name) in
// first-seen order.
func BuildGroups(records []models.StatisticRecord) []models.ListGroup {
	groups := make([]models.ListGroup, 0)
	index := make(map[groupKey]int)
	members := make(map[groupKey]map[string]struct{})

	for _, r := range records {
		key := groupKey{group: r.Group, chartName: r.ChartName}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			members[key] = make(map[string]struct{})
			groups = append(groups, models.ListGroup{
				ChartName: r.ChartName,
				GroupName: r.Group,
				ItemsName: make([]string, 0),
			})
		}
		if _, dup := members[key][r.ChartIdentityName]; dup {
			continue
		}
		members[key][r.ChartIdentityName] = struct{}{}
		groups[i].ItemsName = append(groups[i].ItemsName, r.ChartIdentityName)
	}

	return groups
}

// BuildChartTypes lists distinct chart names with ids starting at 1 in
// first-seen order.
func BuildChartTypes(records []models.StatisticRecord) []models.ChartType {
	types := make([]models.ChartType, 0)
	seen := make(map[string]struct{})
	for _, r := range records {
		if _, ok := seen[r.ChartName]; ok {
			continue
		}
		seen[r.ChartName] = struct{}{}
		types = append(types, models.ChartType{IntID: len(types) + 1, Description: r.ChartName})
	}
	return types
}

// DefaultChartName returns the first chart name of a catalog, or "" if empty.
func DefaultChartName(types []models.ChartType) string {
	if len(types) == 0 {
		return ""
	}
	return types[0].Description
}

// GroupsForChart returns the groups recorded under chartName.
func GroupsForChart(groups []models.ListGroup, chartName string) []models.ListGroup {
	out := make([]models.ListGroup, 0)
	for _, g := range groups {
		if g.ChartName == chartName {
			out = append(out, g)
		}
	}
	return out
}
