package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/promaster-tui/internal/models"
)

func grouped(group, chart, identity string) models.StatisticRecord {
	return models.StatisticRecord{Group: group, ChartName: chart, ChartIdentityName: identity}
}

func TestBuildChartTypes(t *testing.T) {
	records := []models.StatisticRecord{
		grouped("g", "Sales", "a"),
		grouped("g", "Units", "a"),
		grouped("g", "Sales", "b"),
		grouped("g", "Bookings", "a"),
	}

	types := BuildChartTypes(records)

	assert.Equal(t, []models.ChartType{
		{IntID: 1, Description: "Sales"},
		{IntID: 2, Description: "Units"},
		{IntID: 3, Description: "Bookings"},
	}, types)
	assert.Equal(t, types, BuildChartTypes(records), "ids should be stable for identical input")
	assert.Equal(t, "Sales", DefaultChartName(types))
	assert.Equal(t, "", DefaultChartName(nil))
}

func TestBuildGroups_KeyedByGroupAndChart(t *testing.T) {
	records := []models.StatisticRecord{
		grouped("North", "Sales", "Tower A"),
		grouped("North", "Units", "Tower B"),
		grouped("North", "Sales", "Tower C"),
		grouped("South", "Sales", "Tower D"),
		grouped("North", "Sales", "Tower A"),
	}

	groups := BuildGroups(records)

	require.Len(t, groups, 3)
	assert.Equal(t, models.ListGroup{ChartName: "Sales", GroupName: "North", ItemsName: []string{"Tower A", "Tower C"}}, groups[0])
	assert.Equal(t, models.ListGroup{ChartName: "Units", GroupName: "North", ItemsName: []string{"Tower B"}}, groups[1])
	assert.Equal(t, models.ListGroup{ChartName: "Sales", GroupName: "South", ItemsName: []string{"Tower D"}}, groups[2])

	sales := GroupsForChart(groups, "Sales")
	require.Len(t, sales, 2)
	assert.Equal(t, "South", sales[1].GroupName)
}

func TestAssignAxes(t *testing.T) {
	tests := []struct {
		name  string
		stats []string
		want  map[models.Axis]int
	}{
		{
			name:  "positional",
			stats: []string{"a", "b", "c"},
			want:  map[models.Axis]int{models.AxisProperty: 0, models.AxisPersonnel: 1, models.AxisPeriod: 2},
		},
		{
			name:  "named out of order",
			stats: []string{"By Period", "By Property", "By Personnel"},
			want:  map[models.Axis]int{models.AxisPeriod: 0, models.AxisProperty: 1, models.AxisPersonnel: 2},
		},
		{
			name:  "named wins over position",
			stats: []string{"x", "By Property"},
			want:  map[models.Axis]int{models.AxisProperty: 1},
		},
		{
			name:  "fewer than three",
			stats: []string{"only"},
			want:  map[models.Axis]int{models.AxisProperty: 0},
		},
		{
			name:  "taken name falls back to position",
			stats: []string{"Property Sales", "Property Agents", "Monthly"},
			want:  map[models.Axis]int{models.AxisProperty: 0, models.AxisPersonnel: 1, models.AxisPeriod: 2},
		},
		{
			name:  "duplicate names past the axes are ignored",
			stats: []string{"Period A", "x", "y", "Period B"},
			want:  map[models.Axis]int{models.AxisPeriod: 0, models.AxisPersonnel: 1},
		},
		{
			name:  "name mentioning two axes is positional",
			stats: []string{"Sales", "Team", "By Property period"},
			want:  map[models.Axis]int{models.AxisProperty: 0, models.AxisPersonnel: 1, models.AxisPeriod: 2},
		},
		{
			name:  "extra unnamed ignored",
			stats: []string{"a", "b", "c", "d"},
			want:  map[models.Axis]int{models.AxisProperty: 0, models.AxisPersonnel: 1, models.AxisPeriod: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statistics := make([]models.Statistic, len(tt.stats))
			for i, name := range tt.stats {
				statistics[i] = models.Statistic{StatisticName: name}
			}
			assert.Equal(t, tt.want, AssignAxes(statistics))
		})
	}
}

func TestProcessStatistics(t *testing.T) {
	statistics := []models.Statistic{
		{StatisticName: "By Property", Records: []models.StatisticRecord{
			grouped("North", "Sales", "Tower A"),
			grouped("North", "Units", "Tower A"),
		}},
		{StatisticName: "By Personnel", Records: []models.StatisticRecord{
			grouped("Team 1", "Bookings", "Aina"),
		}},
	}

	c := ProcessStatistics(statistics)

	require.Len(t, c.PropertyChartType, 2)
	assert.Equal(t, 1, c.PropertyChartType[0].IntID)
	require.Len(t, c.PropertyData, 2)
	require.Len(t, c.PersonnelData, 1)
	assert.Equal(t, []string{"Aina"}, c.PersonnelData[0].ItemsName)

	assert.NotNil(t, c.PeriodData)
	assert.Empty(t, c.PeriodData)
	assert.Empty(t, c.PeriodChartType)
	assert.Empty(t, c.Records(models.AxisPeriod))

	groups, types := c.Axis(models.AxisPersonnel)
	assert.Equal(t, c.PersonnelData, groups)
	assert.Equal(t, c.PersonnelChartType, types)
	assert.Len(t, c.Records(models.AxisProperty), 2)

	assert.Equal(t, c, ProcessStatistics(statistics))
}

func TestProcessStatistics_KeepsEveryAxis(t *testing.T) {
	statistics := []models.Statistic{
		{StatisticName: "Property Sales", Records: []models.StatisticRecord{grouped("North", "Sales", "Tower A")}},
		{StatisticName: "Property Agents", Records: []models.StatisticRecord{grouped("Team 1", "Bookings", "Aina")}},
		{StatisticName: "Monthly", Records: []models.StatisticRecord{grouped("2026", "Revenue", "Jan")}},
	}

	c := ProcessStatistics(statistics)

	require.Len(t, c.PersonnelChartType, 1)
	assert.Equal(t, "Bookings", c.PersonnelChartType[0].Description)
	require.Len(t, c.PeriodChartType, 1)
	assert.Equal(t, "Revenue", c.PeriodChartType[0].Description)
	assert.Equal(t, "Sales", c.PropertyChartType[0].Description)
}

func TestProcessStatistics_Empty(t *testing.T) {
	c := ProcessStatistics(nil)
	for _, axis := range models.Axes {
		groups, types := c.Axis(axis)
		assert.NotNil(t, groups)
		assert.Empty(t, groups)
		assert.Empty(t, types)
	}
}
