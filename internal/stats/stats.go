// Package stats turns raw statistic records into chart series and selection catalogs.
package stats

import (
	"github.com/j-veylop/promaster-tui/internal/models"
)

// ProcessCharts builds one series per chart identity for the selected chart name.
//
// Records are kept when their chart name equals selectedChartName and, if
// allowList is non-empty, their identity is in allowList. Identities and
// labels keep first-seen order. Values of the same identity and label are
// summed; the unit is the yAxisName of the first record seen for that label.
func ProcessCharts(records []models.StatisticRecord, selectedChartName string, allowList []string) []models.ChartDataItem {
	items := make([]models.ChartDataItem, 0)

	var allowed map[string]struct{}
	if len(allowList) > 0 {
		allowed = make(map[string]struct{}, len(allowList))
		for _, name := range allowList {
			allowed[name] = struct{}{}
		}
	}

	itemIndex := make(map[string]int)
	labelIndex := make(map[string]map[string]int)

	for _, r := range records {
		if r.ChartName != selectedChartName {
			continue
		}
		if allowed != nil {
			if _, ok := allowed[r.ChartIdentityName]; !ok {
				continue
			}
		}

		i, ok := itemIndex[r.ChartIdentityName]
		if !ok {
			i = len(items)
			itemIndex[r.ChartIdentityName] = i
			labelIndex[r.ChartIdentityName] = make(map[string]int)
			items = append(items, models.ChartDataItem{
				ChartType:         r.ChartType,
				ChartName:         r.ChartName,
				ChartIdentityName: r.ChartIdentityName,
				Data:              make([]models.DataPoint, 0),
			})
		}

		labels := labelIndex[r.ChartIdentityName]
		if j, seen := labels[r.ItemColName]; seen {
			items[i].Data[j].Value += r.YAxisColName.Value
			continue
		}
		labels[r.ItemColName] = len(items[i].Data)
		items[i].Data = append(items[i].Data, models.DataPoint{
			Label: r.ItemColName,
			Value: r.YAxisColName.Value,
			Unit:  r.YAxisName,
		})
	}

	return items
}

// CoercedCount returns how many records carried a non-numeric value that was
// read as 0.
func CoercedCount(records []models.StatisticRecord) int {
	n := 0
	for _, r := range records {
		if r.YAxisColName.Coerced {
			n++
		}
	}
	return n
}

// Identities returns the distinct chart identities recorded under chartName,
// in first-seen order.
func Identities(records []models.StatisticRecord, chartName string) []string {
	seen := make(map[string]struct{})
	names := make([]string, 0)
	for _, r := range records {
		if r.ChartName != chartName {
			continue
		}
		if _, ok := seen[r.ChartIdentityName]; ok {
			continue
		}
		seen[r.ChartIdentityName] = struct{}{}
		names = append(names, r.ChartIdentityName)
	}
	return names
}
