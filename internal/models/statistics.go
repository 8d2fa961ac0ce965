package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Number is a lenient numeric JSON value. Any JSON number is kept as is;
// strings, booleans, objects and null decode to 0 with Coerced set.
type Number struct {
	Value   float64
	Coerced bool
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	n.Value = 0
	n.Coerced = true

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var v float64
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return nil
	}
	n.Value = v
	n.Coerced = false
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

// StatisticRecord is one raw observation received from the backend.
type StatisticRecord struct {
	ChartType         string `json:"chartType"`
	ChartName         string `json:"chartName"`
	Group             string `json:"group"`
	ChartIdentityName string `json:"chartIdentityName"`
	Filter            string `json:"filter"`
	ItemColName       string `json:"itemColName"`
	XAxisName         string `json:"xAxisName"`
	XAxisColName      string `json:"xAxisColName"`
	YAxisName         string `json:"yAxisName"`
	YAxisColName      Number `json:"yAxisColName"`
}

// Statistic is a named collection of records for one reporting axis.
type Statistic struct {
	StatisticName string            `json:"statisticName"`
	Records       []StatisticRecord `json:"records"`
	GeneratedDate int64             `json:"generatedDate"`
}

// Axis is a reporting axis of the statistics panel.
type Axis int

const (
	// AxisProperty reports statistics by property.
	AxisProperty Axis = iota
	// AxisPersonnel reports statistics by personnel.
	AxisPersonnel
	// AxisPeriod reports statistics by period.
	AxisPeriod
)

// Axes lists every axis in display order.
var Axes = []Axis{AxisProperty, AxisPersonnel, AxisPeriod}

// String returns the short name of the axis.
func (a Axis) String() string {
	switch a {
	case AxisProperty:
		return "property"
	case AxisPersonnel:
		return "personnel"
	case AxisPeriod:
		return "period"
	default:
		return "unknown"
	}
}

// Title returns the heading shown above the axis section.
func (a Axis) Title() string {
	switch a {
	case AxisProperty:
		return "By Property"
	case AxisPersonnel:
		return "By Personnel"
	case AxisPeriod:
		return "By Period"
	default:
		return "Unknown"
	}
}

// AxisFromName resolves the axis a statistic belongs to from its name. A
// name that mentions more than one axis resolves to none.
func AxisFromName(name string) (Axis, bool) {
	lower := strings.ToLower(name)
	var (
		found Axis
		n     int
	)
	for _, a := range Axes {
		if strings.Contains(lower, a.String()) {
			found = a
			n++
		}
	}
	if n != 1 {
		return 0, false
	}
	return found, true
}
