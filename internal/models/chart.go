package models

// DataPoint is one aggregated entry of a chart series.
type DataPoint struct {
	Label string  `json:"label"`
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

// ChartDataItem is a display-ready series for one chart identity.
type ChartDataItem struct {
	ChartType         string      `json:"chartType"`
	ChartName         string      `json:"chartName"`
	ChartIdentityName string      `json:"chartIdentityName"`
	Data              []DataPoint `json:"data"`
}

// Total returns the sum of all values in the series.
func (c ChartDataItem) Total() float64 {
	var total float64
	for _, d := range c.Data {
		total += d.Value
	}
	return total
}

// Values returns the series values in label order.
func (c ChartDataItem) Values() []float64 {
	values := make([]float64, len(c.Data))
	for i, d := range c.Data {
		values[i] = d.Value
	}
	return values
}

// Labels returns the series labels in order.
func (c ChartDataItem) Labels() []string {
	labels := make([]string, len(c.Data))
	for i, d := range c.Data {
		labels[i] = d.Label
	}
	return labels
}

// ListGroup groups chart identities under a group key for selection dialogs.
type ListGroup struct {
	ChartName string   `json:"chartName"`
	GroupName string   `json:"groupName"`
	ItemsName []string `json:"itemsName"`
}

// ChartType is a selectable chart name with a positional id starting at 1.
type ChartType struct {
	Description string `json:"description"`
	IntID       int    `json:"intId"`
}
