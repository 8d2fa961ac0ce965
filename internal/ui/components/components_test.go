package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/promaster-tui/internal/models"
)

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Loading")
	if s.label != "Loading" {
		t.Error("Spinner label mismatch")
	}
}

func TestSpinner_Methods(t *testing.T) {
	s := NewSpinner("Init")

	s.SetLabel("Loading")
	if s.Label() != "Loading" {
		t.Errorf("Label = %s, want Loading", s.Label())
	}

	// Test View
	view := s.View()
	if view == "" {
		t.Error("View returned empty")
	}

	// Test ViewWithLabel
	view = s.ViewWithLabel()
	if view == "" {
		t.Error("ViewWithLabel returned empty")
	}

	// Test Init
	if s.Init() == nil {
		t.Error("Init should return command")
	}

	// Test Update
	m, cmd := s.Update(spinner.TickMsg{})
	_ = m
	if cmd == nil {
		t.Error("Update should return command for tick")
	}

	// Test Tick
	if s.Tick() == nil {
		t.Error("Tick should return command")
	}

	// Test Spinner accessor
	if s.Spinner().Spinner.Frames == nil {
		t.Error("Spinner accessor failed")
	}
}

func TestRenderSpinnerCentered(t *testing.T) {
	s := NewSpinner("Loading...")
	view := RenderSpinnerCentered(s, 20, 5)
	if view == "" {
		t.Error("RenderSpinnerCentered returned empty")
	}
}

func towerA() models.ChartDataItem {
	return models.ChartDataItem{
		ChartName:         "Units",
		ChartIdentityName: "Tower A",
		Data: []models.DataPoint{
			{Label: "Available", Value: 8, Unit: "units"},
			{Label: "Booked", Value: 2, Unit: "units"},
		},
	}
}

func TestRenderLineChart(t *testing.T) {
	data := []float64{1, 2, 3, 4}
	s := RenderLineChart(data, 20, 5, "Test")
	if s == "" {
		t.Error("RenderLineChart returned empty")
	}

	if s := RenderLineChart([]float64{5}, 20, 5, ""); s == "" {
		t.Error("RenderLineChart should draw a single point")
	}

	if s := RenderLineChart(nil, 20, 5, ""); !strings.Contains(s, noData) {
		t.Errorf("RenderLineChart(nil) = %q", s)
	}
}

func TestRenderBarChart(t *testing.T) {
	s := RenderBarChart(towerA(), 40)
	if !strings.Contains(s, "Available") || !strings.Contains(s, "8") {
		t.Errorf("RenderBarChart missing entries: %q", s)
	}
	if strings.Count(s, "\n") != 1 {
		t.Errorf("RenderBarChart should have one line per entry: %q", s)
	}

	if s := RenderBarChart(models.ChartDataItem{}, 40); !strings.Contains(s, noData) {
		t.Errorf("RenderBarChart(empty) = %q", s)
	}
}

func TestRenderRing(t *testing.T) {
	s := RenderRing(towerA(), 20)
	for _, want := range []string{"Available 80%", "Booked 20%", "10 units"} {
		if !strings.Contains(s, want) {
			t.Errorf("RenderRing missing %q: %q", want, s)
		}
	}

	zero := models.ChartDataItem{Data: []models.DataPoint{{Label: "a"}}}
	if s := RenderRing(zero, 20); !strings.Contains(s, noData) {
		t.Errorf("RenderRing(zero) = %q", s)
	}
}

func TestRenderSparkline(t *testing.T) {
	data := []float64{1, 2, 3}
	s := RenderSparkline(data, 10)
	if s == "" {
		t.Error("RenderSparkline returned empty")
	}
	if RenderSparkline(nil, 10) != "" {
		t.Error("RenderSparkline(nil) should be empty")
	}
}

func TestRenderLegend(t *testing.T) {
	items := []LegendItem{
		{Label: "A", Color: lipgloss.Color("#ffffff")},
	}
	s := RenderLegend(items)
	if s == "" {
		t.Error("RenderLegend returned empty")
	}
}

func TestAvailabilityBar(t *testing.T) {
	p := models.ShowcaseProject{AvailableUnits: 25, TotalUnits: 100}
	if got := AvailabilityPercent(p); got != 25 {
		t.Errorf("AvailabilityPercent = %v, want 25", got)
	}
	if s := AvailabilityBar(p, 40); !strings.Contains(s, "25/100 Available") {
		t.Errorf("AvailabilityBar = %q", s)
	}

	unknown := models.ShowcaseProject{}
	if got := AvailabilityPercent(unknown); got != -1 {
		t.Errorf("AvailabilityPercent(unknown) = %v, want -1", got)
	}
	if s := AvailabilityBar(unknown, 40); !strings.Contains(s, "150/500 Available") {
		t.Errorf("AvailabilityBar(unknown) = %q", s)
	}
}

func TestRenderGradientBar(t *testing.T) {
	if RenderGradientBar(50, 0) != "" {
		t.Error("zero width should render nothing")
	}
	s := RenderGradientBar(50, 10)
	if strings.Count(s, "█") != 5 || strings.Count(s, "░") != 5 {
		t.Errorf("RenderGradientBar(50, 10) = %q", s)
	}
}

func TestShimmerBar(t *testing.T) {
	if ShimmerBar(0, 1) != "" {
		t.Error("zero width should render nothing")
	}
	if s := ShimmerBar(10, 7); strings.Count(s, "▓")+strings.Count(s, "▒")+strings.Count(s, "░") != 10 {
		t.Errorf("ShimmerBar(10) = %q", s)
	}
}

func TestInterpolateColor(t *testing.T) {
	if got := interpolateColor("#000000", "#ffffff", 0); got != "#000000" {
		t.Errorf("interpolateColor(0) = %s", got)
	}
	if got := interpolateColor("#000000", "#ffffff", 1); got != "#ffffff" {
		t.Errorf("interpolateColor(1) = %s", got)
	}
	if got := hexToRGB("zz"); got != [3]int{0, 0, 0} {
		t.Errorf("hexToRGB(invalid) = %v", got)
	}
}
