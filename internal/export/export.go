// Package export renders chart series to PNG files.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/j-veylop/promaster-tui/internal/format"
	"github.com/j-veylop/promaster-tui/internal/models"
)

const (
	DefaultWidth  = 1024
	DefaultHeight = 640

	minBarWidth = 4
)

// ErrEmptyChart is returned when a series has nothing to draw.
var ErrEmptyChart = errors.New("chart has no values to draw")

// Kind selects how a series is drawn.
type Kind int

const (
	KindBar Kind = iota
	KindPie
)

// KindOf picks the drawing for a backend chart type. Unknown types are bars.
func KindOf(chartType string) Kind {
	t := strings.ToLower(chartType)
	if strings.Contains(t, "pie") || strings.Contains(t, "doughnut") || strings.Contains(t, "donut") {
		return KindPie
	}
	return KindBar
}

// Title returns the heading drawn above an exported chart.
func Title(item models.ChartDataItem) string {
	name := format.Sanitize(item.ChartName)
	identity := format.Sanitize(item.ChartIdentityName)
	switch {
	case identity == "":
		return name
	case name == "":
		return identity
	default:
		return name + " - " + identity
	}
}

// Render draws item as a PNG onto w.
func Render(w io.Writer, item models.ChartDataItem, kind Kind, width, height int) error {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}

	switch kind {
	case KindPie:
		return renderPie(w, item, width, height)
	default:
		return renderBar(w, item, width, height)
	}
}

func renderPie(w io.Writer, item models.ChartDataItem, width, height int) error {
	values := make([]chart.Value, 0, len(item.Data))
	for _, d := range item.Data {
		// Slices cannot be negative or empty.
		if d.Value <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Label: fmt.Sprintf("%s %s", format.Sanitize(d.Label), format.Number(d.Value)),
			Value: d.Value,
		})
	}
	if len(values) == 0 {
		return ErrEmptyChart
	}

	pie := chart.PieChart{
		Title:      Title(item),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		Values:     values,
	}
	return pie.Render(chart.PNG, w)
}

func renderBar(w io.Writer, item models.ChartDataItem, width, height int) error {
	if len(item.Data) == 0 {
		return ErrEmptyChart
	}

	var lo, hi float64
	bars := make([]chart.Value, len(item.Data))
	for i, d := range item.Data {
		bars[i] = chart.Value{Label: format.Sanitize(d.Label), Value: d.Value}
		lo = min(lo, d.Value)
		hi = max(hi, d.Value)
	}
	if lo == hi {
		return ErrEmptyChart
	}

	// Bars share the plot width; a third of each slot is spacing.
	slot := (width - 120) / len(bars)
	barWidth := max(slot*2/3, minBarWidth)
	spacing := max(slot-barWidth, 1)

	bar := chart.BarChart{
		Title:      Title(item),
		Width:      width,
		Height:     height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16}},
		BarWidth:   barWidth,
		BarSpacing: spacing,
		YAxis: chart.YAxis{
			Name:  unitOf(item),
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Bars: bars,
	}
	return bar.Render(chart.PNG, w)
}

func unitOf(item models.ChartDataItem) string {
	for _, d := range item.Data {
		if d.Unit != "" {
			return format.Sanitize(d.Unit)
		}
	}
	return ""
}

// FileName returns the file name used for an exported chart.
func FileName(item models.ChartDataItem, now time.Time) string {
	base := slug(item.ChartName + " " + item.ChartIdentityName)
	if base == "" {
		base = "chart"
	}
	return fmt.Sprintf("%s-%s.png", base, now.Format("20060102-150405"))
}

// WriteFile renders item into dir and returns the written path. Nothing is
// written when rendering fails.
func WriteFile(dir string, item models.ChartDataItem, now time.Time) (string, error) {
	var buf bytes.Buffer
	if err := Render(&buf, item, KindOf(item.ChartType), DefaultWidth, DefaultHeight); err != nil {
		return "", fmt.Errorf("failed to render chart: %w", err)
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, FileName(item, now))
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return "", fmt.Errorf("failed to write chart: %w", err)
	}
	return path, nil
}

// slug lowercases s and joins its alphanumeric runs with dashes.
func slug(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(format.Sanitize(s)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	return b.String()
}
