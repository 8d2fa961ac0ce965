package app

import "github.com/j-veylop/promaster-tui/internal/models"

// DialogKind discriminates the open dialog.
type DialogKind int

const (
	DialogNone DialogKind = iota
	DialogTagFilter
	DialogActivityFilter
	DialogChartPicker
	DialogPropertyPicker
	DialogGroupPicker
)

func (k DialogKind) String() string {
	switch k {
	case DialogNone:
		return "none"
	case DialogTagFilter:
		return "tag filter"
	case DialogActivityFilter:
		return "activity filter"
	case DialogChartPicker:
		return "chart picker"
	case DialogPropertyPicker:
		return "property picker"
	case DialogGroupPicker:
		return "group picker"
	default:
		return "unknown"
	}
}

// Dialog is the single active dialog. Axis is set for the chart, group and
// property pickers; Group only for the property picker, which lists the
// identities of one group.
type Dialog struct {
	Group string
	Kind  DialogKind
	Axis  models.Axis
}

// NoDialog is the closed state.
var NoDialog = Dialog{}

// TagFilterDialog picks the project tag of the projects strip.
func TagFilterDialog() Dialog { return Dialog{Kind: DialogTagFilter} }

// ActivityFilterDialog picks the activity category of the feed.
func ActivityFilterDialog() Dialog { return Dialog{Kind: DialogActivityFilter} }

// ChartPickerDialog picks the chart name shown for an axis.
func ChartPickerDialog(axis models.Axis) Dialog {
	return Dialog{Kind: DialogChartPicker, Axis: axis}
}

// GroupPickerDialog picks the identity group for an axis.
func GroupPickerDialog(axis models.Axis) Dialog {
	return Dialog{Kind: DialogGroupPicker, Axis: axis}
}

// PropertyPickerDialog picks the identities of a group shown for an axis.
func PropertyPickerDialog(axis models.Axis, group string) Dialog {
	return Dialog{Kind: DialogPropertyPicker, Axis: axis, Group: group}
}

// IsOpen reports whether a dialog is shown.
func (d Dialog) IsOpen() bool {
	return d.Kind != DialogNone
}

// HasAxis reports whether the dialog applies to one axis.
func (d Dialog) HasAxis() bool {
	switch d.Kind {
	case DialogChartPicker, DialogGroupPicker, DialogPropertyPicker:
		return true
	default:
		return false
	}
}
