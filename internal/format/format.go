// Package format renders numbers, dates and backend text for display.
package format

import (
	"html"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer = message.NewPrinter(language.English)
	strict  = bluemonday.StrictPolicy()
)

// Number formats a value with thousands separators. Whole numbers have no
// decimals; other values keep two.
func Number(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%.2f", v)
}

// Percent formats part/total as a whole percentage. A zero total yields "0%".
func Percent(part, total float64) string {
	if total == 0 {
		return "0%"
	}
	return printer.Sprintf("%.0f%%", part/total*100)
}

// ActivityTime formats an activity timestamp relative to now:
// "Today 03:04 PM", "Yesterday 09:00 AM" or "02 Jan 2006 03:04 PM".
func ActivityTime(t, now time.Time) string {
	t = t.In(now.Location())
	clock := t.Format("03:04 PM")

	y1, m1, d1 := t.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today " + clock
	}

	yesterday := now.AddDate(0, 0, -1)
	y3, m3, d3 := yesterday.Date()
	if y1 == y3 && m1 == m3 && d1 == d3 {
		return "Yesterday " + clock
	}

	return t.Format("02 Jan 2006 03:04 PM")
}

// Clock formats the header clock, e.g. "Monday, 09:41 AM".
func Clock(t time.Time) string {
	return t.Format("Monday, 03:04 PM")
}

// Sanitize strips markup from backend supplied text and collapses whitespace.
func Sanitize(s string) string {
	if s == "" {
		return ""
	}
	clean := html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(clean), " ")
}

// Truncate shortens s to max terminal cells, appending "…" when cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	return ansi.Truncate(s, max, "…")
}
