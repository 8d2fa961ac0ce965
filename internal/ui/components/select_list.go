package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/j-veylop/promaster-tui/internal/format"
	"github.com/j-veylop/promaster-tui/internal/ui/styles"
)

// SelectAction reports what a key press did to a SelectList.
type SelectAction int

const (
	SelectNone SelectAction = iota
	SelectConfirmed
	SelectCancelled
)

type selectKeys struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	All    key.Binding
	Enter  key.Binding
	Cancel key.Binding
}

func defaultSelectKeys() selectKeys {
	return selectKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		All:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all/none")),
		Enter:  key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel: key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc", "cancel")),
	}
}

// SelectList is a single or multi select list used by dialogs.
type SelectList struct {
	selected map[int]bool
	title    string
	items    []string
	keys     selectKeys
	cursor   int
	height   int
	multi    bool
}

// NewSelectList creates a single-select list with the cursor on current,
// when present.
func NewSelectList(title string, items []string, current string) SelectList {
	l := SelectList{
		title:    title,
		items:    items,
		selected: make(map[int]bool),
		keys:     defaultSelectKeys(),
		height:   12,
	}
	for i, it := range items {
		if it == current {
			l.cursor = i
			break
		}
	}
	return l
}

// NewMultiSelectList creates a multi-select list with the given items checked.
func NewMultiSelectList(title string, items, checked []string) SelectList {
	l := NewSelectList(title, items, "")
	l.multi = true
	want := make(map[string]bool, len(checked))
	for _, c := range checked {
		want[c] = true
	}
	for i, it := range items {
		if want[it] {
			l.selected[i] = true
		}
	}
	return l
}

// SetHeight sets how many rows are visible.
func (l *SelectList) SetHeight(h int) {
	l.height = max(h, 3)
}

// Cursor returns the index under the cursor, or -1 for an empty list.
func (l SelectList) Cursor() int {
	if len(l.items) == 0 {
		return -1
	}
	return l.cursor
}

// Current returns the item under the cursor.
func (l SelectList) Current() (string, bool) {
	if len(l.items) == 0 {
		return "", false
	}
	return l.items[l.cursor], true
}

// Checked returns the checked items in list order. A single-select list
// returns the item under the cursor.
func (l SelectList) Checked() []string {
	if !l.multi {
		if cur, ok := l.Current(); ok {
			return []string{cur}
		}
		return nil
	}
	out := make([]string, 0, len(l.selected))
	for i, it := range l.items {
		if l.selected[i] {
			out = append(out, it)
		}
	}
	return out
}

// Update handles a key press.
func (l SelectList) Update(msg tea.Msg) (SelectList, SelectAction) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, SelectNone
	}

	switch {
	case key.Matches(keyMsg, l.keys.Up):
		if len(l.items) > 0 {
			l.cursor = (l.cursor - 1 + len(l.items)) % len(l.items)
		}
	case key.Matches(keyMsg, l.keys.Down):
		if len(l.items) > 0 {
			l.cursor = (l.cursor + 1) % len(l.items)
		}
	case l.multi && key.Matches(keyMsg, l.keys.Toggle):
		if len(l.items) > 0 {
			l.selected[l.cursor] = !l.selected[l.cursor]
		}
	case l.multi && key.Matches(keyMsg, l.keys.All):
		all := len(l.Checked()) < len(l.items)
		for i := range l.items {
			l.selected[i] = all
		}
	case key.Matches(keyMsg, l.keys.Enter):
		return l, SelectConfirmed
	case key.Matches(keyMsg, l.keys.Cancel):
		return l, SelectCancelled
	}
	return l, SelectNone
}

// View renders the list inside a dialog frame.
func (l SelectList) View(width int) string {
	width = max(width, 24)

	rows := []string{styles.CardTitleStyle.Render(l.title)}

	if len(l.items) == 0 {
		rows = append(rows, styles.HelpStyle.Render("Nothing to select"))
	}

	start := 0
	if l.cursor >= l.height {
		start = l.cursor - l.height + 1
	}
	end := min(start+l.height, len(l.items))

	for i := start; i < end; i++ {
		label := format.Truncate(format.Sanitize(l.items[i]), width-8)
		if l.multi {
			box := "[ ]"
			if l.selected[i] {
				box = styles.SuccessTextStyle.Render("[x]")
			}
			label = box + " " + label
		}
		if i == l.cursor {
			rows = append(rows, styles.FocusedStyle.Render("▸ ")+label)
		} else {
			rows = append(rows, "  "+label)
		}
	}

	if len(l.items) > l.height {
		rows = append(rows, styles.HelpStyle.Render(fmt.Sprintf("%d/%d", l.cursor+1, len(l.items))))
	}

	hints := []string{"enter confirm", "esc cancel"}
	if l.multi {
		hints = []string{"space toggle", "a all/none", "enter confirm", "esc cancel"}
	}
	rows = append(rows, "", styles.HelpStyle.Render(strings.Join(hints, " · ")))

	return styles.DialogStyle.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
