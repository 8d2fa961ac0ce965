package components

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSelectList_Single(t *testing.T) {
	l := NewSelectList("Chart", []string{"Units", "Sales", "Bookings"}, "Sales")

	if cur, _ := l.Current(); cur != "Sales" {
		t.Errorf("cursor should start on current, got %q", cur)
	}

	l, action := l.Update(keyRune('j'))
	if action != SelectNone {
		t.Errorf("move should not confirm, got %v", action)
	}
	if cur, _ := l.Current(); cur != "Bookings" {
		t.Errorf("Current() = %q, want Bookings", cur)
	}

	// Wraps around
	l, _ = l.Update(keyRune('j'))
	if l.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", l.Cursor())
	}

	l, action = l.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if action != SelectConfirmed {
		t.Errorf("enter should confirm, got %v", action)
	}
	if got := l.Checked(); !reflect.DeepEqual(got, []string{"Units"}) {
		t.Errorf("Checked() = %v", got)
	}

	_, action = l.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if action != SelectCancelled {
		t.Errorf("esc should cancel, got %v", action)
	}
}

func TestSelectList_Multi(t *testing.T) {
	l := NewMultiSelectList("Towers", []string{"Tower A", "Tower B", "Tower C"}, []string{"Tower B"})

	if got := l.Checked(); !reflect.DeepEqual(got, []string{"Tower B"}) {
		t.Errorf("initial Checked() = %v", got)
	}

	l, _ = l.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := l.Checked(); !reflect.DeepEqual(got, []string{"Tower A", "Tower B"}) {
		t.Errorf("Checked() after toggle = %v", got)
	}

	l, _ = l.Update(keyRune('a'))
	if got := l.Checked(); len(got) != 3 {
		t.Errorf("select all = %v", got)
	}

	l, _ = l.Update(keyRune('a'))
	if got := l.Checked(); len(got) != 0 {
		t.Errorf("select none = %v", got)
	}
}

func TestSelectList_Empty(t *testing.T) {
	l := NewSelectList("Empty", nil, "")

	if l.Cursor() != -1 {
		t.Errorf("Cursor() = %d, want -1", l.Cursor())
	}
	if _, ok := l.Current(); ok {
		t.Error("Current() should report no item")
	}
	if l.Checked() != nil {
		t.Error("Checked() should be nil")
	}

	l, _ = l.Update(keyRune('j'))
	if !strings.Contains(l.View(30), "Nothing to select") {
		t.Error("empty list should say so")
	}
}

func TestSelectList_ViewScrolls(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f"}
	l := NewSelectList("Scroll", items, "f")
	l.SetHeight(3)

	view := l.View(30)
	if !strings.Contains(view, "6/6") {
		t.Errorf("scrolling list should show position: %q", view)
	}
	if strings.Contains(view, "  a") {
		t.Errorf("first item should be scrolled out: %q", view)
	}
}
