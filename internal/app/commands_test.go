package app

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/promaster-tui/internal/models"
)

func TestCommands_Tick(t *testing.T) {
	cmds := NewCommands(nil)
	cmd := cmds.Tick(time.Millisecond)
	if cmd == nil {
		t.Error("Tick returned nil")
	}
}

func TestCommands_DefaultTick(t *testing.T) {
	cmds := NewCommands(nil)
	cmd := cmds.DefaultTick()
	if cmd == nil {
		t.Error("DefaultTick returned nil")
	}
}

func TestCommands_Notifications(t *testing.T) {
	cmds := NewCommands(nil)

	tests := []struct {
		name string
		fn   func(string) tea.Cmd
		want NotificationType
	}{
		{"Success", cmds.NotifySuccess, NotificationSuccess},
		{"Error", cmds.NotifyError, NotificationError},
		{"Warning", cmds.NotifyWarning, NotificationWarning},
		{"Info", cmds.NotifyInfo, NotificationInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := tt.fn("msg")
			msg := cmd()

			addMsg, ok := msg.(AddNotificationMsg)
			if !ok {
				t.Fatalf("Expected AddNotificationMsg, got %T", msg)
			}
			if addMsg.Type != tt.want {
				t.Errorf("Type = %v, want %v", addMsg.Type, tt.want)
			}
			if addMsg.Message != "msg" {
				t.Errorf("Message = %q, want msg", addMsg.Message)
			}
		})
	}
}

func TestCommands_Requests(t *testing.T) {
	cmds := NewCommands(nil)

	if msg, ok := cmds.Login("agent", "pw", 2)().(LoginMsg); !ok || msg.UserName != "agent" || msg.LanguageID != 2 {
		t.Errorf("Login produced %#v", msg)
	}
	if msg, ok := cmds.Refresh("showcase")().(RefreshMsg); !ok || msg.Resource != "showcase" {
		t.Errorf("Refresh produced %#v", msg)
	}
	project := models.ShowcaseProject{ProjectID: 7}
	if msg, ok := cmds.TogglePin(project)().(TogglePinMsg); !ok || msg.Project.ProjectID != 7 {
		t.Errorf("TogglePin produced %#v", msg)
	}
	filter := models.ShowcaseFilter{TagName: "Selling Fast"}
	if msg, ok := cmds.FilterShowcase(filter)().(ShowcaseFilterMsg); !ok || msg.Filter.TagName != "Selling Fast" {
		t.Errorf("FilterShowcase produced %#v", msg)
	}
	item := models.ChartDataItem{ChartName: "Units"}
	if msg, ok := cmds.ExportChart(item)().(ExportChartMsg); !ok || msg.Item.ChartName != "Units" {
		t.Errorf("ExportChart produced %#v", msg)
	}
}

func TestExportChartCmd(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	item := models.ChartDataItem{
		ChartName:         "Units",
		ChartIdentityName: "Tower A",
		ChartType:         "bar",
		Data: []models.DataPoint{
			{Label: "Available", Value: 8},
			{Label: "Booked", Value: 2},
		},
	}

	msg, ok := exportChartCmd(dir, item)().(ExportResultMsg)
	if !ok {
		t.Fatal("expected ExportResultMsg")
	}
	if msg.Error != nil {
		t.Fatalf("export failed: %v", msg.Error)
	}

	f, err := os.Open(msg.Path)
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	defer f.Close()
	if _, err := png.DecodeConfig(f); err != nil {
		t.Errorf("export is not a PNG: %v", err)
	}
}

func TestCommands_ClearNotification(t *testing.T) {
	cmds := NewCommands(nil)
	cmd := cmds.ClearNotification("id", time.Millisecond)
	if cmd == nil {
		t.Error("ClearNotification returned nil")
	}
}

func TestCommands_Quit(t *testing.T) {
	cmds := NewCommands(nil)
	cmd := cmds.Quit()
	msg := cmd()
	if _, ok := msg.(tea.QuitMsg); !ok {
		t.Errorf("Expected QuitMsg, got %T", msg)
	}
}

func TestCommands_Batch(t *testing.T) {
	cmds := NewCommands(nil)
	cmd := cmds.Batch(cmds.Quit(), cmds.NotifyInfo("test"))
	if cmd == nil {
		t.Error("Batch returned nil")
	}
}
