package models

import (
	"encoding/json"
	"testing"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		want        float64
		wantCoerced bool
	}{
		{"integer", `5`, 5, false},
		{"float", `2.5`, 2.5, false},
		{"negative", `-3`, -3, false},
		{"null", `null`, 0, true},
		{"string", `"abc"`, 0, true},
		{"numeric string", `"12"`, 0, true},
		{"bool", `true`, 0, true},
		{"object", `{"a":1}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec StatisticRecord
			body := `{"chartName":"c","yAxisColName":` + tt.input + `}`
			if err := json.Unmarshal([]byte(body), &rec); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if rec.YAxisColName.Value != tt.want {
				t.Errorf("Value = %v, want %v", rec.YAxisColName.Value, tt.want)
			}
			if rec.YAxisColName.Coerced != tt.wantCoerced {
				t.Errorf("Coerced = %v, want %v", rec.YAxisColName.Coerced, tt.wantCoerced)
			}
		})
	}
}

func TestNumber_MissingFieldIsZero(t *testing.T) {
	var rec StatisticRecord
	if err := json.Unmarshal([]byte(`{"chartName":"c"}`), &rec); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if rec.YAxisColName.Value != 0 {
		t.Errorf("Value = %v, want 0", rec.YAxisColName.Value)
	}
}

func TestNumber_MarshalJSON(t *testing.T) {
	data, err := json.Marshal(Number{Value: 8})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if string(data) != "8" {
		t.Errorf("Marshal() = %s, want 8", data)
	}
}

func TestAxisFromName(t *testing.T) {
	tests := []struct {
		name   string
		want   Axis
		wantOK bool
	}{
		{"By Property", AxisProperty, true},
		{"sales by PERSONNEL", AxisPersonnel, true},
		{"Period", AxisPeriod, true},
		{"Monthly summary", 0, false},
		{"By Property period", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := AxisFromName(tt.name)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("AxisFromName(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestAxis_Title(t *testing.T) {
	if AxisPersonnel.Title() != "By Personnel" {
		t.Errorf("Title() = %q", AxisPersonnel.Title())
	}
	if Axis(9).String() != "unknown" {
		t.Errorf("String() = %q, want unknown", Axis(9).String())
	}
}
