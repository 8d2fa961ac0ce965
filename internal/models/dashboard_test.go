package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDashboardData_Decode(t *testing.T) {
	body := `{
		"userprofile": {"userId": 7, "profileName": "Aina", "teamId": 2, "teamName": "North"},
		"projecttags": [{"intId": 1, "id": "1", "description": "Landed"}],
		"projects": [{"ticketId": 10, "projectId": 3, "projectName": "Residensi", "photo": "p1.jpg", "tagId": 1}],
		"activityfilters": [{"intId": 1, "id": "1", "description": "Booking"}],
		"activities": [{"category": 1, "activityTitle": "Unit A-1", "activityDate": 1700000000000, "status": "Booked"}],
		"statistics": [{"statisticName": "By Property", "records": [{"chartName": "Sales", "yAxisColName": 3}]}]
	}`

	var data DashboardData
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if data.UserProfile.ProfileName != "Aina" {
		t.Errorf("ProfileName = %q, want Aina", data.UserProfile.ProfileName)
	}
	if len(data.Projects) != 1 || data.Projects[0].ProjectID != 3 {
		t.Errorf("Projects = %+v", data.Projects)
	}
	if len(data.Statistics) != 1 || data.Statistics[0].Records[0].YAxisColName.Value != 3 {
		t.Errorf("Statistics = %+v", data.Statistics)
	}
	if !data.Activities[0].Time().Equal(time.UnixMilli(1700000000000)) {
		t.Errorf("Activity time = %v", data.Activities[0].Time())
	}
}

func TestDashboardData_Photos(t *testing.T) {
	data := &DashboardData{Projects: []Project{
		{Photo: "a.jpg"},
		{Photo: ""},
		{Photo: "b.png"},
		{Photo: "a.jpg"},
	}}

	got := data.Photos()
	if len(got) != 2 || got[0] != "a.jpg" || got[1] != "b.png" {
		t.Errorf("Photos() = %v, want [a.jpg b.png]", got)
	}

	var nilData *DashboardData
	if nilData.Photos() != nil {
		t.Error("Photos() on nil should be nil")
	}
}

func TestDashboardData_Filters(t *testing.T) {
	data := &DashboardData{
		Projects: []Project{{ProjectID: 1, TagID: 1}, {ProjectID: 2, TagID: 2}, {ProjectID: 3, TagID: 1}},
		Activities: []Activity{
			{Category: 1, ActivityTitle: "a"},
			{Category: 2, ActivityTitle: "b"},
		},
	}

	if got := data.ProjectsByTag(0); len(got) != 3 {
		t.Errorf("ProjectsByTag(0) len = %d, want 3", len(got))
	}
	if got := data.ProjectsByTag(1); len(got) != 2 {
		t.Errorf("ProjectsByTag(1) len = %d, want 2", len(got))
	}
	if got := data.ActivitiesByCategory(2); len(got) != 1 || got[0].ActivityTitle != "b" {
		t.Errorf("ActivitiesByCategory(2) = %+v", got)
	}
}

func TestActivity_Key(t *testing.T) {
	a := Activity{Category: 1, ActivityDate: 5, ActivityTitle: "x"}
	b := Activity{Category: 1, ActivityDate: 5, ActivityTitle: "x", Status: "changed"}
	c := Activity{Category: 2, ActivityDate: 5, ActivityTitle: "x"}

	if a.Key() != b.Key() {
		t.Error("status should not affect the key")
	}
	if a.Key() == c.Key() {
		t.Error("category should affect the key")
	}
}
