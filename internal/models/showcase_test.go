package models

import "testing"

func TestGroupShowcase(t *testing.T) {
	projects := []ShowcaseProject{
		{ProjectID: 1, ProjectGroupName: "Klang Valley"},
		{ProjectID: 2, ProjectGroupName: "Johor"},
		{ProjectID: 3, ProjectGroupName: "Klang Valley"},
		{ProjectID: 4},
	}

	sections := GroupShowcase(projects, map[int]bool{3: true})

	wantNames := []string{PinnedSectionName, "Klang Valley", "Johor", "Other"}
	if len(sections) != len(wantNames) {
		t.Fatalf("len(sections) = %d, want %d", len(sections), len(wantNames))
	}
	for i, name := range wantNames {
		if sections[i].Name != name {
			t.Errorf("sections[%d].Name = %q, want %q", i, sections[i].Name, name)
		}
	}
	if len(sections[0].Projects) != 1 || sections[0].Projects[0].ProjectID != 3 {
		t.Errorf("pinned section = %+v", sections[0].Projects)
	}
	if len(sections[1].Projects) != 2 {
		t.Errorf("Klang Valley len = %d, want 2", len(sections[1].Projects))
	}
}

func TestGroupShowcase_NoPins(t *testing.T) {
	sections := GroupShowcase([]ShowcaseProject{{ProjectID: 1, ProjectGroupName: "A"}}, nil)
	if len(sections) != 1 || sections[0].Name != "A" {
		t.Errorf("sections = %+v", sections)
	}

	if got := GroupShowcase(nil, nil); got == nil || len(got) != 0 {
		t.Errorf("GroupShowcase(nil) = %v, want empty", got)
	}
}

func TestShowcaseProject_Availability(t *testing.T) {
	if got := (ShowcaseProject{}).Availability(); got != "150/500 Available" {
		t.Errorf("Availability() = %q", got)
	}
	if got := (ShowcaseProject{AvailableUnits: 3, TotalUnits: 40}).Availability(); got != "3/40 Available" {
		t.Errorf("Availability() = %q", got)
	}
}

func TestShowcaseTagLabel(t *testing.T) {
	tests := map[int]string{
		ShowcaseTagMixDevelopments: "Mix Developments",
		ShowcaseTagLastFewUnits:    "Last Few Units",
		ShowcaseTagSellingFast:     "Selling Fast",
		42:                         "Mix Developments",
	}
	for tag, want := range tests {
		if got := ShowcaseTagLabel(tag); got != want {
			t.Errorf("ShowcaseTagLabel(%d) = %q, want %q", tag, got, want)
		}
	}
}

func TestSession_CloneAndAuth(t *testing.T) {
	var nilSession *Session
	if nilSession.IsAuthenticated() {
		t.Error("nil session should not be authenticated")
	}

	s := &Session{AccessToken: "tok", Profile: &UserProfile{ProfileName: "A"}}
	if !s.IsAuthenticated() {
		t.Error("session with token should be authenticated")
	}

	clone := s.Clone()
	clone.Profile.ProfileName = "B"
	if s.Profile.ProfileName != "A" {
		t.Error("Clone() should deep copy the profile")
	}
}

func TestLanguageByID(t *testing.T) {
	if got := LanguageByID(3); got.Code != "zh" {
		t.Errorf("LanguageByID(3) = %+v", got)
	}
	if got := LanguageByID(99); got.ID != 1 {
		t.Errorf("LanguageByID(99) = %+v, want English", got)
	}
}
