// Package models defines data structures and domain types.
package models

import (
	"fmt"
	"time"
)

// UserProfile identifies the signed-in sales user.
type UserProfile struct {
	ProfileName string `json:"profileName"`
	TeamName    string `json:"teamName"`
	UserID      int    `json:"userId"`
	TeamID      int    `json:"teamId"`
}

// ProjectTag is a selectable tag used to filter the projects strip.
type ProjectTag struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IntID       int    `json:"intId"`
}

// Project is a featured project shown on the dashboard.
type Project struct {
	ProjectName    string `json:"projectName"`
	ProjectAddress string `json:"projectAddress"`
	Photo          string `json:"photo"`
	TagName        string `json:"tagName"`
	TicketID       int    `json:"ticketId"`
	ProjectID      int    `json:"projectId"`
	TagID          int    `json:"tagId"`
	IsFeature      bool   `json:"isFeature"`
}

// ActivityFilter is a selectable category filter for the activity feed.
type ActivityFilter struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	IntID       int    `json:"intId"`
}

// Activity is a timestamped status event shown in the feed.
type Activity struct {
	ActivityTitle string `json:"activityTitle"`
	Status        string `json:"status"`
	ActivityDate  int64  `json:"activityDate"`
	Category      int    `json:"category"`
}

// Time returns the activity timestamp (the backend sends epoch milliseconds).
func (a Activity) Time() time.Time {
	return time.UnixMilli(a.ActivityDate)
}

// Key identifies an activity across refreshes.
func (a Activity) Key() string {
	return fmt.Sprintf("%d|%d|%s", a.Category, a.ActivityDate, a.ActivityTitle)
}

// DashboardData is the payload returned by the dashboard endpoint.
type DashboardData struct {
	UserProfile     UserProfile      `json:"userprofile"`
	ProjectTags     []ProjectTag     `json:"projecttags"`
	Projects        []Project        `json:"projects"`
	ActivityFilters []ActivityFilter `json:"activityfilters"`
	Activities      []Activity       `json:"activities"`
	Statistics      []Statistic      `json:"statistics"`
}

// Photos returns the distinct non-empty photo references of all projects,
// in project order.
func (d *DashboardData) Photos() []string {
	if d == nil {
		return nil
	}

	seen := make(map[string]struct{}, len(d.Projects))
	photos := make([]string, 0, len(d.Projects))
	for _, p := range d.Projects {
		if p.Photo == "" {
			continue
		}
		if _, ok := seen[p.Photo]; ok {
			continue
		}
		seen[p.Photo] = struct{}{}
		photos = append(photos, p.Photo)
	}
	return photos
}

// ProjectsByTag returns projects carrying the given tag. Tag id 0 means no filter.
func (d *DashboardData) ProjectsByTag(tagID int) []Project {
	if d == nil {
		return nil
	}
	if tagID == 0 {
		return d.Projects
	}

	var projects []Project
	for _, p := range d.Projects {
		if p.TagID == tagID {
			projects = append(projects, p)
		}
	}
	return projects
}

// ActivitiesByCategory returns activities of the given category. Category 0
// means no filter.
func (d *DashboardData) ActivitiesByCategory(category int) []Activity {
	if d == nil {
		return nil
	}
	if category == 0 {
		return d.Activities
	}

	var activities []Activity
	for _, a := range d.Activities {
		if a.Category == category {
			activities = append(activities, a)
		}
	}
	return activities
}
