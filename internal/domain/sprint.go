package domain

import (
	"math"
	"strings"
	"time"
)

// SprintStatus is derived from the sprint dates, never stored.
type SprintStatus string

const (
	SprintPlanning  SprintStatus = "PLANNING"
	SprintActive    SprintStatus = "ACTIVE"
	SprintCompleted SprintStatus = "COMPLETED"
)

type Sprint struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	Name          string        `gorm:"not null" json:"name"`
	Goals         string        `gorm:"not null;default:''" json:"goals"`
	StartDate     time.Time     `gorm:"not null" json:"startDate"`
	EndDate       time.Time     `gorm:"not null" json:"endDate"`
	TeamID        uint          `gorm:"not null" json:"teamId"`
	Team          *Team         `json:"team,omitempty"`
	ScopeAdjusted bool          `gorm:"not null;default:false" json:"scopeAdjusted"`
	Items         []BacklogItem `gorm:"foreignKey:SprintID" json:"items,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

func (s Sprint) Status(now time.Time) SprintStatus {
	switch {
	case now.Before(s.StartDate):
		return SprintPlanning
	case now.After(s.EndDate):
		return SprintCompleted
	default:
		return SprintActive
	}
}

// GoalList splits the comma separated goals, keeping empty entries out.
func (s Sprint) GoalList() []string {
	var goals []string
	for _, g := range strings.Split(s.Goals, ",") {
		if g = strings.TrimSpace(g); g != "" {
			goals = append(goals, g)
		}
	}
	return goals
}

// DurationDays is the sprint length in whole days, rounded up.
func (s Sprint) DurationDays() int {
	return CeilDays(s.EndDate.Sub(s.StartDate))
}

// CeilDays rounds a duration up to whole days.
func CeilDays(d time.Duration) int {
	return int(math.Ceil(d.Hours() / 24))
}

// TeamName is empty when the team was not preloaded.
func (s Sprint) TeamName() string {
	if s.Team == nil {
		return ""
	}
	return s.Team.Name
}
