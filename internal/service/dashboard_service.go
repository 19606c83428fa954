package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
)

type CurrentSprint struct {
	ID                   uint      `json:"id"`
	Name                 string    `json:"name"`
	StartDate            time.Time `json:"startDate"`
	EndDate              time.Time `json:"endDate"`
	DaysRemaining        int       `json:"daysRemaining"`
	TotalStoryPoints     int       `json:"totalStoryPoints"`
	CompletedStoryPoints int       `json:"completedStoryPoints"`
	ProgressPercentage   int       `json:"progressPercentage"`
	RiskLevel            string    `json:"riskLevel"`
}

// DayPoint is one day of the dashboard burndown. Actual is set for elapsed
// days and Predicted for the rest.
type DayPoint struct {
	Day       int  `json:"day"`
	Ideal     int  `json:"ideal"`
	Actual    *int `json:"actual,omitempty"`
	Predicted *int `json:"predicted,omitempty"`
}

type DashboardRecommendation struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

type Dashboard struct {
	CurrentSprint     *CurrentSprint            `json:"currentSprint"`
	BurndownData      []DayPoint                `json:"burndownData"`
	AIRecommendations []DashboardRecommendation `json:"aiRecommendations"`
}

type DashboardService interface {
	// ForUser summarises the current sprint of the user's team. The result
	// is empty when the user has no team or the team has no open sprint.
	ForUser(ctx context.Context, userID uint) (*Dashboard, error)
}

type dashboardService struct {
	users   repository.UserRepository
	sprints repository.SprintRepository
	now     Clock
}

func NewDashboardService(users repository.UserRepository, sprints repository.SprintRepository, now Clock) DashboardService {
	return &dashboardService{users: users, sprints: sprints, now: clockOrNow(now)}
}

func emptyDashboard() *Dashboard {
	return &Dashboard{BurndownData: []DayPoint{}, AIRecommendations: []DashboardRecommendation{}}
}

func (s *dashboardService) ForUser(ctx context.Context, userID uint) (*Dashboard, error) {
	user, err := s.users.FindByID(ctx, userID)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return emptyDashboard(), nil
	case err != nil:
		return nil, err
	}
	if user.TeamID == nil {
		return emptyDashboard(), nil
	}

	now := s.now()
	sprint, err := s.sprints.CurrentForTeam(ctx, *user.TeamID, now)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return emptyDashboard(), nil
	case err != nil:
		return nil, err
	}

	total := domain.SumPoints(sprint.Items, false)
	completed := domain.SumPoints(sprint.Items, true)
	progress := int(math.Round(percent(completed, total)))

	daysRemaining := max(0, domain.CeilDays(sprint.EndDate.Sub(now)))
	duration := sprint.DurationDays()
	elapsed := duration - daysRemaining
	expected := 0.0
	if duration > 0 {
		expected = float64(elapsed) / float64(duration) * 100
	}

	risk := "Low"
	switch {
	case float64(progress) < expected-20:
		risk = "High"
	case float64(progress) < expected-10:
		risk = "Medium"
	}

	return &Dashboard{
		CurrentSprint: &CurrentSprint{
			ID:                   sprint.ID,
			Name:                 sprint.Name,
			StartDate:            sprint.StartDate,
			EndDate:              sprint.EndDate,
			DaysRemaining:        daysRemaining,
			TotalStoryPoints:     total,
			CompletedStoryPoints: completed,
			ProgressPercentage:   progress,
			RiskLevel:            risk,
		},
		BurndownData:      dayBurndown(total, completed, duration, elapsed),
		AIRecommendations: dashboardRecommendations(sprint.Items, progress, daysRemaining, risk),
	}, nil
}

func dayBurndown(total, completed, duration, elapsed int) []DayPoint {
	perDay := float64(total) / float64(max(duration, 1))
	velocity := perDay
	if elapsed > 0 {
		velocity = float64(completed) / float64(elapsed)
	}

	data := make([]DayPoint, 0, max(duration, 0)+1)
	for day := 0; day <= duration; day++ {
		p := DayPoint{
			Day:   day,
			Ideal: int(math.Round(math.Max(0, float64(total)-float64(day)*perDay))),
		}
		if day <= elapsed {
			actual := total - completed
			if day != elapsed {
				actual = int(math.Round(math.Max(0, float64(total)-float64(day)*float64(completed)/float64(elapsed))))
			}
			p.Actual = &actual
		} else {
			predicted := int(math.Round(math.Max(0, float64(total-completed)-float64(day-elapsed)*velocity)))
			p.Predicted = &predicted
		}
		data = append(data, p)
	}
	return data
}

func dashboardRecommendations(items []domain.BacklogItem, progress, daysRemaining int, risk string) []DashboardRecommendation {
	recs := []DashboardRecommendation{}
	if risk == "High" {
		recs = append(recs, DashboardRecommendation{
			Type:     "scope",
			Title:    "Scope Adjustment",
			Message:  "Consider moving some lower priority items to the next sprint to reduce risk.",
			Priority: "high",
		})
	}
	if progress < 50 && daysRemaining < 7 {
		recs = append(recs, DashboardRecommendation{
			Type:     "velocity",
			Title:    "Velocity Boost",
			Message:  "Consider allocating additional resources or extending work hours to meet sprint goals.",
			Priority: "high",
		})
	}

	delayed := 0
	for _, it := range items {
		if !it.IsDone() && it.HasDelay() {
			delayed++
		}
	}
	if delayed > 0 {
		recs = append(recs, DashboardRecommendation{
			Type:     "blocker",
			Title:    "Potential Blockers",
			Message:  fmt.Sprintf("%d items are experiencing delays. Review and resolve blockers.", delayed),
			Priority: "medium",
		})
	}
	return recs
}
