package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
)

// ErrNoActiveSprint is returned by Burndown when no sprint was named and none
// is running.
var ErrNoActiveSprint = errors.New("no active sprint found")

type OverallMetrics struct {
	TotalSprints    int64   `json:"totalSprints"`
	ActiveSprints   int64   `json:"activeSprints"`
	CompletedTasks  int64   `json:"completedTasks"`
	AverageVelocity float64 `json:"averageVelocity"`
}

type MemberWorkload struct {
	UserID         uint   `json:"userId"`
	Username       string `json:"username"`
	TotalAssigned  int    `json:"totalAssigned"`
	TotalCompleted int    `json:"totalCompleted"`
	TasksAssigned  int    `json:"tasksAssigned"`
	TasksCompleted int    `json:"tasksCompleted"`
}

func (w *MemberWorkload) add(it domain.BacklogItem) {
	w.TotalAssigned += it.StoryPoints
	w.TasksAssigned++
	if it.IsDone() {
		w.TotalCompleted += it.StoryPoints
		w.TasksCompleted++
	}
}

type TeamWorkload struct {
	TeamName        string           `json:"teamName"`
	Members         []MemberWorkload `json:"members"`
	AverageVelocity float64          `json:"averageVelocity"`
	CompletionRate  float64          `json:"completionRate"`
	TotalMembers    int              `json:"totalMembers"`
	TotalSprints    int              `json:"totalSprints"`
}

type SprintPerformance struct {
	ID                   uint                `json:"id"`
	Name                 string              `json:"name"`
	TeamName             string              `json:"teamName"`
	Status               domain.SprintStatus `json:"status"`
	StartDate            time.Time           `json:"startDate"`
	EndDate              time.Time           `json:"endDate"`
	TotalItems           int                 `json:"totalItems"`
	CompletedItems       int                 `json:"completedItems"`
	TotalStoryPoints     int                 `json:"totalStoryPoints"`
	CompletedStoryPoints int                 `json:"completedStoryPoints"`
	CompletionRate       float64             `json:"completionRate"`
	Velocity             int                 `json:"velocity"`
}

type VelocityPoint struct {
	SprintName     string              `json:"sprintName"`
	Points         int                 `json:"points"`
	TasksCompleted int                 `json:"tasksCompleted"`
	SprintID       uint                `json:"sprintId"`
	TeamName       string              `json:"teamName"`
	StartDate      time.Time           `json:"startDate"`
	EndDate        time.Time           `json:"endDate"`
	Status         domain.SprintStatus `json:"status"`
}

type VelocityChart struct {
	Sprints          []VelocityPoint `json:"sprints"`
	AverageVelocity  float64         `json:"averageVelocity"`
	TotalSprints     int             `json:"totalSprints"`
	CompletedSprints int             `json:"completedSprints"`
}

type BurndownPoint struct {
	Date   string  `json:"date"`
	Ideal  float64 `json:"ideal"`
	Actual int     `json:"actual"`
}

type BurndownChart struct {
	SprintName           string          `json:"sprintName"`
	TotalStoryPoints     int             `json:"totalStoryPoints"`
	CompletedStoryPoints int             `json:"completedStoryPoints"`
	RemainingStoryPoints int             `json:"remainingStoryPoints"`
	BurndownData         []BurndownPoint `json:"burndownData"`
}

type CompletionMetrics struct {
	Total             int            `json:"total"`
	StatusBreakdown   map[string]int `json:"statusBreakdown"`
	TypeBreakdown     map[string]int `json:"typeBreakdown"`
	PriorityBreakdown map[string]int `json:"priorityBreakdown"`
}

// PerformanceService computes the dashboard charts of the performance page.
type PerformanceService interface {
	Metrics(ctx context.Context) (*OverallMetrics, error)
	// Team reports workload per member of one team, or of every user when
	// teamID is nil.
	Team(ctx context.Context, teamID *uint) (*TeamWorkload, error)
	Sprints(ctx context.Context, sprintID *uint) ([]SprintPerformance, error)
	Velocity(ctx context.Context, teamID *uint) (*VelocityChart, error)
	// Burndown falls back to the most recently started active sprint when
	// sprintID is nil.
	Burndown(ctx context.Context, sprintID *uint) (*BurndownChart, error)
	Completion(ctx context.Context, teamID *uint, period *DateRange) (*CompletionMetrics, error)
}

type performanceService struct {
	sprints repository.SprintRepository
	teams   repository.TeamRepository
	users   repository.UserRepository
	items   repository.BacklogRepository
	now     Clock
}

func NewPerformanceService(
	sprints repository.SprintRepository,
	teams repository.TeamRepository,
	users repository.UserRepository,
	items repository.BacklogRepository,
	now Clock,
) PerformanceService {
	return &performanceService{sprints: sprints, teams: teams, users: users, items: items, now: clockOrNow(now)}
}

func (s *performanceService) Metrics(ctx context.Context) (*OverallMetrics, error) {
	now := s.now()
	var m OverallMetrics
	var err error
	if m.TotalSprints, err = s.sprints.Count(ctx); err != nil {
		return nil, err
	}
	if m.ActiveSprints, err = s.sprints.CountActive(ctx, now); err != nil {
		return nil, err
	}
	if m.CompletedTasks, err = s.items.CountByStatus(ctx, domain.StatusDone); err != nil {
		return nil, err
	}

	past, err := s.sprints.List(ctx, repository.SprintFilter{EndedBefore: &now})
	if err != nil {
		return nil, err
	}
	m.AverageVelocity = averageVelocity(past, now)
	return &m, nil
}

// averageVelocity is the mean of done points over sprints that ended before now.
func averageVelocity(sprints []domain.Sprint, now time.Time) float64 {
	total, n := 0, 0
	for _, sp := range sprints {
		if !sp.EndDate.Before(now) {
			continue
		}
		total += domain.SumPoints(sp.Items, true)
		n++
	}
	if n == 0 {
		return 0
	}
	return round1(float64(total) / float64(n))
}

func completionRatio(sprints []domain.Sprint) float64 {
	total, done := 0, 0
	for _, sp := range sprints {
		total += len(sp.Items)
		done += domain.CountDone(sp.Items)
	}
	if total == 0 {
		return 0
	}
	return round2(float64(done) / float64(total))
}

func (s *performanceService) Team(ctx context.Context, teamID *uint) (*TeamWorkload, error) {
	now := s.now()
	if teamID != nil {
		team, err := s.teams.FindWithWork(ctx, *teamID)
		if err != nil {
			return nil, notFound(err, "Team with id %d not found", *teamID)
		}

		members := make([]MemberWorkload, len(team.Members))
		index := make(map[uint]int, len(team.Members))
		for i, m := range team.Members {
			members[i] = MemberWorkload{UserID: m.ID, Username: m.Username}
			index[m.ID] = i
		}
		for _, sp := range team.Sprints {
			for _, it := range sp.Items {
				if it.OwnerID == nil {
					continue
				}
				if i, ok := index[*it.OwnerID]; ok {
					members[i].add(it)
				}
			}
		}

		return &TeamWorkload{
			TeamName:        team.Name,
			Members:         members,
			AverageVelocity: averageVelocity(team.Sprints, now),
			CompletionRate:  completionRatio(team.Sprints),
			TotalMembers:    len(team.Members),
			TotalSprints:    len(team.Sprints),
		}, nil
	}

	users, err := s.users.ListWithOwnedItems(ctx)
	if err != nil {
		return nil, err
	}
	members := make([]MemberWorkload, len(users))
	for i, u := range users {
		members[i] = MemberWorkload{UserID: u.ID, Username: u.Username}
		for _, it := range u.OwnedItems {
			members[i].add(it)
		}
	}

	sprints, err := s.sprints.List(ctx, repository.SprintFilter{})
	if err != nil {
		return nil, err
	}
	return &TeamWorkload{
		TeamName:        "All Teams",
		Members:         members,
		AverageVelocity: averageVelocity(sprints, now),
		CompletionRate:  completionRatio(sprints),
		TotalMembers:    len(users),
		TotalSprints:    len(sprints),
	}, nil
}

func (s *performanceService) Sprints(ctx context.Context, sprintID *uint) ([]SprintPerformance, error) {
	var sprints []domain.Sprint
	if sprintID != nil {
		sp, err := s.sprints.FindDetailed(ctx, *sprintID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return []SprintPerformance{}, nil
		case err != nil:
			return nil, err
		}
		sprints = []domain.Sprint{*sp}
	} else {
		var err error
		if sprints, err = s.sprints.List(ctx, repository.SprintFilter{}); err != nil {
			return nil, err
		}
	}

	now := s.now()
	out := make([]SprintPerformance, 0, len(sprints))
	for _, sp := range sprints {
		done := domain.CountDone(sp.Items)
		completedPoints := domain.SumPoints(sp.Items, true)
		out = append(out, SprintPerformance{
			ID:                   sp.ID,
			Name:                 sp.Name,
			TeamName:             sp.TeamName(),
			Status:               sp.Status(now),
			StartDate:            sp.StartDate,
			EndDate:              sp.EndDate,
			TotalItems:           len(sp.Items),
			CompletedItems:       done,
			TotalStoryPoints:     domain.SumPoints(sp.Items, false),
			CompletedStoryPoints: completedPoints,
			CompletionRate:       round2(percent(done, len(sp.Items))),
			Velocity:             completedPoints,
		})
	}
	return out, nil
}

func (s *performanceService) Velocity(ctx context.Context, teamID *uint) (*VelocityChart, error) {
	sprints, err := s.sprints.List(ctx, repository.SprintFilter{TeamID: teamID})
	if err != nil {
		return nil, err
	}

	now := s.now()
	chart := &VelocityChart{Sprints: make([]VelocityPoint, 0, len(sprints)), TotalSprints: len(sprints)}
	completedPoints := 0
	for _, sp := range sprints {
		status := domain.SprintActive
		if sp.EndDate.Before(now) {
			status = domain.SprintCompleted
			chart.CompletedSprints++
		}
		points := domain.SumPoints(sp.Items, true)
		if status == domain.SprintCompleted {
			completedPoints += points
		}
		chart.Sprints = append(chart.Sprints, VelocityPoint{
			SprintName:     sp.Name,
			Points:         points,
			TasksCompleted: domain.CountDone(sp.Items),
			SprintID:       sp.ID,
			TeamName:       sp.TeamName(),
			StartDate:      sp.StartDate,
			EndDate:        sp.EndDate,
			Status:         status,
		})
	}
	if chart.CompletedSprints > 0 {
		chart.AverageVelocity = round1(float64(completedPoints) / float64(chart.CompletedSprints))
	}
	return chart, nil
}

func (s *performanceService) Burndown(ctx context.Context, sprintID *uint) (*BurndownChart, error) {
	id := uint(0)
	if sprintID != nil {
		id = *sprintID
	} else {
		active, err := s.sprints.MostRecentActive(ctx, s.now())
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return nil, ErrNoActiveSprint
		case err != nil:
			return nil, err
		}
		id = active.ID
	}

	sprint, err := s.sprints.FindDetailed(ctx, id)
	if err != nil {
		return nil, notFound(err, "Sprint not found")
	}

	total := domain.SumPoints(sprint.Items, false)
	completed := domain.SumPoints(sprint.Items, true)
	remaining := total - completed
	days := max(sprint.DurationDays(), 1)
	rate := float64(total) / float64(days)

	data := make([]BurndownPoint, 0, days+1)
	for i := 0; i <= days; i++ {
		actual := total
		if i == days {
			actual = remaining
		}
		data = append(data, BurndownPoint{
			Date:   sprint.StartDate.AddDate(0, 0, i).Format(dateLayout),
			Ideal:  math.Max(0, float64(total)-rate*float64(i)),
			Actual: actual,
		})
	}

	return &BurndownChart{
		SprintName:           sprint.Name,
		TotalStoryPoints:     total,
		CompletedStoryPoints: completed,
		RemainingStoryPoints: remaining,
		BurndownData:         data,
	}, nil
}

func (s *performanceService) Completion(ctx context.Context, teamID *uint, period *DateRange) (*CompletionMetrics, error) {
	filter := repository.ItemFilter{TeamID: teamID}
	if period != nil {
		filter.UpdatedFrom = &period.Start
		filter.UpdatedTo = &period.End
	}
	items, err := s.items.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	m := &CompletionMetrics{
		Total:             len(items),
		StatusBreakdown:   map[string]int{},
		TypeBreakdown:     map[string]int{},
		PriorityBreakdown: map[string]int{},
	}
	for _, it := range items {
		m.StatusBreakdown[orUnknown(string(it.Status))]++
		m.TypeBreakdown[orUnknown(it.Type)]++
		m.PriorityBreakdown[it.PriorityLabel()]++
	}
	return m, nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
