package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
	"github.com/anika2711garg/Planix-sub000/internal/repository"
)

type PointsSummary struct {
	Completed      int `json:"completed"`
	Total          int `json:"total"`
	CompletionRate int `json:"completionRate"`
}

type TaskBreakdown struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	InProgress int `json:"inProgress"`
	Todo       int `json:"todo"`
}

type SprintSummaryReport struct {
	SprintName        string        `json:"sprintName"`
	TeamName          string        `json:"teamName"`
	StartDate         time.Time     `json:"startDate"`
	EndDate           time.Time     `json:"endDate"`
	Goals             []string      `json:"goals"`
	Summary           PointsSummary `json:"summary"`
	TaskBreakdown     TaskBreakdown `json:"taskBreakdown"`
	Achievements      []string      `json:"achievements"`
	TeamMembers       []string      `json:"teamMembers"`
	DetailedBreakdown bool          `json:"detailedBreakdown,omitempty"`
}

type SprintVelocity struct {
	SprintName     string    `json:"sprintName"`
	SprintID       uint      `json:"sprintId"`
	TeamName       string    `json:"teamName"`
	Points         int       `json:"points"`
	TasksCompleted int       `json:"tasksCompleted"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
}

type VelocitySummary struct {
	TotalSprints    int     `json:"totalSprints"`
	TotalPoints     int     `json:"totalPoints"`
	AverageVelocity float64 `json:"averageVelocity"`
	HighestVelocity int     `json:"highestVelocity"`
	LowestVelocity  int     `json:"lowestVelocity"`
}

type VelocityReport struct {
	Sprints []SprintVelocity `json:"sprints"`
	Summary VelocitySummary  `json:"summary"`
}

type MemberPerformance struct {
	Username       string      `json:"username"`
	Email          string      `json:"email"`
	Role           domain.Role `json:"role"`
	TotalAssigned  int         `json:"totalAssigned"`
	TotalCompleted int         `json:"totalCompleted"`
	TasksAssigned  int         `json:"tasksAssigned"`
	TasksCompleted int         `json:"tasksCompleted"`
	CompletionRate int         `json:"completionRate"`
}

type TeamMetrics struct {
	TotalMembers       int `json:"totalMembers"`
	TotalSprints       int `json:"totalSprints"`
	TotalPoints        int `json:"totalPoints"`
	CompletedPoints    int `json:"completedPoints"`
	TeamCompletionRate int `json:"teamCompletionRate"`
}

type TeamPerformanceReport struct {
	TeamName          string              `json:"teamName"`
	ReportPeriod      *DateRange          `json:"reportPeriod"`
	TeamMetrics       TeamMetrics         `json:"teamMetrics"`
	MemberPerformance []MemberPerformance `json:"memberPerformance"`
	TopPerformers     []MemberPerformance `json:"topPerformers"`
}

type RiskAssessment struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

type BurndownReport struct {
	SprintName             string         `json:"sprintName"`
	TeamName               string         `json:"teamName"`
	TotalPoints            int            `json:"totalPoints"`
	CompletedPoints        int            `json:"completedPoints"`
	RemainingPoints        int            `json:"remainingPoints"`
	IdealRemainingPoints   int            `json:"idealRemainingPoints"`
	ProgressPercentage     int            `json:"progressPercentage"`
	TimeProgressPercentage int            `json:"timeProgressPercentage"`
	SprintDuration         int            `json:"sprintDuration"`
	CurrentDay             int            `json:"currentDay"`
	RiskAssessment         RiskAssessment `json:"riskAssessment"`
	Recommendations        []string       `json:"recommendations"`
}

type AvailableSprint struct {
	ID             uint      `json:"id"`
	Name           string    `json:"name"`
	TeamName       string    `json:"teamName"`
	StartDate      time.Time `json:"startDate"`
	EndDate        time.Time `json:"endDate"`
	TotalTasks     int       `json:"totalTasks"`
	CompletedTasks int       `json:"completedTasks"`
	IsActive       bool      `json:"isActive"`
}

const (
	ReportCustomSprint  = "custom-sprint"
	ReportMultiSprint   = "multi-sprint-comparison"
	maxAchievements     = 4
	maxTopPerformers    = 3
	achievementMinPoint = 5
)

type CustomReportParams struct {
	IncludeDetails bool   `json:"includeDetails"`
	SprintIDs      []uint `json:"sprintIds"`
}

type CustomReportRequest struct {
	ReportType   string              `json:"reportType" validate:"required"`
	SprintID     uint                `json:"sprintId"`
	CustomParams *CustomReportParams `json:"customParams"`
}

type ComparisonSummary struct {
	TotalSprints      int     `json:"totalSprints"`
	AverageCompletion float64 `json:"averageCompletion"`
	TotalPoints       int     `json:"totalPoints"`
	TotalCompleted    int     `json:"totalCompleted"`
}

type SprintComparison struct {
	Comparison []SprintSummaryReport `json:"comparison"`
	Summary    ComparisonSummary     `json:"summary"`
}

// ReportService builds the fixed report shapes used by the reporting page.
type ReportService interface {
	SprintSummary(ctx context.Context, sprintID uint) (*SprintSummaryReport, error)
	Velocity(ctx context.Context, teamID *uint, period *DateRange) (*VelocityReport, error)
	TeamPerformance(ctx context.Context, teamID uint, period *DateRange) (*TeamPerformanceReport, error)
	Burndown(ctx context.Context, sprintID uint) (*BurndownReport, error)
	AvailableSprints(ctx context.Context, teamID *uint) ([]AvailableSprint, error)
	// Custom builds a custom-sprint or multi-sprint-comparison report.
	Custom(ctx context.Context, req CustomReportRequest) (any, error)
}

type reportService struct {
	sprints repository.SprintRepository
	teams   repository.TeamRepository
	now     Clock
}

func NewReportService(sprints repository.SprintRepository, teams repository.TeamRepository, now Clock) ReportService {
	return &reportService{sprints: sprints, teams: teams, now: clockOrNow(now)}
}

func (s *reportService) SprintSummary(ctx context.Context, sprintID uint) (*SprintSummaryReport, error) {
	sprint, err := s.sprints.FindDetailed(ctx, sprintID)
	if err != nil {
		return nil, notFound(err, "Sprint not found")
	}
	return sprintSummary(sprint), nil
}

func sprintSummary(sprint *domain.Sprint) *SprintSummaryReport {
	items := sprint.Items
	total := domain.SumPoints(items, false)
	completed := domain.SumPoints(items, true)

	breakdown := TaskBreakdown{Total: len(items)}
	for _, it := range items {
		switch it.Status {
		case domain.StatusDone:
			breakdown.Completed++
		case domain.StatusInProgress:
			breakdown.InProgress++
		case domain.StatusTodo:
			breakdown.Todo++
		}
	}

	achievements := []string{}
	for _, it := range items {
		if it.IsDone() && it.StoryPoints >= achievementMinPoint {
			achievements = append(achievements, fmt.Sprintf("Completed: %s (%d pts)", it.Title, it.StoryPoints))
		}
	}
	if len(achievements) == 0 {
		achievements = append(achievements, "Sprint successfully initiated")
		if breakdown.Completed > 0 {
			achievements = append(achievements, fmt.Sprintf("Completed %d tasks", breakdown.Completed))
		}
		if completed > 0 {
			achievements = append(achievements, fmt.Sprintf("Delivered %d story points", completed))
		}
	}
	if len(achievements) > maxAchievements {
		achievements = achievements[:maxAchievements]
	}

	primaryGoal := sprint.Goals
	if primaryGoal == "" {
		primaryGoal = "Complete planned sprint tasks"
	}
	goals := []string{
		primaryGoal,
		fmt.Sprintf("Deliver %d story points", total),
		fmt.Sprintf("Complete %d tasks", len(items)),
	}

	members := []string{}
	seen := map[string]bool{}
	for _, it := range items {
		if it.Owner == nil || it.Owner.Username == "" || seen[it.Owner.Username] {
			continue
		}
		seen[it.Owner.Username] = true
		members = append(members, it.Owner.Username)
	}

	return &SprintSummaryReport{
		SprintName: sprint.Name,
		TeamName:   sprint.TeamName(),
		StartDate:  sprint.StartDate,
		EndDate:    sprint.EndDate,
		Goals:      goals,
		Summary: PointsSummary{
			Completed:      completed,
			Total:          total,
			CompletionRate: int(math.Round(percent(completed, total))),
		},
		TaskBreakdown: breakdown,
		Achievements:  achievements,
		TeamMembers:   members,
	}
}

func (s *reportService) Velocity(ctx context.Context, teamID *uint, period *DateRange) (*VelocityReport, error) {
	filter := repository.SprintFilter{TeamID: teamID}
	if period != nil {
		filter.StartFrom = &period.Start
		filter.EndBy = &period.End
	}
	sprints, err := s.sprints.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	report := &VelocityReport{Sprints: make([]SprintVelocity, 0, len(sprints))}
	for _, sp := range sprints {
		points := domain.SumPoints(sp.Items, true)
		report.Sprints = append(report.Sprints, SprintVelocity{
			SprintName:     sp.Name,
			SprintID:       sp.ID,
			TeamName:       sp.TeamName(),
			Points:         points,
			TasksCompleted: domain.CountDone(sp.Items),
			StartDate:      sp.StartDate,
			EndDate:        sp.EndDate,
		})
		report.Summary.TotalPoints += points
	}

	report.Summary.TotalSprints = len(sprints)
	if n := len(report.Sprints); n > 0 {
		report.Summary.AverageVelocity = round1(float64(report.Summary.TotalPoints) / float64(n))
		lowest := report.Sprints[0].Points
		for _, v := range report.Sprints {
			report.Summary.HighestVelocity = max(report.Summary.HighestVelocity, v.Points)
			lowest = min(lowest, v.Points)
		}
		report.Summary.LowestVelocity = lowest
	}
	return report, nil
}

func (s *reportService) TeamPerformance(ctx context.Context, teamID uint, period *DateRange) (*TeamPerformanceReport, error) {
	team, err := s.teams.FindWithWork(ctx, teamID)
	if err != nil {
		return nil, notFound(err, "Team not found")
	}

	members := make([]MemberPerformance, 0, len(team.Members))
	for _, m := range team.Members {
		owned := make([]domain.BacklogItem, 0, len(m.OwnedItems))
		for _, it := range m.OwnedItems {
			if period != nil && (it.Sprint == nil || !period.contains(*it.Sprint)) {
				continue
			}
			owned = append(owned, it)
		}
		assigned := domain.SumPoints(owned, false)
		completed := domain.SumPoints(owned, true)
		members = append(members, MemberPerformance{
			Username:       m.Username,
			Email:          m.Email,
			Role:           m.Role,
			TotalAssigned:  assigned,
			TotalCompleted: completed,
			TasksAssigned:  len(owned),
			TasksCompleted: domain.CountDone(owned),
			CompletionRate: int(math.Round(percent(completed, assigned))),
		})
	}

	metrics := TeamMetrics{TotalMembers: len(team.Members)}
	for _, sp := range team.Sprints {
		if !period.contains(sp) {
			continue
		}
		metrics.TotalSprints++
		metrics.TotalPoints += domain.SumPoints(sp.Items, false)
		metrics.CompletedPoints += domain.SumPoints(sp.Items, true)
	}
	metrics.TeamCompletionRate = int(math.Round(percent(metrics.CompletedPoints, metrics.TotalPoints)))

	top := make([]MemberPerformance, 0, maxTopPerformers)
	for _, m := range members {
		if m.TotalCompleted > 0 {
			top = append(top, m)
		}
	}
	sort.SliceStable(top, func(i, j int) bool { return top[i].TotalCompleted > top[j].TotalCompleted })
	if len(top) > maxTopPerformers {
		top = top[:maxTopPerformers]
	}

	return &TeamPerformanceReport{
		TeamName:          team.Name,
		ReportPeriod:      period,
		TeamMetrics:       metrics,
		MemberPerformance: members,
		TopPerformers:     top,
	}, nil
}

func (s *reportService) Burndown(ctx context.Context, sprintID uint) (*BurndownReport, error) {
	sprint, err := s.sprints.FindDetailed(ctx, sprintID)
	if err != nil {
		return nil, notFound(err, "Sprint not found")
	}

	total := domain.SumPoints(sprint.Items, false)
	completed := domain.SumPoints(sprint.Items, true)
	remaining := total - completed

	duration := max(sprint.DurationDays(), 1)
	currentDay := min(max(domain.CeilDays(s.now().Sub(sprint.StartDate)), 0), duration)

	ideal := math.Max(0, float64(total)-float64(total)*float64(currentDay)/float64(duration))
	progress := percent(completed, total)
	timeProgress := float64(currentDay) / float64(duration) * 100

	risk := RiskAssessment{Level: "Low", Message: "Sprint is on track"}
	switch {
	case progress < timeProgress-20:
		risk = RiskAssessment{Level: "High", Message: "Sprint is significantly behind schedule"}
	case progress < timeProgress-10:
		risk = RiskAssessment{Level: "Medium", Message: "Sprint is slightly behind schedule"}
	}

	return &BurndownReport{
		SprintName:             sprint.Name,
		TeamName:               sprint.TeamName(),
		TotalPoints:            total,
		CompletedPoints:        completed,
		RemainingPoints:        remaining,
		IdealRemainingPoints:   int(math.Round(ideal)),
		ProgressPercentage:     int(math.Round(progress)),
		TimeProgressPercentage: int(math.Round(timeProgress)),
		SprintDuration:         duration,
		CurrentDay:             currentDay,
		RiskAssessment:         risk,
		Recommendations:        burndownRecommendations(risk.Level, remaining, duration-currentDay),
	}, nil
}

func burndownRecommendations(level string, remainingPoints, remainingDays int) []string {
	var recs []string
	switch level {
	case "High":
		recs = []string{
			"Consider reducing sprint scope",
			"Identify and remove blockers immediately",
			"Increase team collaboration and daily standups",
		}
	case "Medium":
		recs = []string{
			"Monitor progress closely",
			"Consider pair programming for complex tasks",
			"Review task priorities and dependencies",
		}
	default:
		recs = []string{
			"Maintain current pace",
			"Look for opportunities to help team members",
			"Consider adding stretch goals if capacity allows",
		}
	}
	if remainingDays <= 2 && remainingPoints > 0 {
		recs = append(recs,
			"Focus on high-priority items only",
			"Prepare for sprint retrospective discussions",
		)
	}
	return recs
}

func (s *reportService) AvailableSprints(ctx context.Context, teamID *uint) ([]AvailableSprint, error) {
	sprints, err := s.sprints.List(ctx, repository.SprintFilter{TeamID: teamID, NewestFirst: true})
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]AvailableSprint, 0, len(sprints))
	for _, sp := range sprints {
		out = append(out, AvailableSprint{
			ID:             sp.ID,
			Name:           sp.Name,
			TeamName:       sp.TeamName(),
			StartDate:      sp.StartDate,
			EndDate:        sp.EndDate,
			TotalTasks:     len(sp.Items),
			CompletedTasks: domain.CountDone(sp.Items),
			IsActive:       sp.Status(now) == domain.SprintActive,
		})
	}
	return out, nil
}

func (s *reportService) Custom(ctx context.Context, req CustomReportRequest) (any, error) {
	params := req.CustomParams
	if params == nil {
		params = &CustomReportParams{}
	}

	switch req.ReportType {
	case ReportCustomSprint:
		if req.SprintID == 0 {
			return nil, domain.Invalidf("Sprint ID is required")
		}
		report, err := s.SprintSummary(ctx, req.SprintID)
		if err != nil {
			return nil, err
		}
		report.DetailedBreakdown = params.IncludeDetails
		return report, nil

	case ReportMultiSprint:
		if len(params.SprintIDs) == 0 {
			return nil, domain.Invalidf("Sprint IDs array is required")
		}
		out := &SprintComparison{Comparison: make([]SprintSummaryReport, 0, len(params.SprintIDs))}
		rateSum := 0
		for _, id := range params.SprintIDs {
			report, err := s.SprintSummary(ctx, id)
			if err != nil {
				return nil, err
			}
			out.Comparison = append(out.Comparison, *report)
			rateSum += report.Summary.CompletionRate
			out.Summary.TotalPoints += report.Summary.Total
			out.Summary.TotalCompleted += report.Summary.Completed
		}
		out.Summary.TotalSprints = len(out.Comparison)
		out.Summary.AverageCompletion = float64(rateSum) / float64(len(out.Comparison))
		return out, nil
	}
	return nil, domain.Invalidf("Invalid custom report type")
}
