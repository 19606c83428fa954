package planning

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
)

const (
	defaultTeamCapacity    = 40
	defaultVelocity        = 30
	defaultDaysRemaining   = 14
	defaultModelConfidence = 0.8
	defaultModelReasoning  = "Optimized based on multiple factors including priority, risk, and dependencies."

	// HighPriorityThreshold is the lowest numeric priority treated as high.
	HighPriorityThreshold = 3
)

type RiskLevel string

const (
	RiskHigh   RiskLevel = "High"
	RiskMedium RiskLevel = "Medium"
	RiskLow    RiskLevel = "Low"
)

// ModelItem is the per-item record handed to the planner.
type ModelItem struct {
	ID                    uint      `json:"id"`
	Title                 string    `json:"title"`
	StoryPoints           int       `json:"story_points"`
	Priority              int       `json:"priority"`
	Status                string    `json:"status"`
	Type                  string    `json:"type"`
	Dependencies          []uint    `json:"dependencies"`
	RiskLevel             RiskLevel `json:"risk_level"`
	CompletionProbability float64   `json:"completion_probability"`
}

type ModelInput struct {
	BacklogItems         []ModelItem `json:"backlog_items"`
	TeamCapacity         float64     `json:"team_capacity"`
	CurrentVelocity      float64     `json:"current_velocity"`
	SprintGoals          []string    `json:"sprint_goals"`
	DaysRemaining        int         `json:"days_remaining"`
	CompletedStoryPoints int         `json:"completed_story_points"`
	TotalStoryPoints     int         `json:"total_story_points"`
}

// PlanContext carries the sprint-level figures fed to the planner. Zero
// capacity and velocity fall back to defaults.
type PlanContext struct {
	TeamCapacity    float64
	CurrentVelocity float64
	SprintGoals     []string
}

func ItemRisk(item domain.BacklogItem) RiskLevel {
	highPriority := item.Priority >= HighPriorityThreshold
	large := item.StoryPoints > 8
	hasDeps := len(item.Dependencies) > 0

	switch {
	case highPriority && (large || hasDeps):
		return RiskHigh
	case large || hasDeps:
		return RiskMedium
	default:
		return RiskLow
	}
}

func CompletionProbability(item domain.BacklogItem) float64 {
	pointsPenalty := math.Min(0.2, float64(item.StoryPoints-5)*0.02)
	depsPenalty := math.Min(0.2, float64(len(item.Dependencies))*0.05)
	return math.Max(0.6, 0.8-pointsPenalty-depsPenalty)
}

func BuildModelInput(items []domain.BacklogItem, pc PlanContext) ModelInput {
	in := ModelInput{
		BacklogItems:    make([]ModelItem, 0, len(items)),
		TeamCapacity:    pc.TeamCapacity,
		CurrentVelocity: pc.CurrentVelocity,
		SprintGoals:     pc.SprintGoals,
		DaysRemaining:   defaultDaysRemaining,
	}
	if in.TeamCapacity == 0 {
		in.TeamCapacity = defaultTeamCapacity
	}
	if in.CurrentVelocity == 0 {
		in.CurrentVelocity = defaultVelocity
	}
	if in.SprintGoals == nil {
		in.SprintGoals = []string{}
	}

	for _, it := range items {
		typ := it.Type
		if typ == "" {
			typ = "Feature"
		}
		deps := make([]uint, 0, len(it.Dependencies))
		for _, d := range it.Dependencies {
			deps = append(deps, d.ID)
		}
		in.BacklogItems = append(in.BacklogItems, ModelItem{
			ID:                    it.ID,
			Title:                 it.Title,
			StoryPoints:           it.StoryPoints,
			Priority:              it.Priority,
			Status:                string(it.Status),
			Type:                  typ,
			Dependencies:          deps,
			RiskLevel:             ItemRisk(it),
			CompletionProbability: CompletionProbability(it),
		})
		in.TotalStoryPoints += it.StoryPoints
		if it.IsDone() {
			in.CompletedStoryPoints += it.StoryPoints
		}
	}
	return in
}

// ItemRef is an item id that the planner may emit as a number or a string.
type ItemRef uint

func (r *ItemRef) UnmarshalJSON(b []byte) error {
	b = bytes.Trim(b, `"`)
	id, err := strconv.ParseUint(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("item id %q: %w", b, err)
	}
	*r = ItemRef(id)
	return nil
}

// ModelOutput is what the planner prints on stdout.
type ModelOutput struct {
	ReorderedItems      []ItemRef         `json:"reordered_items"`
	HighRiskItems       []json.RawMessage `json:"high_risk_items"`
	CapacityUtilization float64           `json:"capacity_utilization"`
	DependencyWarnings  []json.RawMessage `json:"dependency_warnings"`
	Confidence          float64           `json:"confidence"`
	Reasoning           string            `json:"reasoning"`
}

type Recommendation struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Message  string `json:"message"`
	Priority string `json:"priority"`
}

type Prediction struct {
	ReorderedItems  []domain.BacklogItem `json:"reorderedItems"`
	Recommendations []Recommendation     `json:"recommendations"`
	Confidence      float64              `json:"confidence"`
	Reasoning       string               `json:"reasoning"`
}

// ProcessOutput maps planner ids back onto items, dropping unknown and
// repeated ids, and derives recommendations from the risk signals.
func ProcessOutput(out ModelOutput, items []domain.BacklogItem) Prediction {
	byID := make(map[uint]domain.BacklogItem, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}

	ordered := make([]domain.BacklogItem, 0, len(out.ReorderedItems))
	seen := make(map[uint]struct{}, len(out.ReorderedItems))
	for _, ref := range out.ReorderedItems {
		id := uint(ref)
		it, ok := byID[id]
		if !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ordered = append(ordered, it)
	}

	recs := []Recommendation{}
	if n := len(out.HighRiskItems); n > 0 {
		recs = append(recs, Recommendation{
			Type:     "risk",
			Title:    "High Risk Items Detected",
			Message:  fmt.Sprintf("%d items need attention to reduce sprint risk.", n),
			Priority: "high",
		})
	}
	if out.CapacityUtilization > 0.9 {
		recs = append(recs, Recommendation{
			Type:     "capacity",
			Title:    "High Capacity Utilization",
			Message:  "Consider reducing sprint scope to maintain team velocity.",
			Priority: "medium",
		})
	}
	if len(out.DependencyWarnings) > 0 {
		recs = append(recs, Recommendation{
			Type:     "dependency",
			Title:    "Dependency Risks",
			Message:  "Some items have unresolved dependencies that may block progress.",
			Priority: "high",
		})
	}

	p := Prediction{
		ReorderedItems:  ordered,
		Recommendations: recs,
		Confidence:      out.Confidence,
		Reasoning:       out.Reasoning,
	}
	if p.Confidence == 0 {
		p.Confidence = defaultModelConfidence
	}
	if p.Reasoning == "" {
		p.Reasoning = defaultModelReasoning
	}
	return p
}
