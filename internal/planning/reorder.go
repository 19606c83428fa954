// Package planning holds the backlog scoring heuristics and the bridge to the
// external sprint planner.
package planning

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/anika2711garg/Planix-sub000/internal/domain"
)

type Criteria string

const (
	CriteriaPriority     Criteria = "priority"
	CriteriaComplexity   Criteria = "complexity"
	CriteriaDependencies Criteria = "dependencies"
	CriteriaReadiness    Criteria = "sprint_readiness"
)

func (c Criteria) Valid() bool {
	switch c {
	case CriteriaPriority, CriteriaComplexity, CriteriaDependencies, CriteriaReadiness:
		return true
	}
	return false
}

type ReorderOptions struct {
	Criteria     Criteria
	TeamCapacity float64
	SprintGoals  []string
}

type ReorderResult struct {
	Items       []domain.BacklogItem `json:"reorderedItems"`
	Reasoning   string               `json:"reasoning"`
	Confidence  int                  `json:"confidence"`
	Suggestions []string             `json:"suggestions"`
}

// Score rates a single item; higher scores are scheduled first. The result is
// never negative.
func Score(item domain.BacklogItem, opts ReorderOptions) int {
	priority := item.Priority
	if priority == 0 {
		priority = 1
	}
	score := priority * 20

	points := item.StoryPoints
	if points != 0 {
		switch {
		case points <= 3:
			score += 20
		case points <= 8:
			score += 10
		default:
			score -= 10
		}
	}

	switch item.Status {
	case domain.StatusInProgress:
		score += 50
	case domain.StatusDone:
		score -= 100
	}

	switch opts.Criteria {
	case CriteriaComplexity:
		if points != 0 && points <= 3 {
			score += 30
		}
	case CriteriaDependencies:
		if item.Description != "" && !strings.Contains(strings.ToLower(item.Description), "depends on") {
			score += 25
		}
	case CriteriaReadiness:
		if len(item.Description) > 50 {
			score += 20
		}
		if points > 0 {
			score += 15
		}
	}

	if len(opts.SprintGoals) > 0 {
		text := strings.ToLower(item.Title + " " + item.Description)
		for _, goal := range opts.SprintGoals {
			goal = strings.ToLower(strings.TrimSpace(goal))
			if goal != "" && strings.Contains(text, goal) {
				score += 40
			}
		}
	}

	if opts.TeamCapacity != 0 && points != 0 && float64(points) <= opts.TeamCapacity*0.3 {
		score += 15
	}

	if score < 0 {
		return 0
	}
	return score
}

// Reorder sorts items by descending score. Ties keep their input order.
func Reorder(items []domain.BacklogItem, opts ReorderOptions) ReorderResult {
	if opts.Criteria == "" {
		opts.Criteria = CriteriaPriority
	}

	type scored struct {
		item  domain.BacklogItem
		score int
	}
	ranked := make([]scored, len(items))
	scores := make([]int, len(items))
	for i, it := range items {
		s := Score(it, opts)
		ranked[i] = scored{item: it, score: s}
		scores[i] = s
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

	ordered := make([]domain.BacklogItem, len(ranked))
	for i, r := range ranked {
		ordered[i] = r.item
	}

	return ReorderResult{
		Items:       ordered,
		Reasoning:   reasoning(opts.Criteria, len(ordered)),
		Confidence:  Confidence(scores),
		Suggestions: Suggestions(ordered),
	}
}

func reasoning(c Criteria, n int) string {
	switch c {
	case CriteriaPriority:
		return fmt.Sprintf("Reordered %d items based on business priority, story points, and current status. High-priority items and quick wins are prioritized.", n)
	case CriteriaComplexity:
		return fmt.Sprintf("Reordered %d items to tackle simpler stories first, enabling quick wins and momentum building.", n)
	case CriteriaDependencies:
		return fmt.Sprintf("Reordered %d items to minimize dependency blockers, promoting parallel development.", n)
	case CriteriaReadiness:
		return fmt.Sprintf("Reordered %d items based on definition completeness and sprint readiness criteria.", n)
	}
	return fmt.Sprintf("Reordered %d items using AI analysis.", n)
}

// Confidence is avg/2 - variance/10 clamped to [10, 95] and rounded; 0 when
// there are no scores.
func Confidence(scores []int) int {
	if len(scores) == 0 {
		return 0
	}
	n := float64(len(scores))
	var sum float64
	for _, s := range scores {
		sum += float64(s)
	}
	avg := sum / n

	var variance float64
	for _, s := range scores {
		d := float64(s) - avg
		variance += d * d
	}
	variance /= n

	c := math.Min(95, math.Max(10, avg/2-variance/10))
	return int(math.Round(c))
}

func Suggestions(items []domain.BacklogItem) []string {
	suggestions := []string{}

	var missingPoints, vague, large, highPriority int
	for _, it := range items {
		if it.StoryPoints == 0 {
			missingPoints++
		}
		if len(it.Description) < 30 {
			vague++
		}
		if it.StoryPoints > 13 {
			large++
		}
		if it.Priority > 5 {
			highPriority++
		}
	}

	if missingPoints > 0 {
		suggestions = append(suggestions, fmt.Sprintf("%d items need story point estimation", missingPoints))
	}
	if vague > 0 {
		suggestions = append(suggestions, fmt.Sprintf("%d items need more detailed descriptions", vague))
	}
	if large > 0 {
		suggestions = append(suggestions, fmt.Sprintf("Consider breaking down %d large items (>13 story points)", large))
	}
	if float64(highPriority) > float64(len(items))*0.5 {
		suggestions = append(suggestions, "Too many high-priority items - consider re-prioritizing")
	}
	return suggestions
}
