package domain

import (
	"strings"
	"time"
)

type ItemStatus string

const (
	StatusTodo       ItemStatus = "todo"
	StatusInProgress ItemStatus = "in-progress"
	StatusDone       ItemStatus = "done"
)

// NormalizeStatus maps spellings such as IN_PROGRESS, In Progress or Done onto
// the canonical statuses. ok is false for anything unrecognised.
func NormalizeStatus(s string) (ItemStatus, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("_", "-", " ", "-").Replace(key)
	switch key {
	case "todo", "to-do":
		return StatusTodo, true
	case "in-progress", "inprogress":
		return StatusInProgress, true
	case "done":
		return StatusDone, true
	}
	return "", false
}

type BacklogItem struct {
	ID              uint             `gorm:"primaryKey" json:"id"`
	Type            string           `gorm:"not null" json:"type"`
	Title           string           `gorm:"not null" json:"title"`
	Description     string           `gorm:"not null;default:''" json:"description"`
	StoryPoints     int              `gorm:"not null;default:0" json:"storyPoints"`
	Priority        int              `gorm:"not null;default:0" json:"priority"`
	Status          ItemStatus       `gorm:"type:varchar(32);not null;default:todo" json:"status"`
	Position        int              `gorm:"not null;default:0" json:"position"`
	OwnerID         *uint            `json:"ownerId"`
	Owner           *User            `json:"owner,omitempty"`
	SprintID        *uint            `json:"sprintId"`
	Sprint          *Sprint          `json:"sprint,omitempty"`
	Dependencies    []BacklogItem    `gorm:"many2many:backlog_item_dependencies;joinForeignKey:ItemID;joinReferences:DependsOnID" json:"dependencies,omitempty"`
	TaskCompletions []TaskCompletion `gorm:"foreignKey:BacklogItemID" json:"taskCompletions,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

func (b BacklogItem) IsDone() bool { return b.Status == StatusDone }

// PriorityLabel buckets the numeric priority for reporting.
func (b BacklogItem) PriorityLabel() string {
	switch {
	case b.Priority >= 3:
		return "High"
	case b.Priority >= 2:
		return "Medium"
	default:
		return "Low"
	}
}

// HasDelay reports whether any completion record carries a delay reason.
func (b BacklogItem) HasDelay() bool {
	for _, tc := range b.TaskCompletions {
		if tc.DelayReason != nil && *tc.DelayReason != "" {
			return true
		}
	}
	return false
}

// SumPoints totals story points, counting only done items when doneOnly is set.
func SumPoints(items []BacklogItem, doneOnly bool) int {
	total := 0
	for _, it := range items {
		if doneOnly && !it.IsDone() {
			continue
		}
		total += it.StoryPoints
	}
	return total
}

// CountDone returns the number of done items.
func CountDone(items []BacklogItem) int {
	n := 0
	for _, it := range items {
		if it.IsDone() {
			n++
		}
	}
	return n
}
