package domain

import "time"

// TaskCompletion records planned and actual effort for a backlog item, in minutes.
type TaskCompletion struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	BacklogItemID uint         `gorm:"not null" json:"backlogItemId"`
	BacklogItem   *BacklogItem `json:"backlogItem,omitempty"`
	PlannedTime   int64        `gorm:"not null" json:"plannedTime"`
	ActualTime    *int64       `json:"actualTime"`
	DelayReason   *string      `json:"delayReason"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

type VelocityMetric struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	SprintID      uint      `gorm:"not null" json:"sprintId"`
	Sprint        *Sprint   `json:"sprint,omitempty"`
	AveragePoints float64   `gorm:"not null" json:"averagePoints"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Notification struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null" json:"userId"`
	User      *User     `json:"user,omitempty"`
	Type      string    `gorm:"not null" json:"type"`
	Message   string    `gorm:"not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type WorkloadDistribution struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SprintID        uint      `gorm:"not null" json:"sprintId"`
	UserID          uint      `gorm:"not null" json:"userId"`
	AssignedPoints  int       `gorm:"not null" json:"assignedPoints"`
	CompletedPoints int       `gorm:"not null" json:"completedPoints"`
	CreatedAt       time.Time `json:"createdAt"`
}

// SprintRecommendation is a persisted planner suggestion for a sprint.
type SprintRecommendation struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SprintID   uint      `gorm:"not null" json:"sprintId"`
	Type       string    `gorm:"not null" json:"type"`
	Title      string    `gorm:"not null" json:"title"`
	Message    string    `gorm:"not null" json:"message"`
	Priority   string    `gorm:"not null" json:"priority"`
	Confidence float64   `gorm:"not null" json:"confidence"`
	CreatedAt  time.Time `json:"createdAt"`
}
