package domain

import "time"

type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	Members   []User    `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	Sprints   []Sprint  `gorm:"foreignKey:TeamID" json:"sprints,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
