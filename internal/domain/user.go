package domain

import "time"

type Role string

const (
	RoleManager   Role = "manager"
	RoleLeader    Role = "leader"
	RoleDeveloper Role = "developer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleManager, RoleLeader, RoleDeveloper:
		return true
	}
	return false
}

// CanRead reports whether the role may view project data.
func (r Role) CanRead() bool { return r.Valid() }

// CanWrite reports whether the role may create or modify project data.
func (r Role) CanWrite() bool { return r == RoleManager || r == RoleLeader }

func (r Role) IsManager() bool { return r == RoleManager }

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Password  *string   `json:"-"`
	Role      Role      `gorm:"type:varchar(32);not null;default:developer" json:"role"`
	TeamID    *uint     `json:"teamId"`
	Team      *Team     `json:"team,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	OwnedItems []BacklogItem `gorm:"foreignKey:OwnerID" json:"-"`
}
