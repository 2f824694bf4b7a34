package models

import "time"

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the two recognized roles. Unknown values
// are rejected at the boundary and never stored.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         Role   `gorm:"not null;default:'user'"`
	CreatedAt    time.Time

	// Relationships
	Tasks []Task `gorm:"foreignKey:OwnerID"`
}
