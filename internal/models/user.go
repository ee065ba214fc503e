package models

import (
	"time"
)

type Role string

const (
	RoleDeveloper Role = "developer"
	RoleManager   Role = "manager"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleDeveloper || r == RoleManager
}

type User struct {
	ID           uint64    `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"type:varchar(255);not null" json:"name"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u User) IsManager() bool {
	return u.Role == RoleManager
}

func (u User) IsDeveloper() bool {
	return u.Role == RoleDeveloper
}
