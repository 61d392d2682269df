package model

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser    Role = "User"
	RoleManager Role = "Manager"
)

func Roles() []Role {
	return []Role{RoleUser, RoleManager}
}

type User struct {
	ID           ID        `json:"id" db:"id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Role         Role      `json:"role" db:"role"`
}

func NewUser(username, passwordHash string, role Role, now time.Time) User {
	return User{
		ID:           uuid.New(),
		CreatedAt:    now,
		UpdatedAt:    now,
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
}

// Update replaces every mutable attribute of the account.
func (u *User) Update(username, passwordHash string, role Role, now time.Time) {
	u.Username = username
	u.PasswordHash = passwordHash
	u.Role = role
	u.UpdatedAt = now
}
